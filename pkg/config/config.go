package config

import (
	"errors"
	"strings"
	"time"

	"github.com/basm-script/bscp/pkg/logger"
	"github.com/spf13/viper"
)

const (
	configName = "bscp"
	envPrefix  = "BSCP"
)

type Config struct {
	Log    *logger.Config `yaml:"log"`
	Cache  CacheConfig    `yaml:"cache"`
	Exec   ExecConfig     `yaml:"exec"`
	Output OutputConfig   `yaml:"output"`
	Store  StoreConfig    `yaml:"store"`
}

type CacheConfig struct {
	Literals int `yaml:"literals"` // decoded string literals kept
}

type ExecConfig struct {
	Timeout time.Duration `yaml:"timeout"` // zero runs without a deadline
	Rate    float64       `yaml:"rate"`    // statements per second, zero is unlimited
	Burst   int           `yaml:"burst"`
}

type StoreConfig struct {
	Path string `yaml:"path"` // directory of the session database
}

type OutputConfig struct {
	Format string `yaml:"format"` // text, yaml or cbor
}

func DefaultConfig() *Config {
	return &Config{
		Log:    logger.DefaultConfig(),
		Cache:  CacheConfig{Literals: 512},
		Exec:   ExecConfig{Burst: 1},
		Output: OutputConfig{Format: "text"},
		Store:  StoreConfig{Path: "./data"},
	}
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.filename", def.Log.FileName)
	v.SetDefault("log.maxsize", def.Log.MaxSize)
	v.SetDefault("log.maxage", def.Log.MaxAge)
	v.SetDefault("log.maxbackups", def.Log.MaxBackups)
	v.SetDefault("log.compress", def.Log.Compress)
	v.SetDefault("log.console", def.Log.Console)
	v.SetDefault("cache.literals", def.Cache.Literals)
	v.SetDefault("exec.timeout", def.Exec.Timeout)
	v.SetDefault("exec.rate", def.Exec.Rate)
	v.SetDefault("exec.burst", def.Exec.Burst)
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("store.path", def.Store.Path)
}

// LoadConfig load configuration information. An empty path searches for
// bscp.yaml in . and ./config/ and falls back to the defaults when there is
// none; an explicit path must exist. BSCP_* environment variables override
// file values, e.g. BSCP_LOG_LEVEL.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config/")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
