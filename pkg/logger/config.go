package logger

type Config struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"filename"` // empty logs to stderr
	MaxSize    int    `yaml:"maxsize"`
	MaxAge     int    `yaml:"maxage"`
	MaxBackups int    `yaml:"maxbackups"`
	Compress   bool   `yaml:"compress"`
	Console    bool   `yaml:"console"` // also write to stderr
}

func DefaultConfig() *Config {
	return &Config{
		Level:      "WARN",
		FileName:   "./logs/bscp.log",
		MaxSize:    100,
		MaxAge:     30,
		MaxBackups: 5,
		Compress:   true,
	}
}
