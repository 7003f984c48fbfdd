package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/basm-script/bscp/pkg/config"
	"github.com/basm-script/bscp/pkg/logger"
	"github.com/basm-script/bscp/pkg/script/lexer"
	"github.com/basm-script/bscp/pkg/script/parser"
	"github.com/basm-script/bscp/pkg/script/snapshot"
	"github.com/basm-script/bscp/pkg/script/value"
	"github.com/basm-script/bscp/pkg/storage/store"
	"github.com/basm-script/bscp/pkg/storage/store/bg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

type options struct {
	configPath string
	lex        bool
	dump       string
	logLevel   string
	session    string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "bscp [flags] [file]",
		Short:         "Evaluate bscp scripts",
		Long:          "Evaluate a bscp script file, or standard input. An interactive terminal starts a prompt.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, opts, args)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "configuration file (default: search for bscp.yaml)")
	cmd.Flags().BoolVar(&opts.lex, "lex", false, "print the token stream instead of evaluating")
	cmd.Flags().StringVar(&opts.dump, "dump", "", "format of the final root object: text, yaml or cbor")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")
	cmd.Flags().StringVar(&opts.session, "session", "", "restore the named session before running and save it afterwards")
	return cmd
}

func run(cmd *cobra.Command, opts options, args []string) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.dump != "" {
		cfg.Output.Format = opts.dump
	}
	if err := logger.InitLogger(cfg.Log); err != nil {
		return err
	}
	defer logger.Sync()

	in := cmd.InOrStdin()
	name := "<stdin>"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in, name = f, args[0]
	}
	out := cmd.OutOrStdout()

	if opts.lex {
		return dumpTokens(out, in)
	}

	interp := newInterpreter(cfg, out)
	if opts.session != "" {
		db, err := bg.New(cfg.Store.Path, logger.Logger)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := snapshot.Restore(db, opts.session, interp.Root()); err != nil && !errors.Is(err, store.NotExist) {
			return err
		}
		defer func() {
			if err := snapshot.Save(db, opts.session, interp.Root()); err != nil {
				logger.Error("saving session", zap.String("session", opts.session), zap.Error(err))
			}
		}()
	}

	if f, ok := in.(*os.File); ok && len(args) == 0 && term.IsTerminal(int(f.Fd())) {
		return repl(interp, f, out)
	}

	ctx := context.Background()
	if cfg.Exec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Exec.Timeout)
		defer cancel()
	}

	logger.Info("running script", zap.String("source", name))
	_, err = interp.Exec(ctx, in)
	if derr := dump(out, cfg.Output.Format, interp.Root()); derr != nil {
		return derr
	}
	return err
}

func newInterpreter(cfg *config.Config, out io.Writer) *parser.Interpreter {
	opts := []parser.InterpreterOption{
		parser.WithOutput(out),
		parser.WithInterpreterLogger(logger.Logger),
		parser.WithLiteralCache(cfg.Cache.Literals),
	}
	if cfg.Exec.Rate > 0 {
		opts = append(opts, parser.WithRateLimit(rate.Limit(cfg.Exec.Rate), cfg.Exec.Burst))
	}
	return parser.New(opts...)
}

func dumpTokens(w io.Writer, r io.Reader) error {
	l := lexer.New(r)
	for _, t := range l.All() {
		fmt.Fprintf(w, "%d\t%s\t%q\n", t.Line, t.Kind, t.Raw)
	}
	return l.Err()
}

func dump(w io.Writer, format string, v *value.Value) error {
	switch format {
	case "", "text":
		_, err := fmt.Fprintln(w, snapshot.Format(v))
		return err
	case "yaml":
		b, err := snapshot.EncodeYAML(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case "cbor":
		b, err := snapshot.EncodeCBOR(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case "none":
		return nil
	}
	return fmt.Errorf("unknown dump format %q", format)
}
