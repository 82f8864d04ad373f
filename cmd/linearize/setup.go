package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mr-martian/ap-ud-linearize/config"
	"github.com/mr-martian/ap-ud-linearize/storage"
	"github.com/mr-martian/ap-ud-linearize/storage/filesystem"
	"github.com/mr-martian/ap-ud-linearize/storage/sqlite/zombiezen"
)

// setup reads the configuration file, applies the global flags over it and
// builds the logger.
func setup(c *cli.Context, env *Env) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if c.IsSet("rules") {
		cfg.Rules = c.String("rules")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("no-color") {
		cfg.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(env.UI.Err, cfg.LogLevel)
	if err != nil {
		return err
	}

	env.Config = cfg
	env.Logger = logger
	return nil
}

// applyCommandFlags overrides the configuration with the flags of a
// subcommand.
func applyCommandFlags(c *cli.Context, env *Env) error {
	if c.IsSet("jobs") {
		env.Config.Jobs = c.Int("jobs")
	}
	if c.IsSet("format") {
		env.Config.Format = c.String("format")
	}
	if c.IsSet("db") {
		env.Config.Db = c.String("db")
	}
	return env.Config.Validate()
}

func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core), nil
}

func NewRuleRepository(path string) (storage.RuleReader, error) {
	if path == "" {
		return nil, errors.New("no rules given: use --rules, LINEARIZE_RULES or the rules key of the config file")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("rules not found: %s", path)
	}

	return filesystem.NewRuleStore(path), nil
}

func NewMatrixRepository(ctx context.Context, p *Pool, path string) (storage.MatrixRepository, error) {
	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}

	if err := zombiezen.CreateSchema(ctx, pool, zombiezen.ScoresSchema); err != nil {
		return nil, err
	}

	return zombiezen.NewMatrixStore(pool), nil
}
