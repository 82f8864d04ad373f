package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mr-martian/ap-ud-linearize/config"
	"github.com/mr-martian/ap-ud-linearize/render"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Env is what the commands share once the global flags are read.
type Env struct {
	UI     UI
	Config config.Config
	Logger *zap.Logger
	Pool   *Pool
}

func main() {
	ui := UI{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "linearize: %v\n", err)
}

func newApp(ui UI) *cli.App {
	env := &Env{UI: ui, Logger: zap.NewNop(), Pool: &Pool{}}

	inputFlags := []cli.Flag{
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "number of sentences scored in parallel",
		},
	}

	return &cli.App{
		Name:                 "linearize",
		Usage:                "score word order preferences of dependency-annotated sentences",
		Version:              versionString(),
		Reader:               ui.In,
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "TOML configuration file",
				EnvVars: []string{"LINEARIZE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "rules",
				Aliases: []string{"r"},
				Usage:   "rule file, or directory of rule files",
				EnvVars: []string{"LINEARIZE_RULES"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "do not color the output",
			},
		},
		Before: func(c *cli.Context) error {
			return setup(c, env)
		},
		After: func(c *cli.Context) error {
			_ = env.Logger.Sync()
			return env.Pool.Close()
		},
		Commands: []*cli.Command{
			{
				Name:      "score",
				Usage:     "print the score matrix of every sentence",
				ArgsUsage: "[input]",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "pairs, net, tree or json",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "also write the matrices to this SQLite file",
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "show a progress bar on stderr",
					},
					&cli.BoolFlag{
						Name:  "no-prefix",
						Usage: "do not print the sentence before its scores",
					},
				}, inputFlags...),
				Action: func(c *cli.Context) error {
					return scoreCommand(c, env)
				},
			},
			{
				Name:      "emit",
				Usage:     "write the input stream back with renumbered dependency links",
				ArgsUsage: "[input]",
				Flags:     inputFlags,
				Action: func(c *cli.Context) error {
					return emitCommand(c, env)
				},
			},
			{
				Name:  "rules",
				Usage: "list the compiled rules",
				Action: func(c *cli.Context) error {
					return rulesCommand(c, env)
				},
			},
			{
				Name:      "stat",
				Usage:     "print statistics of the input",
				ArgsUsage: "[input]",
				Flags:     inputFlags,
				Action: func(c *cli.Context) error {
					return statCommand(c, env)
				},
			},
			{
				Name:  "query",
				Usage: "score sentences typed in an interactive prompt",
				Action: func(c *cli.Context) error {
					return queryCommand(c, env)
				},
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(c *cli.Context) error {
					return versionCommand(env.UI)
				},
			},
		},
	}
}

func newRenderer(env *Env) *render.Renderer {
	r := render.NewRenderer()
	r.W = env.UI.Out
	r.HasColor = env.Config.Color
	if env.Config.Format != "json" {
		r.Format = env.Config.Format
	}
	return r
}
