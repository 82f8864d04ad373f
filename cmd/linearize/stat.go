package main

import (
	"github.com/urfave/cli/v2"

	"github.com/mr-martian/ap-ud-linearize/score"
	"github.com/mr-martian/ap-ud-linearize/stat"
)

func statCommand(c *cli.Context, env *Env) error {
	if err := applyCommandFlags(c, env); err != nil {
		return err
	}

	set, err := loadRules(env)
	if err != nil {
		return err
	}

	sentences, err := readInput(c, env)
	if err != nil {
		return err
	}

	hdl := stat.NewHandler()
	runner := score.NewRunner(score.NewScorer(set), env.Config.Jobs, env.Logger)
	err = runner.Run(c.Context, withUnits(sentences), func(res score.Result) error {
		hdl.Aggregate(res)
		return nil
	})
	if err != nil {
		return err
	}

	newRenderer(env).Stats(hdl.Get())
	return nil
}
