package main

import (
	"github.com/urfave/cli/v2"

	"github.com/mr-martian/ap-ud-linearize/order"
	"github.com/mr-martian/ap-ud-linearize/rule"
	"github.com/mr-martian/ap-ud-linearize/score"
)

// emitCommand writes the input back through the linearizer. Without rules
// every matrix is empty, which the identity order does not need.
func emitCommand(c *cli.Context, env *Env) error {
	if err := applyCommandFlags(c, env); err != nil {
		return err
	}

	set := rule.Set{}
	if env.Config.Rules != "" {
		var err error
		set, err = loadRules(env)
		if err != nil {
			return err
		}
	}

	sentences, err := readInput(c, env)
	if err != nil {
		return err
	}

	runner := score.NewRunner(score.NewScorer(set), env.Config.Jobs, env.Logger)
	return runner.Run(c.Context, sentences, func(res score.Result) error {
		return order.Emit(env.UI.Out, res, order.Identity{})
	})
}
