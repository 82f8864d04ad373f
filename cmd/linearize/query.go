package main

import (
	"github.com/urfave/cli/v2"

	"github.com/mr-martian/ap-ud-linearize/query"
	"github.com/mr-martian/ap-ud-linearize/score"
)

// Query command
func queryCommand(c *cli.Context, env *Env) error {
	set, err := loadRules(env)
	if err != nil {
		return err
	}

	// now present the REPL
	t := query.NewHandler(score.NewScorer(set), newRenderer(env))
	return t.Run()
}
