package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func rulesCommand(c *cli.Context, env *Env) error {
	repo, err := NewRuleRepository(env.Config.Rules)
	if err != nil {
		return err
	}

	names, err := repo.Names()
	if err != nil {
		return err
	}

	set, err := repo.ReadAll()
	if err != nil {
		return err
	}

	for _, n := range names {
		fmt.Fprintf(env.UI.Out, "📖 %s\n", n)
	}

	newRenderer(env).Rules(set)
	return nil
}
