package main

import (
	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mr-martian/ap-ud-linearize/render"
	"github.com/mr-martian/ap-ud-linearize/rule"
	"github.com/mr-martian/ap-ud-linearize/score"
	sent "github.com/mr-martian/ap-ud-linearize/sentence"
	"github.com/mr-martian/ap-ud-linearize/storage"
	"github.com/mr-martian/ap-ud-linearize/stream"
)

func scoreCommand(c *cli.Context, env *Env) error {
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
	sentences = withUnits(sentences)

	var repo storage.MatrixWriter
	if env.Config.Db != "" {
		repo, err = NewMatrixRepository(c.Context, env.Pool, env.Config.Db)
		if err != nil {
			return err
		}
	}

	runner := score.NewRunner(score.NewScorer(set), env.Config.Jobs, env.Logger)

	if c.Bool("progress") && len(sentences) > 0 {
		progress := uiprogress.New()
		progress.SetOut(env.UI.Err)
		bar := progress.AddBar(len(sentences))
		bar.AppendCompleted()
		bar.PrependElapsed()

		progress.Start()
		defer progress.Stop()

		runner.OnScored = func(int) {
			bar.Incr()
		}
	}

	var results []score.Result
	r := newRenderer(env)
	r.HasPrefix = !c.Bool("no-prefix")

	err = runner.Run(c.Context, sentences, func(res score.Result) error {
		if repo != nil {
			if err := repo.Write(res); err != nil {
				return err
			}
		}

		if env.Config.Format == "json" {
			results = append(results, res)
			return nil
		}

		r.Matrix(res)
		return nil
	})
	if err != nil {
		return err
	}

	if env.Config.Format == "json" {
		return render.NewJSONRenderer(env.UI.Out).Render(results)
	}

	return nil
}

func loadRules(env *Env) (rule.Set, error) {
	repo, err := NewRuleRepository(env.Config.Rules)
	if err != nil {
		return nil, err
	}

	set, err := repo.ReadAll()
	if err != nil {
		return nil, err
	}

	env.Logger.Debug("rules loaded", zap.String("path", env.Config.Rules), zap.Int("rules", len(set)))
	return set, nil
}

// readInput reads the stream named by the first argument, or the standard
// input.
func readInput(c *cli.Context, env *Env) ([]sent.Sentence, error) {
	path := c.Args().First()
	if path == "" || path == "-" {
		return stream.ReadAll(env.UI.In)
	}

	return stream.ReadFile(path)
}

// withUnits drops the text-only sentence that trailing blanks end up in.
func withUnits(sentences []sent.Sentence) []sent.Sentence {
	var out []sent.Sentence
	for _, s := range sentences {
		if len(s.Units) > 0 {
			out = append(out, s)
		}
	}
	return out
}
