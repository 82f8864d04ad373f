package score

import (
	"context"
	"encoding/json"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	sent "github.com/mr-martian/ap-ud-linearize/sentence"
)

// Result is the matrix of one sentence.
type Result struct {
	Sentence sent.Sentence `json:"sentence"`
	Matrix   Matrix        `json:"scores"`
}

type entry struct {
	I     int     `json:"i"`
	J     int     `json:"j"`
	Score float64 `json:"score"`
}

// MarshalJSON writes the matrix as a list of {i, j, score} sorted by pair.
func (m Matrix) MarshalJSON() ([]byte, error) {
	entries := make([]entry, 0, len(m))
	for _, p := range m.Pairs() {
		entries = append(entries, entry{I: p.I, J: p.J, Score: m[p]})
	}
	return json.Marshal(entries)
}

// UnmarshalJSON reads the format written by MarshalJSON.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	*m = make(Matrix, len(entries))
	for _, e := range entries {
		(*m)[Pair{I: e.I, J: e.J}] = e.Score
	}
	return nil
}

// Runner scores sentences concurrently. Each sentence only depends on itself
// and the shared rules, so workers need no coordination.
type Runner struct {
	Scorer *Scorer

	// Jobs is the maximum number of sentences scored at the same time.
	// GOMAXPROCS if <= 0.
	Jobs int

	Logger *zap.Logger

	// OnScored, if set, is called from the workers after each sentence.
	OnScored func(id int)
}

func NewRunner(sc *Scorer, jobs int, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{Scorer: sc, Jobs: jobs, Logger: logger}
}

// Run scores all sentences and calls fn for each result, in input order.
// It stops at the first error of fn or when ctx is done.
func (r *Runner) Run(ctx context.Context, sentences []sent.Sentence, fn func(Result) error) error {
	if len(sentences) == 0 {
		return nil
	}

	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()

	// one slot per sentence, written by a single worker
	matrices := make([]Matrix, len(sentences))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(sentences)))

	for i := range sentences {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			s := sentences[i]
			matrices[i] = r.Scorer.Score(s)
			logger.Debug("sentence scored",
				zap.Int("sentence", s.Id),
				zap.Int("units", len(s.Units)),
				zap.Int("pairs", len(matrices[i])))

			if r.OnScored != nil {
				r.OnScored(s.Id)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("scoring done",
		zap.Int("sentences", len(sentences)),
		zap.Int("rules", len(r.Scorer.Rules)),
		zap.Int("jobs", jobs),
		zap.Duration("elapsed", time.Since(start)))

	for i, s := range sentences {
		if err := fn(Result{Sentence: s, Matrix: matrices[i]}); err != nil {
			return err
		}
	}

	return nil
}
