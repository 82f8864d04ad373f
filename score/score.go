package score

import (
	"sort"

	"github.com/mr-martian/ap-ud-linearize/rule"
	sent "github.com/mr-martian/ap-ud-linearize/sentence"
)

// Pair is an ordered pair of dependency indices.
type Pair struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Matrix accumulates the signed weights of the rules that matched each
// ordered pair of a sentence. Pairs not touched by any rule are absent and
// count as 0.
type Matrix map[Pair]float64

// Get returns the score of (i, j).
func (m Matrix) Get(i, j int) float64 {
	return m[Pair{I: i, J: j}]
}

// Net returns the preference of i before j once the opposite pair is taken
// into account.
func (m Matrix) Net(i, j int) float64 {
	return m.Get(i, j) - m.Get(j, i)
}

// Pairs returns the pairs of the matrix sorted by I, then J.
func (m Matrix) Pairs() []Pair {
	pairs := make([]Pair, 0, len(m))
	for p := range m {
		pairs = append(pairs, p)
	}

	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].I != pairs[b].I {
			return pairs[a].I < pairs[b].I
		}
		return pairs[a].J < pairs[b].J
	})

	return pairs
}

// Scorer applies a rule set to sentences. The rule set is only read, a
// Scorer can be shared between goroutines.
type Scorer struct {
	Rules rule.Set
}

func NewScorer(rules rule.Set) *Scorer {
	return &Scorer{Rules: rules}
}

// Score returns the matrix of the sentence. Units without dependency marker
// take no part. Every rule is tested against every ordered pair of distinct
// units and the contributions add up.
func (sc *Scorer) Score(s sent.Sentence) Matrix {
	m := Matrix{}

	for _, r := range sc.Rules {
		for i, w1 := range s.Units {
			if w1.IsInert() || !r.First.Match(w1) {
				continue
			}

			for j, w2 := range s.Units {
				if i == j || w2.IsInert() {
					continue
				}

				if !r.Qualifies(w1, w2) {
					continue
				}

				if !r.Second.Match(w2) {
					continue
				}

				m[Pair{I: w1.Index, J: w2.Index}] += r.Signed()
			}
		}
	}

	return m
}
