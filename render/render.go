package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/mr-martian/ap-ud-linearize/rule"
	"github.com/mr-martian/ap-ud-linearize/score"
	sent "github.com/mr-martian/ap-ud-linearize/sentence"
	"github.com/mr-martian/ap-ud-linearize/stat"
)

const Defaultformat = "pairs"

// SupportedFormats returns the text formats of a score matrix:
//
//	pairs: one line per scored ordered pair
//	net: one line per unordered pair, with the score of i before j minus the
//	     score of j before i
//	tree: the units with their dependency links, no scores
func SupportedFormats() []string {
	return []string{"pairs", "net", "tree"}
}

type Renderer struct {
	W io.Writer

	HasColor bool

	// HasPrefix prints the sentence line before its scores
	HasPrefix bool

	Format string

	index    *color.Color
	positive *color.Color
	negative *color.Color
	neutral  *color.Color
}

func NewRenderer() *Renderer {
	r := &Renderer{
		W:         os.Stdout,
		HasColor:  true,
		HasPrefix: true,
		Format:    Defaultformat,
		index:     color.New(color.FgYellow),
		positive:  color.New(color.FgGreen, color.Bold),
		negative:  color.New(color.FgRed, color.Bold),
		neutral:   color.New(color.FgHiBlack),
	}

	// HasColor decides, not the terminal detection of the color package
	for _, c := range []*color.Color{r.index, r.positive, r.negative, r.neutral} {
		c.EnableColor()
	}

	return r
}

func (r *Renderer) paint(c *color.Color, s string) string {
	if !r.HasColor {
		return s
	}
	return c.Sprint(s)
}

func (r *Renderer) scoreString(v float64) string {
	s := fmt.Sprintf("%+8.3f", v)
	switch {
	case v > 0:
		return r.paint(r.positive, s)
	case v < 0:
		return r.paint(r.negative, s)
	default:
		return r.paint(r.neutral, s)
	}
}

// Matrix prints the scores of a sentence in the current format.
func (r *Renderer) Matrix(res score.Result) {
	if r.HasPrefix {
		fmt.Fprintf(r.W, "✍  %d %s\n", res.Sentence.Id, r.SentenceString(res.Sentence))
	}

	lemmas := map[int]string{}
	for _, lu := range res.Sentence.Units {
		if !lu.IsInert() {
			lemmas[lu.Index] = lu.Lemma
		}
	}

	switch r.Format {
	case "net":
		r.net(res.Matrix, lemmas)
	case "tree":
		r.tree(res.Sentence)
	default:
		for _, p := range res.Matrix.Pairs() {
			fmt.Fprintf(r.W, "%s %s %s  %s → %s\n",
				r.paint(r.index, fmt.Sprintf("%6d", p.I)),
				r.paint(r.index, fmt.Sprintf("%-6d", p.J)),
				r.scoreString(res.Matrix[p]),
				lemmas[p.I], lemmas[p.J])
		}
	}
}

func (r *Renderer) net(m score.Matrix, lemmas map[int]string) {
	seen := map[score.Pair]bool{}
	for _, p := range m.Pairs() {
		i, j := p.I, p.J
		if i > j {
			i, j = j, i
		}

		key := score.Pair{I: i, J: j}
		if seen[key] {
			continue
		}
		seen[key] = true

		v := m.Net(i, j)
		if v == 0 {
			continue
		}

		fmt.Fprintf(r.W, "%s %s %s  %s ~ %s\n",
			r.paint(r.index, fmt.Sprintf("%6d", i)),
			r.paint(r.index, fmt.Sprintf("%-6d", j)),
			r.scoreString(v),
			lemmas[i], lemmas[j])
	}
}

func (r *Renderer) tree(s sent.Sentence) {
	for _, lu := range s.Units {
		if lu.IsInert() {
			fmt.Fprintf(r.W, "%6s %6s %15q %s\n", "-", "-", lu.Lemma, lu.Tags)
			continue
		}

		fmt.Fprintf(r.W, "%s %6d %15q %s\n",
			r.paint(r.index, fmt.Sprintf("%6d", lu.Index)),
			lu.Parent, lu.Lemma, lu.Tags)
	}
}

// SentenceString returns the lemmas of the sentence.
func (r *Renderer) SentenceString(s sent.Sentence) string {
	lemmas := make([]string, 0, len(s.Units))
	for _, lu := range s.Units {
		lemmas = append(lemmas, lu.Lemma)
	}

	return strings.ReplaceAll(strings.Join(lemmas, " "), "\n", " ")
}

// Rules prints the rules of a rule set, one per line.
func (r *Renderer) Rules(set rule.Set) {
	for i, or := range set {
		fmt.Fprintf(r.W, "%s %s %s %-16s %s | %s\n",
			r.paint(r.index, fmt.Sprintf("%4d", i+1)),
			or.Direction,
			r.scoreString(or.Weight),
			or.Role,
			or.First,
			or.Second)
	}
}

// Stats prints run statistics.
func (r *Renderer) Stats(stats stat.Stats) {
	fmt.Fprintf(r.W, "Num sentences %d, num units %d (%d inert), num units per sentence %d\n",
		stats.NumSentences, stats.NumUnits, stats.NumInert, stats.UnitsPerSentenceMean)
	fmt.Fprintf(r.W, "Num scored pairs %d (%d cancelled)\n", stats.NumPairs, stats.NumZero)

	sizes := make([]int, 0, len(stats.UnitsPerSentenceDis))
	for n := range stats.UnitsPerSentenceDis {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)

	for _, n := range sizes {
		fmt.Fprintf(r.W, "%6d units: %d\n", n, stats.UnitsPerSentenceDis[n])
	}
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}

	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {
	// toggle
	r.HasPrefix = !r.HasPrefix
}
