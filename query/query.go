package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/mr-martian/ap-ud-linearize/render"
	"github.com/mr-martian/ap-ud-linearize/score"
	"github.com/mr-martian/ap-ud-linearize/stream"
)

const (
	// rulesCommand in the prompt lists the loaded rules
	rulesCommand = "/rules"
	quitCommand  = "quit"
)

// Handler is an interactive session: every line typed is read as a stream
// fragment, and the scores of its sentences are printed.
type Handler struct {
	Scorer   *score.Scorer
	Renderer *render.Renderer

	// lemmas named by the rules, for completion
	lemmas []string
}

func NewHandler(sc *score.Scorer, r *render.Renderer) *Handler {
	seen := map[string]bool{}
	for _, or := range sc.Rules {
		for _, l := range []*string{or.First.Lemma, or.Second.Lemma} {
			if l != nil {
				seen[*l] = true
			}
		}
	}

	lemmas := make([]string, 0, len(seen))
	for l := range seen {
		lemmas = append(lemmas, l)
	}
	sort.Strings(lemmas)

	return &Handler{
		Scorer:   sc,
		Renderer: r,
		lemmas:   lemmas,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Renderer.W, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, /rules: list rules, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("linearize query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Renderer.W, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintln(h.Renderer.W, "Prefix set to "+fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		if strings.TrimSpace(in) == quitCommand {
			return nil
		}

		history = append(history, in)
		if err := h.Eval(in); err != nil {
			fmt.Fprintf(h.Renderer.W, "✍  %v\n", err)
		}
	}
}

// Eval scores and renders the sentences of one input line.
func (h *Handler) Eval(in string) error {
	in = strings.TrimSpace(in)
	if in == "" {
		return errors.New("no input, type a sentence: ^el<det><#1→2>$ ^gato<n><#2→0>$")
	}

	if in == rulesCommand {
		h.Renderer.Rules(h.Scorer.Rules)
		return nil
	}

	sentences, err := stream.ReadAll(strings.NewReader(in))
	if err != nil {
		return err
	}

	for _, s := range sentences {
		if len(s.Units) == 0 {
			continue
		}
		h.Renderer.Matrix(score.Result{Sentence: s, Matrix: h.Scorer.Score(s)})
	}

	return nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	return h.suggest(in.GetWordBeforeCursor())
}

// suggest completes the lemma of a unit being typed (^ga -> ^gato) with the
// lemmas named by the rules, and the prompt commands.
func (h *Handler) suggest(word string) (s []prompt.Suggest) {
	if word == "" {
		return s
	}

	if strings.HasPrefix(word, "^") {
		prefix := strings.TrimPrefix(word, "^")
		for _, l := range h.lemmas {
			if strings.HasPrefix(l, prefix) {
				s = append(s, prompt.Suggest{Text: "^" + l, Description: "🔖 rule lemma"})
			}
		}
		return s
	}

	for _, c := range []string{rulesCommand, quitCommand} {
		if strings.HasPrefix(c, word) {
			s = append(s, prompt.Suggest{Text: c})
		}
	}

	return s
}
