// Package order turns a scored sentence back into text. The choice of the
// final word order is left to a Linearizer.
package order

import (
	"fmt"
	"io"

	"github.com/mr-martian/ap-ud-linearize/score"
	sent "github.com/mr-martian/ap-ud-linearize/sentence"
)

// Linearizer decides the final order of the units of a sentence from its
// score matrix. It returns a permutation of the unit positions.
type Linearizer interface {
	Linearize(s sent.Sentence, m score.Matrix) ([]int, error)
}

// LinearizerFunc adapts a function to the Linearizer interface.
type LinearizerFunc func(s sent.Sentence, m score.Matrix) ([]int, error)

func (f LinearizerFunc) Linearize(s sent.Sentence, m score.Matrix) ([]int, error) {
	return f(s, m)
}

// Identity keeps the input order.
type Identity struct{}

func (Identity) Linearize(s sent.Sentence, _ score.Matrix) ([]int, error) {
	positions := make([]int, len(s.Units))
	for i := range positions {
		positions[i] = i
	}
	return positions, nil
}

// Emit writes the sentence of res in the order chosen by lin, with the
// dependency links renumbered.
func Emit(w io.Writer, res score.Result, lin Linearizer) error {
	positions, err := lin.Linearize(res.Sentence, res.Matrix)
	if err != nil {
		return fmt.Errorf("sentence %d: %w", res.Sentence.Id, err)
	}

	text, err := res.Sentence.Write(positions)
	if err != nil {
		return fmt.Errorf("sentence %d: %w", res.Sentence.Id, err)
	}

	_, err = io.WriteString(w, text)
	return err
}
