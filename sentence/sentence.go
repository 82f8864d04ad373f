package sentence

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// depMarker matches the embedded dependency link of a unit: <#IDX→PARENT>
var depMarker = regexp.MustCompile(`<#(\d+)→(\d+)>`)

// MalformedTokenError is returned for a surface form that can not be split
// into lemma and tags.
type MalformedTokenError struct {
	Form string
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("malformed lexical unit %q: no tag delimiter", e.Form)
}

// LexicalUnit represents a word of the sentence, with its tags and the
// dependency link to its head.
type LexicalUnit struct {
	// WBlank is the word-bound blank that preceded the unit in the stream
	WBlank string `json:"wblank,omitempty"`

	// Form is the unmodified annotated string, without the ^ and $ delimiters
	Form string `json:"form"`

	Lemma string `json:"lemma"`

	// Tags always starts with '<'
	Tags string `json:"tags"`

	// Index is the dependency index of the unit, 0 if the unit has no
	// dependency marker.
	Index int `json:"index"`

	// Parent is the index of the head, 0 for the root.
	Parent int `json:"parent"`

	// Rel is the relation label (<@nsubj> -> "nsubj"), valid if HasRel.
	Rel    string `json:"rel,omitempty"`
	HasRel bool   `json:"-"`

	// byte span of the dependency marker inside Form, empty when inert
	depStart int
	depEnd   int
}

// Parse builds a LexicalUnit from its annotated form.
func Parse(wblank, form string) (LexicalUnit, error) {
	i := tagStart(form)
	if i < 0 {
		return LexicalUnit{}, &MalformedTokenError{Form: form}
	}

	lu := LexicalUnit{
		WBlank: wblank,
		Form:   form,
		Lemma:  form[:i],
		Tags:   form[i:],
	}

	if m := depMarker.FindStringSubmatchIndex(form); m != nil {
		idx, errIdx := strconv.Atoi(form[m[2]:m[3]])
		parent, errParent := strconv.Atoi(form[m[4]:m[5]])
		// overflowing numbers and index 0 are not a usable link, keep the
		// unit inert
		if errIdx == nil && errParent == nil && idx != 0 {
			lu.Index = idx
			lu.Parent = parent
			lu.depStart, lu.depEnd = m[0], m[1]
		}
	}

	if r := strings.Index(lu.Tags, "<@"); r >= 0 {
		rest := lu.Tags[r+2:]
		if end := strings.IndexByte(rest, '>'); end >= 0 {
			lu.Rel = rest[:end]
			lu.HasRel = true
		}
	}

	return lu, nil
}

// tagStart returns the position of the first unescaped '<' of form, -1 if
// there is none.
func tagStart(form string) int {
	for i := 0; i < len(form); i++ {
		switch form[i] {
		case '\\':
			i++
		case '<':
			return i
		}
	}
	return -1
}

// IsInert reports whether the unit carries no dependency marker. Inert units
// take no part in ordering.
func (lu LexicalUnit) IsInert() bool {
	return lu.depEnd == 0
}

// Rewrite returns Form with its dependency marker replaced by idx→parent.
// Everything else is kept byte for byte. Inert units are returned unchanged.
func (lu LexicalUnit) Rewrite(idx, parent int) string {
	if lu.IsInert() {
		return lu.Form
	}

	var b strings.Builder
	b.WriteString(lu.Form[:lu.depStart])
	b.WriteString("<#")
	b.WriteString(strconv.Itoa(idx))
	b.WriteString("→")
	b.WriteString(strconv.Itoa(parent))
	b.WriteByte('>')
	b.WriteString(lu.Form[lu.depEnd:])
	return b.String()
}

// Write returns the stream representation of the unit, word-bound blank
// included, with its dependency marker rewritten to idx→parent.
func (lu LexicalUnit) Write(idx, parent int) string {
	return lu.WBlank + "^" + lu.Rewrite(idx, parent) + "$"
}

// String returns the unit as it was read.
func (lu LexicalUnit) String() string {
	return lu.Write(lu.Index, lu.Parent)
}

// Sentence is a sequence of units sharing one dependency tree (or forest).
type Sentence struct {
	// Id is the position of the sentence in its input, starting at 0.
	Id int `json:"id"`

	Units []LexicalUnit `json:"units"`

	// Blanks[i] is the free text preceding Units[i]
	Blanks []string `json:"-"`

	// Tail is the free text after the last unit
	Tail string `json:"-"`
}

// Lookup returns the position of the unit with dependency index idx.
func (s Sentence) Lookup(idx int) (int, bool) {
	if idx == 0 {
		return 0, false
	}

	for i, lu := range s.Units {
		if !lu.IsInert() && lu.Index == idx {
			return i, true
		}
	}

	return 0, false
}

// Write emits the units in the given positional order. Dependency units are
// renumbered 1..n by their new position and parents follow the new
// numbering. A parent that is no unit of the sentence becomes 0, the
// root. Blanks keep their original slots.
func (s Sentence) Write(order []int) (string, error) {
	if len(order) != len(s.Units) {
		return "", fmt.Errorf("order has %d positions, sentence has %d units", len(order), len(s.Units))
	}

	seen := make([]bool, len(s.Units))
	for _, p := range order {
		if p < 0 || p >= len(s.Units) || seen[p] {
			return "", fmt.Errorf("order is not a permutation: bad position %d", p)
		}
		seen[p] = true
	}

	renumber := map[int]int{}
	n := 0
	for _, p := range order {
		lu := s.Units[p]
		if lu.IsInert() {
			continue
		}
		n++
		renumber[lu.Index] = n
	}

	var b strings.Builder
	for i, p := range order {
		if i < len(s.Blanks) {
			b.WriteString(s.Blanks[i])
		}

		lu := s.Units[p]
		parent := renumber[lu.Parent]
		b.WriteString(lu.Write(renumber[lu.Index], parent))
	}
	b.WriteString(s.Tail)

	return b.String(), nil
}
