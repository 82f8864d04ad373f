package query

import (
	"bytes"
	"strings"
	"testing"

	"github.com/c-bata/go-prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr-martian/ap-ud-linearize/render"
	"github.com/mr-martian/ap-ud-linearize/rule"
	"github.com/mr-martian/ap-ud-linearize/score"
)

func newHandler(t *testing.T, buf *bytes.Buffer) *Handler {
	t.Helper()

	set, err := rule.Load(strings.NewReader(`<rules>
  <pair><n tags="det"/><n tags="n" parent="yes"/></pair>
  <pair><n lemma="gato" parent="yes"/><n lemma="negro"/></pair>
  <pair><n lemma="gata" parent="yes"/><n/></pair>
</rules>`))
	require.NoError(t, err)

	r := render.NewRenderer()
	r.W = buf
	r.HasColor = false
	return NewHandler(score.NewScorer(set), r)
}

func TestEval(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(t, &buf)

	require.NoError(t, h.Eval("^el<det><#1→2>$ ^gato<n><#2→0>$"))
	assert.Contains(t, buf.String(), "✍  0 el gato")
	assert.Contains(t, buf.String(), "+1.000  el → gato")
}

func TestEvalRules(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(t, &buf)

	require.NoError(t, h.Eval(" /rules "))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestEvalErrors(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(t, &buf)

	assert.Error(t, h.Eval("   "))
	assert.Error(t, h.Eval("^gato$"))
	assert.Error(t, h.Eval("^gato<n>"))
}

func TestSuggest(t *testing.T) {
	h := newHandler(t, &bytes.Buffer{})

	assert.Equal(t, []string{"gata", "gato", "negro"}, h.lemmas)
	assert.Equal(t, []string{"^gata", "^gato"}, texts(h.suggest("^ga")))
	assert.Equal(t, []string{"/rules"}, texts(h.suggest("/r")))
	assert.Equal(t, []string{"quit"}, texts(h.suggest("q")))
	assert.Empty(t, h.suggest(""))
}

func texts(s []prompt.Suggest) []string {
	out := []string{}
	for _, sg := range s {
		out = append(out, sg.Text)
	}
	return out
}
