package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr-martian/ap-ud-linearize/rule"
	"github.com/mr-martian/ap-ud-linearize/score"
	sent "github.com/mr-martian/ap-ud-linearize/sentence"
	"github.com/mr-martian/ap-ud-linearize/stat"
)

func result(t *testing.T) score.Result {
	t.Helper()

	var s sent.Sentence
	for _, f := range []string{"el<det><#1→2>", "gato<n><#2→0>", ".<sent>"} {
		lu, err := sent.Parse("", f)
		require.NoError(t, err)
		s.Units = append(s.Units, lu)
	}

	return score.Result{
		Sentence: s,
		Matrix:   score.Matrix{{I: 1, J: 2}: 1.5, {I: 2, J: 1}: 0.5},
	}
}

func newTestRenderer(buf *bytes.Buffer) *Renderer {
	r := NewRenderer()
	r.W = buf
	r.HasColor = false
	return r
}

func TestMatrixPairs(t *testing.T) {
	var buf bytes.Buffer
	newTestRenderer(&buf).Matrix(result(t))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "✍  0 el gato .", lines[0])
	assert.Contains(t, lines[1], "+1.500  el → gato")
	assert.Contains(t, lines[2], "+0.500  gato → el")
}

func TestMatrixNet(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.Format = "net"
	r.HasPrefix = false
	r.Matrix(result(t))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "+1.000  el ~ gato")
}

func TestMatrixTree(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.Format = "tree"
	r.HasPrefix = false
	r.Matrix(result(t))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], `"."`)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[2]), "-"))
}

func TestColorOff(t *testing.T) {
	var buf bytes.Buffer
	newTestRenderer(&buf).Matrix(result(t))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestColorOn(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.HasColor = true
	r.Matrix(result(t))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestRules(t *testing.T) {
	set, err := rule.Load(strings.NewReader(`<rules><pair order="RL" weight="2"><n tags="det.*"/><n lemma="gato" parent="yes"/></pair></rules>`))
	require.NoError(t, err)

	var buf bytes.Buffer
	newTestRenderer(&buf).Rules(set)

	out := buf.String()
	assert.Contains(t, out, "RL")
	assert.Contains(t, out, "+2.000")
	assert.Contains(t, out, "second-is-parent")
	assert.Contains(t, out, "tags=det.* | lemma=gato")
}

func TestStats(t *testing.T) {
	h := stat.NewHandler()
	h.Aggregate(result(t))

	var buf bytes.Buffer
	newTestRenderer(&buf).Stats(h.Get())
	assert.Contains(t, buf.String(), "Num sentences 1, num units 3 (1 inert)")
	assert.Contains(t, buf.String(), "Num scored pairs 2 (0 cancelled)")
}

func TestNextFormat(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, "pairs", r.Format)

	r.NextFormat()
	assert.Equal(t, "net", r.Format)
	r.NextFormat()
	assert.Equal(t, "tree", r.Format)
	r.NextFormat()
	assert.Equal(t, "pairs", r.Format)

	r.Format = "unknown"
	r.NextFormat()
	assert.Equal(t, "pairs", r.Format)
}
