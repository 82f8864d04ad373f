package score

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mr-martian/ap-ud-linearize/rule"
	sent "github.com/mr-martian/ap-ud-linearize/sentence"
)

func mustSentence(t *testing.T, forms ...string) sent.Sentence {
	t.Helper()

	var s sent.Sentence
	for _, f := range forms {
		lu, err := sent.Parse("", f)
		require.NoError(t, err)
		s.Units = append(s.Units, lu)
	}

	return s
}

func mustRules(t *testing.T, xml string) rule.Set {
	t.Helper()
	set, err := rule.Load(strings.NewReader("<rules>" + xml + "</rules>"))
	require.NoError(t, err)
	return set
}

const detNoun = `<pair weight="1.0" order="LR"><n tags="det"/><n tags="n" parent="yes"/></pair>`

func TestDeterminerBeforeNoun(t *testing.T) {
	s := mustSentence(t, "el<det><#1→2>", "gato<n><#2→0>")
	m := NewScorer(mustRules(t, detNoun)).Score(s)

	assert.Equal(t, Matrix{{I: 1, J: 2}: 1.0}, m)
	_, ok := m[Pair{I: 2, J: 1}]
	assert.False(t, ok)
}

func TestOppositeRulesCancel(t *testing.T) {
	s := mustSentence(t, "el<det><#1→2>", "gato<n><#2→0>")
	rules := mustRules(t, detNoun+strings.Replace(detNoun, `order="LR"`, `order="RL"`, 1))
	m := NewScorer(rules).Score(s)

	v, ok := m[Pair{I: 1, J: 2}]
	require.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestDirectionAntisymmetry(t *testing.T) {
	s := mustSentence(t,
		"el<det><#1→3>",
		"gran<adj><#2→3>",
		"gato<n><#3→0>",
		"negro<adj><#4→3>",
	)

	pairs := []string{
		`<pair weight="0.7"><n tags="adj"/><n tags="n" parent="yes"/></pair>`,
		`<pair weight="2"><n tags="n" parent="yes"/><n/></pair>`,
		`<pair weight="1.5"><n/><n tags="adj"/></pair>`,
	}

	for _, p := range pairs {
		lr := NewScorer(mustRules(t, p)).Score(s)
		rl := NewScorer(mustRules(t, strings.Replace(p, "<pair ", `<pair order="RL" `, 1))).Score(s)

		require.NotEmpty(t, lr, p)
		require.Len(t, rl, len(lr), p)
		for pair, w := range lr {
			assert.Equal(t, -w, rl[pair], p)
		}
	}
}

func TestWildcardSiblings(t *testing.T) {
	s := mustSentence(t,
		"a<x><#1→4>",
		"b<x><#2→4>",
		"c<x><#3→4>",
		"d<x><#4→0>",
	)
	m := NewScorer(mustRules(t, `<pair><n/><n/></pair>`)).Score(s)

	// every ordered pair of the three siblings
	assert.Len(t, m, 6)
	for _, i := range []int{1, 2, 3} {
		for _, j := range []int{1, 2, 3} {
			if i == j {
				continue
			}
			assert.Equal(t, 1.0, m.Get(i, j))
		}
	}
}

func TestRootsAreSiblings(t *testing.T) {
	// forest: two roots share parent 0 and are scored as siblings
	s := mustSentence(t, "a<n><#1→0>", "b<n><#2→0>")
	m := NewScorer(mustRules(t, `<pair><n/><n/></pair>`)).Score(s)

	assert.Equal(t, Matrix{{I: 1, J: 2}: 1.0, {I: 2, J: 1}: 1.0}, m)
}

func TestInertUnitsNeverScored(t *testing.T) {
	s := mustSentence(t,
		"el<det><#1→2>",
		",<cm>",
		"gato<n><#2→0>",
		".<sent>",
	)
	m := NewScorer(mustRules(t, `<pair><n/><n/></pair><pair><n parent="yes"/><n/></pair><pair><n/><n parent="yes"/></pair>`)).Score(s)

	require.NotEmpty(t, m)
	for p := range m {
		assert.NotZero(t, p.I)
		assert.NotZero(t, p.J)
	}
}

func TestIndexZeroMarkerNeverScored(t *testing.T) {
	s := mustSentence(t, "x<n><#0→0>", "y<n><#2→0>", "z<n><#3→0>")
	m := NewScorer(mustRules(t, `<pair><n/><n/></pair>`)).Score(s)

	assert.Equal(t, Matrix{{I: 2, J: 3}: 1, {I: 3, J: 2}: 1}, m)
}

func TestAccumulation(t *testing.T) {
	s := mustSentence(t, "el<det><@det><#1→2>", "gato<n><#2→0>")
	rules := mustRules(t, detNoun+
		`<pair weight="0.5"><n rel="det"/><n parent="yes"/></pair>`+
		`<pair weight="0.25" order="RL"><n lemma="el"/><n lemma="gato" parent="yes"/></pair>`)

	m := NewScorer(rules).Score(s)
	assert.InDelta(t, 1.25, m.Get(1, 2), 1e-9)
	assert.InDelta(t, 1.25, m.Net(1, 2), 1e-9)
	assert.InDelta(t, -1.25, m.Net(2, 1), 1e-9)
}

func TestUsesDependencyIndices(t *testing.T) {
	// positions 0, 1 carry indices 7, 3
	s := mustSentence(t, "el<det><#7→3>", "gato<n><#3→0>")
	m := NewScorer(mustRules(t, detNoun)).Score(s)

	assert.Equal(t, Matrix{{I: 7, J: 3}: 1.0}, m)
}

func TestDeterminism(t *testing.T) {
	s := mustSentence(t,
		"el<det><#1→3>",
		"gran<adj><#2→3>",
		"gato<n><@nsubj><#3→4>",
		"dormir<vblex><#4→0>",
	)
	sc := NewScorer(mustRules(t, detNoun+`<pair><n/><n/></pair><pair order="RL"><n parent="yes"/><n/></pair>`))

	assert.Equal(t, sc.Score(s), sc.Score(s))
}

func TestPairsSorted(t *testing.T) {
	m := Matrix{{I: 2, J: 1}: 1, {I: 1, J: 3}: 1, {I: 1, J: 2}: 1}
	assert.Equal(t, []Pair{{1, 2}, {1, 3}, {2, 1}}, m.Pairs())
}

func TestMatrixJSON(t *testing.T) {
	m := Matrix{{I: 2, J: 1}: -1, {I: 1, J: 2}: 0.5}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"i":1,"j":2,"score":0.5},{"i":2,"j":1,"score":-1}]`, string(data))

	var back Matrix
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m, back)
}

func TestRunnerKeepsInputOrder(t *testing.T) {
	var sentences []sent.Sentence
	for i := range 20 {
		s := mustSentence(t, "el<det><#1→2>", "gato<n><#2→0>")
		s.Id = i
		sentences = append(sentences, s)
	}

	var scored atomic.Int32
	r := NewRunner(NewScorer(mustRules(t, detNoun)), 4, zaptest.NewLogger(t))
	r.OnScored = func(int) { scored.Add(1) }

	var ids []int
	err := r.Run(context.Background(), sentences, func(res Result) error {
		ids = append(ids, res.Sentence.Id)
		assert.Equal(t, 1.0, res.Matrix.Get(1, 2))
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, int32(20), scored.Load())
	for i, id := range ids {
		assert.Equal(t, i, id)
	}
}

func TestRunnerCallbackError(t *testing.T) {
	sentences := []sent.Sentence{mustSentence(t, "a<n><#1→0>"), mustSentence(t, "b<n><#1→0>")}
	stop := errors.New("stop")

	calls := 0
	err := NewRunner(NewScorer(nil), 0, nil).Run(context.Background(), sentences, func(Result) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRunner(NewScorer(nil), 1, nil).Run(ctx, []sent.Sentence{mustSentence(t, "a<n><#1→0>")}, func(Result) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
