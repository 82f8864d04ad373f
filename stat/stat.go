package stat

import (
	"github.com/mr-martian/ap-ud-linearize/score"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences int
	NumUnits     int

	// NumInert is the number of units without dependency marker
	NumInert int

	// NumPairs is the number of scored pairs, NumZero of them with a null
	// score (rules cancelling each other)
	NumPairs int
	NumZero  int

	UnitsPerSentenceMean int
	UnitsPerSentenceDis  map[int]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{UnitsPerSentenceDis: map[int]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds a scored sentence to the stats.
func (h *Handler) Aggregate(res score.Result) {
	if h.stats.UnitsPerSentenceDis == nil {
		h.stats.UnitsPerSentenceDis = map[int]int{}
	}

	h.stats.NumSentences++
	h.stats.NumUnits += len(res.Sentence.Units)
	h.stats.UnitsPerSentenceDis[len(res.Sentence.Units)]++

	for _, lu := range res.Sentence.Units {
		if lu.IsInert() {
			h.stats.NumInert++
		}
	}

	h.stats.NumPairs += len(res.Matrix)
	for _, v := range res.Matrix {
		if v == 0 {
			h.stats.NumZero++
		}
	}

	h.stats.UnitsPerSentenceMean = h.stats.NumUnits / h.stats.NumSentences
}
