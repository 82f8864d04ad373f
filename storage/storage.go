package storage

import (
	"github.com/mr-martian/ap-ud-linearize/rule"
	"github.com/mr-martian/ap-ud-linearize/score"
)

// RuleReader defines read operations for rule storage
type RuleReader interface {
	// ReadAll returns the compiled rules of the storage
	ReadAll() (rule.Set, error)

	// Names returns the rule files, in the order ReadAll reads them
	Names() ([]string, error)
}

// MatrixWriter defines write operations for score storage
type MatrixWriter interface {
	// Write persists the sentence and its score matrix, replacing a previous
	// result for the same sentence id.
	Write(res score.Result) error
}

// MatrixReader defines read operations for score storage
type MatrixReader interface {
	// Read returns the score matrix of a sentence
	Read(sentenceId int) (score.Matrix, error)

	// Ids returns the ids of the stored sentences, sorted
	Ids() ([]int, error)
}

// MatrixRepository combines read and write operations
type MatrixRepository interface {
	MatrixReader
	MatrixWriter
}
