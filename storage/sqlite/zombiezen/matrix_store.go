package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/mr-martian/ap-ud-linearize/score"
	"github.com/mr-martian/ap-ud-linearize/storage"
)

// MatrixStore keeps the score matrices of a run, for a linearizer running
// out of process.
type MatrixStore struct {
	pool *sqlitex.Pool
}

var _ storage.MatrixRepository = (*MatrixStore)(nil)

func NewMatrixStore(pool *sqlitex.Pool) *MatrixStore {
	return &MatrixStore{pool: pool}
}

func (h *MatrixStore) Write(res score.Result) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	units, err := json.Marshal(res.Sentence.Units)
	if err != nil {
		return err
	}

	id := res.Sentence.Id
	err = sqlitex.Execute(conn, "DELETE FROM scores WHERE sentence_id = ?", &sqlitex.ExecOptions{
		Args: []any{id},
	})
	if err != nil {
		return fmt.Errorf("failed to delete scores: %w", err)
	}

	err = sqlitex.Execute(conn, "INSERT OR REPLACE INTO sentences (id, units) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []any{id, string(units)},
	})
	if err != nil {
		return fmt.Errorf("failed to insert sentence: %w", err)
	}

	for _, p := range res.Matrix.Pairs() {
		err = sqlitex.Execute(conn, "INSERT INTO scores (sentence_id, i, j, score) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []any{id, p.I, p.J, res.Matrix[p]},
		})
		if err != nil {
			return fmt.Errorf("failed to insert score: %w", err)
		}
	}

	return nil
}

func (h *MatrixStore) Read(sentenceId int) (score.Matrix, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	found := false
	err = sqlitex.Execute(conn, "SELECT 1 FROM sentences WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{sentenceId},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("sentence not found: %d", sentenceId)
	}

	m := score.Matrix{}
	err = sqlitex.Execute(conn, "SELECT i, j, score FROM scores WHERE sentence_id = ?", &sqlitex.ExecOptions{
		Args: []any{sentenceId},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			m[score.Pair{I: stmt.ColumnInt(0), J: stmt.ColumnInt(1)}] = stmt.ColumnFloat(2)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (h *MatrixStore) Ids() ([]int, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var ids []int
	err = sqlitex.Execute(conn, "SELECT id FROM sentences ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			ids = append(ids, stmt.ColumnInt(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}
