package zombiezen

import (
	"fmt"

	"zombiezen.com/go/sqlite/sqlitex"
)

// scoreDbConns is the size of the pool. Matrices are written from the
// ordered result callback, one sentence at a time, so a second connection
// only serves readers.
const scoreDbConns = 2

// NewPool opens the score database at dbPath, creating the file if needed.
// The sqlitex default open flags put it in WAL mode.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool("file:"+dbPath, sqlitex.PoolOptions{
		PoolSize: scoreDbConns,
	})
	if err != nil {
		return nil, fmt.Errorf("score database %s: %w", dbPath, err)
	}
	return pool, nil
}
