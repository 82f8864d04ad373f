package zombiezen

import (
	"context"
	"embed"
	"fmt"

	"zombiezen.com/go/sqlite/sqlitex"
)

// ScoresSchema creates the sentences and scores tables.
const ScoresSchema = "scores.sql"

//go:embed sql/*.sql
var sqlFiles embed.FS

// CreateSchema runs the embedded script name (f.ex. ScoresSchema). Scripts
// only use CREATE ... IF NOT EXISTS, running one twice is a no-op.
func CreateSchema(ctx context.Context, pool *sqlitex.Pool, name string) error {
	script, err := sqlFiles.ReadFile("sql/" + name)
	if err != nil {
		return fmt.Errorf("unknown schema %s: %w", name, err)
	}

	conn, err := pool.Take(ctx)
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
		return fmt.Errorf("schema %s: %w", name, err)
	}

	return nil
}
