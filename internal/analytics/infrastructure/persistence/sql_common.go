// Package persistence stores analytics ledgers in the SQL database shared
// with the task store, or in a document store.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imsachin001/chronosync/internal/shared/infrastructure/database"
)

type sqlRepo struct {
	conn database.Connection
}

func (r sqlRepo) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func encodeJSON(column string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", column, err)
	}
	return string(b), nil
}

func decodeJSON(column, raw string, v any) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", column, err)
	}
	return nil
}
