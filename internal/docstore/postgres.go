package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/marsdencc/clubdata/internal/db"
)

// PGStore keeps documents in the club_documents table, one JSONB value per
// key. Statements are prepared at connect time by the db package.
type PGStore struct {
	pool *db.Pool
}

// NewPGStore returns a store backed by the given pool.
func NewPGStore(pool *db.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, "doc_get", key).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get document %q: %w", key, err)
	}
	return doc, true, nil
}

func (s *PGStore) Put(ctx context.Context, key string, doc []byte) error {
	if _, err := s.pool.Exec(ctx, "doc_put", key, doc); err != nil {
		return fmt.Errorf("put document %q: %w", key, err)
	}
	return nil
}
