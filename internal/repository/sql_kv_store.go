// internal/repository/sql_kv_store.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/gurkanbulca/teamflow/internal/database"
)

// SQLKVStore stores values in the kv_entries table. Queries are built with
// ent's dialect-aware builder so the same code serves Postgres and SQLite.
type SQLKVStore struct {
	db      *sqlx.DB
	dialect string
	now     func() time.Time
}

// NewSQLKVStore wraps an open database. The table must already exist
// (see database.Migrate).
func NewSQLKVStore(db *sqlx.DB) *SQLKVStore {
	return &SQLKVStore{
		db:      db,
		dialect: db.DriverName(),
		now:     time.Now,
	}
}

func (s *SQLKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := entsql.Dialect(s.dialect).
		Select("value").
		From(entsql.Table(database.KVEntriesTableName)).
		Where(entsql.EQ("key", key)).
		Query()

	var value []byte
	if err := s.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLKVStore) Set(ctx context.Context, key string, value []byte) error {
	query, args := entsql.Dialect(s.dialect).
		Insert(database.KVEntriesTableName).
		Columns("key", "value", "updated_at").
		Values(key, value, s.now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLKVStore) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(s.dialect).
		Delete(database.KVEntriesTableName).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
