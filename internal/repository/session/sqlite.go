package session

import (
	"context"
	"database/sql"
	"fmt"

	"courier-agent/internal/entities"
	sq "github.com/Masterminds/squirrel"
)

const tableSessionRecords = "session_records"

var sqliteQB = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// SQLiteStore хранит сессию в локальном файле устройства.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (entities.SessionSnapshot, error) {
	query, args, err := sqliteQB.
		Select("key", "value").
		From(tableSessionRecords).
		Where(sq.Eq{"key": recordKeys}).
		ToSql()
	if err != nil {
		return entities.SessionSnapshot{}, fmt.Errorf("unexpected session sqlite load error: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return entities.SessionSnapshot{}, fmt.Errorf("unexpected session sqlite load error: %w", err)
	}
	defer rows.Close()

	records := make(map[string]string, len(recordKeys))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return entities.SessionSnapshot{}, fmt.Errorf("unexpected session sqlite load error: %w", err)
		}
		records[key] = value
	}

	if err := rows.Err(); err != nil {
		return entities.SessionSnapshot{}, fmt.Errorf("unexpected session sqlite load error: %w", err)
	}

	return toSnapshot(records)
}

func (s *SQLiteStore) SaveCourier(ctx context.Context, courier entities.Courier) error {
	value, err := encodeCourier(courier)
	if err != nil {
		return err
	}
	return s.put(ctx, keyCourier, value)
}

func (s *SQLiteStore) ClearCourier(ctx context.Context) error {
	return s.delete(ctx, keyCourier)
}

func (s *SQLiteStore) SaveOrderID(ctx context.Context, orderID string) error {
	return s.put(ctx, keyOrderID, orderID)
}

func (s *SQLiteStore) ClearOrderID(ctx context.Context) error {
	return s.delete(ctx, keyOrderID)
}

// put - upsert одним выражением, читатель видит либо старое значение, либо новое.
func (s *SQLiteStore) put(ctx context.Context, key, value string) error {
	query, args, err := sqliteQB.
		Insert(tableSessionRecords).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected session sqlite put error: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected session sqlite put %s error: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) delete(ctx context.Context, key string) error {
	query, args, err := sqliteQB.
		Delete(tableSessionRecords).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected session sqlite delete error: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected session sqlite delete %s error: %w", key, err)
	}
	return nil
}
