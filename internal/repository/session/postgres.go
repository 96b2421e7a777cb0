package session

import (
	"context"
	"fmt"

	"courier-agent/internal/entities"
	"courier-agent/internal/repository"
	sq "github.com/Masterminds/squirrel"
)

var postgresQB = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresStore хранит сессии парка устройств в общей базе, строки различаются по device_id.
type PostgresStore struct {
	querier   Querier
	trManager TxManager
	deviceID  string
}

func NewPostgresStore(querier Querier, trManager TxManager, deviceID string) *PostgresStore {
	return &PostgresStore{
		querier:   querier,
		trManager: trManager,
		deviceID:  deviceID,
	}
}

func (s *PostgresStore) Load(ctx context.Context) (entities.SessionSnapshot, error) {
	var snapshot entities.SessionSnapshot

	// оба ключа читаем из одного снимка, чтобы не поймать курьера от одной сессии, а заказ от другой
	err := s.trManager.ReadSnapshot(ctx, func(ctx context.Context) error {
		records, err := s.loadRecords(ctx)
		if err != nil {
			return err
		}

		snapshot, err = toSnapshot(records)
		return err
	})
	if err != nil {
		return entities.SessionSnapshot{}, err
	}

	return snapshot, nil
}

func (s *PostgresStore) loadRecords(ctx context.Context) (map[string]string, error) {
	query, args, err := postgresQB.
		Select("key", "value").
		From(tableSessionRecords).
		Where(sq.Eq{"device_id": s.deviceID, "key": recordKeys}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected session postgres load error: %w", err)
	}

	rows, err := s.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPgError("load", err)
	}
	defer rows.Close()

	records := make(map[string]string, len(recordKeys))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("unexpected session postgres load error: %w", err)
		}
		records[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, wrapPgError("load", err)
	}

	return records, nil
}

func (s *PostgresStore) SaveCourier(ctx context.Context, courier entities.Courier) error {
	value, err := encodeCourier(courier)
	if err != nil {
		return err
	}
	return s.put(ctx, keyCourier, value)
}

func (s *PostgresStore) ClearCourier(ctx context.Context) error {
	return s.delete(ctx, keyCourier)
}

func (s *PostgresStore) SaveOrderID(ctx context.Context, orderID string) error {
	return s.put(ctx, keyOrderID, orderID)
}

func (s *PostgresStore) ClearOrderID(ctx context.Context) error {
	return s.delete(ctx, keyOrderID)
}

func (s *PostgresStore) put(ctx context.Context, key, value string) error {
	query, args, err := postgresQB.
		Insert(tableSessionRecords).
		Columns("device_id", "key", "value", "updated_at").
		Values(s.deviceID, key, value, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (device_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected session postgres put error: %w", err)
	}

	if _, err := s.querier.Exec(ctx, query, args...); err != nil {
		return wrapPgError("put "+key, err)
	}
	return nil
}

func (s *PostgresStore) delete(ctx context.Context, key string) error {
	query, args, err := postgresQB.
		Delete(tableSessionRecords).
		Where(sq.Eq{"device_id": s.deviceID, "key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected session postgres delete error: %w", err)
	}

	if _, err := s.querier.Exec(ctx, query, args...); err != nil {
		return wrapPgError("delete "+key, err)
	}
	return nil
}

func wrapPgError(op string, err error) error {
	if repository.IsPgErrorWithCode(err, repository.PgErrUndefinedTable) {
		return fmt.Errorf("session postgres %s: %w", op, ErrSchemaNotMigrated)
	}
	return fmt.Errorf("unexpected session postgres %s error: %w", op, err)
}
