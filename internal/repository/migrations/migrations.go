package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedded embed.FS

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Up накатывает все миграции для указанного диалекта и возвращает номер версии схемы.
func Up(ctx context.Context, db *sql.DB, dialect Dialect) (int64, error) {
	gooseDialect, err := toGooseDialect(dialect)
	if err != nil {
		return 0, err
	}

	fsys, err := fs.Sub(embedded, string(dialect))
	if err != nil {
		return 0, fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("migrations provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return 0, fmt.Errorf("migrations up: %w", err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations version: %w", err)
	}

	return version, nil
}

func toGooseDialect(dialect Dialect) (goose.Dialect, error) {
	switch dialect {
	case DialectSQLite:
		return goose.DialectSQLite3, nil
	case DialectPostgres:
		return goose.DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported migrations dialect %q", dialect)
	}
}
