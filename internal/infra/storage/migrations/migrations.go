package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

var (
	// ErrReadMigrations возвращается, если не удалось прочитать встроенные файлы миграций
	ErrReadMigrations = errors.New("migrations: failed to read migration files")

	// ErrApplyMigration возвращается при ошибке применения миграции
	ErrApplyMigration = errors.New("migrations: failed to apply migration")
)

// Executor минимальный набор методов *sql.DB, нужный для миграций
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Names возвращает имена встроенных миграций в порядке применения
func Names() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMigrations, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	return names, nil
}

// Up применяет все еще не примененные миграции.
// Примененные версии хранятся в таблице schema_migrations.
// Возвращает список примененных в этом запуске миграций
func Up(ctx context.Context, db Executor) ([]string, error) {
	names, err := Names()
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`); err != nil {
		return nil, fmt.Errorf("%w: create schema_migrations: %v", ErrApplyMigration, err)
	}

	applied := make([]string, 0, len(names))
	for _, name := range names {
		var exists bool
		err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, name).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("%w: check %s: %v", ErrApplyMigration, name, err)
		}
		if exists {
			continue
		}

		body, err := files.ReadFile(name)
		if err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrReadMigrations, name, err)
		}

		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrApplyMigration, name, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
			return applied, fmt.Errorf("%w: record %s: %v", ErrApplyMigration, name, err)
		}

		applied = append(applied, name)
	}

	return applied, nil
}
