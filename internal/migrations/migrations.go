package migrations

import (
	"cmp"
	"context"
	"embed"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	lockKey           = int64(20251019)
	migrationTableDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    BIGINT PRIMARY KEY,
    name       TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
)

var (
	//go:embed *.sql
	files embed.FS

	filePattern = regexp.MustCompile(`^(\d+)_([a-zA-Z0-9_]+)\.(up|down)\.sql$`)
)

type Migration struct {
	Version int64
	Name    string
	UpSQL   string
	DownSQL string
}

// Up applies every pending migration in version order. Running it again is a no-op.
func Up(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	migrations, err := Load(files)
	if err != nil {
		return 0, fmt.Errorf("Load: %w", err)
	}

	applied := 0
	err = withLock(ctx, pool, func(conn *pgx.Conn) error {
		versions, err := appliedVersions(ctx, conn)
		if err != nil {
			return err
		}

		for _, m := range migrations {
			if versions[m.Version] {
				continue
			}
			if err := applyOne(ctx, conn, m.UpSQL, func(tx pgx.Tx) error {
				_, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", m.Version, m.Name)
				return err
			}); err != nil {
				return fmt.Errorf("up %d_%s: %w", m.Version, m.Name, err)
			}
			applied++
		}

		return nil
	})

	return applied, err
}

// Down rolls back the latest steps migrations, at least one.
func Down(ctx context.Context, pool *pgxpool.Pool, steps int) (int, error) {
	if steps <= 0 {
		steps = 1
	}

	migrations, err := Load(files)
	if err != nil {
		return 0, fmt.Errorf("Load: %w", err)
	}

	byVersion := make(map[int64]Migration, len(migrations))
	for _, m := range migrations {
		byVersion[m.Version] = m
	}

	rolledBack := 0
	err = withLock(ctx, pool, func(conn *pgx.Conn) error {
		versions, err := appliedVersions(ctx, conn)
		if err != nil {
			return err
		}

		desc := make([]int64, 0, len(versions))
		for v := range versions {
			desc = append(desc, v)
		}
		slices.Sort(desc)
		slices.Reverse(desc)

		for _, v := range desc[:min(steps, len(desc))] {
			m, ok := byVersion[v]
			if !ok {
				return fmt.Errorf("migration version[%d] is unknown", v)
			}
			if err := applyOne(ctx, conn, m.DownSQL, func(tx pgx.Tx) error {
				_, err := tx.Exec(ctx, "DELETE FROM schema_migrations WHERE version = $1", m.Version)
				return err
			}); err != nil {
				return fmt.Errorf("down %d_%s: %w", m.Version, m.Name, err)
			}
			rolledBack++
		}

		return nil
	})

	return rolledBack, err
}

func Load(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("fs.Glob: %w", err)
	}
	if len(names) == 0 {
		return nil, errors.New("no migration files found")
	}

	byVersion := make(map[int64]*Migration)
	for _, name := range names {
		base := path.Base(name)

		matches := filePattern.FindStringSubmatch(base)
		if len(matches) != 4 {
			return nil, fmt.Errorf("migration file name[%s] is not valid", base)
		}

		version, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("strconv.ParseInt: %w", err)
		}

		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("fs.ReadFile: %w", err)
		}
		sql := strings.TrimSpace(string(body))
		if sql == "" {
			return nil, fmt.Errorf("migration file[%s] is empty", base)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: matches[2]}
			byVersion[version] = m
		} else if m.Name != matches[2] {
			return nil, fmt.Errorf("migration version[%d] has names %s and %s", version, m.Name, matches[2])
		}

		target := &m.UpSQL
		if matches[3] == "down" {
			target = &m.DownSQL
		}
		if *target != "" {
			return nil, fmt.Errorf("migration file[%s] is duplicated", base)
		}
		*target = sql
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.UpSQL == "" || m.DownSQL == "" {
			return nil, fmt.Errorf("migration %d_%s must have both up and down files", m.Version, m.Name)
		}
		migrations = append(migrations, *m)
	}

	slices.SortFunc(migrations, func(a, b Migration) int {
		return cmp.Compare(a.Version, b.Version)
	})

	return migrations, nil
}

func withLock(ctx context.Context, pool *pgxpool.Pool, fn func(conn *pgx.Conn) error) error {
	if pool == nil {
		return fmt.Errorf("pool is nil")
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("pool.Acquire: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", lockKey); err != nil {
		return fmt.Errorf("pg_advisory_lock: %w", err)
	}
	defer func() {
		_, _ = conn.Exec(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1)", lockKey)
	}()

	if _, err := conn.Exec(ctx, migrationTableDDL); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	return fn(conn.Conn())
}

func appliedVersions(ctx context.Context, conn *pgx.Conn) (map[int64]bool, error) {
	rows, err := conn.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("conn.Query: %w", err)
	}

	versions, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	result := make(map[int64]bool, len(versions))
	for _, v := range versions {
		result[v] = true
	}

	return result, nil
}

func applyOne(ctx context.Context, conn *pgx.Conn, sql string, record func(tx pgx.Tx) error) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("conn.Begin: %w", err)
	}

	if _, err := tx.Exec(ctx, sql); err != nil {
		return errors.Join(err, tx.Rollback(ctx))
	}

	if err := record(tx); err != nil {
		return errors.Join(err, tx.Rollback(ctx))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}
