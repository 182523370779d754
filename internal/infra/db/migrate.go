package db

import (
	"context"
	"embed"
	"sort"

	"hotel-booking-service/internal/pkg/errs"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies the embedded migrations in filename order. Every
// statement is idempotent, so re-running on an existing database is safe.
func Migrate(ctx context.Context, conn DBTX) error {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return errs.Wrap(err, "failed to read migrations directory")
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return errs.Wrap(err, "failed to read migration "+name)
		}
		if _, err := conn.Exec(ctx, string(sql)); err != nil {
			return errs.Wrap(err, "failed to apply migration "+name)
		}
	}

	return nil
}
