// Package migrations embeds the SQL migration files so they can be applied
// by the goose programmatic API at server startup and in tests.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// FS holds all *.sql migration files embedded at compile time.
// Pass this to goose.UpFS / goose.DownToFS instead of relying on
// a filesystem path at runtime.
//
//go:embed *.sql
var FS embed.FS

// Apply brings the database schema up to date using the embedded migrations.
// It is safe to call on every startup; goose skips already-applied versions.
func Apply(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrations.Apply: set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations.Apply: %w", err)
	}
	return nil
}
