package a

import (
	"context"
	"database/sql"
)

func bad(db *sql.DB, tx *sql.Tx) {
	db.QueryRow("SELECT 1") // want "sql QueryRow ignores context - use QueryRowContext"

	db.Exec("DELETE FROM cards") // want "sql Exec ignores context - use ExecContext"

	tx.Query("SELECT word FROM words") // want "sql Query ignores context - use QueryContext"
}

func good(ctx context.Context, db *sql.DB) {
	db.QueryRowContext(ctx, "SELECT 1")
	db.ExecContext(ctx, "DELETE FROM cards")
}

type fake struct{}

func (fake) Exec(string) {}

func notSQL(f fake) {
	f.Exec("anything")
}
