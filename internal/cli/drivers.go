package cli

// Database drivers registered for the sqlite and postgres connection
// drivers. Kept here so pkg/catalog stays driver-agnostic.
import (
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)
