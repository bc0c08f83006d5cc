package config

import (
	"os"

	"github.com/strrl/daylog/pkg/levels"
)

// DefaultDB is the DuckDB file used when none is specified.
const DefaultDB = "daylog.duckdb"

// ResolveRoot returns the log directory, checking the explicit value first,
// then the DAYLOG_PATH environment variable. The result may be empty.
func ResolveRoot(root string) string {
	if root != "" {
		return root
	}
	return os.Getenv("DAYLOG_PATH")
}

// ResolveLevels returns the level set, checking the explicit value first,
// then DAYLOG_LEVELS, and finally levels.Default().
func ResolveLevels(csv string) (levels.Set, error) {
	if csv == "" {
		csv = os.Getenv("DAYLOG_LEVELS")
	}
	if csv == "" {
		return levels.Default(), nil
	}
	return levels.Parse(csv)
}

// ResolveDB returns the database path, checking the explicit value first,
// then DAYLOG_DB, and finally DefaultDB.
func ResolveDB(db string) string {
	if db != "" {
		return db
	}
	if env := os.Getenv("DAYLOG_DB"); env != "" {
		return env
	}
	return DefaultDB
}
