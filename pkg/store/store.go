package store

import (
	"context"
	"time"
)

// Entry is one indexed log entry.
type Entry struct {
	ID        int64
	App       string
	Date      time.Time
	Seq       int
	Level     string
	Header    string
	Stack     string
	Channel   string
	Message   string
	PatternID string
}

// Pattern is a message template discovered for one application day.
type Pattern struct {
	PatternID  string
	App        string
	Date       time.Time
	RawPattern string
	Count      int
}

// LevelCount holds the number of entries indexed under a level.
type LevelCount struct {
	Level string
	Count int
}

// QueryOpts specifies filters for querying entries. Zero values match
// everything.
type QueryOpts struct {
	App       string
	Date      time.Time
	Level     string
	PatternID string
	Limit     int
}

// Store persists parsed entries and their templates.
type Store interface {
	// Init creates tables if they don't exist.
	Init(ctx context.Context) error
	// ReplaceDay drops everything indexed for app on date and stores the
	// given entries and patterns instead.
	ReplaceDay(ctx context.Context, app string, date time.Time, entries []Entry, patterns []Pattern) error
	// QueryEntries returns entries matching opts in file order.
	QueryEntries(ctx context.Context, opts QueryOpts) ([]Entry, error)
	// LevelCounts returns entry counts per level for app, optionally
	// restricted to one date.
	LevelCounts(ctx context.Context, app string, date time.Time) ([]LevelCount, error)
	// Patterns returns the templates of app on date, most frequent first.
	Patterns(ctx context.Context, app string, date time.Time) ([]Pattern, error)
	// Close releases resources.
	Close() error
}
