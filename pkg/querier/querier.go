package querier

import (
	"context"
	"time"

	"github.com/strrl/daylog/pkg/store"
)

// Querier provides a high-level interface for querying indexed entries.
type Querier struct {
	store store.Store
}

// NewQuerier creates a new Querier backed by the given store.
func NewQuerier(s store.Store) *Querier {
	return &Querier{store: s}
}

// ByLevel returns the entries of app on date indexed under level.
func (q *Querier) ByLevel(ctx context.Context, app string, date time.Time, level string) ([]store.Entry, error) {
	return q.store.QueryEntries(ctx, store.QueryOpts{App: app, Date: date, Level: level})
}

// Summary returns per-level counts for app. A zero date covers every
// indexed day.
func (q *Querier) Summary(ctx context.Context, app string, date time.Time) ([]store.LevelCount, error) {
	return q.store.LevelCounts(ctx, app, date)
}

// Patterns returns the templates discovered for app on date.
func (q *Querier) Patterns(ctx context.Context, app string, date time.Time) ([]store.Pattern, error) {
	return q.store.Patterns(ctx, app, date)
}

// Search returns entries matching the given query options.
func (q *Querier) Search(ctx context.Context, opts store.QueryOpts) ([]store.Entry, error) {
	return q.store.QueryEntries(ctx, opts)
}
