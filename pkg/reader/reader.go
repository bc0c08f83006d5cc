package reader

import (
	"context"
	"log/slog"
	"time"

	"github.com/strrl/daylog/pkg/ingestor"
	"github.com/strrl/daylog/pkg/levels"
	"github.com/strrl/daylog/pkg/locator"
	"github.com/strrl/daylog/pkg/parser"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Error kinds surfaced by the Reader.
var (
	ErrInvalidConfiguration = locator.ErrInvalidConfiguration
	ErrNotConfigured        = locator.ErrNotConfigured
	ErrInvalidArgument      = locator.ErrInvalidArgument
	ErrNotFound             = locator.ErrNotFound
	ErrDeletionFailed       = locator.ErrDeletionFailed
	ErrInvalidLevel         = parser.ErrInvalidLevel
)

var tracer = otel.Tracer("github.com/strrl/daylog/pkg/reader")

// Reader lists, parses and deletes per-day application log files.
type Reader struct {
	locator *locator.Locator
	levels  levels.Provider
	source  ingestor.Source
}

// Option configures a Reader.
type Option func(*Reader)

// WithLevels sets the level vocabulary. The default is levels.Default().
func WithLevels(p levels.Provider) Option {
	return func(r *Reader) { r.levels = p }
}

// WithSource sets how file content is read.
func WithSource(s ingestor.Source) Option {
	return func(r *Reader) { r.source = s }
}

// New creates a Reader over loc.
func New(loc *locator.Locator, opts ...Option) *Reader {
	r := &Reader{
		locator: loc,
		levels:  levels.Static(nil),
		source:  &ingestor.FileSource{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Locator returns the underlying locator.
func (r *Reader) Locator() *locator.Locator {
	return r.locator
}

// ListLogFiles returns the log files of app.
func (r *Reader) ListLogFiles(ctx context.Context, app string) (files []string, err error) {
	_, span := tracer.Start(ctx, "reader.ListLogFiles", trace.WithAttributes(
		attribute.String("daylog.app", app),
	))
	defer func() { endSpan(span, err) }()

	files, err = r.locator.ListFiles(app)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("daylog.files", len(files)))
	slog.Debug("listed log files", "app", app, "count", len(files))
	return files, nil
}

// Entries parses the log file of app on date. filter is levels.All, "" (same
// as levels.All) or a single level name. An invalid filter is rejected before
// the filesystem is touched.
func (r *Reader) Entries(ctx context.Context, app string, date time.Time, filter string) (entries []parser.Entry, err error) {
	if filter == "" {
		filter = levels.All
	}
	ctx, span := tracer.Start(ctx, "reader.Entries", trace.WithAttributes(
		attribute.String("daylog.app", app),
		attribute.String("daylog.date", date.Format(locator.DateLayout)),
		attribute.String("daylog.level", filter),
	))
	defer func() { endSpan(span, err) }()

	set := r.levels.Levels()
	if err := parser.ValidateFilter(filter, set); err != nil {
		return nil, err
	}

	path, err := r.locator.FindFile(app, date)
	if err != nil {
		return nil, err
	}
	content, err := r.source.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	entries, err = parser.Parse(content, date, filter, set)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("daylog.entries", len(entries)))
	slog.Debug("parsed log file", "path", path, "level", filter, "entries", len(entries))
	return entries, nil
}

// DeleteLog removes the log file of app on date.
func (r *Reader) DeleteLog(ctx context.Context, app string, date time.Time) (err error) {
	_, span := tracer.Start(ctx, "reader.DeleteLog", trace.WithAttributes(
		attribute.String("daylog.app", app),
		attribute.String("daylog.date", date.Format(locator.DateLayout)),
	))
	defer func() { endSpan(span, err) }()

	if err := r.locator.DeleteFile(app, date); err != nil {
		return err
	}
	slog.Info("deleted log file", "app", app, "date", date.Format(locator.DateLayout))
	return nil
}

// AvailableLevels returns the level vocabulary in use.
func (r *Reader) AvailableLevels() levels.Set {
	return r.levels.Levels()
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
