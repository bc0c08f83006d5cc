package reader

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/go-errors/errors"
	"github.com/strrl/daylog/pkg/ingestor"
	"github.com/strrl/daylog/pkg/levels"
	"github.com/strrl/daylog/pkg/locator"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const app = "cli"

var today = time.Date(2024, 3, 28, 9, 30, 0, 0, time.UTC)

type countingSource struct {
	reads int
	next  ingestor.Source
}

func (c *countingSource) Read(ctx context.Context, path string) (string, error) {
	c.reads++
	return c.next.Read(ctx, path)
}

func setupReader(t *testing.T, opts ...Option) (*Reader, *countingSource) {
	t.Helper()

	dir := t.TempDir()
	data := "[2024-03-28 09:30:00] local.ERROR: Some error\n" +
		"[2024-03-28 09:30:01] local.ERROR: Some error with stack\n" +
		"Stack trace:\n" +
		"#0 Some more details goes here"
	name := locator.FileName(app, today)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	loc, err := locator.NewWithRoot(dir)
	if err != nil {
		t.Fatalf("NewWithRoot: %v", err)
	}
	src := &countingSource{next: &ingestor.FileSource{}}
	opts = append([]Option{WithSource(src)}, opts...)
	return New(loc, opts...), src
}

func TestListLogFiles(t *testing.T) {
	r, _ := setupReader(t)
	ctx := context.Background()

	files, err := r.ListLogFiles(ctx, app)
	if err != nil {
		t.Fatalf("ListLogFiles: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected 1 file, got %v", files)
	}

	files, err = r.ListLogFiles(ctx, "Whatever")
	if err != nil {
		t.Fatalf("ListLogFiles: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}

	if _, err := r.ListLogFiles(ctx, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty app: got %v, want ErrInvalidArgument", err)
	}
}

func TestEntries(t *testing.T) {
	r, src := setupReader(t)

	entries, err := r.Entries(context.Background(), app, today, levels.All)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Level != "error" {
			t.Errorf("entry %d: level %q, want error", i, e.Level)
		}
		if strings.Contains(e.Header, "2024-03-28 ") {
			t.Errorf("entry %d: date not stripped: %q", i, e.Header)
		}
		if !strings.HasPrefix(e.Header, "[09:30:0") {
			t.Errorf("entry %d: time not kept: %q", i, e.Header)
		}
	}
	if !strings.Contains(entries[1].Stack, "Stack trace:") {
		t.Errorf("second entry stack: %q", entries[1].Stack)
	}
	if src.reads != 1 {
		t.Errorf("expected 1 read, got %d", src.reads)
	}
}

func TestEntriesEmptyFilterMeansAll(t *testing.T) {
	r, _ := setupReader(t)

	entries, err := r.Entries(context.Background(), app, today, "")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestEntriesInvalidLevelTouchesNoFile(t *testing.T) {
	r, src := setupReader(t)

	// The app does not exist either; the level check must win.
	_, err := r.Entries(context.Background(), "SAPI", today, "exploded")
	if !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	if src.reads != 0 {
		t.Errorf("expected no reads, got %d", src.reads)
	}
}

func TestEntriesErrors(t *testing.T) {
	r, _ := setupReader(t)
	ctx := context.Background()

	if _, err := r.Entries(ctx, "", time.Time{}, levels.All); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("no arguments: got %v, want ErrInvalidArgument", err)
	}
	if _, err := r.Entries(ctx, "Whatever", today, levels.All); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown app: got %v, want ErrNotFound", err)
	}
	if _, err := r.Entries(ctx, app, time.Date(1960, 10, 20, 0, 0, 0, 0, time.UTC), levels.All); !errors.Is(err, ErrNotFound) {
		t.Errorf("wrong date: got %v, want ErrNotFound", err)
	}

	unconfigured := New(locator.New())
	if _, err := unconfigured.Entries(ctx, app, today, levels.All); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("unconfigured: got %v, want ErrNotConfigured", err)
	}
}

func TestDeleteLog(t *testing.T) {
	r, _ := setupReader(t)
	ctx := context.Background()

	if err := r.DeleteLog(ctx, app, today.AddDate(0, 0, -1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing day: got %v, want ErrNotFound", err)
	}
	if err := r.DeleteLog(ctx, app, today); err != nil {
		t.Fatalf("DeleteLog: %v", err)
	}
	if _, err := r.Entries(ctx, app, today, levels.All); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: got %v, want ErrNotFound", err)
	}
}

func TestAvailableLevels(t *testing.T) {
	r, _ := setupReader(t)
	if got := r.AvailableLevels(); !slices.Equal(got, levels.Default()) {
		t.Errorf("AvailableLevels: got %v", got)
	}

	custom, _ := setupReader(t, WithLevels(levels.Static{"error", "debug"}))
	if got := custom.AvailableLevels(); !slices.Equal(got, levels.Set{"error", "debug"}) {
		t.Errorf("custom AvailableLevels: got %v", got)
	}
	if _, err := custom.Entries(context.Background(), app, today, "info"); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("info outside custom set: got %v, want ErrInvalidLevel", err)
	}
}

func TestSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r, _ := setupReader(t)
	ctx := context.Background()
	if _, err := r.Entries(ctx, app, today, levels.All); err != nil {
		t.Fatalf("Entries: %v", err)
	}
	_, _ = r.Entries(ctx, app, today, "exploded")

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != "reader.Entries" {
		t.Errorf("span name: got %q", spans[0].Name())
	}
	if len(spans[1].Events()) == 0 {
		t.Error("expected error event on failing span")
	}
}
