package parser

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/go-errors/errors"
	"github.com/strrl/daylog/pkg/levels"
)

var day = time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)

const twoErrors = "[2024-03-28 13:45:30] local.ERROR: Some error\n" +
	"[2024-03-28 13:45:31] local.ERROR: Some error with stack\n" +
	"Stack trace:\n" +
	"#0 Some more details goes here"

func TestParseTwoErrors(t *testing.T) {
	entries, err := Parse(twoErrors, day, levels.All, levels.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}

	want := []Entry{
		{Level: "error", Header: "[13:45:30] local.ERROR: Some error", Stack: "\n"},
		{Level: "error", Header: "[13:45:31] local.ERROR: Some error with stack", Stack: "\nStack trace:\n#0 Some more details goes here"},
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, entries[i], want[i])
		}
		if strings.Contains(entries[i].Header, "2024-03-28 ") {
			t.Errorf("entry %d: date not stripped from %q", i, entries[i].Header)
		}
	}
}

func TestParseNoHeadings(t *testing.T) {
	for _, content := range []string{"", "just some text\nwithout headers", "[2024-03-28] local.ERROR: no time"} {
		entries, err := Parse(content, day, levels.All, levels.Default())
		if err != nil {
			t.Fatalf("Parse(%q): %v", content, err)
		}
		if entries == nil || len(entries) != 0 {
			t.Errorf("Parse(%q): expected empty non-nil slice, got %#v", content, entries)
		}
	}
}

func TestParseInvalidLevel(t *testing.T) {
	_, err := Parse(twoErrors, day, "exploded", levels.Default())
	if !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}

	// Filter comparison is exact.
	_, err = Parse(twoErrors, day, "ERROR", levels.Default())
	if !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel for ERROR, got %v", err)
	}
}

func TestParseLevelFilter(t *testing.T) {
	content := "[2024-03-28 08:00:00] local.INFO: started\n" +
		"[2024-03-28 08:00:01] local.WARNING: disk low\n" +
		"[2024-03-28 08:00:02] local.ERROR: failed\n" +
		"details\n" +
		"[2024-03-28 08:00:03] local.INFO: stopped\n"

	info, err := Parse(content, day, "info", levels.Default())
	if err != nil {
		t.Fatalf("Parse info: %v", err)
	}
	if len(info) != 2 {
		t.Fatalf("expected 2 info entries, got %d", len(info))
	}
	for _, e := range info {
		if e.Level != "info" {
			t.Errorf("unexpected level %q", e.Level)
		}
	}

	errs, err := Parse(content, day, "error", levels.Default())
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(errs) != 1 || errs[0].Stack != "\ndetails\n" {
		t.Errorf("unexpected error entries: %+v", errs)
	}

	none, err := Parse(content, day, "debug", levels.Default())
	if err != nil {
		t.Fatalf("Parse debug: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no debug entries, got %+v", none)
	}
}

func TestParseMatchesSeveralLevels(t *testing.T) {
	// ".error" is contained in ".errors" and ".info" in ".information".
	content := "[2024-03-28 08:00:00] app.errors.information: mixed\n"

	entries, err := Parse(content, day, levels.All, levels.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Level)
	}
	if want := []string{"error", "info"}; !slices.Equal(got, want) {
		t.Errorf("levels: got %v, want %v", got, want)
	}
	if entries[0].Header != entries[1].Header || entries[0].Stack != entries[1].Stack {
		t.Errorf("duplicate entries must share header and stack: %+v", entries)
	}
}

func TestParseUnclassifiedHeadingKeepsBodiesAligned(t *testing.T) {
	content := "[2024-03-28 08:00:00] local.TRACE: noise\n" +
		"trace body\n" +
		"[2024-03-28 08:00:01] local.CRITICAL: boom\n" +
		"crit body"

	entries, err := Parse(content, day, levels.All, levels.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %+v", entries)
	}
	if entries[0].Level != "critical" || entries[0].Stack != "\ncrit body" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestParseDiscardsPreamble(t *testing.T) {
	content := "garbage before\n[2024-03-28 08:00:00] local.NOTICE: hello\nbody"

	entries, err := Parse(content, day, levels.All, levels.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 1 || entries[0].Stack != "\nbody" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestParseStripsOnlyQueriedDate(t *testing.T) {
	content := "[2024-03-27 23:59:59] local.ERROR: seen on 2024-03-28 late\n"

	entries, err := Parse(content, day, levels.All, levels.Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if want := "[2024-03-27 23:59:59] local.ERROR: seen on late"; entries[0].Header != want {
		t.Errorf("Header: got %q, want %q", entries[0].Header, want)
	}
}

func TestParseCustomLevelSet(t *testing.T) {
	content := "[2024-03-28 08:00:00] worker.FATAL: out of memory\n"

	set := levels.Set{"fatal", "error"}
	entries, err := Parse(content, day, "fatal", set)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 1 || entries[0].Level != "fatal" {
		t.Errorf("unexpected entries: %+v", entries)
	}

	if _, err := Parse(content, day, "critical", set); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel for level outside custom set, got %v", err)
	}
}

func TestValidateFilter(t *testing.T) {
	set := levels.Default()
	for _, ok := range []string{levels.All, "error", "debug"} {
		if err := ValidateFilter(ok, set); err != nil {
			t.Errorf("ValidateFilter(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "Error", "fatal"} {
		if err := ValidateFilter(bad, set); !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("ValidateFilter(%q): got %v, want ErrInvalidLevel", bad, err)
		}
	}
}
