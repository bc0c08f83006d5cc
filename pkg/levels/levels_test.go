package levels

import (
	"slices"
	"testing"
)

func TestDefault(t *testing.T) {
	want := []string{"emergency", "alert", "critical", "error", "warning", "notice", "info", "debug"}
	got := Default()
	if !slices.Equal(got, want) {
		t.Fatalf("Default: got %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	set, err := Parse(" Error, warning,,ERROR , info ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Set{"error", "warning", "info"}
	if !slices.Equal(set, want) {
		t.Errorf("Parse: got %v, want %v", set, want)
	}
}

func TestParseRejectsEmptyAndReserved(t *testing.T) {
	for _, in := range []string{"", " , ,", "error,all"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestContainsIsExact(t *testing.T) {
	set := Default()
	if !set.Contains("error") {
		t.Error("expected set to contain error")
	}
	if set.Contains("ERROR") {
		t.Error("expected ERROR not to match error")
	}
	if set.Contains("exploded") {
		t.Error("expected exploded not to be a level")
	}
}

func TestStaticProvider(t *testing.T) {
	if got := Static(nil).Levels(); !slices.Equal(got, Default()) {
		t.Errorf("nil Static: got %v, want default", got)
	}

	p := Static{"error", "info"}
	got := p.Levels()
	got[0] = "mutated"
	if p[0] != "error" {
		t.Error("Levels must return a copy")
	}
}
