package main

import (
	"bytes"
	"testing"
)

func TestLevelTaggerPlainWriter(t *testing.T) {
	tagger := newLevelTagger(&bytes.Buffer{})

	for _, level := range []string{"emergency", "error", "warning", "info", "debug", "custom"} {
		got := tagger.Tag(level)
		if len(got) != 9 || got[:len(level)] != level {
			t.Errorf("Tag(%q) = %q, want plain padded name", level, got)
		}
	}
}
