package levels

import (
	"slices"
	"strings"

	"github.com/go-errors/errors"
)

// All is the filter sentinel that selects every level.
const All = "all"

// Set is an ordered vocabulary of severity level names. Order matters: the
// parser emits entries for a heading in set order.
type Set []string

// Default returns the eight syslog-style levels, most severe first.
func Default() Set {
	return Set{
		"emergency",
		"alert",
		"critical",
		"error",
		"warning",
		"notice",
		"info",
		"debug",
	}
}

// Parse builds a Set from a comma separated list. Names are trimmed and
// lowercased; duplicates keep their first position.
func Parse(csv string) (Set, error) {
	var set Set
	for _, name := range strings.Split(csv, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || slices.Contains(set, name) {
			continue
		}
		if name == All {
			return nil, errors.Errorf("level name %q is reserved", All)
		}
		set = append(set, name)
	}
	if len(set) == 0 {
		return nil, errors.New("level set is empty")
	}
	return set, nil
}

// Contains reports whether name is a member of the set. The comparison is
// exact.
func (s Set) Contains(name string) bool {
	return slices.Contains(s, name)
}

// String joins the set with commas.
func (s Set) String() string {
	return strings.Join(s, ",")
}

// Provider supplies the level vocabulary.
type Provider interface {
	Levels() Set
}

var _ Provider = Static(nil)

// Static is a Provider over a fixed set. A nil Static yields Default().
type Static Set

// Levels returns a copy of the set.
func (s Static) Levels() Set {
	if len(s) == 0 {
		return Default()
	}
	return slices.Clone(Set(s))
}
