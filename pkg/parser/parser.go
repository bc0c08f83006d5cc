package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-errors/errors"
	"github.com/strrl/daylog/pkg/levels"
	"github.com/strrl/daylog/pkg/locator"
)

// ErrInvalidLevel is returned when a level filter is neither levels.All nor a
// member of the level set.
var ErrInvalidLevel = errors.New("wrong level")

// headingPattern matches a bracketed timestamp and the rest of its line.
var headingPattern = regexp.MustCompile(`\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\].*`)

// Entry is one log record: a heading line and the text up to the next
// heading.
type Entry struct {
	Level  string `json:"level"`
	Header string `json:"header"`
	Stack  string `json:"stack"`
}

// ValidateFilter checks that filter is levels.All or a member of set.
func ValidateFilter(filter string, set levels.Set) error {
	if filter == levels.All || set.Contains(filter) {
		return nil
	}
	return errors.Errorf("%w: %q", ErrInvalidLevel, filter)
}

// Parse splits content into entries.
//
// Every heading is tested against each level of set, in order; a heading
// whose lowercased text contains "."+level yields an entry for that level.
// A heading can therefore produce several entries. The "YYYY-MM-DD " prefix
// of date is removed from each header. Content without headings yields no
// entries.
func Parse(content string, date time.Time, filter string, set levels.Set) ([]Entry, error) {
	if err := ValidateFilter(filter, set); err != nil {
		return nil, err
	}

	entries := []Entry{}

	headings := headingPattern.FindAllString(content, -1)
	if len(headings) == 0 {
		return entries, nil
	}

	// The segment before the first heading is dropped so bodies[i] belongs
	// to headings[i].
	bodies := headingPattern.Split(content, -1)[1:]

	datePrefix := date.Format(locator.DateLayout) + " "
	for i, heading := range headings {
		lower := strings.ToLower(heading)
		for _, l := range set {
			if filter != levels.All && filter != l {
				continue
			}
			if !strings.Contains(lower, "."+strings.ToLower(l)) {
				continue
			}
			entries = append(entries, Entry{
				Level:  l,
				Header: strings.ReplaceAll(heading, datePrefix, ""),
				Stack:  bodies[i],
			})
		}
	}
	return entries, nil
}
