package pattern

import (
	"strings"

	"github.com/google/uuid"
	"github.com/strrl/daylog/pkg/parser"
)

// Template is a message shape shared by several entries. Variable tokens
// are replaced with <*>.
type Template struct {
	ID      uuid.UUID
	Pattern string
	Count   int
}

// extraDelimiters must match the delimiters used in NewDrainParser's WithExtraDelimiter.
var extraDelimiters = []string{"|", "=", ","}

// tokenize splits a string using the same logic as Drain:
// replace extra delimiters with spaces, then split on spaces.
func tokenize(s string) []string {
	for _, d := range extraDelimiters {
		s = strings.ReplaceAll(s, d, " ")
	}
	return strings.Fields(s)
}

// Message returns the text of an entry that is clustered: the header
// message when the header follows the channel.LEVEL: message convention,
// otherwise the whole header.
func Message(e parser.Entry) string {
	if f, ok := parser.HeaderFields(e.Header); ok {
		return f.Message
	}
	return e.Header
}

// MatchTemplate finds the first template whose tokens match line, treating
// "<*>" as a wildcard.
func MatchTemplate(line string, templates []Template) (Template, bool) {
	lineTokens := tokenize(line)
	for _, t := range templates {
		patTokens := tokenize(t.Pattern)
		if matchTokens(lineTokens, patTokens) {
			return t, true
		}
	}
	return Template{}, false
}

func matchTokens(lineTokens, patTokens []string) bool {
	if len(lineTokens) != len(patTokens) {
		return false
	}
	for i, pt := range patTokens {
		if pt == "<*>" {
			continue
		}
		if pt != lineTokens[i] {
			return false
		}
	}
	return true
}
