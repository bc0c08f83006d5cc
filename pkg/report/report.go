package report

import (
	"embed"
	"io"
	"regexp"
	"text/template"
	"time"

	"github.com/go-errors/errors"
	"github.com/strrl/daylog/pkg/levels"
	"github.com/strrl/daylog/pkg/locator"
	"github.com/strrl/daylog/pkg/parser"
	"github.com/strrl/daylog/pkg/pattern"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}).ParseFS(templateFS, "templates/*.tmpl"),
)

// problemLevel selects the levels listed under "Problems".
var problemLevel = regexp.MustCompile(`(?i)^(emergency|alert|critical|error|fatal|panic)$`)

const (
	maxSamples  = 3
	maxProblems = 50
)

// LevelStat is the number of entries of one level.
type LevelStat struct {
	Level string
	Count int
}

// TemplateStat is a message template with sample headers.
type TemplateStat struct {
	ID      string
	Pattern string
	Count   int
	Samples []string
}

// Report summarizes one application day.
type Report struct {
	App       string
	Date      string
	Total     int
	Levels    []LevelStat
	Templates []TemplateStat
	Problems  []parser.Entry
}

// Build assembles a report. Levels are listed in set order, including the
// ones with no entries.
func Build(app string, date time.Time, set levels.Set, entries []parser.Entry, tmpls []pattern.Template) Report {
	r := Report{
		App:   app,
		Date:  date.Format(locator.DateLayout),
		Total: len(entries),
	}

	counts := make(map[string]int, len(set))
	for _, e := range entries {
		counts[e.Level]++
	}
	for _, l := range set {
		r.Levels = append(r.Levels, LevelStat{Level: l, Count: counts[l]})
	}

	stats := make([]TemplateStat, len(tmpls))
	index := make(map[string]int, len(tmpls))
	for i, t := range tmpls {
		id := t.ID.String()
		stats[i] = TemplateStat{ID: id, Pattern: t.Pattern, Count: t.Count}
		index[id] = i
	}
	for _, e := range entries {
		t, ok := pattern.MatchTemplate(pattern.Message(e), tmpls)
		if !ok {
			continue
		}
		s := &stats[index[t.ID.String()]]
		if len(s.Samples) < maxSamples {
			s.Samples = append(s.Samples, e.Header)
		}
	}
	r.Templates = stats

	for _, e := range entries {
		if !problemLevel.MatchString(e.Level) {
			continue
		}
		r.Problems = append(r.Problems, e)
		if len(r.Problems) >= maxProblems {
			break
		}
	}
	return r
}

// Write renders r as text.
func Write(w io.Writer, r Report) error {
	if err := templates.ExecuteTemplate(w, "report.txt.tmpl", r); err != nil {
		return errors.Errorf("render report template: %w", err)
	}
	return nil
}
