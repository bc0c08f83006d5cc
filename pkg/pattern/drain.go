package pattern

import (
	"cmp"
	"slices"

	"github.com/go-errors/errors"
	"github.com/google/uuid"
	"github.com/jaeyo/go-drain3/pkg/drain3"
	"github.com/strrl/daylog/pkg/parser"
)

// DrainParser uses the Drain algorithm to discover message templates.
type DrainParser struct {
	drain *drain3.Drain
	// clusterUUIDs maps Drain cluster IDs to stable UUIDs for consistent template identification.
	clusterUUIDs map[int64]uuid.UUID
}

// NewDrainParser creates a DrainParser with default Drain parameters.
func NewDrainParser() (*DrainParser, error) {
	d, err := drain3.NewDrain(
		drain3.WithDepth(4),
		drain3.WithSimTh(0.4),
		drain3.WithExtraDelimiter(extraDelimiters),
	)
	if err != nil {
		return nil, errors.Errorf("create drain: %w", err)
	}
	return &DrainParser{
		drain:        d,
		clusterUUIDs: make(map[int64]uuid.UUID),
	}, nil
}

// Feed processes a batch of messages through the Drain algorithm.
func (p *DrainParser) Feed(contents []string) error {
	for _, content := range contents {
		cluster, _, err := p.drain.AddLogMessage(content)
		if err != nil {
			return errors.Errorf("drain add: %w", err)
		}
		if cluster == nil {
			continue
		}
		if _, ok := p.clusterUUIDs[cluster.ClusterId]; !ok {
			p.clusterUUIDs[cluster.ClusterId] = uuid.New()
		}
	}
	return nil
}

// Templates returns the clusters discovered so far, most frequent first.
func (p *DrainParser) Templates() []Template {
	clusters := p.drain.GetClusters()
	templates := make([]Template, 0, len(clusters))
	for _, c := range clusters {
		id, ok := p.clusterUUIDs[c.ClusterId]
		if !ok {
			continue
		}
		templates = append(templates, Template{
			ID:      id,
			Pattern: c.GetTemplate(),
			Count:   int(c.Size),
		})
	}
	slices.SortStableFunc(templates, func(a, b Template) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Pattern, b.Pattern)
	})
	return templates
}

// Summarize clusters the messages of entries. An entry emitted under
// several levels is counted once per emission.
func Summarize(entries []parser.Entry) ([]Template, error) {
	p, err := NewDrainParser()
	if err != nil {
		return nil, err
	}
	messages := make([]string, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, Message(e))
	}
	if err := p.Feed(messages); err != nil {
		return nil, err
	}
	return p.Templates(), nil
}
