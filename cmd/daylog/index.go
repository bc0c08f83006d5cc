package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"github.com/strrl/daylog/pkg/config"
	"github.com/strrl/daylog/pkg/levels"
	"github.com/strrl/daylog/pkg/locator"
	"github.com/strrl/daylog/pkg/parser"
	"github.com/strrl/daylog/pkg/pattern"
	"github.com/strrl/daylog/pkg/querier"
	"github.com/strrl/daylog/pkg/store"
)

func indexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index <app> <date>",
		Short: "Parse one log file and store its entries in DuckDB",
		Long:  "Parse every entry of an application day, cluster the messages with Drain, and replace that day in the DuckDB index.",
		Args:  cobra.ExactArgs(2),
		RunE:  runIndex,
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	app := args[0]
	date, err := locator.ParseDate(args[1])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	r, _, err := newReader()
	if err != nil {
		return err
	}
	entries, err := r.Entries(ctx, app, date, levels.All)
	if err != nil {
		return errors.Errorf("index: %w", err)
	}

	templates, err := pattern.Summarize(entries)
	if err != nil {
		return errors.Errorf("drain: %w", err)
	}

	db := config.ResolveDB(dbPath)
	s, err := store.NewDuckDBStore(db)
	if err != nil {
		return errors.Errorf("store: %w", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Init(ctx); err != nil {
		return errors.Errorf("store init: %w", err)
	}

	rows, patterns := indexRows(app, date, entries, templates)
	if err := s.ReplaceDay(ctx, app, date, rows, patterns); err != nil {
		return errors.Errorf("replace day: %w", err)
	}

	counts, err := querier.NewQuerier(s).Summary(ctx, app, date)
	if err != nil {
		return errors.Errorf("summary: %w", err)
	}

	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "Indexed %d entries, discovered %d patterns (%d with 2+ matches)\n",
		len(rows), len(templates), len(patterns))
	for _, c := range counts {
		fmt.Fprintf(out, "  %-10s %d\n", c.Level, c.Count)
	}
	fmt.Fprintf(out, "Database: %s\n", db)
	return nil
}

// indexRows converts parsed entries to store rows. Templates matched by a
// single entry are not kept: Drain never generalized them, so they carry no
// more than the entry itself.
func indexRows(app string, date time.Time, entries []parser.Entry, templates []pattern.Template) ([]store.Entry, []store.Pattern) {
	kept := make(map[string]bool)
	var patterns []store.Pattern
	for _, t := range templates {
		if t.Count <= 1 {
			continue
		}
		id := t.ID.String()
		kept[id] = true
		patterns = append(patterns, store.Pattern{
			PatternID:  id,
			App:        app,
			Date:       date,
			RawPattern: t.Pattern,
			Count:      t.Count,
		})
	}

	rows := make([]store.Entry, len(entries))
	for i, e := range entries {
		row := store.Entry{
			App:    app,
			Date:   date,
			Seq:    i,
			Level:  e.Level,
			Header: e.Header,
			Stack:  e.Stack,
		}
		if f, ok := parser.HeaderFields(e.Header); ok {
			row.Channel = f.Channel
			row.Message = f.Message
		} else {
			row.Message = e.Header
		}
		if t, ok := pattern.MatchTemplate(row.Message, templates); ok && kept[t.ID.String()] {
			row.PatternID = t.ID.String()
		}
		rows[i] = row
	}
	return rows, patterns
}
