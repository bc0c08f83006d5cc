package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"github.com/strrl/daylog/pkg/levels"
	"github.com/strrl/daylog/pkg/locator"
	"github.com/strrl/daylog/pkg/parser"
)

type shownEntry struct {
	parser.Entry
	Fields *parser.Fields `json:"fields,omitempty"`
}

func showCmd() *cobra.Command {
	var (
		level      string
		asJSON     bool
		withFields bool
	)

	cmd := &cobra.Command{
		Use:   "show <app> <date>",
		Short: "Print the entries of one log file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], args[1], level, asJSON, withFields)
		},
	}
	cmd.Flags().StringVar(&level, "level", levels.All, "level to keep, or \"all\"")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")
	cmd.Flags().BoolVar(&withFields, "fields", false, "split headers into channel, level and message")
	return cmd
}

func runShow(cmd *cobra.Command, app, day, level string, asJSON, withFields bool) error {
	r, set, err := newReader()
	if err != nil {
		return err
	}
	// The level is checked before the date, so a bad level wins over a bad date.
	if level == "" {
		level = levels.All
	}
	if err := parser.ValidateFilter(level, set); err != nil {
		return errors.Errorf("show: %w", err)
	}
	date, err := locator.ParseDate(day)
	if err != nil {
		return err
	}
	entries, err := r.Entries(cmd.Context(), app, date, level)
	if err != nil {
		return errors.Errorf("show: %w", err)
	}

	shown := make([]shownEntry, len(entries))
	for i, e := range entries {
		shown[i].Entry = e
		if !withFields {
			continue
		}
		if f, ok := parser.HeaderFields(e.Header); ok {
			shown[i].Fields = &f
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(shown); err != nil {
			return errors.Errorf("encode entries: %w", err)
		}
		return nil
	}

	tagger := newLevelTagger(out)
	for _, e := range shown {
		if e.Fields != nil {
			fmt.Fprintf(out, "%s %s %s: %s\n", tagger.Tag(e.Level), e.Fields.Time, e.Fields.Channel, e.Fields.Message)
		} else {
			fmt.Fprintf(out, "%s %s\n", tagger.Tag(e.Level), e.Header)
		}
		if stack := strings.Trim(e.Stack, "\r\n"); stack != "" {
			fmt.Fprintln(out, stack)
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "\n%d entries found\n", len(entries))
	return nil
}
