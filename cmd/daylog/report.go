package main

import (
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"github.com/strrl/daylog/pkg/levels"
	"github.com/strrl/daylog/pkg/locator"
	"github.com/strrl/daylog/pkg/pattern"
	"github.com/strrl/daylog/pkg/report"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <app> <date>",
		Short: "Summarize one application day",
		Long:  "Print per-level counts, the most frequent message templates and the problem entries of one log file.",
		Args:  cobra.ExactArgs(2),
		RunE:  runReport,
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	app := args[0]
	date, err := locator.ParseDate(args[1])
	if err != nil {
		return err
	}
	r, set, err := newReader()
	if err != nil {
		return err
	}
	entries, err := r.Entries(cmd.Context(), app, date, levels.All)
	if err != nil {
		return errors.Errorf("report: %w", err)
	}
	templates, err := pattern.Summarize(entries)
	if err != nil {
		return errors.Errorf("drain: %w", err)
	}
	return report.Write(cmd.OutOrStdout(), report.Build(app, date, set, entries, templates))
}
