package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"github.com/strrl/daylog/pkg/config"
	"github.com/strrl/daylog/pkg/locator"
	"github.com/strrl/daylog/pkg/querier"
	"github.com/strrl/daylog/pkg/store"
)

func queryCmd() *cobra.Command {
	var (
		opts    store.QueryOpts
		day     string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query indexed entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if day != "" {
				date, err := locator.ParseDate(day)
				if err != nil {
					return err
				}
				opts.Date = date
			}
			if summary {
				return runSummary(cmd, opts.App, opts.Date)
			}
			return runQuery(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.App, "app", "", "application identifier")
	cmd.Flags().StringVar(&opts.Level, "level", "", "level name")
	cmd.Flags().StringVar(&day, "date", "", "day as YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.PatternID, "pattern", "", "pattern ID")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of entries (0 = no limit)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print level counts and patterns instead of entries (requires --app)")
	return cmd
}

func openQuerier() (*querier.Querier, func(), error) {
	db := config.ResolveDB(dbPath)
	if _, err := os.Stat(db); err != nil {
		return nil, nil, errors.Errorf("database %s: %w", db, err)
	}
	s, err := store.NewDuckDBStore(db)
	if err != nil {
		return nil, nil, errors.Errorf("store: %w", err)
	}
	return querier.NewQuerier(s), func() { _ = s.Close() }, nil
}

func runQuery(cmd *cobra.Command, opts store.QueryOpts) error {
	q, closeFn, err := openQuerier()
	if err != nil {
		return err
	}
	defer closeFn()

	entries, err := q.Search(cmd.Context(), opts)
	if err != nil {
		return errors.Errorf("query: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(out, "%s %s %-9s %s\n", e.App, e.Date.Format(locator.DateLayout), e.Level, e.Header)
		if stack := strings.Trim(e.Stack, "\r\n"); stack != "" {
			fmt.Fprintln(out, stack)
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "\n%d entries found\n", len(entries))
	return nil
}

func runSummary(cmd *cobra.Command, app string, date time.Time) error {
	if app == "" {
		return errors.New("--summary requires --app")
	}
	q, closeFn, err := openQuerier()
	if err != nil {
		return err
	}
	defer closeFn()

	counts, err := q.Summary(cmd.Context(), app, date)
	if err != nil {
		return errors.Errorf("summary: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, c := range counts {
		fmt.Fprintf(out, "%-10s %d\n", c.Level, c.Count)
	}

	if date.IsZero() {
		return nil
	}
	patterns, err := q.Patterns(cmd.Context(), app, date)
	if err != nil {
		return errors.Errorf("patterns: %w", err)
	}
	for _, p := range patterns {
		fmt.Fprintf(out, "[%s] %d  %s\n", p.PatternID, p.Count, p.RawPattern)
	}
	return nil
}
