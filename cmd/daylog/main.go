package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/strrl/daylog/pkg/config"
	"github.com/strrl/daylog/pkg/levels"
	"github.com/strrl/daylog/pkg/locator"
	"github.com/strrl/daylog/pkg/reader"
	"github.com/strrl/daylog/pkg/tracing"
)

var (
	rootPath  string
	levelsCSV string
	dbPath    string
	verbose   bool
)

func main() {
	// Load .env file if present (does not override existing env vars)
	_ = godotenv.Load()

	flush := tracing.Init(context.Background())

	err := rootCmd().Execute()
	flush()

	if err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "daylog",
		Short: "Read per-day application log files",
		Long:  "daylog lists, parses, indexes and deletes log-{app}-{YYYY-MM-DD}.txt files under a log directory.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&rootPath, "path", "", "log directory (env DAYLOG_PATH)")
	root.PersistentFlags().StringVar(&levelsCSV, "levels", "", "comma separated level names (env DAYLOG_LEVELS)")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "path to DuckDB database (env DAYLOG_DB, default "+config.DefaultDB+")")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(listCmd())
	root.AddCommand(showCmd())
	root.AddCommand(deleteCmd())
	root.AddCommand(levelsCmd())
	root.AddCommand(indexCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(reportCmd())
	return root
}

// newReader builds a Reader from --path and --levels. Without a path the
// locator stays unconfigured and operations fail with ErrNotConfigured.
func newReader() (*reader.Reader, levels.Set, error) {
	set, err := config.ResolveLevels(levelsCSV)
	if err != nil {
		return nil, nil, err
	}

	loc := locator.New()
	if root := config.ResolveRoot(rootPath); root != "" {
		if err := loc.Configure(root); err != nil {
			return nil, nil, err
		}
	}
	return reader.New(loc, reader.WithLevels(levels.Static(set))), set, nil
}
