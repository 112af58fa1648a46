// Package cli provides the command-line interface for garage.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/garage/internal/config"
	"github.com/mmynk/garage/internal/metrics"
	"github.com/mmynk/garage/internal/service"
	"github.com/mmynk/garage/internal/storage/sqlite"
	"github.com/mmynk/garage/pkg/logging"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// app carries state shared by all commands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewRootCmd creates the garage command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "garage",
		Short: "Manage car owners and their cars",
		Long: `garage keeps a small SQLite database of owners and the cars they own.

Run without a subcommand to open the interactive menus.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "__complete", "version":
				return nil
			}
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./garage.yaml)")
	rootCmd.PersistentFlags().String("db", "", "path to the SQLite database (default: "+config.DefaultDBPath+")")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("metrics-file", "", "write store metrics to this file on exit")
	rootCmd.PersistentFlags().String("history-file", "", "keep shell input history in this file")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return logging.Levels, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newShellCommand(a))
	rootCmd.AddCommand(newInitCommand(a))
	rootCmd.AddCommand(newListCommand(a))
	rootCmd.AddCommand(newResetCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// load resolves configuration and sets up logging and metrics.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.Setup(cmd.ErrOrStderr(), level)
	a.metrics = metrics.NewRecorder()

	if cfg.File != "" {
		a.logger.Debug("Using config file", "path", cfg.File)
	}
	return nil
}

// withStore opens the database, runs fn and closes it again. Metrics are
// written afterwards whether or not fn failed.
func (a *app) withStore(fn func(*sqlite.SQLiteStore) error) (err error) {
	store, err := sqlite.New(a.cfg.DBPath,
		sqlite.WithLogger(a.logger),
		sqlite.WithMetrics(a.metrics),
	)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", cerr)
		}
		if werr := a.metrics.WriteTextfile(a.cfg.MetricsFile); werr != nil {
			a.logger.Warn("Failed to write metrics", "path", a.cfg.MetricsFile, "error", werr)
		}
	}()
	return fn(store)
}

func (a *app) services(store *sqlite.SQLiteStore) (*service.OwnerService, *service.CarService) {
	return service.NewOwnerService(store, a.logger), service.NewCarService(store, a.cfg.Years(), a.logger)
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
