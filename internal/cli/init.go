package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/garage/internal/storage/sqlite"
)

func newInitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and its tables",
		Long: `Create the database file and the owners and cars tables if they do not
exist yet. Existing data is left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(store *sqlite.SQLiteStore) error {
				if err := store.EnsureSchema(cmd.Context()); err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Initialized database at %s\n", a.cfg.DBPath)
				return nil
			})
		},
	}
}
