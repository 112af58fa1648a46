package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mmynk/garage/internal/storage/sqlite"
)

func newResetCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all owners and cars",
		Long: `Drop the cars and owners tables and create them again, empty.

This cannot be undone, so --yes is required.`,
		Example: `  garage reset --yes
  garage reset --yes --db ./data/test.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			return a.withStore(func(store *sqlite.SQLiteStore) error {
				if err := store.Reset(cmd.Context()); err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Reset database at %s\n", a.cfg.DBPath)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm that all data should be deleted")
	return cmd
}
