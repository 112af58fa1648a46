package cli

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mmynk/garage/internal/models"
	"github.com/mmynk/garage/internal/storage/sqlite"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all owners and their cars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(store *sqlite.SQLiteStore) error {
				ctx := cmd.Context()
				owners, cars := a.services(store)

				all, err := owners.All(ctx)
				if err != nil {
					return err
				}
				if len(all) == 0 {
					printf(cmd.OutOrStdout(), "No owners yet.\n")
					return nil
				}

				byOwner := make(map[int64][]models.Car, len(all))
				everyCar, err := cars.All(ctx)
				if err != nil {
					return err
				}
				for _, c := range everyCar {
					byOwner[c.OwnerID] = append(byOwner[c.OwnerID], c)
				}

				renderFleet(cmd.OutOrStdout(), all, byOwner)
				return nil
			})
		},
	}
}

// renderFleet writes one row per car, grouped by owner. Owners without cars
// get a single row with empty car columns.
func renderFleet(w io.Writer, owners []models.Owner, cars map[int64][]models.Car) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Owner", "Year", "Make", "Model"})

	total := 0
	for _, o := range owners {
		owned := cars[o.ID]
		if len(owned) == 0 {
			t.AppendRow(table.Row{o.Name, "", "", ""})
			continue
		}
		for _, c := range owned {
			t.AppendRow(table.Row{o.Name, strconv.Itoa(c.Year), c.Make, c.Model})
		}
		total += len(owned)
	}
	t.AppendFooter(table.Row{strconv.Itoa(len(owners)) + " owners", "", "", strconv.Itoa(total) + " cars"})
	t.Render()
}
