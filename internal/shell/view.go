package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mmynk/garage/internal/models"
	"github.com/mmynk/garage/internal/storage"
)

// view renders titles and listings. Styles adapt to out, so a non-terminal
// writer gets plain text.
type view struct {
	out        io.Writer
	titleStyle lipgloss.Style
}

func newView(out io.Writer) *view {
	r := lipgloss.NewRenderer(out)
	return &view{
		out:        out,
		titleStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	}
}

func (v *view) title(text string) {
	_, _ = fmt.Fprintln(v.out, v.titleStyle.Render("=== "+text+" ==="))
}

// OwnersTable writes owners as a numbered table.
func OwnersTable(w io.Writer, owners []models.Owner) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Name"})
	for i, o := range owners {
		t.AppendRow(table.Row{i + 1, o.Name})
	}
	t.Render()
}

// CarsTable writes cars as a numbered table.
func CarsTable(w io.Writer, cars []models.Car) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Year", "Make", "Model"})
	for i, c := range cars {
		t.AppendRow(table.Row{i + 1, strconv.Itoa(c.Year), c.Make, c.Model})
	}
	t.Render()
}

// describe turns an action error into a message for the user.
func describe(err error) string {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid %s: %s.", verr.Field, verr.Reason)
	case storage.IsConstraint(err, storage.ConstraintUnique):
		return "An owner with that name already exists."
	case storage.IsConstraint(err, storage.ConstraintForeignKey):
		return "That owner no longer exists."
	case errors.Is(err, storage.ErrConstraintViolation):
		return "The database rejected the change."
	case errors.Is(err, storage.ErrNotFound):
		return "That record no longer exists."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
