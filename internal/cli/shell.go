package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/garage/internal/shell"
	"github.com/mmynk/garage/internal/storage/sqlite"
	"github.com/mmynk/garage/pkg/logging"
)

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive menus",
		Long: `Open the interactive owners and cars menus.

Line editing and history are available when stdin is a terminal. Piped input
is read line by line, which makes scripted sessions possible:

  printf '1\nb\nAlice\nbck\n0\n' | garage shell`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd)
		},
	}
}

func (a *app) runShell(cmd *cobra.Command) error {
	return a.withStore(func(store *sqlite.SQLiteStore) error {
		in, out := cmd.InOrStdin(), cmd.OutOrStdout()

		stdin, ok := in.(*os.File)
		terminal := ok && logging.IsTerminal(stdin)
		interactive := terminal && logging.IsTerminal(out)

		var rc io.ReadCloser = io.NopCloser(in)
		if terminal {
			rc = stdin
		}
		rl, err := shell.NewReadline(shell.ReadlineConfig{
			HistoryFile: a.cfg.HistoryFile,
			Terminal:    terminal,
			Stdin:       rc,
			Stdout:      out,
			Stderr:      cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}

		var prompter shell.Prompter = rl
		if !terminal {
			prompter = shell.NewEchoPrompter(rl, out)
		}
		defer func() { _ = prompter.Close() }()

		owners, cars := a.services(store)
		sh := shell.New(owners, cars, prompter, out,
			shell.WithLogger(a.logger),
			shell.WithInteractive(interactive),
		)
		return sh.Run(cmd.Context())
	})
}
