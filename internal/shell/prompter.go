package shell

import (
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

// Prompter reads one line of input at a time. *readline.Instance satisfies it.
//
// Readline returns io.EOF when input is exhausted and readline.ErrInterrupt
// when the user presses Ctrl-C.
type Prompter interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

// ReadlineConfig configures NewReadline.
type ReadlineConfig struct {
	// HistoryFile persists input history. Empty keeps history in memory only.
	HistoryFile string

	// Terminal enables raw-mode line editing. Leave it off for pipes and
	// files; readline then reads plain lines and does not print prompts.
	Terminal bool

	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
}

// NewReadline returns a line editor over the configured streams.
// Nil streams default to the process's standard streams.
func NewReadline(cfg ReadlineConfig) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           cfg.Stdin,
		Stdout:          cfg.Stdout,
		Stderr:          cfg.Stderr,
		FuncIsTerminal:  func() bool { return cfg.Terminal },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize line editor: %w", err)
	}
	return rl, nil
}

// EchoPrompter writes the current prompt to out before every read, for
// Prompters that do not print it themselves.
type EchoPrompter struct {
	Prompter
	out    io.Writer
	prompt string
}

// NewEchoPrompter wraps p so that prompts appear on out.
func NewEchoPrompter(p Prompter, out io.Writer) *EchoPrompter {
	return &EchoPrompter{Prompter: p, out: out}
}

func (e *EchoPrompter) SetPrompt(prompt string) {
	e.prompt = prompt
	e.Prompter.SetPrompt(prompt)
}

func (e *EchoPrompter) Readline() (string, error) {
	_, _ = io.WriteString(e.out, e.prompt)
	return e.Prompter.Readline()
}
