// Package shell implements the interactive, menu-driven front end for
// managing owners and their cars.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/mmynk/garage/internal/service"
)

var (
	// errQuit unwinds every menu when input ends.
	errQuit = errors.New("input closed")

	// errCancelled abandons the current action and returns to its menu.
	errCancelled = errors.New("cancelled")
)

const clearScreen = "\033[H\033[2J"

// Shell drives the menus over a Prompter and an output writer.
type Shell struct {
	owners *service.OwnerService
	cars   *service.CarService
	in     Prompter
	out    io.Writer
	view   *view
	logger *slog.Logger

	// interactive enables screen clearing and "Press Enter" pauses.
	interactive bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger. Each shell tags it with a session ID.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		s.logger = logger
	}
}

// WithInteractive clears the screen before each menu and pauses after
// each action. Use it only when out is a terminal.
func WithInteractive(interactive bool) Option {
	return func(s *Shell) {
		s.interactive = interactive
	}
}

// New creates a shell reading from in and writing to out.
func New(owners *service.OwnerService, cars *service.CarService, in Prompter, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		owners: owners,
		cars:   cars,
		in:     in,
		out:    out,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "shell", "session", uuid.NewString())
	s.view = newView(out)
	return s
}

// Run shows the main menu until the user exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	s.logger.Info("Shell session started")
	defer s.logger.Info("Shell session ended")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.clear()
		s.view.title("Owners & Cars CLI")
		s.println("1. Owners")
		s.println("0. Exit")

		choice, err := s.prompt(ctx, "> ")
		switch {
		case errors.Is(err, errQuit):
			s.println("Goodbye!")
			return nil
		case errors.Is(err, errCancelled):
			continue
		case err != nil:
			return err
		}

		switch choice {
		case "1":
			if err := s.ownersMenu(ctx); err != nil {
				if errors.Is(err, errQuit) {
					s.println("Goodbye!")
					return nil
				}
				return err
			}
		case "0":
			s.println("Goodbye!")
			return nil
		default:
			s.println("Invalid choice.")
			s.pause(ctx)
		}
	}
}

// handle reports an action's error to the user. Only errQuit and context
// errors are passed back to the menu loop.
func (s *Shell) handle(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errQuit), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, errCancelled):
		s.println("Cancelled.")
	default:
		s.println(describe(err))
	}
	s.pause(ctx)
	return nil
}

// prompt reads a trimmed line. Ctrl-C yields errCancelled, end of input
// yields errQuit. A cancelled ctx abandons the read.
func (s *Shell) prompt(ctx context.Context, text string) (string, error) {
	type result struct {
		line string
		err  error
	}

	s.in.SetPrompt(text)
	done := make(chan result, 1)
	go func() {
		line, err := s.in.Readline()
		done <- result{line, err}
	}()

	var r result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r = <-done:
	}

	switch {
	case errors.Is(r.err, readline.ErrInterrupt):
		return "", errCancelled
	case errors.Is(r.err, io.EOF):
		return "", errQuit
	case r.err != nil:
		return "", fmt.Errorf("failed to read input: %w", r.err)
	}
	return strings.TrimSpace(r.line), nil
}

// promptNonEmpty re-prompts until the answer is not blank.
func (s *Shell) promptNonEmpty(ctx context.Context, text string) (string, error) {
	for {
		answer, err := s.prompt(ctx, text)
		if err != nil || answer != "" {
			return answer, err
		}
		s.println("Value is required.")
	}
}

// promptYear re-prompts until the answer is a year the car service accepts.
// With allowBlank an empty answer returns nil.
func (s *Shell) promptYear(ctx context.Context, text string, allowBlank bool) (*int, error) {
	years := s.cars.Years()
	for {
		answer, err := s.prompt(ctx, text)
		if err != nil {
			return nil, err
		}
		if answer == "" {
			if allowBlank {
				return nil, nil
			}
			s.println("Value is required.")
			continue
		}
		year, err := strconv.Atoi(answer)
		if err != nil {
			s.println("Year must be a number.")
			continue
		}
		if !years.Contains(year) {
			s.printf("Year must be between %d and %d.\n", years.Min, years.Max)
			continue
		}
		return &year, nil
	}
}

// confirm asks a yes/no question. Only "yes" or "y" confirms.
func (s *Shell) confirm(ctx context.Context, question string) (bool, error) {
	answer, err := s.prompt(ctx, question+" (yes/no): ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "yes" || answer == "y", nil
}

// choose prints labels as a numbered list and returns the picked index.
// It returns -1 when there is nothing to pick, the user cancels with Enter,
// or the answer is out of range.
func (s *Shell) choose(ctx context.Context, title string, labels []string) (int, error) {
	if len(labels) == 0 {
		s.println("Nothing to choose from.")
		return -1, nil
	}
	if title != "" {
		s.println(title)
	}
	for i, label := range labels {
		s.printf("%d. %s\n", i+1, label)
	}

	answer, err := s.prompt(ctx, "Pick a number (or Enter to cancel): ")
	if err != nil || answer == "" {
		return -1, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(labels) {
		s.println("Invalid choice.")
		return -1, nil
	}
	return n - 1, nil
}

// pause waits for Enter in interactive sessions.
func (s *Shell) pause(ctx context.Context) {
	if !s.interactive {
		return
	}
	// Any outcome continues; end of input is seen by the next prompt.
	_, _ = s.prompt(ctx, "Press Enter to continue...")
}

func (s *Shell) clear() {
	if s.interactive {
		_, _ = io.WriteString(s.out, clearScreen)
	}
}

func (s *Shell) println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}
