package terminal

import (
	"fmt"
	"io"
	"os"

	"rmod/internal/ports"

	"golang.org/x/term"
)

var _ ports.TerminalInput = (*TerminalInput)(nil)

// TerminalInput reads secrets from the controlling terminal.
type TerminalInput struct {
	in     *os.File
	prompt io.Writer
}

func ProvideTerminalInput() *TerminalInput {
	return &TerminalInput{in: os.Stdin, prompt: os.Stderr}
}

// ReadPassword prompts on stderr so the token never ends up in piped stdout.
func (t *TerminalInput) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(t.prompt, prompt)
	password, err := term.ReadPassword(int(t.in.Fd()))
	fmt.Fprintln(t.prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func (t *TerminalInput) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd()))
}
