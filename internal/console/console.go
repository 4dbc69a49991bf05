// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package console implements the interactive terminal surface: menus,
// password prompts, folder selection and the batch session loop.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrQuit is returned when the user quits a folder menu, cancelling the
// current batch.
var ErrQuit = errors.New("user quit")

// Console reads lines from the user and writes prompts. Reads block
// without a timeout.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	// fd is the terminal behind in, or -1 when in is not a terminal.
	fd int
}

// New returns a console over in and out.
func New(in io.Reader, out io.Writer) *Console {
	c := &Console{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.fd = int(f.Fd())
	}
	return c
}

// Out returns the writer prompts go to.
func (c *Console) Out() io.Writer { return c.out }

// ReadLine prints prompt and returns the next line without its line
// ending. It returns io.EOF when input is closed before any text.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword prints prompt and reads a line without echoing it when
// input is a terminal. Other input is read like ReadLine.
func (c *Console) ReadPassword(prompt string) (string, error) {
	if c.fd < 0 {
		return c.ReadLine(prompt)
	}
	fmt.Fprint(c.out, prompt)
	b, err := term.ReadPassword(c.fd)
	fmt.Fprintln(c.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

// Choose prints prompt until the answer matches one of the options
// (case-insensitive, surrounding spaces ignored) and returns the matched
// option key. aliases maps accepted inputs to option keys.
func (c *Console) Choose(prompt string, aliases map[string]string) (string, error) {
	for {
		line, err := c.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if key, ok := aliases[strings.ToLower(strings.TrimSpace(line))]; ok {
			return key, nil
		}
		fmt.Fprintln(c.out, "Invalid choice, please try again.")
	}
}

// WaitEnter blocks until the user presses Enter.
func (c *Console) WaitEnter(prompt string) error {
	_, err := c.ReadLine(prompt)
	return err
}

// yesNoQuit accepts y/n/q in short and long forms.
var yesNoQuit = map[string]string{
	"y": "y", "yes": "y",
	"n": "n", "no": "n",
	"q": "q", "quit": "q", "exit": "q",
}

// yesNo accepts y/n in short and long forms.
var yesNo = map[string]string{
	"y": "y", "yes": "y",
	"n": "n", "no": "n",
}
