package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

var errNotANumber = errors.New("please input a whole number")

// Prompter reads operator answers one line at a time.
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	terminal *os.File // set when input is an interactive terminal
}

// NewPrompter reads from in and writes prompts to out. Secrets are read
// without echo when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.terminal = f
	}
	return p
}

// Ask prints prompt and returns the next line without its line ending.
// It returns io.EOF once input is exhausted.
func (p *Prompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// AskToken is Ask with surrounding whitespace removed.
func (p *Prompter) AskToken(prompt string) (string, error) {
	line, err := p.Ask(prompt)
	return strings.TrimSpace(line), err
}

// AskInt asks for a whole number.
func (p *Prompter) AskInt(prompt string) (int, error) {
	line, err := p.AskToken(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w, got %q", errNotANumber, line)
	}
	return n, nil
}

// AskSecret asks for a value without echoing it on a terminal.
func (p *Prompter) AskSecret(prompt string) (string, error) {
	if p.terminal == nil {
		return p.Ask(prompt)
	}

	fmt.Fprint(p.out, prompt)
	secret, err := term.ReadPassword(int(p.terminal.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(secret), nil
}
