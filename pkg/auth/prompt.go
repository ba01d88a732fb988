package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPrompter reads answers from a terminal. Secrets are read without
// echo when the input is a TTY.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// NewTerminalPrompter prompts on stdout and reads stdin.
func NewTerminalPrompter() *TerminalPrompter {
	fd := int(os.Stdin.Fd())
	return &TerminalPrompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		fd:  fd,
		tty: term.IsTerminal(fd),
	}
}

// NewPrompter reads from in and writes prompts to out without hiding input.
func NewPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out, fd: -1}
}

// Intro prints the first run banner.
func (p *TerminalPrompter) Intro() {
	fmt.Fprintln(p.out, "No configuration found. Let's set up your API credentials.")
	fmt.Fprintln(p.out, "You can get these from https://my.telegram.org/apps")
}

func (p *TerminalPrompter) PromptAPIID() (string, error) {
	p.Intro()
	return p.Line("Enter your API ID: ")
}

func (p *TerminalPrompter) PromptAPIHash() (string, error) {
	return p.Secret("Enter your API Hash: ")
}

func (p *TerminalPrompter) Confirm(question string) (bool, error) {
	answer, err := p.Line(question)
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// Line prints prompt and reads one line.
func (p *TerminalPrompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Secret prints prompt and reads one line without echo.
func (p *TerminalPrompter) Secret(prompt string) (string, error) {
	if !p.tty {
		return p.Line(prompt)
	}
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
