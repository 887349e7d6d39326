package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordReader prompts for a secret.
type PasswordReader func(prompt string) (string, error)

// NewTerminalPasswordReader reads passwords from in without echo when in is a
// terminal. Piped input is read line by line.
func NewTerminalPasswordReader(in *os.File, out io.Writer) PasswordReader {
	fd := int(in.Fd())
	lines := bufio.NewReader(in)

	return func(prompt string) (string, error) {
		_, _ = fmt.Fprint(out, prompt)

		if term.IsTerminal(fd) {
			password, err := term.ReadPassword(fd)
			_, _ = fmt.Fprintln(out)
			if err != nil {
				return "", fmt.Errorf("read password: %w", err)
			}
			return string(password), nil
		}

		line, err := lines.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
