package flow

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrInputClosed is returned by an Input when no further lines can be read,
// either because the stream ended or the user interrupted the session.
var ErrInputClosed = errors.New("input closed")

// Input supplies one line of user input per prompt.
type Input interface {
	ReadLine(prompt string) (string, error)
}

// LineInput reads newline-terminated responses from any reader.
// It is used for piped stdin and in tests with canned input.
type LineInput struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineInput creates a LineInput that writes prompts to out.
func NewLineInput(in io.Reader, out io.Writer) *LineInput {
	return &LineInput{in: bufio.NewReader(in), out: out}
}

// ReadLine writes prompt and returns the next line without its terminator.
func (l *LineInput) ReadLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(l.out, prompt)

	line, err := l.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrInputClosed
			}
			// Last line without a trailing newline.
			return strings.TrimRight(line, "\r"), nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadlineInput reads responses from an interactive terminal with line editing.
type ReadlineInput struct {
	rl *readline.Instance
}

// NewReadlineInput wraps a terminal session. Call Close when done.
func NewReadlineInput(in io.ReadCloser, out io.Writer) (*ReadlineInput, error) {
	rl, err := readline.NewEx(&readline.Config{
		Stdin:           in,
		Stdout:          out,
		InterruptPrompt: "^C",
		HistoryLimit:    -1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize line editor: %w", err)
	}
	return &ReadlineInput{rl: rl}, nil
}

// ReadLine shows prompt and returns the edited line.
func (r *ReadlineInput) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)

	line, err := r.rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt), errors.Is(err, io.EOF):
		return "", ErrInputClosed
	case err != nil:
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}

// Close releases the terminal.
func (r *ReadlineInput) Close() error {
	return r.rl.Close()
}
