// Package prompt gathers interactive input for task operations.
//
// Operations depend on the Prompter interface rather than the terminal
// directly, so they can be exercised by tests with scripted input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Prompter collects interactive input from a user.
type Prompter interface {
	// Input asks for a single line of free text.
	Input(label string) (string, error)

	// Select asks for a single choice among options and returns its index.
	// Empty or invalid input falls back to def.
	Select(label string, options []string, def int) (int, error)

	// MultiSelect asks for any number of choices among options and returns
	// their indices in the order entered. Empty input selects nothing.
	MultiSelect(label string, options []string) ([]int, error)
}

var labelStyle = lipgloss.NewStyle().Bold(true)

// Terminal is a line-oriented Prompter over an input/output pair,
// normally stdin and stdout.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Terminal prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out}
}

// Input implements Prompter.
func (t *Terminal) Input(label string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", labelStyle.Render(label))
	return t.readLine()
}

// Select implements Prompter.
func (t *Terminal) Select(label string, options []string, def int) (int, error) {
	fmt.Fprintln(t.out, labelStyle.Render(label))
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprintf(t.out, "Choice [%d]: ", def+1)

	line, err := t.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(options) {
		return def, nil
	}
	return n - 1, nil
}

// MultiSelect implements Prompter.
func (t *Terminal) MultiSelect(label string, options []string) ([]int, error) {
	fmt.Fprintln(t.out, labelStyle.Render(label))
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(t.out, "Choices (comma-separated, empty for none): ")

	line, err := t.readLine()
	if err != nil {
		return nil, err
	}
	return ParseSelections(line, len(options)), nil
}

func (t *Terminal) readLine() (string, error) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

// ParseSelections parses a comma- or space-separated list of 1-based
// choices into unique 0-based indices, dropping anything out of range.
func ParseSelections(line string, count int) []int {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	var indices []int
	seen := make(map[int]bool)
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > count {
			continue
		}
		if seen[n-1] {
			continue
		}
		seen[n-1] = true
		indices = append(indices, n-1)
	}
	return indices
}
