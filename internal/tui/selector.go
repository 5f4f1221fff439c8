// Package tui holds the interactive pieces of envoic: choosing what to
// delete and confirming it.
package tui

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
)

// ErrAborted is returned when the user cancels a form with Ctrl+C or Esc.
var ErrAborted = errors.New("selection aborted")

// Option is one selectable row.
type Option struct {
	Label    string
	Selected bool // pre-checked
}

// Selector asks the user to pick a subset of options and returns their
// indexes in ascending order.
type Selector interface {
	Select(options []Option) ([]int, error)
}

// NewSelector returns a checkbox form when interactive is true and a
// numbered prompt read from in otherwise.
func NewSelector(interactive bool, in io.Reader, out io.Writer) Selector {
	line := &lineSelector{in: in, out: out}
	if interactive {
		return &formSelector{in: in, out: out, fallback: line}
	}
	return line
}

type formSelector struct {
	in       io.Reader
	out      io.Writer
	fallback Selector
}

func (s *formSelector) Select(options []Option) ([]int, error) {
	if len(options) == 0 {
		return nil, nil
	}

	opts := make([]huh.Option[int], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o.Label, i).Selected(o.Selected)
	}

	var chosen []int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Select environments to delete").
				Description("Use ↑↓ to move, Space to toggle, Enter to confirm").
				Options(opts...).
				Height(min(len(options)+2, 20)).
				Value(&chosen),
		),
	).WithInput(s.in).WithOutput(s.out)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		log.Debug().Err(err).Msg("checkbox form failed, falling back to numbered prompt")
		return s.fallback.Select(options)
	}

	sort.Ints(chosen)
	return chosen, nil
}

type lineSelector struct {
	in  io.Reader
	out io.Writer
}

func (s *lineSelector) Select(options []Option) ([]int, error) {
	if len(options) == 0 {
		return nil, nil
	}

	fmt.Fprintln(s.out, "Found environments. Enter numbers to delete (comma-separated):")
	for i, o := range options {
		marker := " "
		if o.Selected {
			marker = "x"
		}
		fmt.Fprintf(s.out, "%3d [%s] %s\n", i+1, marker, o.Label)
	}
	fmt.Fprint(s.out, "Select [e.g. 1,3,5]: ")

	raw, err := readLine(s.in)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseSelection(raw, len(options)), nil
}

// ParseSelection turns "1, 3,3,x,9" into zero-based indexes below n.
// Tokens that are not plain positive integers in 1..n are ignored.
func ParseSelection(raw string, n int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" || strings.TrimLeft(token, "0123456789") != "" {
			continue
		}
		idx, err := strconv.Atoi(token)
		if err != nil || idx < 1 || idx > n || seen[idx-1] {
			continue
		}
		seen[idx-1] = true
		out = append(out, idx-1)
	}
	sort.Ints(out)
	return out
}

// readLine reads up to and excluding the next newline without buffering
// past it, so later prompts on the same reader see the remaining input.
// EOF after some input is not an error.
func readLine(in io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			sb.WriteByte(buf[0])
		}
		if err == io.EOF {
			if sb.Len() == 0 {
				return "", io.EOF
			}
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(sb.String(), "\r"), nil
}
