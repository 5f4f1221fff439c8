package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// ConfirmTyped prompts the user to type word and reports whether they did.
// End of input counts as a refusal.
func ConfirmTyped(in io.Reader, out io.Writer, word string) (bool, error) {
	fmt.Fprintf(out, "Type %q to confirm: ", word)
	typed, err := readLine(in)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(typed) == word, nil
}

// ConfirmCareful asks whether the listed careful-level artifact groups
// should really be deleted.
func ConfirmCareful(interactive bool, in io.Reader, out io.Writer, groups []string) (bool, error) {
	description := "These artifacts may not be regenerable:\n  " + strings.Join(groups, "\n  ")

	if interactive {
		var confirmed bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Delete careful artifacts?").
					Description(description).
					Affirmative("Yes, delete").
					Negative("No, go back").
					Value(&confirmed),
			),
		).WithInput(in).WithOutput(out)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return false, nil
			}
			return false, err
		}
		return confirmed, nil
	}

	fmt.Fprintln(out, description)
	fmt.Fprint(out, "Delete them anyway? [y/N]: ")
	answer, err := readLine(in)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
