package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/fittracker/internal/client/forms"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password from the user's
// terminal without echo. A newline is printed after the read to keep the UI
// tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetField prompts for one form field. The current value is kept when the
// user just presses Enter; "-" clears it.
func GetField(reader *bufio.Reader, f forms.Field, w io.Writer) (string, error) {
	prompt := f.Label
	if f.Required {
		prompt += " *"
	}
	if len(f.Options) > 0 {
		prompt += " (" + strings.Join(f.Options, "/") + ")"
	}
	switch {
	case f.Value != "":
		prompt += " [" + f.Value + "]"
	case f.Placeholder != "":
		prompt += " e.g. " + f.Placeholder
	}

	v, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	switch v {
	case "":
		return f.Value, nil
	case "-":
		return "", nil
	}
	return v, nil
}

// FillForm walks the enabled fields of form and stores the answers in it.
// Password fields are read without echo.
func FillForm(reader *bufio.Reader, form *forms.Form, w io.Writer) error {
	if form.Title != "" {
		fmt.Fprintln(w, form.Title)
	}
	for _, f := range form.Fields {
		if f.Disabled {
			continue
		}
		if f.Type == forms.Password {
			pw, err := GetPassword(f.Label, w)
			if err != nil {
				return err
			}
			form.Set(f.ID, string(pw))
			continue
		}
		v, err := GetField(reader, f, w)
		if err != nil {
			return err
		}
		form.Set(f.ID, v)
	}
	return nil
}

// Confirm asks a yes/no question; only "y" and "yes" confirm.
func Confirm(reader *bufio.Reader, question string, w io.Writer) (bool, error) {
	v, err := GetSimpleText(reader, question+" (y/N)", w)
	if err != nil {
		return false, err
	}
	v = strings.ToLower(v)
	return v == "y" || v == "yes", nil
}
