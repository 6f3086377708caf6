// Package snake asks for record fields interactively, validating as the user
// types.
package snake

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/record"
)

// Prompter runs prompts against a command's streams.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// New prompts on the command's stdin and stdout.
func New(cmd *cobra.Command) *Prompter {
	return &Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
}

var textTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// Text asks for a line of input. def is offered as an editable default.
func (p *Prompter) Text(label, def string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Templates: textTemplates,
		Validate:  validate,
		Stdin:     io.NopCloser(p.In),
		Stdout:    nopWriteCloser{p.Out},
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// Name asks for a non-empty name or text.
func (p *Prompter) Name(label, def string) (string, error) {
	return p.Text(label, def, ValidateName)
}

// Date asks for a YYYY-MM-DD date.
func (p *Prompter) Date(label, def string) (string, error) {
	return p.Text(label+" (YYYY-MM-DD)", def, ValidateDate)
}

// Status offers the milestone statuses, starting on current.
func (p *Prompter) Status(current record.Status) (record.Status, error) {
	statuses := record.AllStatuses()
	cursor := 0
	for i, s := range statuses {
		if s == current {
			cursor = i
		}
	}
	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Status",
		Items:     statuses,
		CursorPos: cursor,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   "➜  {{ . | bold }}",
			Inactive: "   {{ . }}",
			Selected: "{{ . | bold }}",
		},
		Stdin:  io.NopCloser(p.In),
		Stdout: nopWriteCloser{p.Out},
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return statuses[i], nil
}

// Confirm asks a yes/no question. Answering no is not an error.
func (p *Prompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(p.In),
		Stdout:    nopWriteCloser{p.Out},
	}
	result, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if result == "" {
		return false, nil
	}
	return ParseBool(result)
}

// ValidateName rejects blank input.
func ValidateName(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

// ValidateDate accepts real YYYY-MM-DD calendar dates.
func ValidateDate(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("date required")
	}
	if _, err := record.ParseDate(input); err != nil {
		return errors.New("expected YYYY-MM-DD")
	}
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
