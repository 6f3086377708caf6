// Package help is the key reference shown over the tabs when "?" is pressed.
package help

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

//go:embed help.md
var keysMarkdown string

const (
	minWidth  = 32
	minHeight = 8
)

var border = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())

// Overlay is a scrollable, bordered page of key bindings.
type Overlay struct {
	page          viewport.Model
	width, height int
	wrapped       int
	err           error
}

func New(width, height int) *Overlay {
	o := &Overlay{page: viewport.New(1, 1)}
	o.page.MouseWheelEnabled = true
	o.SetSize(width, height)
	return o
}

// SetSize fits the overlay into width x height, re-wrapping the text when the
// inner width changed.
func (o *Overlay) SetSize(width, height int) {
	o.width, o.height = max(width, minWidth), max(height, minHeight)
	o.page.Width = o.width - border.GetHorizontalFrameSize()
	o.page.Height = o.height - border.GetVerticalFrameSize()
	if o.page.Width == o.wrapped {
		return
	}
	o.wrapped = o.page.Width
	text, err := renderKeys(o.page.Width)
	o.err = err
	if err != nil {
		text = "help unavailable: " + err.Error()
	}
	o.page.SetContent(text)
	o.page.GotoTop()
}

func renderKeys(width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.NoTTYStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("help: %w", err)
	}
	out, err := r.Render(strings.TrimSpace(keysMarkdown))
	if err != nil {
		return "", fmt.Errorf("help: %w", err)
	}
	return out, nil
}

// Update scrolls the page.
func (o *Overlay) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	o.page, cmd = o.page.Update(msg)
	return cmd
}

func (o *Overlay) View() string {
	return border.Width(o.page.Width).Height(o.page.Height).Render(o.page.View())
}

// Err is the rendering failure, if any.
func (o *Overlay) Err() error {
	return o.err
}
