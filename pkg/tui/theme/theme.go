package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Tabs   TabTheme
	Footer FooterTheme
	List   ListTheme
	Panel  PanelTheme
}

// TabTheme styles the navigation row.
type TabTheme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Gap      lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/input bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
}

// ListTheme styles the rows of every widget.
type ListTheme struct {
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Done      lipgloss.Style
	Muted     lipgloss.Style
	Soon      lipgloss.Style
	Overdue   lipgloss.Style
	Separator lipgloss.Style
	Filter    lipgloss.Style
	FilterOn  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	tab := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Background(lipgloss.Color("236")).
		PaddingLeft(1).
		PaddingRight(1)

	filter := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	return Theme{
		Tabs: TabTheme{
			Active: tab.
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")),
			Inactive: tab,
			Gap:      lipgloss.NewStyle().PaddingLeft(1),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		List: ListTheme{
			Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Selected:  lipgloss.NewStyle().Bold(true),
			Done:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
			Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Soon:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
			Overdue:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
			Filter:    filter,
			FilterOn:  filter.Foreground(lipgloss.Color("229")).Underline(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}
