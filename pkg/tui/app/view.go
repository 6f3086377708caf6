package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/daybook/pkg/glyph"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/record"
	"tableflip.dev/daybook/pkg/timeline"
	"tableflip.dev/daybook/pkg/viewmodel"
)

const (
	cursorMark = "›"
	ellipsis   = "…"
)

// View renders the active tab between the tab row and the footer.
func (m Model) View() string {
	if m.svc == nil {
		return "no daybook service\n"
	}
	if m.mode == modeHelp && m.help != nil {
		return lipgloss.JoinVertical(lipgloss.Left, m.tabsView(), m.help.View())
	}

	var body string
	switch m.tab {
	case tabTodos:
		body = m.todosView()
	case tabCountdowns:
		body = m.countdownsView()
	case tabMilestones:
		body = m.milestonesView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.tabsView(), "", body, "", m.footerView())
}

func (m Model) tabsView() string {
	counts := [tabCount]int{
		len(viewmodel.Todos(m.svc.Todos(), viewmodel.FilterActive)),
		len(m.svc.Countdowns()),
		0,
	}
	for _, ms := range m.svc.Milestones() {
		if ms.Pending() {
			counts[tabMilestones]++
		}
	}

	tabs := make([]string, 0, tabCount)
	for t := tab(0); t < tabCount; t++ {
		name := fmt.Sprintf("[%d] %s (%d)", t+1, t.title(), counts[t])
		if t == m.tab {
			tabs = append(tabs, m.theme.Tabs.Active.Render(name))
		} else {
			tabs = append(tabs, m.theme.Tabs.Inactive.Render(name))
		}
		tabs = append(tabs, m.theme.Tabs.Gap.Render(""))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) footerView() string {
	var lines []string
	switch m.mode {
	case modeInsert:
		label := "Add todo"
		switch m.action {
		case actionAddName:
			label = "Name"
		case actionAddDate:
			label = "Date for " + m.pendingName
		case actionEditDate:
			label = "New date"
		}
		lines = append(lines, m.theme.Footer.Prompt.Render(label)+" "+m.input.View())
		lines = append(lines, m.theme.Footer.Help.Render("enter save · esc cancel"))
	case modeStatus:
		lines = append(lines, m.statusPicker())
		lines = append(lines, m.theme.Footer.Help.Render("j/k choose · enter set · esc cancel"))
	default:
		lines = append(lines, m.theme.Footer.Status.Render(m.status))
	}
	if m.err != nil {
		lines = append(lines, m.theme.Footer.Error.Render("error: "+m.err.Error()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusPicker() string {
	parts := make([]string, 0, 3)
	for i, st := range record.AllStatuses() {
		if i == m.statusIndex {
			parts = append(parts, m.theme.List.FilterOn.Render(string(st)))
		} else {
			parts = append(parts, m.theme.List.Filter.Render(string(st)))
		}
	}
	return m.theme.Footer.Prompt.Render("Status") + " " + strings.Join(parts, " | ")
}

// nameWidth is the room left for a name once the fixed columns are drawn.
func (m Model) nameWidth(fixed int) int {
	w := m.width - fixed
	if w < 12 {
		w = 12
	}
	if w > printers.MaxNameWidth {
		w = printers.MaxNameWidth
	}
	return w
}

func (m Model) line(selected bool, text string) string {
	if selected {
		return m.theme.List.Cursor.Render(cursorMark) + " " + m.theme.List.Selected.Render(text)
	}
	return "  " + text
}

func (m Model) todosView() string {
	var b strings.Builder

	filters := make([]string, 0, 3)
	for _, f := range viewmodel.Filters() {
		if f == m.filter {
			filters = append(filters, m.theme.List.FilterOn.Render(string(f)))
		} else {
			filters = append(filters, m.theme.List.Filter.Render(string(f)))
		}
	}
	todos := viewmodel.Todos(m.svc.Todos(), m.filter)
	fmt.Fprintf(&b, "%s   %s\n\n", strings.Join(filters, " | "), m.theme.List.Muted.Render(itemCount(len(todos))))

	if len(todos) == 0 {
		b.WriteString(m.theme.List.Muted.Render("  nothing here, press a to add a todo"))
		return b.String()
	}
	width := m.nameWidth(6)
	for i, t := range todos {
		text := truncate.StringWithTail(t.Text, uint(width), ellipsis)
		mark := glyph.Open.String()
		if t.Completed {
			mark = glyph.Done.String()
			text = m.theme.List.Done.Render(text)
		}
		b.WriteString(m.line(i == m.cursor[tabTodos], mark+" "+text))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

func (m Model) countdownsView() string {
	rows := m.countdownRows()
	if len(rows) == 0 {
		return m.theme.List.Muted.Render("  no countdowns, press a to add one")
	}
	width := m.nameWidth(40)
	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		mark := glyph.Countdown
		label := r.Label
		switch {
		case r.Days == 0:
			mark = glyph.Today
			label = m.theme.List.Soon.Render(label)
		case r.Days < 0:
			mark = glyph.Past
			label = m.theme.List.Muted.Render(label)
		case r.Days <= 7:
			label = m.theme.List.Soon.Render(label)
		}
		name := padRight(truncate.StringWithTail(r.Name, uint(width), ellipsis), width)
		text := fmt.Sprintf("%s %s  %s  %s", mark, name, r.Date, label)
		lines = append(lines, m.line(i == m.cursor[tabCountdowns], text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) milestonesView() string {
	v := m.milestoneView()
	if len(v.Rows) == 0 {
		return m.theme.List.Muted.Render("  no milestones, press a to add one")
	}

	var b strings.Builder
	if l, ok := timeline.Compute(m.svc.Milestones(), m.svc.Today(), m.opts.Timeline); ok {
		trackWidth := m.width - 4
		if trackWidth > printers.DefaultTrackWidth {
			trackWidth = printers.DefaultTrackWidth
		}
		track, numbers := printers.Track(l, trackWidth)
		fmt.Fprintf(&b, "  %s → %s (%d days)\n", l.Start.Display(), l.End.Display(), l.Days())
		fmt.Fprintf(&b, "  %s\n  %s\n\n", track, numbers)
	}

	width := m.nameWidth(40)
	for i, r := range v.Rows {
		if v.HasSeparator() && i == v.Split {
			b.WriteString(m.theme.List.Separator.Render(fmt.Sprintf("  completed milestones (%d)", v.Completed)))
			b.WriteString("\n")
		}
		mark := glyph.Node
		label := r.Label
		name := padRight(truncate.StringWithTail(r.Name, uint(width), ellipsis), width)
		switch r.Status {
		case record.StatusCompleted:
			mark = glyph.Done
			name = m.theme.List.Done.Render(name)
			label = m.theme.List.Muted.Render(label)
		case record.StatusCancelled:
			mark = glyph.Cancelled
			name = m.theme.List.Muted.Render(name)
			label = m.theme.List.Muted.Render(label)
		default:
			if r.Days < 0 {
				label = m.theme.List.Overdue.Render(label)
			} else if r.Days <= 7 {
				label = m.theme.List.Soon.Render(label)
			}
		}
		text := fmt.Sprintf("%s %s  %s  %s", mark, name, r.Date, label)
		b.WriteString(m.line(i == m.cursor[tabMilestones], text))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
