package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/record"
	"tableflip.dev/daybook/pkg/refresh"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/timeline"
	"tableflip.dev/daybook/pkg/tui/components/help"
	"tableflip.dev/daybook/pkg/tui/theme"
	"tableflip.dev/daybook/pkg/viewmodel"
)

type tab int

const (
	tabTodos tab = iota
	tabCountdowns
	tabMilestones
	tabCount
)

func (t tab) title() string {
	switch t {
	case tabTodos:
		return "Todos"
	case tabCountdowns:
		return "Countdowns"
	case tabMilestones:
		return "Milestones"
	}
	return ""
}

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeStatus
	modeHelp
)

type action int

const (
	actionNone action = iota
	actionAddTodo
	actionAddName
	actionAddDate
	actionEditDate
)

const normalHint = "tab switch · j/k move · a add · d delete · ? help · q quit"

// Options tunes the shell.
type Options struct {
	// Refresh is how often the day counts are recomputed.
	Refresh time.Duration
	// Timeline sizes the milestone track window.
	Timeline timeline.Options
}

// Model contains UI state
type Model struct {
	svc   *app.Service
	ctx   context.Context
	opts  Options
	theme theme.Theme

	tab    tab
	mode   mode
	action action
	cursor [tabCount]int
	filter viewmodel.Filter

	input       textinput.Model
	pendingName string
	targetID    record.ID
	statusIndex int

	help *help.Overlay

	status string
	err    error

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	width  int
	height int
}

// New creates a new UI model backed by the Service.
func New(ctx context.Context, svc *app.Service, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Refresh <= 0 {
		opts.Refresh = refresh.DefaultInterval
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = "> "

	return Model{
		svc:    svc,
		ctx:    ctx,
		opts:   opts,
		theme:  theme.Default(),
		filter: viewmodel.FilterAll,
		input:  ti,
		status: normalHint,
		width:  80,
		height: 24,
	}
}

// Run launches the Bubble Tea UI and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service, opts Options) error {
	p := tea.NewProgram(New(ctx, svc, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.stopWatch()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// messages
type tickMsg struct{ now time.Time }

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// Init starts the refresh tick and the store watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), startWatchCmd(m.ctx, m.svc))
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Refresh, func(t time.Time) tea.Msg { return tickMsg{now: t} })
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.help != nil {
			m.help.SetSize(m.width, m.height-2)
		}
	case tickMsg:
		// Nothing to mutate: the next View recomputes the day counts.
		cmds = append(cmds, m.tick())
	case watchStartedMsg:
		if msg.err != nil {
			m.fail(fmt.Errorf("watch: %w", msg.err))
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		m.reload()
		cmds = append(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	m.clampCursors()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.stopWatch()
		return tea.Quit
	}
	switch m.mode {
	case modeHelp:
		return m.handleHelpKey(msg)
	case modeInsert:
		return m.handleInsertKey(msg)
	case modeStatus:
		m.handleStatusKey(msg)
		return nil
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "?":
		m.mode = modeNormal
		return nil
	}
	return m.help.Update(msg)
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.stopWatch()
		return tea.Quit
	case "?":
		if m.help == nil {
			m.help = help.New(m.width, m.height-2)
		}
		m.mode = modeHelp
	case "tab", "l", "right":
		m.switchTab((m.tab + 1) % tabCount)
	case "shift+tab", "h", "left":
		m.switchTab((m.tab + tabCount - 1) % tabCount)
	case "1":
		m.switchTab(tabTodos)
	case "2":
		m.switchTab(tabCountdowns)
	case "3":
		m.switchTab(tabMilestones)
	case "j", "down":
		m.cursor[m.tab]++
	case "k", "up":
		m.cursor[m.tab]--
	case "g", "home":
		m.cursor[m.tab] = 0
	case "G", "end":
		m.cursor[m.tab] = m.rowCount() - 1
	case "r":
		m.reload()
		if m.err == nil {
			m.status = "Reloaded"
		}
	case "a", "o":
		if m.tab == tabTodos {
			return m.prompt(actionAddTodo, "New todo", "")
		}
		return m.prompt(actionAddName, "Name", "")
	case "d", "delete":
		m.deleteSelected()
	case " ", "space", "x", "enter":
		if m.tab == tabTodos {
			m.toggleSelected()
		}
	case "f":
		if m.tab == tabTodos {
			m.filter = m.filter.Next()
			m.cursor[tabTodos] = 0
			m.status = "Showing " + string(m.filter) + " todos"
		}
	case "c":
		if m.tab == tabTodos {
			m.clearCompleted()
		}
	case "e":
		id, date, ok := m.selectedDated()
		if ok {
			m.targetID = id
			return m.prompt(actionEditDate, "Date (YYYY-MM-DD)", date)
		}
	case "s":
		if m.tab == tabMilestones {
			if ms, ok := m.selectedMilestone(); ok {
				m.targetID = ms.ID
				m.statusIndex = indexOfStatus(ms.Status)
				m.mode = modeStatus
			}
		}
	}
	return nil
}

func (m *Model) switchTab(t tab) {
	m.tab = t
	m.err = nil
	m.status = normalHint
}

func (m *Model) prompt(a action, placeholder, value string) tea.Cmd {
	m.mode = modeInsert
	m.action = a
	m.err = nil
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m *Model) endPrompt() {
	m.mode = modeNormal
	m.action = actionNone
	m.pendingName = ""
	m.targetID = ""
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) handleInsertKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.endPrompt()
		m.status = "Cancelled"
		return nil
	case "enter":
		return m.submit(strings.TrimSpace(m.input.Value()))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) submit(value string) tea.Cmd {
	switch m.action {
	case actionAddTodo:
		if _, err := m.svc.AddTodo(m.ctx, value); err != nil {
			m.fail(err)
			return nil
		}
		m.endPrompt()
		m.cursor[tabTodos] = len(viewmodel.Todos(m.svc.Todos(), m.filter)) - 1
		m.status = "Added"
	case actionAddName:
		if value == "" {
			m.fail(app.ErrEmptyName)
			return nil
		}
		m.pendingName = value
		m.action = actionAddDate
		m.err = nil
		m.input.Placeholder = "Date (YYYY-MM-DD)"
		m.input.SetValue("")
	case actionAddDate:
		var err error
		if m.tab == tabMilestones {
			_, err = m.svc.AddMilestone(m.ctx, m.pendingName, value)
		} else {
			_, err = m.svc.AddCountdown(m.ctx, m.pendingName, value)
		}
		if err != nil {
			m.fail(err)
			return nil
		}
		m.endPrompt()
		m.status = "Added"
	case actionEditDate:
		var err error
		if m.tab == tabMilestones {
			_, err = m.svc.UpdateMilestoneDate(m.ctx, m.targetID, value)
		} else {
			_, err = m.svc.UpdateCountdownDate(m.ctx, m.targetID, value)
		}
		if err != nil && !errors.Is(err, app.ErrNotFound) {
			m.fail(err)
			return nil
		}
		m.endPrompt()
		if err == nil {
			m.status = "Date changed"
		}
	default:
		m.endPrompt()
	}
	return nil
}

func (m *Model) handleStatusKey(msg tea.KeyMsg) {
	statuses := record.AllStatuses()
	switch msg.String() {
	case "esc", "q":
		m.mode = modeNormal
		m.targetID = ""
		m.status = "Cancelled"
	case "j", "down", "tab":
		m.statusIndex = (m.statusIndex + 1) % len(statuses)
	case "k", "up", "shift+tab":
		m.statusIndex = (m.statusIndex + len(statuses) - 1) % len(statuses)
	case "enter", " ", "space":
		chosen := statuses[m.statusIndex]
		if _, err := m.svc.UpdateMilestoneStatus(m.ctx, m.targetID, string(chosen)); err != nil {
			m.soft(err)
		} else {
			m.status = "Marked " + string(chosen)
		}
		m.mode = modeNormal
		m.targetID = ""
	}
}

func indexOfStatus(s record.Status) int {
	for i, st := range record.AllStatuses() {
		if st == s {
			return i
		}
	}
	return 0
}

func (m *Model) toggleSelected() {
	todos := viewmodel.Todos(m.svc.Todos(), m.filter)
	i := m.cursor[tabTodos]
	if i < 0 || i >= len(todos) {
		return
	}
	t, err := m.svc.ToggleTodo(m.ctx, todos[i].ID)
	if err != nil {
		m.soft(err)
		return
	}
	if t.Completed {
		m.status = "Done"
	} else {
		m.status = "Reopened"
	}
}

func (m *Model) clearCompleted() {
	n, err := m.svc.ClearCompleted(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("Cleared %d completed", n)
}

func (m *Model) deleteSelected() {
	var err error
	switch m.tab {
	case tabTodos:
		todos := viewmodel.Todos(m.svc.Todos(), m.filter)
		if i := m.cursor[tabTodos]; i >= 0 && i < len(todos) {
			err = m.svc.DeleteTodo(m.ctx, todos[i].ID)
		} else {
			return
		}
	case tabCountdowns:
		rows := m.countdownRows()
		if i := m.cursor[tabCountdowns]; i >= 0 && i < len(rows) {
			err = m.svc.DeleteCountdown(m.ctx, rows[i].ID)
		} else {
			return
		}
	case tabMilestones:
		ms, ok := m.selectedMilestone()
		if !ok {
			return
		}
		err = m.svc.DeleteMilestone(m.ctx, ms.ID)
	}
	if err != nil {
		m.soft(err)
		return
	}
	m.status = "Deleted"
}

func (m *Model) selectedMilestone() (record.Milestone, bool) {
	rows := m.milestoneView().Rows
	i := m.cursor[tabMilestones]
	if i < 0 || i >= len(rows) {
		return record.Milestone{}, false
	}
	return rows[i].Milestone, true
}

func (m *Model) selectedDated() (record.ID, string, bool) {
	switch m.tab {
	case tabCountdowns:
		rows := m.countdownRows()
		if i := m.cursor[tabCountdowns]; i >= 0 && i < len(rows) {
			return rows[i].ID, rows[i].Date.String(), true
		}
	case tabMilestones:
		if ms, ok := m.selectedMilestone(); ok {
			return ms.ID, ms.Date.String(), true
		}
	}
	return "", "", false
}

func (m *Model) countdownRows() []viewmodel.CountdownRow {
	return viewmodel.Countdowns(m.svc.Countdowns(), m.svc.Today())
}

func (m *Model) milestoneView() viewmodel.MilestoneView {
	return viewmodel.Milestones(m.svc.Milestones(), m.svc.Today())
}

func (m *Model) rowCount() int {
	if m.svc == nil {
		return 0
	}
	switch m.tab {
	case tabTodos:
		return len(viewmodel.Todos(m.svc.Todos(), m.filter))
	case tabCountdowns:
		return len(m.svc.Countdowns())
	case tabMilestones:
		return len(m.svc.Milestones())
	}
	return 0
}

func (m *Model) clampCursors() {
	current := m.tab
	for t := tab(0); t < tabCount; t++ {
		m.tab = t
		n := m.rowCount()
		if m.cursor[t] >= n {
			m.cursor[t] = n - 1
		}
		if m.cursor[t] < 0 {
			m.cursor[t] = 0
		}
	}
	m.tab = current
}

func (m *Model) reload() {
	if err := m.svc.Reload(m.ctx); err != nil {
		m.fail(err)
	}
}

// fail shows err on the status line.
func (m *Model) fail(err error) {
	m.err = err
}

// soft drops lookups that raced with a change from elsewhere; the next render
// shows the current state anyway.
func (m *Model) soft(err error) {
	if errors.Is(err, app.ErrNotFound) {
		return
	}
	m.fail(err)
}
