// Package app is the interactive habits dashboard: a month calendar, the
// selected day's hour plan, the record window, and a check-in form, all
// backed by one session.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/habits/pkg/calendar"
	"tableflip.dev/habits/pkg/day"
	"tableflip.dev/habits/pkg/plan"
	"tableflip.dev/habits/pkg/printers"
	"tableflip.dev/habits/pkg/record"
	"tableflip.dev/habits/pkg/report"
	"tableflip.dev/habits/pkg/session"
	"tableflip.dev/habits/pkg/tui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeCheckIn
	modeReport
)

type reportMsg struct {
	text string
}

// Model is the Bubble Tea model of the dashboard.
type Model struct {
	ctx     context.Context
	state   *session.State
	reports *report.Builder
	theme   theme.Theme

	mode   mode
	width  int
	height int

	hour  int
	input textinput.Model

	checked  []bool
	habitIdx int
	mood     int

	status  string
	errMsg  string
	pending bool
	report  string
}

// New builds a dashboard over state. reports may be nil.
func New(ctx context.Context, state *session.State, reports *report.Builder) *Model {
	in := textinput.New()
	in.Placeholder = "Title | optional note"
	in.Prompt = ""

	m := &Model{
		ctx:     ctx,
		state:   state,
		reports: reports,
		theme:   theme.Default(),
		hour:    9,
		input:   in,
		checked: make([]bool, len(state.Habits)),
		mood:    6,
	}
	if rec, ok := state.Records.Get(state.Today()); ok {
		m.mood = rec.MoodScore
	}
	return m
}

// Run launches the dashboard full screen.
func Run(ctx context.Context, state *session.State, reports *report.Builder) error {
	p := tea.NewProgram(New(ctx, state, reports), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.SetWidth(max(m.width/2-12, 10))
	case reportMsg:
		m.pending = false
		m.report = msg.text
		m.mode = modeReport
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m, m.handleAddKey(msg)
		case modeCheckIn:
			return m, m.handleCheckInKey(msg)
		case modeReport:
			switch msg.String() {
			case "esc", "enter", "q":
				m.mode = modeNormal
			}
			return m, nil
		default:
			return m, m.handleNormalKey(msg)
		}
	}
	return m, nil
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg) tea.Cmd {
	m.errMsg = ""
	cur := &m.state.Cursor
	switch msg.String() {
	case "q", "esc":
		return tea.Quit
	case "[":
		cur.Shift(-1)
	case "]":
		cur.Shift(1)
	case "{":
		cur.Shift(-12)
	case "}":
		cur.Shift(12)
	case "h", "left":
		cur.Move(-1)
	case "l", "right":
		cur.Move(1)
	case "k", "up":
		cur.Move(-7)
	case "j", "down":
		cur.Move(7)
	case "t":
		cur.Jump(m.state.Today())
	case "K", "shift+up":
		m.hour = max(m.hour-1, 0)
	case "J", "shift+down":
		m.hour = min(m.hour+1, plan.HoursPerDay-1)
	case "a", "enter":
		m.mode = modeAdd
		m.input.Reset()
		if e := m.entryAtHour(); e != nil {
			v := e.Title
			if e.Note != "" {
				v += " | " + e.Note
			}
			m.input.SetValue(v)
		}
		return m.input.Focus()
	case "d", "x", "backspace", "delete":
		if n := m.state.Plans.DeleteEntries(cur.Selected, m.hour); n > 0 {
			m.status = fmt.Sprintf("deleted %02d:00", m.hour)
		}
	case "c":
		m.mode = modeCheckIn
		m.habitIdx = 0
	case "r":
		return m.requestReport()
	}
	return nil
}

func (m *Model) handleAddKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.errMsg = ""
		m.input.Blur()
		return nil
	case "enter":
		title, note, _ := strings.Cut(m.input.Value(), "|")
		_, err := m.state.Plans.AddEntry(m.state.Cursor.Selected, m.hour, title, strings.TrimSpace(note))
		if err != nil {
			m.errMsg = err.Error()
			return nil
		}
		m.errMsg = ""
		m.status = fmt.Sprintf("saved %02d:00 on %s", m.hour, day.Key(m.state.Cursor.Selected))
		m.mode = modeNormal
		m.input.Blur()
		m.input.Reset()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleCheckInKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeNormal
	case "k", "up":
		m.habitIdx = max(m.habitIdx-1, 0)
	case "j", "down":
		m.habitIdx = min(m.habitIdx+1, len(m.checked)-1)
	case "space", " ", "x":
		if len(m.checked) > 0 {
			m.checked[m.habitIdx] = !m.checked[m.habitIdx]
		}
	case "+", "=", "l", "right":
		m.mood = min(m.mood+1, record.MaxMood)
	case "-", "h", "left":
		m.mood = max(m.mood-1, record.MinMood)
	case "enter":
		labels := make([]string, 0, len(m.checked))
		for i, ok := range m.checked {
			if ok {
				labels = append(labels, m.state.Habits[i])
			}
		}
		ci, err := m.state.CheckIn(labels, m.mood)
		if err != nil {
			m.errMsg = err.Error()
			return nil
		}
		m.status = fmt.Sprintf("checked in %d/%d, mood %d", ci.Record.CheckedCount, ci.Total, ci.Record.MoodScore)
		m.mode = modeNormal
		return m.buildReport(ci)
	}
	return nil
}

func (m *Model) requestReport() tea.Cmd {
	ci, ok := report.Today(m.state)
	if !ok {
		m.errMsg = "check in first (c)"
		return nil
	}
	return m.buildReport(ci)
}

func (m *Model) buildReport(ci session.CheckIn) tea.Cmd {
	if m.reports == nil {
		return nil
	}
	m.pending = true
	b, ctx := m.reports, m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		s := b.Build(ctx, ci)
		md, err := s.Markdown()
		if err != nil {
			return reportMsg{text: err.Error()}
		}
		return reportMsg{text: md}
	}
}

func (m *Model) entryAtHour() *plan.Entry {
	for _, e := range m.state.Plans.EntriesFor(m.state.Cursor.Selected) {
		if e.Hour == m.hour {
			return &e
		}
	}
	return nil
}

func (m *Model) View() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.panel("Calendar", calendar.Render(m.state.Cursor.Month, m.state.CalendarDays(), m.theme.Calendar), m.mode == modeNormal),
		m.panel("Last days", m.recordsView(), false),
	)

	var right string
	switch m.mode {
	case modeCheckIn:
		right = m.panel("Check-in", m.checkInView(), true)
	case modeReport:
		right = m.panel("Report", m.reportView(), true)
	default:
		right = m.panel(m.state.Cursor.Selected.Format("Mon Jan 2 2006"), m.dayView(), m.mode == modeAdd)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footer())
}

func (m *Model) panel(title, body string, focused bool) string {
	frame := m.theme.Panel.Frame
	if focused {
		frame = m.theme.Panel.Focused
	}
	return frame.Render(m.theme.Panel.Title.Render(title) + "\n" + body)
}

func (m *Model) recordsView() string {
	recs := m.state.Records.List()
	if len(recs) == 0 {
		return m.theme.Footer.Status.Render("no records yet")
	}
	lines := make([]string, 0, len(recs))
	for _, r := range recs {
		bar := m.theme.Bar.BarColor(r.AchievementRate).Render(printers.Bar(r.AchievementRate))
		lines = append(lines, fmt.Sprintf("%s %s %3d%% %2d", r.Date.Format("01-02"), bar, r.AchievementRate, r.MoodScore))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) dayView() string {
	st := m.theme.Slot
	start, rows := m.slotWindow()
	slots := m.state.Plans.Slots(m.state.Cursor.Selected)

	lines := make([]string, 0, rows+2)
	for _, s := range slots[start : start+rows] {
		label := st.Hour.Render(fmt.Sprintf("%02d:00", s.Hour))
		text := st.Empty.Render("·")
		if s.Entry != nil {
			text = st.Entry.Render(s.Entry.Title)
			if s.Entry.Note != "" {
				text += " " + st.Note.Render(s.Entry.Note)
			}
		}
		if s.Hour == m.hour {
			if m.mode == modeAdd {
				text = m.input.View()
			}
			label = st.Cursor.Render(fmt.Sprintf("%02d:00", s.Hour))
		}
		lines = append(lines, label+" "+text)
	}
	return strings.Join(lines, "\n")
}

// slotWindow picks the visible hour rows so the cursor hour stays on screen.
func (m *Model) slotWindow() (start, rows int) {
	rows = plan.HoursPerDay
	if m.height > 0 {
		rows = min(max(m.height-6, 6), plan.HoursPerDay)
	}
	start = min(max(m.hour-rows/2, 0), plan.HoursPerDay-rows)
	return start, rows
}

func (m *Model) checkInView() string {
	lines := make([]string, 0, len(m.checked)+3)
	for i, h := range m.state.Habits {
		box := "[ ]"
		if m.checked[i] {
			box = "[x]"
		}
		line := box + " " + h
		if i == m.habitIdx {
			line = m.theme.Slot.Cursor.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", fmt.Sprintf("mood  %s %d/%d", strings.Repeat("●", m.mood)+strings.Repeat("○", record.MaxMood-m.mood), m.mood, record.MaxMood))
	return strings.Join(lines, "\n")
}

func (m *Model) reportView() string {
	width := 60
	if m.width > 0 {
		width = max(m.width/2-6, 20)
	}
	return wordwrap.String(strings.TrimSpace(m.report), width)
}

func (m *Model) footer() string {
	var help string
	switch m.mode {
	case modeAdd:
		help = "enter save • esc cancel"
	case modeCheckIn:
		help = "j/k move • space toggle • +/- mood • enter save • esc cancel"
	case modeReport:
		help = "esc back"
	default:
		help = "[/] month • h/j/k/l day • J/K hour • a add • d delete • c check-in • r report • t today • q quit"
	}
	lines := []string{m.theme.Footer.Help.Render(help)}
	switch {
	case m.errMsg != "":
		lines = append(lines, m.theme.Footer.Error.Render(m.errMsg))
	case m.pending:
		lines = append(lines, m.theme.Footer.Status.Render("building report…"))
	case m.status != "":
		lines = append(lines, m.theme.Footer.Status.Render(m.status))
	}
	return strings.Join(lines, "\n")
}
