package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coursegraph/coursegraph/pkg/integrations/catalogue"
)

// deptDoneMsg reports one fetched department.
type deptDoneMsg struct {
	dept    string
	courses []catalogue.CourseInfo
	err     error
}

// tickMsg advances the spinner animation.
type tickMsg time.Time

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// fetchModel is the bubbletea model for the fetch progress display.
// Departments are fetched sequentially; each completed department is
// shown with its course count.
type fetchModel struct {
	ctx     context.Context
	client  *catalogue.Client
	depts   []string
	refresh bool

	idx     int
	counts  map[string]int
	entries map[string]string
	err     error
	frame   int
}

func newFetchModel(ctx context.Context, client *catalogue.Client, depts []string, refresh bool) fetchModel {
	return fetchModel{
		ctx:     ctx,
		client:  client,
		depts:   depts,
		refresh: refresh,
		counts:  make(map[string]int),
		entries: make(map[string]string),
	}
}

func (m fetchModel) Init() tea.Cmd {
	if len(m.depts) == 0 {
		return tea.Quit
	}
	return tea.Batch(m.fetchNext(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchNext downloads the current department in the background.
func (m fetchModel) fetchNext() tea.Cmd {
	dept := m.depts[m.idx]
	return func() tea.Msg {
		courses, err := m.client.FetchDepartment(m.ctx, dept, m.refresh)
		return deptDoneMsg{dept: dept, courses: courses, err: err}
	}
}

func (m fetchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.err = context.Canceled
			return m, tea.Quit
		}
	case tickMsg:
		m.frame++
		return m, tick()
	case deptDoneMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("fetch %s: %w", msg.dept, msg.err)
			return m, tea.Quit
		}
		m.counts[msg.dept] = len(msg.courses)
		for _, course := range msg.courses {
			m.entries[course.Code] = course.Prerequisites
		}
		m.idx++
		if m.idx >= len(m.depts) {
			return m, tea.Quit
		}
		return m, m.fetchNext()
	}
	return m, nil
}

func (m fetchModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Fetching catalogue"))
	b.WriteString("\n\n")

	for i, dept := range m.depts {
		switch {
		case i < m.idx:
			b.WriteString(styleIconSuccess.Render(iconSuccess))
			b.WriteString(" " + dept)
			b.WriteString(StyleDim.Render(fmt.Sprintf("  %d courses", m.counts[dept])))
		case i == m.idx:
			b.WriteString(styleIconSpinner.Render(spinnerFrames[m.frame%len(spinnerFrames)]))
			b.WriteString(" " + StyleHighlight.Render(dept))
		default:
			b.WriteString("  " + StyleDim.Render(dept))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q to cancel"))
	b.WriteString("\n")
	return b.String()
}

// runFetchTUI fetches all departments with an interactive progress view
// and returns the merged catalog entries.
func runFetchTUI(ctx context.Context, client *catalogue.Client, depts []string, refresh bool) (map[string]string, error) {
	p := tea.NewProgram(newFetchModel(ctx, client, depts, refresh), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(fetchModel)
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}
