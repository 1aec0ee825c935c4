package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunSpinner runs a minimal Bubble Tea spinner while executing the given
// action, and returns the action's error once the UI exits.
func RunSpinner(ctx context.Context, title string, action func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	m := newSpinnerModel(ctx, title, action)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}

type actionDoneMsg struct{ err error }

type spinnerModel struct {
	title string
	spin  spinner.Model
	style lipgloss.Style
	done  chan actionDoneMsg
	ended bool
	err   error
}

func newSpinnerModel(ctx context.Context, title string, action func() error) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	m := &spinnerModel{
		title: title,
		spin:  s,
		style: lipgloss.NewStyle().Padding(0, 1),
		done:  make(chan actionDoneMsg, 1),
	}

	go func() {
		err := action()
		select {
		case <-ctx.Done():
			m.done <- actionDoneMsg{err: ctx.Err()}
		default:
			m.done <- actionDoneMsg{err: err}
		}
	}()

	return m
}

func (m *spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.waitForCompletion())
}

func (m *spinnerModel) waitForCompletion() tea.Cmd {
	return func() tea.Msg { return <-m.done }
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.ended = true
			m.err = fmt.Errorf("operation canceled")
			return m, tea.Quit
		}
	case actionDoneMsg:
		m.ended = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.ended {
		if m.err != nil {
			return m.style.Render("✗ " + m.title + "\n")
		}
		return m.style.Render("✓ " + m.title + "\n")
	}
	return m.style.Render(m.spin.View() + " " + m.title)
}
