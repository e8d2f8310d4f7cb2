// Package tui provides the bubbletea chat interface. It is a thin
// presentation layer: every submitted line goes through the dialogue
// machine's ProcessTurn and the reply is appended to the transcript.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ringgitlab/duit/internal/dialogue"
)

// transcriptLine is one rendered entry of the conversation.
type transcriptLine struct {
	text   string
	isUser bool
}

// replyMsg carries the machine's response back into the update loop.
type replyMsg struct {
	text string
}

// Model is the bubbletea chat model.
type Model struct {
	ctx        context.Context
	machine    *dialogue.Machine
	input      textinput.Model
	userID     string
	transcript []transcriptLine
	theme      Theme
	width      int
	waiting    bool
	quitting   bool
}

// NewModel creates the chat model for a user session.
func NewModel(ctx context.Context, machine *dialogue.Machine, userID string) Model {
	input := textinput.New()
	input.Placeholder = "RM10 for lunch..."
	input.CharLimit = 280
	input.Focus()

	return Model{
		ctx:     ctx,
		machine: machine,
		userID:  userID,
		input:   input,
		theme:   DefaultTheme(),
		transcript: []transcriptLine{
			{text: "Hi! I'm duit. Tell me what you spent, or say 'set budget' or 'set a goal'.", isUser: false},
		},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.transcript = append(m.transcript, transcriptLine{text: text, isUser: true})
			m.input.Reset()
			m.waiting = true
			return m, m.processTurn(text)
		}

	case replyMsg:
		m.transcript = append(m.transcript, transcriptLine{text: msg.text, isUser: false})
		m.waiting = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// processTurn runs the dialogue machine off the update loop.
func (m Model) processTurn(text string) tea.Cmd {
	ctx, machine, userID := m.ctx, m.machine, m.userID
	return func() tea.Msg {
		return replyMsg{text: machine.ProcessTurn(ctx, text, userID)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return "Jumpa lagi! Your records are saved.\n"
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("duit — your money, in conversation"))
	b.WriteString("\n")

	for _, line := range m.transcript {
		if line.isUser {
			b.WriteString(m.theme.UserLine.Render("you: " + line.text))
		} else {
			b.WriteString(m.theme.BotLine.Render("duit: " + line.text))
		}
		b.WriteString("\n")
	}

	if m.waiting {
		b.WriteString(m.theme.BotLine.Render("duit is thinking..."))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.InputArea.Render(m.input.View()))
	b.WriteString(m.theme.Help.Render("\nenter to send · esc to quit"))
	return b.String()
}

// Run starts the chat program and blocks until the user quits.
func Run(ctx context.Context, machine *dialogue.Machine, userID string) error {
	program := tea.NewProgram(NewModel(ctx, machine, userID), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat UI failed: %w", err)
	}
	return nil
}
