// Package tui renders the conversational search surface. The surface is
// mounted in one of three phases: a spinner while the roster loads under its
// bounded wait, the chat view once the roster is usable, or a full takeover
// fallback view when the backend is unresponsive.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/investmateai/imctl/internal/cli/conversation"
	"github.com/investmateai/imctl/internal/cli/roster"
	"github.com/investmateai/imctl/internal/cli/types"
	"github.com/investmateai/imctl/internal/cli/ui"
)

// UI configuration constants
const (
	defaultInputWidth        = 100
	defaultViewportWidth     = 100
	defaultViewportHeight    = 30
	defaultWindowWidth       = 100
	defaultWindowHeight      = 40
	inputCharLimit           = 2000
	inputHeightReserved      = 2
	statusHeightReserved     = 3
	minContentHeight         = 10
	conversationIDDisplayLen = 8
)

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	fallbackBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(1, 3)
)

// Backend is the slice of the gateway the chat surface needs.
type Backend interface {
	ListAgents(ctx context.Context) ([]types.Agent, error)
	Chat(ctx context.Context, question, agentID string) (*types.ChatResponse, error)
}

// ChatProgram encapsulates the chat TUI program
type ChatProgram struct {
	model chatModel
}

// NewChatProgram creates a new chat program instance
func NewChatProgram(backend Backend, telegramURL string) *ChatProgram {
	return &ChatProgram{model: initialModel(backend, telegramURL)}
}

// Run starts the chat TUI program
func (p *ChatProgram) Run() error {
	program := tea.NewProgram(p.model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// chatModel is the Bubble Tea model containing all chat interface state
type chatModel struct {
	// Dependencies
	backend        Backend
	loader         *roster.Loader
	engine         *conversation.Engine
	telegramURL    string
	conversationID string

	// Session phase and roster state
	phase    roster.Phase
	agents   []types.Agent
	agentIdx int

	// UI components
	loading     spinner.Model
	input       textinput.Model
	contentView viewport.Model

	// Window dimensions
	width  int
	height int
}

// initialModel creates the initial chat model
func initialModel(backend Backend, telegramURL string) chatModel {
	input := textinput.New()
	input.Placeholder = "e.g., Show me apartments in Netanya under 2M..."
	input.Focus()
	input.CharLimit = inputCharLimit
	input.Width = defaultInputWidth
	input.Prompt = ""

	loading := spinner.New()
	loading.Spinner = spinner.Dot
	loading.Style = accentStyle

	contentViewport := viewport.New(defaultViewportWidth, defaultViewportHeight)
	contentViewport.SetContent("")

	return chatModel{
		backend:        backend,
		loader:         roster.NewLoader(backend),
		engine:         conversation.NewEngine(backend),
		telegramURL:    telegramURL,
		conversationID: uuid.New().String(),
		phase:          roster.PhaseInitializing,
		loading:        loading,
		input:          input,
		contentView:    contentViewport,
		width:          defaultWindowWidth,
		height:         defaultWindowHeight,
	}
}

// Init initializes the model (Bubble Tea interface)
func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loading.Tick, m.loadRoster())
}

// Message type definitions
type (
	rosterResultMsg struct{ result roster.Result }
	answerMsg       struct {
		resp *types.ChatResponse
		err  error
	}
)

// loadRoster runs the bounded-wait roster load
func (m chatModel) loadRoster() tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		return rosterResultMsg{result: loader.Load(context.Background())}
	}
}

// askQuestion issues one chat exchange for an already-validated submission
func (m chatModel) askQuestion(question, agentID string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		resp, err := backend.Chat(context.Background(), question, agentID)
		return answerMsg{resp: resp, err: err}
	}
}

// Update processes messages and updates the model (Bubble Tea interface)
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg)...)

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case rosterResultMsg:
		// The loader already guarantees a single winner; the phase check
		// keeps a stale message from a superseded load from transitioning.
		if m.phase == roster.PhaseInitializing {
			m.applyRosterResult(msg.result)
		}

	case answerMsg:
		if msg.err != nil {
			m.engine.Fail()
		} else {
			m.engine.Resolve(msg.resp)
		}
		m.refreshContent()

	case spinner.TickMsg:
		if m.phase == roster.PhaseInitializing {
			var cmd tea.Cmd
			m.loading, cmd = m.loading.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// The submission surface is disabled while a request is in flight
	if m.phase == roster.PhaseReady && !m.engine.Busy() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// applyRosterResult transitions out of the loading phase
func (m *chatModel) applyRosterResult(res roster.Result) {
	m.phase = res.Phase
	if res.Phase != roster.PhaseReady {
		return
	}

	m.agents = res.Agents
	m.agentIdx = 0
	if res.Selected != nil {
		m.engine.SelectAgent(res.Selected.ID)
	}
	m.refreshContent()
}

// handleKeyPress handles keyboard input
func (m *chatModel) handleKeyPress(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		cmds = append(cmds, tea.Quit)

	case tea.KeyEnter:
		if m.phase == roster.PhaseReady {
			cmds = append(cmds, m.submit(m.input.Value())...)
		}

	case tea.KeyTab:
		if m.phase == roster.PhaseReady && !m.engine.Busy() && len(m.agents) > 0 {
			m.agentIdx = (m.agentIdx + 1) % len(m.agents)
			m.engine.SelectAgent(m.agents[m.agentIdx].ID)
		}

	case tea.KeyF1, tea.KeyF2, tea.KeyF3:
		if m.phase == roster.PhaseReady {
			idx := int(msg.Type - tea.KeyF1)
			if idx < len(conversation.Suggestions) {
				cmds = append(cmds, m.suggest(conversation.Suggestions[idx])...)
			}
		}

	case tea.KeyUp:
		m.contentView.LineUp(1)

	case tea.KeyDown:
		m.contentView.LineDown(1)

	case tea.KeyPgUp:
		m.contentView.ViewUp()

	case tea.KeyPgDown:
		m.contentView.ViewDown()

	case tea.KeyRunes:
		if m.phase == roster.PhaseTimedOut && len(msg.Runes) == 1 && msg.Runes[0] == 'r' {
			m.phase = roster.PhaseInitializing
			cmds = append(cmds, m.loading.Tick, m.loadRoster())
		}
	}

	return cmds
}

// submit starts an exchange from typed input
func (m *chatModel) submit(text string) []tea.Cmd {
	question, ok := m.engine.Submit(text)
	if !ok {
		return nil
	}
	m.input.Reset()
	m.refreshContent()
	return []tea.Cmd{m.askQuestion(question, m.engine.AgentID())}
}

// suggest starts an exchange from a pre-authored suggestion. Same append,
// request, and resolve sequence as typed input.
func (m *chatModel) suggest(text string) []tea.Cmd {
	question, ok := m.engine.Suggest(text)
	if !ok {
		return nil
	}
	m.input.Reset()
	m.refreshContent()
	return []tea.Cmd{m.askQuestion(question, m.engine.AgentID())}
}

// handleWindowResize handles window size changes
func (m *chatModel) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := msg.Height - inputHeightReserved - statusHeightReserved
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}

	m.contentView.Width = msg.Width
	m.contentView.Height = contentHeight
	m.input.Width = msg.Width - 3

	m.refreshContent()
}

// refreshContent re-renders the transcript into the viewport
func (m *chatModel) refreshContent() {
	var b strings.Builder

	for _, turn := range m.engine.Transcript() {
		b.WriteString("\n")
		if turn.Role == types.RoleUser {
			b.WriteString(boldStyle.Render("You"))
		} else {
			b.WriteString(accentStyle.Render("Assistant"))
		}
		b.WriteString("\n")
		b.WriteString(turn.Content)
		b.WriteString("\n")

		if turn.Role == types.RoleAssistant {
			b.WriteString(renderResults(turn.Properties))
		}
	}

	if m.engine.Busy() {
		b.WriteString("\n")
		b.WriteString(accentStyle.Render("Assistant"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Thinking..."))
		b.WriteString("\n")
	}

	display := b.String()
	if m.width > 0 {
		display = wrapText(display, m.width)
	}

	m.contentView.SetContent(display)
	m.contentView.GotoBottom()
}

// renderResults renders the property results attached to an assistant turn
func renderResults(properties []types.Property) string {
	if len(properties) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, p := range properties {
		line := fmt.Sprintf("  • %s, %s — %s · %s rooms · floor %d",
			p.Address, p.City, ui.FormatPrice(p.Price), formatRooms(p.Rooms), p.Floor)
		if p.YieldPercent > 0 {
			line += dimStyle.Render(fmt.Sprintf(" · %.1f%% yield", p.YieldPercent))
		}
		if p.Agent != nil {
			line += dimStyle.Render(" · " + p.Agent.FullName)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// formatRooms drops the trailing .0 for whole room counts
func formatRooms(rooms float64) string {
	if rooms == float64(int(rooms)) {
		return fmt.Sprintf("%d", int(rooms))
	}
	return fmt.Sprintf("%.1f", rooms)
}

// wrapText applies auto-wrapping to text, handling wide character widths
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 10 {
		return text
	}

	lines := strings.Split(text, "\n")
	var result strings.Builder

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.WriteString(wrapLine(line, maxWidth))
	}

	return result.String()
}

// wrapLine wraps a single line of text by display width
func wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0

	for _, r := range line {
		runeW := runewidth.RuneWidth(r)

		if currentWidth+runeW > maxWidth && currentWidth > 0 {
			result.WriteString(currentLine.String())
			result.WriteString("\n")
			currentLine.Reset()
			currentWidth = 0
		}

		currentLine.WriteRune(r)
		currentWidth += runeW
	}

	if currentLine.Len() > 0 {
		result.WriteString(currentLine.String())
	}

	return result.String()
}

// View renders the UI (Bubble Tea interface)
func (m chatModel) View() string {
	switch m.phase {
	case roster.PhaseInitializing:
		return m.viewLoading()
	case roster.PhaseTimedOut:
		return m.viewFallback()
	default:
		return m.viewChat()
	}
}

// viewLoading renders the bounded-wait spinner
func (m chatModel) viewLoading() string {
	body := fmt.Sprintf("\n %s Connecting to InvestMateAI...\n\n%s\n",
		m.loading.View(),
		dimStyle.Render(" The backend may take a few seconds to wake up."))
	return body
}

// viewFallback renders the full takeover offering retry and the Telegram
// channel. This is a terminal offramp; there is no auto-retry.
func (m chatModel) viewFallback() string {
	content := fmt.Sprintf("%s\n\n%s\n%s\n\n%s\n%s",
		boldStyle.Render("Web Chat Temporarily Unavailable"),
		"We're having trouble loading the chat agents right now.",
		"Don't worry! You can still chat with our AI through Telegram.",
		accentStyle.Render("Telegram: ")+m.telegramURL,
		dimStyle.Render("r retry • Esc quit"))

	box := fallbackBoxStyle.Render(content)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// viewChat renders the interactive chat surface
func (m chatModel) viewChat() string {
	status := dimStyle.Render(fmt.Sprintf("conversation %s", m.conversationID[:conversationIDDisplayLen]))
	if agent := m.selectedAgent(); agent != nil {
		status += dimStyle.Render(" • agent: ") + accentStyle.Render(agent.FullName)
	} else {
		status += errorStyle.Render(" • no agents available")
	}
	if m.engine.Busy() {
		status += dimStyle.Render(" • waiting for answer...")
	}

	content := m.contentView.View()

	var inputView string
	if m.engine.Busy() {
		inputView = dimStyle.Render("> ") + dimStyle.Render("Waiting for the answer...")
	} else {
		inputView = promptStyle.Render("> ") + m.input.View()
	}

	help := ""
	if !m.engine.Busy() {
		help = dimStyle.Render("Enter send • Tab agent • F1-F3 suggestions • ↑↓ scroll • Esc quit")
	}

	parts := []string{status, "", content, "", inputView}
	if help != "" {
		parts = append(parts, help)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// selectedAgent returns the currently selected roster agent, if any
func (m chatModel) selectedAgent() *types.Agent {
	if len(m.agents) == 0 || m.agentIdx >= len(m.agents) {
		return nil
	}
	return &m.agents[m.agentIdx]
}
