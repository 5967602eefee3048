package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
)

// UI configuration constants
const (
	defaultInputWidth     = 100
	defaultViewportWidth  = 100
	defaultViewportHeight = 30
	defaultWindowWidth    = 100
	defaultWindowHeight   = 40
	inputCharLimit        = 4000
	inputHeightReserved   = 2
	statusHeightReserved  = 3
	minContentHeight      = 10
)

// Style definitions
var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

// requestState represents the state of the in-flight request
type requestState int

const (
	requestIdle requestState = iota
	requestWaiting
)

// ChatProgram encapsulates the chat TUI program
type ChatProgram struct {
	model chatModel
}

// NewChatProgram creates a new chat program for the given workspace
func NewChatProgram(apiClient *anythingllm.Client, workspace string) *ChatProgram {
	return &ChatProgram{model: initialModel(apiClient, workspace)}
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
	apiClient *anythingllm.Client
	workspace string

	// UI components
	input       textinput.Model
	contentView viewport.Model

	// Request state
	state requestState
	mode  string
	// Use pointer to avoid Builder copy
	content *strings.Builder

	// Error state
	err error

	// Window dimensions
	width  int
	height int
}

// initialModel creates the initial chat model
func initialModel(apiClient *anythingllm.Client, workspace string) chatModel {
	input := textinput.New()
	input.Placeholder = ""
	input.Focus()
	input.CharLimit = inputCharLimit
	input.Width = defaultInputWidth
	input.Prompt = ""
	input.TextStyle = lipgloss.NewStyle()
	input.PromptStyle = lipgloss.NewStyle()

	contentViewport := viewport.New(defaultViewportWidth, defaultViewportHeight)
	contentViewport.SetContent("")

	return chatModel{
		apiClient:   apiClient,
		workspace:   workspace,
		input:       input,
		contentView: contentViewport,
		state:       requestIdle,
		mode:        anythingllm.ModeChat,
		content:     &strings.Builder{},
		width:       defaultWindowWidth,
		height:      defaultWindowHeight,
	}
}

// Init initializes the model (Bubble Tea interface)
func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Message type definitions
type (
	chatReplyMsg struct{ result *anythingllm.ChatResult }
	chatErrMsg   struct{ err error }
)

// Update processes messages and updates the model (Bubble Tea interface)
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg)...)

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case chatReplyMsg:
		m.state = requestIdle
		m.appendReply(msg.result)

	case chatErrMsg:
		m.state = requestIdle
		m.err = msg.err
		m.refreshContent()
	}

	// Keep the input box live while no request is in flight
	if m.state != requestWaiting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m *chatModel) handleKeyPress(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		cmds = append(cmds, tea.Quit)

	case tea.KeyTab:
		if m.state != requestWaiting {
			m.toggleMode()
		}

	case tea.KeyEnter:
		if m.state != requestWaiting {
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				m.startRequest(text)
				cmds = append(cmds, m.sendMessage(text))
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
	}

	return cmds
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

	// Reapply wrapping when window size changes
	m.refreshContent()
}

// toggleMode flips between history-aware chat and single-shot query
func (m *chatModel) toggleMode() {
	if m.mode == anythingllm.ModeChat {
		m.mode = anythingllm.ModeQuery
	} else {
		m.mode = anythingllm.ModeChat
	}
}

// startRequest records the outgoing message and enters the waiting state
func (m *chatModel) startRequest(text string) {
	m.input.Reset()
	m.err = nil

	m.content.WriteString("\n")
	m.content.WriteString(boldStyle.Render("You"))
	if m.mode == anythingllm.ModeQuery {
		m.content.WriteString(dimStyle.Render(" (query)"))
	}
	m.content.WriteString("\n")
	m.content.WriteString(text)
	m.content.WriteString("\n")

	m.state = requestWaiting
	m.refreshContent()
}

// sendMessage issues the chat request, one round trip per message
func (m *chatModel) sendMessage(text string) tea.Cmd {
	mode := m.mode
	return func() tea.Msg {
		result, err := m.apiClient.Chat(context.Background(), m.workspace, text, mode)
		if err != nil {
			return chatErrMsg{err: err}
		}
		return chatReplyMsg{result: result}
	}
}

// appendReply renders the assistant reply and its citations
func (m *chatModel) appendReply(result *anythingllm.ChatResult) {
	m.content.WriteString("\n")
	m.content.WriteString(accentStyle.Render("Assistant"))
	m.content.WriteString("\n")
	m.content.WriteString(result.Text)
	m.content.WriteString("\n")

	if len(result.Sources) > 0 {
		m.content.WriteString("\n")
		m.content.WriteString(sourceStyle.Render(fmt.Sprintf("%d source(s):", len(result.Sources))))
		m.content.WriteString("\n")
		for _, src := range result.Sources {
			title := src.Title
			if title == "" {
				title = "(untitled)"
			}
			m.content.WriteString(sourceStyle.Render(fmt.Sprintf("  • %s", title)))
			m.content.WriteString("\n")
		}
	}

	m.refreshContent()
}

// refreshContent refreshes the display content
func (m *chatModel) refreshContent() {
	display := m.content.String()
	if m.err != nil {
		display += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	// Auto-wrap handling
	if m.width > 0 {
		display = m.wrapText(display, m.width)
	}

	m.contentView.SetContent(display)
	m.contentView.GotoBottom()
}

// wrapText applies auto-wrapping to text, handling wide character widths
func (m *chatModel) wrapText(text string, maxWidth int) string {
	if maxWidth <= 10 {
		return text
	}

	lines := strings.Split(text, "\n")
	var result strings.Builder

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}

		// Keep empty lines as-is
		if strings.TrimSpace(line) == "" {
			continue
		}

		result.WriteString(m.wrapLine(line, maxWidth))
	}

	return result.String()
}

// wrapLine wraps a single line of text by display width
func (m *chatModel) wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0

	for _, r := range line {
		runeW := runewidth.RuneWidth(r)

		// If adding this character exceeds width, wrap first
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
	// Top status bar
	status := dimStyle.Render(fmt.Sprintf("workspace %s", m.workspace))
	status += dimStyle.Render(fmt.Sprintf(" • mode: %s", m.mode))
	if m.state == requestWaiting {
		status += dimStyle.Render(" • thinking...")
	}

	// Content area
	content := m.contentView.View()

	// Input area
	var inputView string
	if m.state == requestWaiting {
		inputView = dimStyle.Render("> ") + dimStyle.Render("waiting for reply...")
	} else {
		inputView = promptStyle.Render("> ") + m.input.View()
	}

	// Bottom help text
	help := ""
	if m.state != requestWaiting {
		help = dimStyle.Render("Enter send • Tab chat/query • ↑↓ scroll • Esc quit")
	}

	parts := []string{status, "", content, "", inputView}
	if help != "" {
		parts = append(parts, help)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
