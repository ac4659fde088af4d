package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/longkey1/finchat/internal/chat"
	"github.com/longkey1/finchat/internal/render"
)

const appTitle = "AI Powered Finance Guru"

// Conversation is the part of chat.Controller the TUI drives
type Conversation interface {
	SendMessage(ctx context.Context, text, topic string) (chat.Message, bool)
	Reset()
	State() chat.State
}

var _ Conversation = (*chat.Controller)(nil)

// replyMsg is sent once SendMessage settles
type replyMsg struct {
	appended bool
}

// Options configures the chat model
type Options struct {
	ModelName string
	Topic     string
	Topics    []string
	Style     string // auto, dark or light
}

// Model represents the TUI state
type Model struct {
	ctx  context.Context
	conv Conversation
	opts Options

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	styles   styles

	topic          string
	loading        bool
	ready          bool
	selectingTopic bool
	topicCursor    int

	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(ctx context.Context, conv Conversation, opts Options) Model {
	if len(opts.Topics) == 0 {
		opts.Topics = chat.DefaultTopics
	}
	st := newStyles(opts.Style)

	ta := textarea.New()
	ta.Placeholder = "Ask about budgeting, investing, taxes..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetKeys("ctrl+j", "alt+enter")
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Points

	m := Model{
		ctx:      ctx,
		conv:     conv,
		opts:     opts,
		textarea: ta,
		spinner:  s,
		topic:    opts.Topic,
	}
	m.applyStyles(st)
	return m
}

// applyStyles switches the color mode of the model and its components
func (m *Model) applyStyles(st styles) {
	m.styles = st
	m.textarea.FocusedStyle.CursorLine = lipgloss.NewStyle()
	m.textarea.FocusedStyle.Base = st.textPrimary
	m.textarea.FocusedStyle.Placeholder = st.textDim
	m.textarea.BlurredStyle = m.textarea.FocusedStyle
	m.spinner.Style = st.loading
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.selectingTopic {
		if key, ok := msg.(tea.KeyMsg); ok {
			return m.updateTopicSelection(key)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		inputHeight := 4
		statusHeight := 1
		borders := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - borders
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 2
		if contentWidth < 20 {
			contentWidth = 20
		}

		if !m.ready {
			m.viewport = viewport.New(contentWidth-2, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth - 2
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+n":
			m.conv.Reset()
			m.topic = ""
			m.textarea.Reset()
			m.updateViewport()
			return m, nil

		case "ctrl+t":
			m.applyStyles(newStyles(render.Toggle(m.styles.mode)))
			m.updateViewport()
			return m, nil

		case "tab":
			if !m.loading {
				m.selectingTopic = true
				m.topicCursor = m.topicIndex()
			}
			return m, nil

		case "enter":
			input := m.textarea.Value()
			if m.loading || strings.TrimSpace(input) == "" {
				return m, nil
			}
			trimmed := strings.TrimSpace(input)
			if trimmed == "/exit" || trimmed == "/quit" {
				return m, tea.Quit
			}

			m.loading = true
			m.textarea.Reset()
			return m, tea.Batch(m.sendMessage(input, m.topic), m.spinner.Tick)
		}

	case replyMsg:
		m.loading = false
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			m.updateViewport()
			m.viewport.GotoBottom()
		}
	}

	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateTopicSelection handles keys while the topic list is open
func (m Model) updateTopicSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "tab":
		m.selectingTopic = false
	case "up", "k":
		if m.topicCursor > 0 {
			m.topicCursor--
		}
	case "down", "j":
		if m.topicCursor < len(m.opts.Topics)-1 {
			m.topicCursor++
		}
	case "enter":
		m.topic = m.opts.Topics[m.topicCursor]
		m.textarea.SetValue(chat.DiscussPrompt(m.topic))
		m.selectingTopic = false
	}
	return m, nil
}

// topicIndex returns the list position of the current topic, or 0
func (m Model) topicIndex() int {
	for i, t := range m.opts.Topics {
		if t == m.topic {
			return i
		}
	}
	return 0
}

// sendMessage runs SendMessage off the event loop
func (m Model) sendMessage(text, topic string) tea.Cmd {
	ctx, conv := m.ctx, m.conv
	return func() tea.Msg {
		_, ok := conv.SendMessage(ctx, text, topic)
		return replyMsg{appended: ok}
	}
}

// updateViewport refreshes the viewport content from the conversation
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	bubbleWidth := m.viewport.Width - 2
	opts := render.DefaultOptions().WithStyle(m.styles.mode).WithWidth(bubbleWidth - 4)

	var content strings.Builder
	for i, msg := range m.conv.State().Messages {
		if i > 0 {
			content.WriteString("\n")
		}
		if msg.Sender == chat.SenderUser {
			content.WriteString(m.styles.userLabel.Render("You") + "\n")
			content.WriteString(m.styles.userBubble.Width(bubbleWidth).Render(msg.Text))
		} else {
			rendered := strings.TrimRight(render.MarkdownOrPlain(msg.Text, opts), "\n")
			content.WriteString(m.styles.botLabel.Render("Guru") + "\n")
			content.WriteString(m.styles.botBubble.Width(bubbleWidth).Render(rendered))
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return m.styles.loading.Render("  Initializing...")
	}

	contentWidth := m.width - 2
	if contentWidth < 20 {
		contentWidth = 20
	}

	topic := m.topic
	if topic == "" {
		topic = "general finance"
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.title.Render(appTitle),
		m.styles.subtitle.Render("  •  "+m.opts.ModelName+"  •  "+topic+"  •  "+m.styles.mode),
	)
	sections := []string{m.styles.header.Width(contentWidth - 2).Render(headerContent)}

	var body string
	switch {
	case m.selectingTopic:
		body = m.renderTopicSelector()
	case len(m.conv.State().Messages) == 0:
		body = m.renderWelcome()
	default:
		body = m.viewport.View()
	}
	sections = append(sections, m.styles.messagesArea.
		Width(contentWidth-2).
		Height(m.viewport.Height).
		Render(body))

	var input string
	if m.loading {
		input = m.spinner.View() + m.styles.loading.Render(" Thinking...")
	} else {
		input = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.inputLabel.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, m.styles.inputPanel.Width(contentWidth-2).Render(input))
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width
	return lipgloss.JoinVertical(lipgloss.Center,
		"",
		m.styles.welcomeTitle.Width(width).Render("Welcome to "+appTitle),
		"",
		m.styles.welcome.Width(width).Render("Ask a question below, or press Tab to pick a topic"),
	)
}

// renderTopicSelector renders the topic list
func (m Model) renderTopicSelector() string {
	lines := []string{m.styles.welcomeTitle.Render("Choose a topic"), ""}
	for i, t := range m.opts.Topics {
		if i == m.topicCursor {
			lines = append(lines, m.styles.topicCursor.Render("> "+t))
		} else {
			lines = append(lines, m.styles.topicItem.Render(t))
		}
	}
	return strings.Join(lines, "\n")
}

// renderStatusBar renders the key hints
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Tab", "Topics"},
		{"Ctrl+N", "New chat"},
		{"Ctrl+T", "Theme"},
		{"Esc", "Quit"},
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, m.styles.statusKey.Render(s.key)+m.styles.statusDesc.Render(" "+s.desc))
	}
	return m.styles.statusBar.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunChat starts the chat TUI
func RunChat(ctx context.Context, conv Conversation, opts Options) error {
	p := tea.NewProgram(
		NewChatModel(ctx, conv, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
