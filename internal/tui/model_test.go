package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longkey1/finchat/internal/chat"
	"github.com/longkey1/finchat/internal/render"
)

// stubCompleter answers every request with the same reply
type stubCompleter struct {
	reply string
	turns [][]chat.Turn
}

func (s *stubCompleter) Complete(_ context.Context, turns []chat.Turn) (string, error) {
	s.turns = append(s.turns, turns)
	return s.reply, nil
}

func newTestModel(t *testing.T, reply string) (Model, *chat.Controller, *stubCompleter) {
	t.Helper()
	sc := &stubCompleter{reply: reply}
	conv := chat.NewController(sc)
	m := NewChatModel(context.Background(), conv, Options{ModelName: "gpt-4o", Style: render.StyleDark})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), conv, sc
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// collect runs cmd and any batched commands, returning the produced messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findReply(msgs []tea.Msg) (replyMsg, bool) {
	for _, msg := range msgs {
		if r, ok := msg.(replyMsg); ok {
			return r, true
		}
	}
	return replyMsg{}, false
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestSendFlow(t *testing.T) {
	m, conv, sc := newTestModel(t, "A bond is a **loan**.")

	m = typeText(t, m, "What is a bond?")
	assert.Equal(t, "What is a bond?", m.textarea.Value())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Empty(t, m.textarea.Value())
	assert.Contains(t, m.View(), "Thinking")

	reply, ok := findReply(collect(cmd))
	require.True(t, ok, "expected a reply message")
	assert.True(t, reply.appended)

	m, _ = update(t, m, reply)
	assert.False(t, m.loading)

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, chat.Message{Text: "What is a bond?", Sender: chat.SenderUser}, msgs[0])
	assert.Equal(t, chat.SenderBot, msgs[1].Sender)
	require.Len(t, sc.turns, 1)

	view := m.View()
	assert.Contains(t, view, "What is a bond?")
	assert.Contains(t, view, "loan")
}

func TestEnterWithBlankInputDoesNothing(t *testing.T) {
	m, conv, _ := newTestModel(t, "unused")

	m = typeText(t, m, "   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.loading)
	assert.Empty(t, conv.Messages())
}

func TestEnterWhileLoadingIsIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, "ok")
	m.loading = true
	m.textarea.SetValue("second")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "second", m.textarea.Value())
}

func TestTopicSelection(t *testing.T) {
	m, _, sc := newTestModel(t, "ok")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, m.selectingTopic)
	assert.Contains(t, m.View(), "Choose a topic")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.selectingTopic)
	assert.Equal(t, chat.DefaultTopics[1], m.topic)
	assert.Equal(t, chat.DiscussPrompt(chat.DefaultTopics[1]), m.textarea.Value())

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	collect(cmd)
	require.Len(t, sc.turns, 1)
	assert.Contains(t, sc.turns[0][0].Content, chat.DefaultTopics[1])
}

func TestTopicSelectionCancel(t *testing.T) {
	m, _, _ := newTestModel(t, "ok")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.selectingTopic)
	assert.Empty(t, m.topic)
	assert.Empty(t, m.textarea.Value())
}

func TestNewChat(t *testing.T) {
	m, conv, _ := newTestModel(t, "ok")
	m.topic = "Taxes"
	conv.SendMessage(context.Background(), "hello", "Taxes")
	m.textarea.SetValue("draft")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Empty(t, conv.Messages())
	assert.Empty(t, m.topic)
	assert.Empty(t, m.textarea.Value())
	assert.Contains(t, m.View(), "Welcome")
}

func TestToggleTheme(t *testing.T) {
	m, _, _ := newTestModel(t, "ok")
	require.Equal(t, render.StyleDark, m.styles.mode)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, render.StyleLight, m.styles.mode)
	assert.True(t, strings.Contains(m.View(), render.StyleLight))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, render.StyleDark, m.styles.mode)
}

func TestViewBeforeSize(t *testing.T) {
	m := NewChatModel(context.Background(), chat.NewController(&stubCompleter{}), Options{Style: render.StyleLight})
	assert.Contains(t, m.View(), "Initializing")
}
