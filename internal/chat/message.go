package chat

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Upstream roles of the role-tagged transcript.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in the conversation. Topic is empty when none was selected.
type Message struct {
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
	Topic  string `json:"topic,omitempty"`
}

// Turn is a role-tagged transcript entry sent upstream.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Role returns the upstream role for the message sender.
func (m Message) Role() string {
	if m.Sender == SenderUser {
		return RoleUser
	}
	return RoleAssistant
}

// BuildTranscript assembles the upstream payload: the system instruction,
// the prior history in order, then the new user text.
func BuildTranscript(instruction string, history []Message, text string) []Turn {
	turns := make([]Turn, 0, len(history)+2)
	turns = append(turns, Turn{Role: RoleSystem, Content: instruction})
	for _, msg := range history {
		turns = append(turns, Turn{Role: msg.Role(), Content: msg.Text})
	}
	turns = append(turns, Turn{Role: RoleUser, Content: text})
	return turns
}
