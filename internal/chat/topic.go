package chat

import "fmt"

// DefaultTopics are the topic options offered by the selectors.
var DefaultTopics = []string{
	"Budgeting",
	"Investing",
	"Retirement planning",
	"Taxes",
	"Bonds",
	"Stocks",
	"Cryptocurrency",
	"Real estate",
}

// DiscussPrompt is the input pre-filled when a topic is picked.
func DiscussPrompt(topic string) string {
	return fmt.Sprintf("Let's discuss %s", topic)
}
