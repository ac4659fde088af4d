// Package prompt builds the system instruction sent ahead of every conversation.
package prompt

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultTopic is used when no topic was selected.
const DefaultTopic = "general finance"

// DefaultSystem is the built-in instruction template.
const DefaultSystem = "You are a helpful financial assistant specializing in {{topic}}. " +
	"Provide concise and accurate information. " +
	"Format your responses using markdown for better readability."

const topicPlaceholder = "{{topic}}"

// Prompt represents the structure of a TOML prompt file
type Prompt struct {
	System string `toml:"system"`
}

// Default returns the built-in prompt
func Default() *Prompt {
	return &Prompt{System: DefaultSystem}
}

// LoadPrompt loads a prompt file and returns its contents
func LoadPrompt(filePath string) (*Prompt, error) {
	var prompt Prompt
	if _, err := toml.DecodeFile(filePath, &prompt); err != nil {
		return nil, fmt.Errorf("error decoding prompt file: %w", err)
	}
	if strings.TrimSpace(prompt.System) == "" {
		return nil, fmt.Errorf("prompt file %s has an empty system field", filePath)
	}
	return &prompt, nil
}

// Load returns the prompt at filePath, or the built-in one when filePath is empty
func Load(filePath string) (*Prompt, error) {
	if filePath == "" {
		return Default(), nil
	}
	return LoadPrompt(filePath)
}

// Instruction renders the system instruction for topic.
func (p *Prompt) Instruction(topic string) string {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	return strings.ReplaceAll(p.System, topicPlaceholder, topic)
}
