package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/longkey1/finchat/internal/chat"
	"github.com/longkey1/finchat/internal/openai"
)

// Theme names
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config holds the configuration for the chat client
type Config struct {
	Model            string   `toml:"model" mapstructure:"model"`
	OpenAIBaseURL    string   `toml:"openai_base_url" mapstructure:"openai_base_url"`
	OpenAIToken      string   `toml:"openai_token" mapstructure:"openai_token"`
	PromptFile       string   `toml:"prompt_file" mapstructure:"prompt_file"` // Empty = built-in instruction
	Theme            string   `toml:"theme" mapstructure:"theme"`             // auto, dark or light
	Width            int      `toml:"width" mapstructure:"width"`
	TimeoutSeconds   int      `toml:"timeout_seconds" mapstructure:"timeout_seconds"`
	KeepStaleReplies bool     `toml:"keep_stale_replies" mapstructure:"keep_stale_replies"`
	Topics           []string `toml:"topics" mapstructure:"topics"`
}

// GetModel returns the model name
func (c *Config) GetModel() string {
	return c.Model
}

// Timeout returns the request timeout
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return openai.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig() *Config {
	topics := make([]string, len(chat.DefaultTopics))
	copy(topics, chat.DefaultTopics)
	return &Config{
		Model:            openai.DefaultModel,
		OpenAIBaseURL:    openai.DefaultBaseURL,
		OpenAIToken:      "$OPENAI_API_KEY", // Default to env var
		PromptFile:       "",
		Theme:            ThemeAuto,
		Width:            80,
		TimeoutSeconds:   int(openai.DefaultTimeout / time.Second),
		KeepStaleReplies: false,
		Topics:           topics,
	}
}

// SetDefaults registers the default values on v
func SetDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("model", d.Model)
	v.SetDefault("openai_base_url", d.OpenAIBaseURL)
	v.SetDefault("openai_token", d.OpenAIToken)
	v.SetDefault("prompt_file", d.PromptFile)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("width", d.Width)
	v.SetDefault("timeout_seconds", d.TimeoutSeconds)
	v.SetDefault("keep_stale_replies", d.KeepStaleReplies)
	v.SetDefault("topics", d.Topics)
}

// LoadConfig loads configuration from the global viper instance
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.GetViper())
}

// LoadConfigFrom loads configuration from v, expanding $VAR references
// and resolving the prompt file path.
func LoadConfigFrom(v *viper.Viper) (*Config, error) {
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	config.OpenAIToken = expandEnvVar(config.OpenAIToken)
	config.OpenAIBaseURL = expandEnvVar(config.OpenAIBaseURL)

	if config.PromptFile != "" {
		absPath, err := ResolvePath(v, config.PromptFile)
		if err != nil {
			return nil, fmt.Errorf("error resolving prompt file path '%s': %w", config.PromptFile, err)
		}
		config.PromptFile = absPath
	}

	switch config.Theme {
	case "":
		config.Theme = ThemeAuto
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		return nil, fmt.Errorf("unsupported theme %q (expected auto, dark or light)", config.Theme)
	}

	if len(config.Topics) == 0 {
		config.Topics = append([]string(nil), chat.DefaultTopics...)
	}

	return config, nil
}
