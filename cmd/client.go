package cmd

import (
	"fmt"
	"log/slog"

	"github.com/longkey1/finchat/internal/chat"
	"github.com/longkey1/finchat/internal/config"
	"github.com/longkey1/finchat/internal/openai"
	"github.com/longkey1/finchat/internal/prompt"
)

// newProvider creates the completion client from the configuration
func newProvider(cfg *config.Config, logger *slog.Logger) *openai.Provider {
	return openai.NewProvider(cfg,
		openai.WithTimeout(cfg.Timeout()),
		openai.WithLogger(logger),
	)
}

// newController wires the conversation controller to the completion client
func newController(cfg *config.Config, logger *slog.Logger) (*chat.Controller, error) {
	p, err := prompt.Load(cfg.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("loading prompt: %w", err)
	}

	return chat.NewController(newProvider(cfg, logger),
		chat.WithPrompt(p),
		chat.WithLogger(logger),
		chat.WithKeepStaleReplies(cfg.KeepStaleReplies),
	), nil
}
