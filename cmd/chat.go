/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/longkey1/finchat/internal/config"
	"github.com/longkey1/finchat/internal/render"
	"github.com/spf13/cobra"
)

var (
	model     string
	topic     string
	theme     string
	useEditor bool
	raw       bool
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask a single question",
	Long: `Send one message to the assistant and print the reply.

For an interactive conversation, use 'finchat start' instead.

If no message is provided as an argument, it reads from stdin.
If --editor flag is set, it opens the default editor (from EDITOR environment variable) to compose the message.

The reply is rendered as markdown unless --raw is given. When the API cannot be
reached, a fallback reply is printed and the error is logged to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		applyOverrides(cmd, cfg)

		var message string
		if useEditor {
			message, err = getMessageFromEditor()
			if err != nil {
				return fmt.Errorf("getting message from editor: %w", err)
			}
		} else if len(args) > 0 {
			message = strings.Join(args, " ")
		} else {
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
			message = strings.TrimSpace(string(input))
		}

		if strings.TrimSpace(message) == "" {
			return fmt.Errorf("message is empty")
		}

		controller, err := newController(cfg, newLogger(os.Stderr))
		if err != nil {
			return err
		}

		reply, _ := controller.SendMessage(cmd.Context(), message, topic)
		if raw {
			fmt.Println(reply.Text)
			return nil
		}

		opts := render.DefaultOptions().WithWidth(cfg.Width).WithStyle(cfg.Theme)
		fmt.Print(render.MarkdownOrPlain(reply.Text, opts))
		return nil
	},
}

// applyOverrides applies flag values over the loaded configuration
func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("model") {
		cfg.Model = model
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = theme
	}
}

// getMessageFromEditor opens the default editor and returns the edited message
func getMessageFromEditor() (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return "", fmt.Errorf("EDITOR environment variable is not set")
	}

	tmpFile, err := os.CreateTemp("", "finchat-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	cmd := exec.Command(editor, tmpFile.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to open editor: %w", err)
	}

	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited content: %w", err)
	}

	return strings.TrimSpace(string(content)), nil
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVarP(&model, "model", "m", "", "Model to use (e.g., gpt-4o)")
	chatCmd.Flags().StringVarP(&topic, "topic", "t", "", "Topic the assistant specializes in (default: general finance)")
	chatCmd.Flags().StringVar(&theme, "theme", "", "Color mode for rendering: auto, dark or light")
	chatCmd.Flags().BoolVarP(&useEditor, "editor", "e", false, "Use default editor (from EDITOR environment variable) to compose message")
	chatCmd.Flags().BoolVar(&raw, "raw", false, "Print the reply without markdown rendering")
}
