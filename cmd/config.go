package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/longkey1/finchat/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFields = "configfile, model, openai_base_url, openai_token, prompt_file, theme, width, timeout_seconds, keep_stale_replies, topics"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.

If a field name is specified, only that field's value is displayed.
Available fields: ` + configFields + `

Examples:
  finchat config                 # Show all configuration
  finchat config model           # Show only model
  finchat config openai_token    # Show only the (masked) token`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if len(args) > 0 {
			value, ok := configField(cfg, args[0])
			if !ok {
				fmt.Fprintf(os.Stderr, "Unknown field: %s\n", args[0])
				fmt.Fprintf(os.Stderr, "Available fields: %s\n", configFields)
				os.Exit(1)
			}
			fmt.Println(value)
			return
		}

		fmt.Printf("ConfigFile: %s\n", viper.ConfigFileUsed())
		fmt.Printf("Model: %s\n", cfg.Model)
		fmt.Printf("OpenAIBaseURL: %s\n", cfg.OpenAIBaseURL)
		fmt.Printf("OpenAIToken: %s\n", maskToken(cfg.OpenAIToken))
		fmt.Printf("PromptFile: %s\n", cfg.PromptFile)
		fmt.Printf("Theme: %s\n", cfg.Theme)
		fmt.Printf("Width: %d\n", cfg.Width)
		fmt.Printf("TimeoutSeconds: %d\n", cfg.TimeoutSeconds)
		fmt.Printf("KeepStaleReplies: %v\n", cfg.KeepStaleReplies)
		fmt.Printf("Topics: %s\n", strings.Join(cfg.Topics, ","))
	},
}

// configField returns the display value of a single field
func configField(cfg *config.Config, name string) (string, bool) {
	switch strings.ToLower(name) {
	case "configfile":
		return viper.ConfigFileUsed(), true
	case "model":
		return cfg.Model, true
	case "openai_base_url", "openaibaseurl":
		return cfg.OpenAIBaseURL, true
	case "openai_token", "openaitoken":
		return maskToken(cfg.OpenAIToken), true
	case "prompt_file", "promptfile":
		return cfg.PromptFile, true
	case "theme":
		return cfg.Theme, true
	case "width":
		return fmt.Sprint(cfg.Width), true
	case "timeout_seconds", "timeoutseconds":
		return fmt.Sprint(cfg.TimeoutSeconds), true
	case "keep_stale_replies", "keepstalereplies":
		return fmt.Sprint(cfg.KeepStaleReplies), true
	case "topics":
		return strings.Join(cfg.Topics, ","), true
	default:
		return "", false
	}
}

// maskToken returns a masked version of the token for security
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func init() {
	rootCmd.AddCommand(configCmd)
}
