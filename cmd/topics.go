package cmd

import (
	"fmt"
	"os"

	"github.com/longkey1/finchat/internal/chat"
	"github.com/longkey1/finchat/internal/config"
	"github.com/spf13/cobra"
)

// topicsCmd represents the topics command
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topic options",
	Long: `List the topics offered by the interactive topic selector.
The list comes from the 'topics' key of the configuration file.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Available topics (%d):\n\n", len(cfg.Topics))
		for _, t := range cfg.Topics {
			fmt.Printf("  %-22s %q\n", t, chat.DiscussPrompt(t))
		}

		fmt.Printf("\nUse a topic with: finchat chat --topic <topic> [message]\n")
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}
