/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/longkey1/finchat/internal/config"
	"github.com/spf13/cobra"
)

// modelsCmd represents the models command
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available models",
	Long: `List the models available to the configured API token.
Fetches the latest model information directly from the API.

The model currently configured is marked as default.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "Listing models from: %s\n", cfg.GetBaseURL())
		}

		models, err := newProvider(cfg, newLogger(os.Stderr)).ListModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list models: %w", err)
		}
		if len(models) == 0 {
			return fmt.Errorf("no models returned from API")
		}

		maxModelIDWidth := 15
		for _, m := range models {
			if len(m.ID) > maxModelIDWidth {
				maxModelIDWidth = len(m.ID)
			}
		}

		fmt.Printf("%-*s  %-10s  %s\n", maxModelIDWidth, "MODEL ID", "DEFAULT", "OWNED BY")
		fmt.Printf("%s  %s  %s\n",
			strings.Repeat("-", maxModelIDWidth),
			strings.Repeat("-", 10),
			strings.Repeat("-", 20))

		for _, m := range models {
			defaultMark := ""
			if m.IsDefault {
				defaultMark = "Yes"
			}
			fmt.Printf("%-*s  %-10s  %s\n", maxModelIDWidth, m.ID, defaultMark, m.OwnedBy)
		}

		fmt.Printf("\nUse a model with: finchat chat --model <model> [message]\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
