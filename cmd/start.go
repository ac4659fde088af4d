package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/longkey1/finchat/internal/config"
	"github.com/longkey1/finchat/internal/tui"
	"github.com/spf13/cobra"
)

var logFile string

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start an interactive conversation",
	Long: `Start an interactive conversation in the terminal.

Keys:
  Enter    send the message
  Tab      choose a topic
  Ctrl+N   start a new chat
  Ctrl+T   toggle light/dark mode
  Esc      quit

Diagnostics are discarded while the interface is running unless --log-file is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		applyOverrides(cmd, cfg)

		var logOut io.Writer = io.Discard
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer f.Close()
			logOut = f
		}

		controller, err := newController(cfg, newLogger(logOut))
		if err != nil {
			return err
		}

		return tui.RunChat(cmd.Context(), controller, tui.Options{
			ModelName: cfg.Model,
			Topic:     topic,
			Topics:    cfg.Topics,
			Style:     cfg.Theme,
		})
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVarP(&model, "model", "m", "", "Model to use (e.g., gpt-4o)")
	startCmd.Flags().StringVarP(&topic, "topic", "t", "", "Initial topic (default: general finance)")
	startCmd.Flags().StringVar(&theme, "theme", "", "Color mode: auto, dark or light")
	startCmd.Flags().StringVar(&logFile, "log-file", "", "Write diagnostics to this file")
}
