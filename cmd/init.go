package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/longkey1/finchat/internal/config"
	"github.com/longkey1/finchat/internal/prompt"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file",
	Long: `Initialize the configuration file with default settings.
The config file will be created at $HOME/.config/finchat/config.toml by default.
You can specify a different location using the --config option.

A prompt.toml holding the built-in system instruction is written next to it;
point 'prompt_file' at it to customize the assistant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		configFile := filepath.Join(home, ".config", "finchat", "config.toml")
		if cfgFile != "" {
			configFile = cfgFile
		}

		configDir := filepath.Dir(configFile)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("config file already exists at: %s", configFile)
		}

		if err := writeTOML(configFile, config.NewDefaultConfig()); err != nil {
			return err
		}

		promptFile := filepath.Join(configDir, "prompt.toml")
		if _, err := os.Stat(promptFile); os.IsNotExist(err) {
			if err := writeTOML(promptFile, prompt.Default()); err != nil {
				return err
			}
			fmt.Printf("Prompt file created at: %s\n", promptFile)
		}

		fmt.Printf("Configuration file created at: %s\n", configFile)
		return nil
	},
}

// writeTOML encodes v into a new file at path
func writeTOML(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
