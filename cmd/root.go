/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/longkey1/finchat/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	envFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "finchat",
	Short: "A terminal finance assistant backed by an LLM",
	Long: `finchat forwards your questions to an OpenAI-compatible chat completion API
and shows the answers as formatted markdown.

Use 'finchat start' for an interactive conversation or 'finchat chat' for a single question.
You can configure the tool using a TOML configuration file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/finchat/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.LoadDotEnv(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading env file: %v\n", err)
	}

	viper.SetEnvPrefix("FINCHAT")
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	viper.BindEnv("openai_base_url", "FINCHAT_OPENAI_BASE_URL")
	viper.BindEnv("openai_token", "FINCHAT_OPENAI_TOKEN")
	viper.BindEnv("model", "FINCHAT_MODEL")
	viper.BindEnv("theme", "FINCHAT_THEME")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(filepath.Join(home, ".config", "finchat"))
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, "  FINCHAT_MODEL:", viper.GetString("model"))
		fmt.Fprintln(os.Stderr, "  FINCHAT_OPENAI_BASE_URL:", viper.GetString("openai_base_url"))
		fmt.Fprintln(os.Stderr, "  FINCHAT_THEME:", viper.GetString("theme"))
	}
}

// newLogger returns the diagnostic logger: warnings on stderr, debug with --verbose
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
