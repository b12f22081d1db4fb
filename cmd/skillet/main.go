package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillet-ai/skillet/pkg/llm"
	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/presenter"
)

func init() {
	// Load .env before AutomaticEnv so provider API keys defined there are
	// visible to detection and to the gateway client.
	_ = godotenv.Load()

	// Environment variables
	viper.SetEnvPrefix("SKILLET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./.skillet")
	viper.AddConfigPath("$HOME/.skillet")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()

	// Register config keys and defaults
	llm.InitConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillet",
	Short: "Skillet is an LLM agent with progressively disclosed skills",
	Long: `Skillet is a tool-calling LLM agent that discovers skills on disk and
discloses them to the model progressively: one line per skill up front,
full instructions only after the model activates the skill.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		presenter.SetQuiet(viper.GetBool("quiet"))
		logger.SetLogFormat(viper.GetString("log_format"))
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return err
		}
		initTracing(cmd.Context())
		return nil
	},
	// Default behavior is to show help if no arguments are provided
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			// If arguments are provided but no subcommand, forward to run command
			runCmd.Run(cmd, args)
		} else {
			cmd.Help()
			os.Exit(1)
		}
	},
}

func main() {
	ctx := context.Background()

	// Add global flags
	rootCmd.PersistentFlags().String("provider", "", "LLM provider to use (openai, deepseek, anthropic)")
	rootCmd.PersistentFlags().String("model", "", "LLM model to use (overrides config)")
	rootCmd.PersistentFlags().Int("max-tokens", 0, "Maximum tokens for response (overrides config)")
	rootCmd.PersistentFlags().Int("max-rounds", 0, "Maximum reasoning rounds per message (overrides config)")
	rootCmd.PersistentFlags().String("profile", "", "Configuration profile to apply")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (json, text, fmt)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().Bool("no-skills", false, "Disable skill discovery and the activation tool")
	rootCmd.PersistentFlags().String("skills-dir", "", "Directory to discover skills in (overrides config)")

	// Bind flags to viper
	viper.BindPFlag("provider", rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("max_tokens", rootCmd.PersistentFlags().Lookup("max-tokens"))
	viper.BindPFlag("max_rounds", rootCmd.PersistentFlags().Lookup("max-rounds"))
	viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("no_skills", rootCmd.PersistentFlags().Lookup("no-skills"))
	viper.BindPFlag("skills.directory", rootCmd.PersistentFlags().Lookup("skills-dir"))

	// Execute
	err := rootCmd.ExecuteContext(ctx)
	flushTracing(ctx)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
