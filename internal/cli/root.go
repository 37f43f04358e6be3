package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	apiKey     string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "quizmaster",
		Short: "AI-generated multiple-choice quizzes, in the terminal or over WebSocket",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Groq API key (environment variable GROQ_API_KEY takes precedence)")
	cmd.AddCommand(NewPlayCmd(&configPath, &apiKey))
	cmd.AddCommand(NewServeCmd(&configPath, &apiKey))
	return cmd
}
