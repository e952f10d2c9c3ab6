package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/boat-builder/chatpod/internal/logger"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "chatpod",
		Short:   "Chat with a generation backend from the terminal",
		Version: version,
		Long: `chatpod holds a persisted, multi-turn conversation with a generative text
backend. History is read from the chat API and replies are streamed as they are
generated.`,
		Example: `  # Start a new conversation
  $ chatpod chat

  # Continue a saved conversation
  $ chatpod chat 65f1c0a2e4b0

  # Use an OpenAI compatible backend
  $ chatpod chat --provider openai --model gpt-4o-mini`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "base URL of the chat API (env API_URL)")
	flags.String("provider", "", "generation backend: gemini or openai (env LLM_PROVIDER)")
	flags.String("model", "", "model name (env LLM_MODEL)")
	flags.String("log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	flags.String("log-format", "", "text or json (env LOG_FORMAT)")

	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newDemoCmd())
	return rootCmd
}
