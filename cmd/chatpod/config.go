package main

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/boat-builder/chatpod"
)

type cliConfig struct {
	chatpod.Config
	LogLevel  string
	LogFormat string
}

var flagKeys = map[string]string{
	"api-url":    "api_url",
	"provider":   "llm_provider",
	"model":      "llm_model",
	"log-level":  "log_level",
	"log-format": "log_format",
}

// loadConfig reads .env if present, then lets flags override the
// environment.
func loadConfig(cmd *cobra.Command) (*cliConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("api_url", "http://localhost:3000")
	v.SetDefault("llm_provider", chatpod.ProviderGemini)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.AutomaticEnv()

	for flag, key := range flagKeys {
		if f := cmd.Flag(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "bind flag %s", flag)
			}
		}
	}

	provider := strings.ToLower(v.GetString("llm_provider"))
	apiKey := v.GetString("gemini_api_key")
	if provider == chatpod.ProviderOpenAI {
		apiKey = v.GetString("openai_api_key")
	}

	return &cliConfig{
		Config: chatpod.Config{
			APIURL:  v.GetString("api_url"),
			Cookies: parseCookies(v.GetString("session_cookie")),
			LLM: chatpod.LLMConfig{
				Provider: provider,
				APIKey:   apiKey,
				BaseURL:  v.GetString("llm_base_url"),
				Model:    v.GetString("llm_model"),
			},
		},
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}, nil
}

// parseCookies reads a Cookie header style value, "a=1; b=2".
func parseCookies(raw string) map[string]string {
	cookies := map[string]string{}
	for _, pair := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" {
			continue
		}
		cookies[name] = value
	}
	return cookies
}
