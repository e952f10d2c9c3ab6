package chatpod

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// LLMConfig selects and authenticates the generation backend.
type LLMConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// Config is everything a Pod needs to reach the chat backend and the
// generation backend.
type Config struct {
	APIURL  string
	Cookies map[string]string
	LLM     LLMConfig
}

func (c LLMConfig) model() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderOpenAI {
		return DefaultOpenAIModel
	}
	return DefaultGeminiModel
}
