package config

import "os"

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Analysis is for survey response analysis (needs to be fast)
	Analysis string `json:"analysis"`

	// Meeting is for meeting transcript analysis (longer input, can be
	// slightly slower)
	Meeting string `json:"meeting"`
}

// AIConfig holds all inference-related configuration
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration. With no API key the
// analyzer runs the heuristic path only.
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			Analysis: getEnvOrDefault("GEMINI_MODEL_ANALYSIS", "gemini-2.5-flash-preview-05-20"),
			Meeting:  getEnvOrDefault("GEMINI_MODEL_MEETING", "gemini-2.0-flash"),
		},
		TimeoutMS: 10000,
	}
}

// IsEnabled returns true if the inference API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
