package config

import (
	"sync"
)

type OpenRouterConfig struct {
	APIKey string
	Model  string
	URL    string
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		openRouterConfig = &OpenRouterConfig{
			APIKey: getEnv("OPENROUTER_API_KEY", ""),
			Model:  getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
			URL:    getEnv("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions"),
		}
	})
	return openRouterConfig
}
