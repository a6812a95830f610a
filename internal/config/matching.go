package config

import (
	"sync"
)

type MatchingConfig struct {
	MinScore          int
	Workers           int
	SemanticTopK      int
	ExplainerProvider string // "gemini", "openrouter" or "none"
}

var (
	matchingConfig *MatchingConfig
	matchingOnce   sync.Once
)

func LoadMatchingConfig() *MatchingConfig {
	matchingOnce.Do(func() {
		matchingConfig = &MatchingConfig{
			MinScore:          getEnvInt("MATCH_MIN_SCORE", 50),
			Workers:           getEnvInt("MATCH_WORKERS", 0),
			SemanticTopK:      getEnvInt("MATCH_SEMANTIC_TOP_K", 50),
			ExplainerProvider: getEnv("EXPLAINER_PROVIDER", "gemini"),
		}
	})
	return matchingConfig
}
