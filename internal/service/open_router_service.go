package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/connect-matching/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenRouterService explains match results through the OpenRouter chat completions API.
type OpenRouterService struct {
	APIKey string
	Model  string
	URL    string
	client *resty.Client
}

func NewOpenRouterService() *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	return newOpenRouterService(cfg.APIKey, cfg.Model, cfg.URL)
}

func newOpenRouterService(apiKey, model, url string) *OpenRouterService {
	return &OpenRouterService{
		APIKey: apiKey,
		Model:  model,
		URL:    url,
		client: resty.New().
			SetTimeout(90 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(time.Second),
	}
}

func (s *OpenRouterService) Enabled() bool {
	return s.APIKey != ""
}

func (s *OpenRouterService) Explain(ctx context.Context, in ExplainInput) (*Explanation, error) {
	if in.Result == nil {
		return nil, fmt.Errorf("match result is required")
	}
	prompt, err := buildExplainPrompt(in)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": "You are a recruiter explaining candidate/job match scores."},
				{"role": "user", "content": prompt},
			},
			"response_format": map[string]string{"type": "json_object"},
		}).
		Post(s.URL)
	if err != nil {
		return nil, fmt.Errorf("openrouter request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("openrouter returned %d: %s", resp.StatusCode(), gjson.Get(resp.String(), "error.message").String())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return nil, fmt.Errorf("no response from LLM")
	}
	return parseExplanation(text, "openrouter")
}
