package service

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, prompt string) (*genai.GenerateContentResponse, error)
}

// GeminiExplainer explains match results with a Gemini model.
type GeminiExplainer struct {
	generator contentGenerator
	model     string
}

func NewGeminiExplainer(generator contentGenerator, model string) *GeminiExplainer {
	return &GeminiExplainer{generator: generator, model: model}
}

func (e *GeminiExplainer) Explain(ctx context.Context, in ExplainInput) (*Explanation, error) {
	if in.Result == nil {
		return nil, fmt.Errorf("match result is required")
	}
	prompt, err := buildExplainPrompt(in)
	if err != nil {
		return nil, err
	}

	resp, err := e.generator.GenerateContent(ctx, e.model, prompt)
	if err != nil {
		return nil, err
	}
	return parseExplanation(resp.Text(), "gemini")
}
