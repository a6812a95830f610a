package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fadilmartias/connect-matching/internal/matching"
	"github.com/tidwall/gjson"
)

// ExplainInput is what an explainer is told about one scored pair.
type ExplainInput struct {
	CandidateName    string
	OfferTitle       string
	OfferDescription string
	Result           *matching.MatchResult
}

// Explanation is a short recruiter-facing narrative of a match result.
type Explanation struct {
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
	Provider  string   `json:"provider"`
}

type Explainer interface {
	Explain(ctx context.Context, in ExplainInput) (*Explanation, error)
}

const maxDescriptionChars = 2000

func buildExplainPrompt(in ExplainInput) (string, error) {
	result, err := json.Marshal(in.Result)
	if err != nil {
		return "", fmt.Errorf("marshal match result: %w", err)
	}

	description := in.OfferDescription
	if runes := []rune(description); len(runes) > maxDescriptionChars {
		description = string(runes[:maxDescriptionChars]) + "..."
	}

	return fmt.Sprintf(`
You are an experienced technical recruiter. A deterministic scorer already compared a candidate with a job offer.
Do not recompute or contradict the scores; explain them.

Job offer: %s
Description:
%s

Candidate: %s

Match result (scores are percentages):
%s

Return your answer STRICTLY in JSON format with this schema:
{
  "summary": "<two or three sentences on overall fit>",
  "strengths": ["<short strength>", ...],
  "gaps": ["<short gap the candidate could close>", ...]
}
`, in.OfferTitle, description, in.CandidateName, result), nil
}

// parseExplanation reads an explanation out of raw model output, tolerating fenced code blocks.
func parseExplanation(raw, provider string) (*Explanation, error) {
	text := extractJSON(raw)
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("explanation is not valid JSON")
	}

	summary := strings.TrimSpace(gjson.Get(text, "summary").String())
	if summary == "" {
		return nil, fmt.Errorf("explanation has no summary")
	}

	return &Explanation{
		Summary:   summary,
		Strengths: stringList(gjson.Get(text, "strengths")),
		Gaps:      stringList(gjson.Get(text, "gaps")),
		Provider:  provider,
	}, nil
}

func stringList(v gjson.Result) []string {
	out := []string{}
	for _, item := range v.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
