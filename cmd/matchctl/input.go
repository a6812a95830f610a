package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fadilmartias/connect-matching/internal/matching"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func readJSONFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%s is not valid JSON", path)
	}
	return raw, nil
}

func loadCandidate(path string) (*matching.CandidateProfile, error) {
	raw, err := readJSONFile(path)
	if err != nil {
		return nil, err
	}
	var c matching.CandidateProfile
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to decode candidate %s: %w", path, err)
	}
	return &c, nil
}

func loadRequirement(path string) (*matching.JobRequirement, error) {
	raw, err := readJSONFile(path)
	if err != nil {
		return nil, err
	}
	var r matching.JobRequirement
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("failed to decode requirement %s: %w", path, err)
	}
	return &r, nil
}

// loadRequirements reads a JSON array of requirements. Entries that do not decode are
// logged and skipped; entries without an id get their array index.
func loadRequirements(path string) ([]*matching.JobRequirement, error) {
	raw, err := readJSONFile(path)
	if err != nil {
		return nil, err
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%s must hold a JSON array of offers", path)
	}

	var out []*matching.JobRequirement
	for i, item := range doc.Array() {
		var r matching.JobRequirement
		if err := json.Unmarshal([]byte(item.Raw), &r); err != nil {
			zlog.Warn("skipping malformed offer", zap.Int("index", i), zap.Error(err))
			continue
		}
		if r.ID == "" {
			r.ID = fmt.Sprintf("#%d", i)
		}
		out = append(out, &r)
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
