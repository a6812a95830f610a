package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/connect-matching/internal/config"
	applogger "github.com/fadilmartias/connect-matching/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	maxEmbeddingChars = 10000
	logPreviewChars   = 200
)

var (
	// ErrGeminiDisabled is returned by NewGeminiService when no API key is configured.
	ErrGeminiDisabled = errors.New("GEMINI_API_KEY not set")
	// ErrCircuitOpen is returned without calling Gemini while the circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

type GeminiServiceInterface interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateContent(ctx context.Context, model string, prompt string) (*genai.GenerateContentResponse, error)
}

type GeminiService struct {
	Client         *genai.Client
	EmbeddingModel string
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration
	logger         *zap.Logger

	mu                sync.Mutex
	consecutiveErrors int
	circuitBreakerMax int
	breakerCooldown   time.Duration
	openedAt          time.Time
	trialInFlight     bool
	now               func() time.Time
}

func NewGeminiService(ctx context.Context, logger *zap.Logger) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	if geminiConfig.APIKey == "" {
		return nil, ErrGeminiDisabled
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:            client,
		EmbeddingModel:    geminiConfig.EmbeddingModel,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          90 * time.Second,
		RequestTimeout:    90 * time.Second,
		logger:            logger,
		circuitBreakerMax: 5,
		breakerCooldown:   30 * time.Second,
		now:               time.Now,
	}, nil
}

func (s *GeminiService) GenerateContent(ctx context.Context, model string, prompt string) (*genai.GenerateContentResponse, error) {
	if model == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.1)),
		ResponseMIMEType: "application/json",
	}

	s.logger.Debug("gemini generate content",
		zap.String("model", model),
		zap.String("prompt", applogger.TruncateForLog(prompt, logPreviewChars)),
	)

	var result *genai.GenerateContentResponse
	err := s.withRetry(ctx, "GenerateContent", func(callCtx context.Context) error {
		var err error
		result, err = s.Client.Models.GenerateContent(callCtx, model, genai.Text(prompt), genConfig)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := s.validateGenerateResponse(result); err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	s.logger.Debug("gemini response",
		zap.String("model", model),
		zap.String("text", applogger.TruncateForLog(result.Text(), logPreviewChars)),
	)
	return result, nil
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}

	if runes := []rune(trimmedText); len(runes) > maxEmbeddingChars {
		s.logger.Warn("embedding text exceeds recommended limit, truncating",
			zap.Int("length", len(runes)),
			zap.Int("limit", maxEmbeddingChars),
		)
		trimmedText = string(runes[:maxEmbeddingChars])
	}

	content := []*genai.Content{genai.NewContentFromText(trimmedText, genai.RoleUser)}

	var result *genai.EmbedContentResponse
	err := s.withRetry(ctx, "GenerateEmbedding", func(callCtx context.Context) error {
		var err error
		result, err = s.Client.Models.EmbedContent(callCtx, s.EmbeddingModel, content, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	embeddings, err := s.validateEmbeddingResponse(result)
	if err != nil {
		return nil, fmt.Errorf("invalid embedding response: %w", err)
	}
	return embeddings, nil
}

// withRetry runs call with exponential backoff on retryable errors, under one overall timeout,
// and feeds the circuit breaker. Client errors (4xx other than 429) and caller cancellation do
// not count as failures.
func (s *GeminiService) withRetry(ctx context.Context, op string, call func(ctx context.Context) error) error {
	if !s.allowCall() {
		n, _ := s.GetCircuitBreakerStatus()
		return fmt.Errorf("%w: too many consecutive errors (%d)", ErrCircuitOpen, n)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.logger.Info("retrying gemini call",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Int("max_retries", s.MaxRetries),
				zap.Duration("delay", delay),
			)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				if isServiceFailure(timeoutCtx.Err()) {
					s.recordFailure()
				} else {
					s.releaseTrial()
				}
				return fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		err := call(timeoutCtx)
		if err == nil {
			s.recordSuccess()
			return nil
		}
		lastErr = err

		if !s.isRetryableError(err) {
			s.logger.Warn("non-retryable gemini error", zap.String("op", op), zap.Error(err))
			if isServiceFailure(err) {
				s.recordFailure()
			} else {
				s.releaseTrial()
			}
			return fmt.Errorf("%s failed: %w", op, err)
		}

		s.logger.Warn("retryable gemini error", zap.String("op", op), zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.recordFailure()
	return fmt.Errorf("max retries (%d) exceeded for %s: %w", s.MaxRetries, op, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func (s *GeminiService) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if code, ok := apiErrorCode(err); ok {
		switch code {
		case 429: // Rate limit
			return true
		case 500, 502, 503, 504:
			return true
		case 400, 401, 403, 404:
			return false
		}
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF") {
		return true
	}

	return false
}

// isServiceFailure reports whether err says something about Gemini's health rather than about
// the request or the caller.
func isServiceFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if code, ok := apiErrorCode(err); ok && code >= 400 && code < 500 && code != 429 {
		return false
	}
	return true
}

// apiErrorCode extracts the HTTP status of a Gemini API error, returned by value or pointer.
func apiErrorCode(err error) (int, bool) {
	var byValue genai.APIError
	if errors.As(err, &byValue) {
		return byValue.Code, true
	}
	var byPointer *genai.APIError
	if errors.As(err, &byPointer) && byPointer != nil {
		return byPointer.Code, true
	}
	return 0, false
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}

func (s *GeminiService) validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	embeddings := resp.Embeddings[0].Values

	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}

	for i, val := range embeddings {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}

	return embeddings, nil
}

func (s *GeminiService) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// allowCall lets every call through while the breaker is closed. Once open, a single trial call
// is let through after the cooldown; its outcome closes or reopens the breaker.
func (s *GeminiService) allowCall() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consecutiveErrors < s.circuitBreakerMax {
		return true
	}
	if s.trialInFlight || s.clock().Sub(s.openedAt) < s.breakerCooldown {
		return false
	}
	s.trialInFlight = true
	s.logger.Info("circuit breaker half-open, allowing trial call")
	return true
}

func (s *GeminiService) recordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consecutiveErrors >= s.circuitBreakerMax {
		s.logger.Info("circuit breaker closed")
	}
	s.consecutiveErrors = 0
	s.trialInFlight = false
}

func (s *GeminiService) recordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consecutiveErrors++
	s.trialInFlight = false
	if s.consecutiveErrors >= s.circuitBreakerMax {
		s.openedAt = s.clock()
		if s.consecutiveErrors == s.circuitBreakerMax {
			s.logger.Warn("circuit breaker opened", zap.Int("consecutive_errors", s.consecutiveErrors))
		}
	}
}

func (s *GeminiService) releaseTrial() {
	s.mu.Lock()
	s.trialInFlight = false
	s.mu.Unlock()
}

// GetCircuitBreakerStatus reports the failure streak and whether the breaker is open.
func (s *GeminiService) GetCircuitBreakerStatus() (consecutiveErrors int, isOpen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consecutiveErrors, s.consecutiveErrors >= s.circuitBreakerMax
}
