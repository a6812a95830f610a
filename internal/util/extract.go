package util

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"
	"unicode"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

const (
	MaxCVBytes    = 5 * 1024 * 1024
	minCVTextSize = 100
)

var (
	ErrEmptyDocument = errors.New("no text extracted from document")
	ErrTooShort      = errors.New("extracted text too short to be a CV")
)

// ExtractPDFText reads the text layer of a PDF. Scanned documents without one fall back to
// Tesseract OCR when the binary is available.
func ExtractPDFText(ctx context.Context, data []byte, logger *zap.Logger) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			logger.Warn("page text extraction failed", zap.Int("page", n+1), zap.Error(err))
			continue
		}
		if pageText = strings.TrimSpace(pageText); pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := CleanText(fullText.String())
	if result == "" {
		logger.Info("pdf has no text layer, trying OCR", zap.Int("pages", doc.NumPage()))
		result, err = ocrPages(ctx, doc, logger)
		if err != nil {
			return "", err
		}
	}

	if result == "" {
		return "", ErrEmptyDocument
	}
	if len([]rune(result)) < minCVTextSize {
		return "", ErrTooShort
	}

	logger.Debug("cv text extracted", zap.Int("chars", len(result)))
	return result, nil
}

// CleanText collapses runs of blank lines and drops control characters.
func CleanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, s)

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimRightFunc(l, unicode.IsSpace)
		if l == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func ocrPages(ctx context.Context, doc *fitz.Document, logger *zap.Logger) (string, error) {
	if err := checkTesseract(ctx); err != nil {
		logger.Warn("ocr unavailable", zap.Error(err))
		return "", nil
	}

	var fullText bytes.Buffer
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
			logger.Warn("ocr page skipped", zap.Error(lastErr))
			continue
		}

		pageText, err := ocrImage(ctx, img)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			logger.Warn("ocr page skipped", zap.Error(lastErr))
			continue
		}

		if pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := CleanText(fullText.String())
	if result == "" && lastErr != nil {
		return "", fmt.Errorf("failed to extract text via OCR: %w", lastErr)
	}
	return result, nil
}

func ocrImage(ctx context.Context, img image.Image) (string, error) {
	tmpFile, err := os.CreateTemp("", "cv-page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to write PNG: %w", err)
	}

	out, err := exec.CommandContext(ctx, "tesseract", tmpPath, "stdout", "-l", "eng+fra").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tesseract error: %w, output: %s", err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

func checkTesseract(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, "tesseract", "-v").CombinedOutput()
	if err != nil {
		return fmt.Errorf("tesseract not found or not executable: %w, output: %s", err, string(out))
	}
	return nil
}
