package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor cleans sample text before it is stored, rendered or scanned
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateText cuts text to at most maxSize bytes without splitting a rune
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated
}

// SanitizeUTF8 drops invalid byte sequences
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	sanitized := strings.ToValidUTF8(text, "")
	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(sanitized)))

	return sanitized
}

// ProcessText truncates and sanitizes text in one operation
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	return tp.TruncateText(tp.SanitizeUTF8(text), maxSize)
}

// Limits applied to highlight input
const (
	MaxHighlightContent = 64 << 10
	MaxHighlightClue    = 1 << 10
	MaxHighlightClues   = 16
)

// Highlights sanitizes and bounds its input, then returns the highlight
// terms for clues. Clues past MaxHighlightClues are ignored.
func (tp *TextProcessor) Highlights(content string, clues []string) []string {
	if len(clues) > MaxHighlightClues {
		clues = clues[:MaxHighlightClues]
	}
	bounded := make([]string, len(clues))
	for i, clue := range clues {
		bounded[i] = tp.ProcessText(clue, MaxHighlightClue)
	}

	terms := HighlightsFromClues(tp.ProcessText(content, MaxHighlightContent), bounded)
	tp.logger.Debug("Highlight terms extracted",
		zap.Int("clues", len(bounded)),
		zap.Int("terms", len(terms)))
	return terms
}

// WordCount counts whitespace separated latin words and every Han,
// Hiragana, Katakana or Hangul character as one word. Punctuation neither
// starts nor ends a word.
func WordCount(text string) int {
	count := 0
	inWord := false

	for _, r := range text {
		switch {
		case isCJK(r):
			count++
			inWord = false
		case unicode.IsSpace(r):
			inWord = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if !inWord {
				count++
				inWord = true
			}
		}
	}
	return count
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}
