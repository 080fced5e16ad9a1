package utils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "hello", tp.TruncateText("hello", 10))
	assert.Equal(t, "hello", tp.TruncateText("hello", 0))
	assert.Equal(t, "hel", tp.TruncateText("hello", 3))

	// "你" is three bytes; cutting at four must not split the second rune
	assert.Equal(t, "你", tp.TruncateText("你好", 4))
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "valid 文本", tp.SanitizeUTF8("valid 文本"))
	assert.Equal(t, "ab", tp.SanitizeUTF8("a\xffb"))
}

func TestProcessText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "abc", tp.ProcessText("a\xffbcdef", 3))
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"Hi all, please read this.", 5},
		{"  spaced   out\n\nwords ", 3},
		{"各位同事", 4},
		{"请登录 Microsoft 365 门户", 7},
		{"e-mail isn't split", 3},
		{"各位同事，请注意。", 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WordCount(tt.text), "%q", tt.text)
	}
}

func TestWordCount_LongBody(t *testing.T) {
	body := strings.Repeat("word ", 220)
	assert.Equal(t, 220, WordCount(body))
}

func TestHighlights_BoundsInput(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	content := "Visit http://evil.example.net/a now. " +
		strings.Repeat("x ", MaxHighlightContent) + "'tail phrase'"
	terms := tp.Highlights(content, []string{
		"Link http://evil.example.net/a",
		"Quote 'tail phrase'",
	})
	assert.Equal(t, []string{"http://evil.example.net/a"}, terms, "text past the content limit is not scanned")

	var body strings.Builder
	clues := make([]string, 0, MaxHighlightClues+4)
	for i := 0; i < MaxHighlightClues+4; i++ {
		term := fmt.Sprintf("term%02d", i)
		body.WriteString(term + " ")
		clues = append(clues, fmt.Sprintf("Mentions '%s'", term))
	}
	assert.Len(t, tp.Highlights(body.String(), clues), MaxHighlightClues)

	long := "Quote '" + strings.Repeat("y", MaxHighlightClue) + "'"
	assert.Empty(t, tp.Highlights(strings.Repeat("y", MaxHighlightClue), []string{long}),
		"a clue cut at the size limit loses its closing quote")
}
