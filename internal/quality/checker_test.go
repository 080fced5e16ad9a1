package quality

import (
	"errors"
	"strings"
	"testing"

	"github.com/mikey/phish-trainer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newChecker() *Checker {
	return NewChecker(Options{
		TrustedDomains: []string{" Corp.com.au "},
		MinWords:       150,
		MaxWords:       300,
		MinClues:       2,
		MaxClues:       4,
	}, zap.NewNop())
}

func goodSample() *core.EmailSample {
	return &core.EmailSample{
		Sender:      "Payroll Team",
		SenderEmail: "payroll@payr0ll-au.com",
		Subject:     "Bank details",
		Content:     strings.Repeat("word ", 200),
		IsPhishing:  true,
		Time:        "09:00 AM",
		Clues:       []string{"one", "two"},
	}
}

func TestInspect_Clean(t *testing.T) {
	assert.Empty(t, newChecker().Inspect(goodSample()))
}

func TestInspect_Issues(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*core.EmailSample)
		field    string
		severity Severity
	}{
		{"empty sender", func(s *core.EmailSample) { s.Sender = " " }, "sender", Hard},
		{"empty content", func(s *core.EmailSample) { s.Content = "" }, "content", Hard},
		{"too short", func(s *core.EmailSample) { s.Content = "short body" }, "content", Soft},
		{"too long", func(s *core.EmailSample) { s.Content = strings.Repeat("w ", 301) }, "content", Soft},
		{"too few clues", func(s *core.EmailSample) { s.Clues = []string{"one"} }, "clues", Soft},
		{"too many clues", func(s *core.EmailSample) { s.Clues = []string{"1", "2", "3", "4", "5"} }, "clues", Soft},
		{"trusted domain", func(s *core.EmailSample) { s.SenderEmail = "hr@mail.corp.com.au" }, "senderEmail", Soft},
		{"legitimate with clues", func(s *core.EmailSample) { s.IsPhishing = false }, "clues", Soft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := goodSample()
			tt.mutate(s)

			issues := newChecker().Inspect(s)
			require.NotEmpty(t, issues)

			found := false
			for _, issue := range issues {
				if issue.Field == tt.field && issue.Severity == tt.severity {
					found = true
				}
			}
			assert.True(t, found, "issues: %v", issues)
		})
	}
}

func TestCheck_SoftIssuesOnlyRejectWhenStrict(t *testing.T) {
	c := newChecker()
	s := goodSample()
	s.Content = "short body"

	assert.NoError(t, c.Check(s, false))

	err := c.Check(s, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
}

func TestCheck_RejectionMessageIsStable(t *testing.T) {
	s := &core.EmailSample{IsPhishing: false, Clues: []string{}}

	for i := 0; i < 20; i++ {
		err := NewChecker(Options{}, zap.NewNop()).Check(s, false)
		require.Error(t, err)
		assert.Equal(t,
			"sample rejected by quality check: hard sender: is empty; hard senderEmail: is empty; hard subject: is empty; hard content: is empty",
			err.Error())
	}
}

func TestCheck_HardIssuesAlwaysReject(t *testing.T) {
	s := goodSample()
	s.Subject = ""

	assert.ErrorIs(t, newChecker().Check(s, false), ErrRejected)
}

func TestCheck_ZeroOptionsSkipRanges(t *testing.T) {
	c := NewChecker(Options{}, zap.NewNop())
	s := goodSample()
	s.Content = "tiny"
	s.Clues = nil

	assert.Empty(t, c.Inspect(s))
}

func TestIsTrusted(t *testing.T) {
	c := newChecker()

	assert.True(t, c.IsTrusted("it@corp.com.au"))
	assert.True(t, c.IsTrusted("it@CORP.COM.AU"))
	assert.True(t, c.IsTrusted("it@mail.corp.com.au"))
	assert.False(t, c.IsTrusted("it@notcorp.com.au"))
	assert.False(t, c.IsTrusted("not-an-address"))
	assert.False(t, NewChecker(Options{}, zap.NewNop()).IsTrusted("it@corp.com.au"))
}
