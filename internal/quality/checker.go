package quality

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mikey/phish-trainer/internal/core"
	"github.com/mikey/phish-trainer/internal/utils"
	"go.uber.org/zap"
)

// Severity tells whether an issue always rejects a sample
type Severity string

const (
	// Hard issues reject the sample in every mode
	Hard Severity = "hard"
	// Soft issues reject the sample only in strict mode
	Soft Severity = "soft"
)

// Issue is a single quality problem found in a sample
type Issue struct {
	Severity Severity
	Field    string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Severity, i.Field, i.Message)
}

// ErrRejected is wrapped by every error returned from Check
var ErrRejected = errors.New("sample rejected by quality check")

// Options holds the checker thresholds
type Options struct {
	TrustedDomains []string
	MinWords       int
	MaxWords       int
	MinClues       int
	MaxClues       int
}

// Checker inspects generated samples for problems the schema cannot express
type Checker struct {
	domains []string
	opts    Options
	logger  *zap.Logger
}

// NewChecker creates a new quality checker
func NewChecker(opts Options, logger *zap.Logger) *Checker {
	domains := make([]string, 0, len(opts.TrustedDomains))
	for _, domain := range opts.TrustedDomains {
		if d := strings.ToLower(strings.TrimSpace(domain)); d != "" {
			domains = append(domains, d)
		}
	}

	if len(domains) > 0 {
		logger.Info("Initialized quality checker", zap.Strings("trusted_domains", domains))
	}

	return &Checker{
		domains: domains,
		opts:    opts,
		logger:  logger,
	}
}

// Inspect lists every issue found in sample
func (c *Checker) Inspect(sample *core.EmailSample) []Issue {
	var issues []Issue

	for _, f := range []struct{ name, value string }{
		{"sender", sample.Sender},
		{"senderEmail", sample.SenderEmail},
		{"subject", sample.Subject},
		{"content", sample.Content},
	} {
		if strings.TrimSpace(f.value) == "" {
			issues = append(issues, Issue{Hard, f.name, "is empty"})
		}
	}

	if words := utils.WordCount(sample.Content); c.opts.MinWords > 0 && words < c.opts.MinWords ||
		c.opts.MaxWords > 0 && words > c.opts.MaxWords {
		issues = append(issues, Issue{Soft, "content",
			fmt.Sprintf("has %d words, want %d to %d", words, c.opts.MinWords, c.opts.MaxWords)})
	}

	if sample.IsPhishing {
		n := len(sample.Clues)
		if c.opts.MinClues > 0 && n < c.opts.MinClues || c.opts.MaxClues > 0 && n > c.opts.MaxClues {
			issues = append(issues, Issue{Soft, "clues",
				fmt.Sprintf("has %d clues, want %d to %d", n, c.opts.MinClues, c.opts.MaxClues)})
		}
		if c.IsTrusted(sample.SenderEmail) {
			issues = append(issues, Issue{Soft, "senderEmail", "phishing sample uses a trusted domain"})
		}
	} else if len(sample.Clues) > 0 {
		issues = append(issues, Issue{Soft, "clues", "legitimate sample carries clues"})
	}

	return issues
}

// Check implements core.SampleChecker. Hard issues always reject; soft
// issues reject only when strict is set and are logged otherwise.
func (c *Checker) Check(sample *core.EmailSample, strict bool) error {
	issues := c.Inspect(sample)
	if len(issues) == 0 {
		return nil
	}

	var rejecting []string
	for _, issue := range issues {
		if issue.Severity == Hard || strict {
			rejecting = append(rejecting, issue.String())
			continue
		}
		c.logger.Debug("Sample quality issue",
			zap.String("field", issue.Field),
			zap.String("issue", issue.Message),
			zap.String("sender", sample.Sender))
	}

	if len(rejecting) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrRejected, strings.Join(rejecting, "; "))
}

// IsTrusted reports whether the domain of address is a trusted domain
func (c *Checker) IsTrusted(address string) bool {
	if len(c.domains) == 0 {
		return false
	}

	parts := strings.Split(address, "@")
	if len(parts) != 2 {
		return false
	}
	domain := strings.ToLower(parts[1])

	for _, trusted := range c.domains {
		if domain == trusted || strings.HasSuffix(domain, "."+trusted) {
			return true
		}
	}
	return false
}
