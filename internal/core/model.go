package core

import (
	"fmt"
	"strings"
	"time"
)

// Locale selects a seed catalog, a prompt set and a pool file
type Locale string

const (
	// LocaleZH is the domestic (Simplified Chinese) audience
	LocaleZH Locale = "zh"
	// LocaleEN is the English-speaking (Australian workplace) audience
	LocaleEN Locale = "en"
)

// Locales lists every supported locale in a stable order
var Locales = []Locale{LocaleZH, LocaleEN}

// ParseLocale converts a raw locale string into a supported Locale
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocaleZH:
		return LocaleZH, nil
	case LocaleEN:
		return LocaleEN, nil
	default:
		return "", fmt.Errorf("unsupported locale: %q", s)
	}
}

// EmailSample is a generated and validated training email
type EmailSample struct {
	ID          string   `json:"id,omitempty"`
	Sender      string   `json:"sender"`
	SenderEmail string   `json:"senderEmail"`
	Subject     string   `json:"subject"`
	Content     string   `json:"content"`
	IsPhishing  bool     `json:"isPhishing"`
	Time        string   `json:"time"`
	Clues       []string `json:"clues"`
}

// Clone returns a copy that shares nothing with the receiver
func (s EmailSample) Clone() EmailSample {
	c := s
	c.Clues = append([]string{}, s.Clues...)
	return c
}

// SeedType is the classification a scenario seed requires
type SeedType string

const (
	SeedPhishing SeedType = "phishing"
	SeedNormal   SeedType = "normal"
)

// IsPhishing reports whether the seed asks for a phishing sample
func (t SeedType) IsPhishing() bool {
	return t == SeedPhishing
}

// Valid reports whether t is a known seed type
func (t SeedType) Valid() bool {
	return t == SeedPhishing || t == SeedNormal
}

// ScenarioSeed steers one generation call towards a concrete pretext
type ScenarioSeed struct {
	ID   int      `json:"id" yaml:"id"`
	Type SeedType `json:"type" yaml:"type"`
	Hint string   `json:"hint" yaml:"hint"`
}

// GenerationRequest describes one call to the sample generator.
// A nil Seed means unconstrained live generation.
type GenerationRequest struct {
	Locale Locale
	Seed   *ScenarioSeed
}

// GenerationResult carries a sample plus where it came from
type GenerationResult struct {
	Sample   EmailSample
	Backend  string
	Attempts int
	Fallback bool
}

// BuildSummary reports the outcome of a pool builder run
type BuildSummary struct {
	Locale     Locale
	Requested  int
	Succeeded  int
	Added      int
	Total      int
	Duration   time.Duration
	FinishedAt time.Time
}
