package utils

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	quotedPattern = regexp.MustCompile(`['"‘’“”「」『』]([^'"‘’“”「」『』]+)['"‘’“”「」『』]`)
	urlPattern    = regexp.MustCompile(`https?://[^\s'"<>()（）]+`)
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// minQuotedRunes is the shortest quoted phrase worth highlighting
const minQuotedRunes = 4

// HighlightsFromClues extracts the phrases a clue refers to (quoted text,
// URLs and email addresses) that literally occur in content. Terms are
// unique and ordered longest first so overlapping matches prefer the
// longer phrase.
func HighlightsFromClues(content string, clues []string) []string {
	seen := make(map[string]struct{})
	var terms []string

	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" || !strings.Contains(content, term) {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	for _, clue := range clues {
		for _, m := range quotedPattern.FindAllStringSubmatch(clue, -1) {
			if utf8.RuneCountInString(m[1]) >= minQuotedRunes {
				add(m[1])
			}
		}
		for _, u := range urlPattern.FindAllString(clue, -1) {
			add(strings.TrimRight(u, ".,;:!?，。；：！？"))
		}
		for _, e := range emailPattern.FindAllString(clue, -1) {
			add(e)
		}
	}

	sort.SliceStable(terms, func(i, j int) bool {
		return utf8.RuneCountInString(terms[i]) > utf8.RuneCountInString(terms[j])
	})

	if terms == nil {
		return []string{}
	}
	return terms
}
