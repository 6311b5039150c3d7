package core

import (
	"regexp"
	"strings"
)

var (
	domainPattern = regexp.MustCompile(`@([A-Za-z0-9][A-Za-z0-9.-]*\.[A-Za-z]{2,})`)
	urlPattern    = regexp.MustCompile(`(?i)https?://[^\s<>"')]+`)
)

// ExtractDomain returns the lowercased domain of an address-like
// string; "User <a@b.co>" yields "b.co". It returns "" when no
// address pattern matches and never fails on malformed input.
func ExtractDomain(address string) string {
	m := domainPattern.FindStringSubmatch(address)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// ExtractURLs returns every http/https URL in text, lowercased, in
// order of appearance, duplicates preserved. Trailing sentence
// punctuation is trimmed from each match.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, strings.ToLower(strings.TrimRight(m, ".,;:!?")))
	}
	return urls
}
