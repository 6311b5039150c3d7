package utils

import (
	"strings"
	"unicode/utf8"
)

// Normalize truncates text to maxSize bytes (zero disables the limit)
// and strips invalid UTF-8, keeping the result safe for the substring
// heuristics downstream.
func Normalize(text string, maxSize int) string {
	return SanitizeUTF8(Truncate(text, maxSize))
}

// Truncate cuts text at maxSize bytes without splitting a UTF-8
// sequence.
func Truncate(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}
	truncated := text[:maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated
}

// SanitizeUTF8 drops invalid byte sequences.
func SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, "")
}
