package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		maxSize int
		want    string
	}{
		{"zero disables limit", "hello", 0, "hello"},
		{"under limit", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"byte cut", "hello world", 5, "hello"},
		{"does not split multibyte rune", "héllo", 2, "h"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Truncate(tc.text, tc.maxSize))
		})
	}
}

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "valid", SanitizeUTF8("valid"))
	assert.Equal(t, "ab", SanitizeUTF8("a\xffb"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "abc", Normalize("abc", 0))
	assert.Equal(t, "ab", Normalize("abcdef", 2))
	assert.Equal(t, "xy", Normalize("x\xffy", 0))
}
