package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{"empty", "", ""},
		{"not an email", "not-an-email", ""},
		{"bare address", "a@b.co", "b.co"},
		{"display name", "User <a@b.co>", "b.co"},
		{"quoted display name", `"Billing Team" <billing@chase.com>`, "chase.com"},
		{"uppercase", "A@B.CO", "b.co"},
		{"subdomain", "alerts@mail.example.com", "mail.example.com"},
		{"single letter tld rejected", "a@b.c", ""},
		{"missing local part still matches", "@b.co", "b.co"},
		{"trailing dot dropped", "a@b.co.", "b.co"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractDomain(tc.address))
		})
	}
}

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"no urls", "nothing to see here", nil},
		{
			"trailing punctuation stripped",
			"see http://bit.ly/x and https://ok.com/path.",
			[]string{"http://bit.ly/x", "https://ok.com/path"},
		},
		{
			"order and duplicates preserved",
			"http://a.com http://b.com http://a.com",
			[]string{"http://a.com", "http://b.com", "http://a.com"},
		},
		{
			"lowercased",
			"HTTPS://Example.COM/Path",
			[]string{"https://example.com/path"},
		},
		{
			"wrapping punctuation terminates",
			`(http://a.com) <http://b.com> "http://c.com" 'http://d.com'`,
			[]string{"http://a.com", "http://b.com", "http://c.com", "http://d.com"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractURLs(tc.text))
		})
	}
}
