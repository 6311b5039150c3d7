package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSignals(t *testing.T) {
	msg := &Message{
		From:        "Support <support@paypal-security.cn>",
		ReplyTo:     "reply@elsewhere.ru",
		Subject:     "Account notice",
		Body:        "Please verify at https://bit.ly/x now.",
		AuthResults: "mx.example.com; spf=pass smtp.mailfrom=paypal-security.cn; dkim=fail",
	}

	sig := ExtractSignals(msg)
	assert.Equal(t, "paypal-security.cn", sig.SenderDomain)
	assert.Equal(t, "elsewhere.ru", sig.ReplyToDomain)
	assert.Equal(t, []string{"https://bit.ly/x"}, sig.URLs)
	assert.True(t, sig.SPFPass)
	assert.False(t, sig.DKIMPass)
}

func TestExtractSignalsMissingAuthHeader(t *testing.T) {
	sig := ExtractSignals(&Message{From: "a@b.co"})
	assert.False(t, sig.SPFPass)
	assert.False(t, sig.DKIMPass)
}

func TestIsKnownSender(t *testing.T) {
	known := []string{"billing@chase.com", "example.org", ""}
	tests := []struct {
		name   string
		addr   string
		domain string
		want   bool
	}{
		{"exact address", "billing@chase.com", "chase.com", true},
		{"address embedded in display form", "Chase <billing@chase.com>", "chase.com", true},
		{"address case insensitive", "BILLING@CHASE.COM", "chase.com", true},
		{"domain match", "anyone@example.org", "example.org", true},
		{"subdomain match", "alerts@mail.example.org", "mail.example.org", true},
		{"no match", "promo@free-gift.ru", "free-gift.ru", false},
		{"both empty", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsKnownSender(tc.addr, tc.domain, known))
		})
	}
}

func TestHasWeirdTLD(t *testing.T) {
	tlds := []string{"ru", "cn"}
	assert.True(t, HasWeirdTLD("free-gift.ru", tlds))
	assert.True(t, HasWeirdTLD("shop.example.cn", tlds))
	assert.False(t, HasWeirdTLD("example.com", tlds))
	assert.False(t, HasWeirdTLD("", tlds))
	// The TLD must be a label suffix, not a bare string suffix.
	assert.False(t, HasWeirdTLD("guru", []string{"ru"}))
}

func TestHasShortener(t *testing.T) {
	shorteners := []string{"bit.ly", "tinyurl.com"}
	assert.True(t, HasShortener([]string{"http://bit.ly/x"}, shorteners))
	assert.False(t, HasShortener([]string{"http://example.com"}, shorteners))
	assert.False(t, HasShortener(nil, shorteners))
}

func TestContainsPhrase(t *testing.T) {
	phrases := []string{"click here", "act now"}
	assert.True(t, ContainsPhrase("Act Now", "", phrases))
	assert.True(t, ContainsPhrase("", "please CLICK HERE to continue", phrases))
	assert.False(t, ContainsPhrase("hello", "regular text", phrases))
	assert.False(t, ContainsPhrase("", "", nil))
	// A phrase must live entirely in one field, never span the
	// subject/body boundary.
	assert.False(t, ContainsPhrase("please click", "here now", phrases))
}

func TestDomainMismatch(t *testing.T) {
	assert.True(t, DomainMismatch("a.com", "b.com"))
	assert.False(t, DomainMismatch("a.com", "a.com"))
	// An absent reply-to never counts as a mismatch.
	assert.False(t, DomainMismatch("a.com", ""))
	assert.False(t, DomainMismatch("", "b.com"))
	assert.False(t, DomainMismatch("", ""))
}
