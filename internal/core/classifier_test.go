package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRules() Rules {
	return Rules{
		KnownSenders:      []string{"billing@chase.com", "chase.com"},
		ImportantKeywords: []string{"statement", "invoice"},
		SpamTLDs:          []string{"ru", "cn"},
		ShortenerDomains:  []string{"bit.ly", "tinyurl.com"},
		PhishingPhrases:   []string{"click here", "verify your account", "act now"},
	}
}

func TestClassifyKnownSenderIsImportant(t *testing.T) {
	c := NewClassifier(testRules())

	v := c.Classify(&Message{
		From:        "billing@chase.com",
		Subject:     "Your statement is ready",
		AuthResults: "mx.google.com; spf=pass",
	})
	assert.Equal(t, Verdict{Important: true}, v)
}

func TestClassifyKnownSenderOverridesSpamSignals(t *testing.T) {
	c := NewClassifier(testRules())

	// Known domain, but every spam signal present: weird TLD cannot
	// apply (known short-circuits), urgent tone plus shortener plus no
	// authentication. The sender must still come out important only.
	v := c.Classify(&Message{
		From:    "Alerts <alerts@mail.chase.com>",
		ReplyTo: "other@elsewhere.ru",
		Subject: "act now",
		Body:    "click here http://bit.ly/x",
	})
	assert.True(t, v.Important)
	assert.False(t, v.Spam)
	assert.False(t, v.Suspicious)
}

func TestClassifySpamScenarios(t *testing.T) {
	c := NewClassifier(testRules())

	tests := []struct {
		name string
		msg  *Message
	}{
		{
			"weird tld alone",
			&Message{From: "promo@free-gift.ru", Subject: "hello", Body: "plain text"},
		},
		{
			"shortener with urgent tone",
			&Message{From: "x@example.com", Subject: "act now", Body: "http://bit.ly/x"},
		},
		{
			"unauthenticated urgent link",
			&Message{From: "promo@some-shop.com", Body: "click here http://some-shop.com/deal"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := c.Classify(tc.msg)
			assert.Equal(t, Verdict{Spam: true}, v)
		})
	}
}

func TestClassifySuspiciousScenarios(t *testing.T) {
	c := NewClassifier(testRules())

	tests := []struct {
		name string
		msg  *Message
	}{
		{
			"reply-to mismatch",
			&Message{
				From:        "support@paypal-security.com",
				ReplyTo:     "collect@elsewhere.net",
				AuthResults: "spf=pass",
			},
		},
		{
			"urgent tone with link but authenticated",
			&Message{
				From:        "news@letter.com",
				Subject:     "act now",
				Body:        "https://letter.com/offer",
				AuthResults: "spf=pass dkim=pass",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := c.Classify(tc.msg)
			assert.Equal(t, Verdict{Suspicious: true}, v)
		})
	}
}

func TestClassifyPhraseNeverSpansSubjectAndBody(t *testing.T) {
	c := NewClassifier(testRules())

	// "act now" appears only across the subject/body boundary; the
	// urgent-tone signal must not fire, so the unauthenticated link
	// stays clean.
	v := c.Classify(&Message{
		From:    "promo@some-shop.com",
		Subject: "please act",
		Body:    "now http://some-shop.com/deal",
	})
	assert.Equal(t, Verdict{}, v)
}

func TestClassifyAuthFailureAloneIsNotSuspicious(t *testing.T) {
	c := NewClassifier(testRules())

	// No authentication header at all, but no mismatch and no urgent
	// tone with links: must stay clean.
	v := c.Classify(&Message{
		From: "someone@nowhere-special.com",
		Body: "just saying hi",
	})
	assert.Equal(t, Verdict{}, v)
}

func TestClassifyKeywordNeedsAuthentication(t *testing.T) {
	c := NewClassifier(testRules())

	unauthenticated := c.Classify(&Message{
		From:    "noreply@vendor.com",
		Subject: "Your invoice",
	})
	assert.False(t, unauthenticated.Important)

	authenticated := c.Classify(&Message{
		From:        "noreply@vendor.com",
		Subject:     "Your invoice",
		AuthResults: "spf=fail; dkim=pass",
	})
	assert.True(t, authenticated.Important)
}

func TestClassifyImportantOverridesSuspicious(t *testing.T) {
	c := NewClassifier(testRules())

	// Reply-to mismatch makes the raw verdict suspicious, but the
	// authenticated importance keyword wins.
	v := c.Classify(&Message{
		From:        "noreply@vendor.com",
		ReplyTo:     "other@elsewhere.net",
		Subject:     "Your invoice",
		AuthResults: "spf=pass",
	})
	assert.Equal(t, Verdict{Important: true}, v)
}

func TestClassifySpamAndSuspiciousNeverBothTrue(t *testing.T) {
	c := NewClassifier(testRules())

	msgs := []*Message{
		{From: "promo@free-gift.ru", ReplyTo: "other@elsewhere.net", Subject: "act now", Body: "http://bit.ly/x"},
		{From: "x@a.com", ReplyTo: "y@b.com", Subject: "act now", Body: "http://a.com"},
		{From: "plain@text.com"},
		{From: "billing@chase.com", Subject: "act now", Body: "http://bit.ly/x"},
	}
	for _, msg := range msgs {
		v := c.Classify(msg)
		assert.False(t, v.Spam && v.Suspicious, "spam and suspicious both true for %q", msg.From)
	}
}

func TestClassifyScenarioChaseStatement(t *testing.T) {
	c := NewClassifier(testRules())

	v := c.Classify(&Message{
		From:        "billing@chase.com",
		Subject:     "Your statement is ready",
		AuthResults: "mx.google.com; spf=pass smtp.mailfrom=chase.com",
	})
	assert.Equal(t, Verdict{Important: true, Suspicious: false, Spam: false}, v)
}

func TestClassifyScenarioFreeGiftSpam(t *testing.T) {
	c := NewClassifier(testRules())

	v := c.Classify(&Message{
		From: "promo@free-gift.ru",
		Body: "click here http://bit.ly/win",
	})
	assert.Equal(t, Verdict{Spam: true}, v)
}

func TestClassifyScenarioPaypalSecuritySuspicious(t *testing.T) {
	c := NewClassifier(testRules())

	// Unknown sender on a safe TLD, reply-to differs, urgent phrase
	// and a link, SPF fail but DKIM pass so the unauthenticated spam
	// branch does not fire.
	v := c.Classify(&Message{
		From:        "support@paypal-security.com",
		ReplyTo:     "collect@elsewhere.net",
		Subject:     "verify your account",
		Body:        "https://paypal-security.com/login",
		AuthResults: "spf=fail; dkim=pass",
	})
	assert.Equal(t, Verdict{Suspicious: true}, v)
}

func TestAggregateThread(t *testing.T) {
	c := NewClassifier(testRules())

	benign := &Message{From: "friend@gmail.com", Body: "lunch?"}
	suspicious := &Message{
		From:        "support@paypal-security.com",
		ReplyTo:     "collect@elsewhere.net",
		AuthResults: "spf=pass",
	}

	tests := []struct {
		name string
		msgs []*Message
		want Verdict
	}{
		{"empty thread", nil, Verdict{}},
		{"single benign", []*Message{benign}, Verdict{}},
		{"benign plus suspicious", []*Message{benign, suspicious}, Verdict{Suspicious: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.AggregateThread(tc.msgs))
		})
	}
}

func TestClassifyIsRepeatable(t *testing.T) {
	c := NewClassifier(testRules())

	msg := &Message{
		From:    "promo@free-gift.ru",
		Subject: "act now",
		Body:    "click here http://bit.ly/x",
	}
	first := c.Classify(msg)
	second := c.Classify(msg)
	assert.Equal(t, first, second)
}
