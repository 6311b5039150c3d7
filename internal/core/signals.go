package core

import (
	"strings"
)

// ExtractSignals computes the detector inputs for one message. The
// authentication flags are substring checks on the lowercased
// Authentication-Results value; a missing header leaves both false.
func ExtractSignals(msg *Message) Signals {
	auth := strings.ToLower(msg.AuthResults)
	return Signals{
		SenderDomain:  ExtractDomain(msg.From),
		ReplyToDomain: ExtractDomain(msg.ReplyTo),
		URLs:          ExtractURLs(msg.Body),
		SPFPass:       strings.Contains(auth, "spf=pass"),
		DKIMPass:      strings.Contains(auth, "dkim=pass"),
	}
}

// The detectors below expect list entries to be lowercased and
// trimmed already; NewClassifier normalizes its rule lists once so
// every classification works on clean input.

// IsKnownSender reports whether the sender matches the trusted list.
// Entries containing "@" match as exact-address substrings of the
// sender address; bare domains match the sender domain or any
// subdomain of it.
func IsKnownSender(senderAddr, senderDomain string, known []string) bool {
	addr := strings.ToLower(senderAddr)
	for _, entry := range known {
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "@") {
			if addr != "" && strings.Contains(addr, entry) {
				return true
			}
		} else if senderDomain != "" && strings.HasSuffix(senderDomain, entry) {
			return true
		}
	}
	return false
}

// HasWeirdTLD reports whether the sender domain ends in one of the
// configured spam TLDs.
func HasWeirdTLD(senderDomain string, spamTLDs []string) bool {
	if senderDomain == "" {
		return false
	}
	for _, tld := range spamTLDs {
		if tld != "" && strings.HasSuffix(senderDomain, "."+tld) {
			return true
		}
	}
	return false
}

// HasShortener reports whether any URL contains a known link
// shortener domain.
func HasShortener(urls, shorteners []string) bool {
	for _, u := range urls {
		for _, s := range shorteners {
			if s != "" && strings.Contains(u, s) {
				return true
			}
		}
	}
	return false
}

// ContainsPhrase reports whether subject or body contains any of the
// phrases, case-insensitively. The fields are checked separately so a
// phrase can never match across the subject/body boundary.
func ContainsPhrase(subject, body string, phrases []string) bool {
	subj := strings.ToLower(subject)
	text := strings.ToLower(body)
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if strings.Contains(subj, p) || strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// DomainMismatch is true only when both domains are non-empty and
// differ. An absent reply-to never counts as a mismatch.
func DomainMismatch(senderDomain, replyToDomain string) bool {
	return senderDomain != "" && replyToDomain != "" && senderDomain != replyToDomain
}
