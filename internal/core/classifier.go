package core

import (
	"strings"
)

// Rules carries the operator-supplied heuristic lists. Known-sender
// entries are either exact addresses or bare domains.
type Rules struct {
	KnownSenders      []string
	ImportantKeywords []string
	SpamTLDs          []string
	ShortenerDomains  []string
	PhishingPhrases   []string
}

// Classifier turns a single message into a Verdict using the
// configured rules. It is stateless after construction and safe for
// concurrent use.
type Classifier struct {
	knownSenders      []string
	importantKeywords []string
	spamTLDs          []string
	shortenerDomains  []string
	phishingPhrases   []string
}

// NewClassifier normalizes the rule lists once (lowercase, trimmed,
// empty entries dropped, leading dots stripped from TLDs).
func NewClassifier(rules Rules) *Classifier {
	return &Classifier{
		knownSenders:      normalizeList(rules.KnownSenders),
		importantKeywords: normalizeList(rules.ImportantKeywords),
		spamTLDs:          normalizeTLDs(rules.SpamTLDs),
		shortenerDomains:  normalizeList(rules.ShortenerDomains),
		phishingPhrases:   normalizeList(rules.PhishingPhrases),
	}
}

// Classify computes the verdict for one message. The rule order is
// load-bearing: spam is decided before suspicious, and important
// overrides both at the end.
//
// A known sender can never be flagged spam. Unauthenticated mail with
// urgent tone and any link is the baseline spam signature; a weird
// TLD alone is sufficient regardless of tone. Suspicious is softer:
// authentication failure alone never triggers it. An importance
// keyword requires at least one authentication pass unless the sender
// is already known.
func (c *Classifier) Classify(msg *Message) Verdict {
	sig := ExtractSignals(msg)

	known := IsKnownSender(msg.From, sig.SenderDomain, c.knownSenders)
	urgent := ContainsPhrase(msg.Subject, msg.Body, c.phishingPhrases)

	spam := !known && (HasWeirdTLD(sig.SenderDomain, c.spamTLDs) ||
		(HasShortener(sig.URLs, c.shortenerDomains) && urgent) ||
		(!sig.SPFPass && !sig.DKIMPass && urgent && len(sig.URLs) > 0))

	suspicious := !spam && !known &&
		(DomainMismatch(sig.SenderDomain, sig.ReplyToDomain) ||
			(urgent && len(sig.URLs) > 0))

	important := known ||
		(ContainsPhrase(msg.Subject, msg.Body, c.importantKeywords) &&
			(sig.SPFPass || sig.DKIMPass))

	return Verdict{
		Important:  important,
		Suspicious: suspicious && !important,
		Spam:       spam && !important,
	}
}

// AggregateThread OR-folds the verdicts of all messages in a thread.
// An empty thread yields the zero verdict.
func (c *Classifier) AggregateThread(msgs []*Message) Verdict {
	var verdict Verdict
	for _, msg := range msgs {
		verdict = verdict.Merge(c.Classify(msg))
	}
	return verdict
}

func normalizeList(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

func normalizeTLDs(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(e)), ".")
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}
