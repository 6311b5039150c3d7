package gmailbox

import (
	"encoding/base64"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/mikey/mail-triage/internal/core"
	"github.com/mikey/mail-triage/internal/utils"
)

// toThread flattens an API thread into the core read model.
func (m *Mailbox) toThread(t *gmailapi.Thread) *core.Thread {
	thread := &core.Thread{ID: t.Id}
	for _, msg := range t.Messages {
		thread.Messages = append(thread.Messages, m.toMessage(msg))
	}
	return thread
}

func (m *Mailbox) toMessage(msg *gmailapi.Message) *core.Message {
	out := &core.Message{Headers: make(map[string][]string)}
	if msg.Payload == nil {
		return out
	}

	for _, h := range msg.Payload.Headers {
		out.Headers[h.Name] = append(out.Headers[h.Name], h.Value)
		switch strings.ToLower(h.Name) {
		case "from":
			out.From = h.Value
		case "reply-to":
			out.ReplyTo = h.Value
		case "subject":
			out.Subject = h.Value
		case "authentication-results":
			out.AuthResults = h.Value
		}
	}

	out.Body = utils.Normalize(collectPlainText(msg.Payload), m.maxBodySize)
	return out
}

// collectPlainText walks the MIME tree and concatenates the decoded
// text/plain parts. Parts that fail to decode are skipped.
func collectPlainText(part *gmailapi.MessagePart) string {
	if part == nil {
		return ""
	}
	var b strings.Builder
	collectInto(&b, part)
	return b.String()
}

func collectInto(b *strings.Builder, part *gmailapi.MessagePart) {
	if part.Body != nil && part.Body.Data != "" {
		if part.MimeType == "" || strings.HasPrefix(part.MimeType, "text/plain") {
			if text, err := decodeBody(part.Body.Data); err == nil {
				b.WriteString(text)
				b.WriteString("\n")
			}
		}
	}
	for _, child := range part.Parts {
		collectInto(b, child)
	}
}

// decodeBody handles both padded and raw URL-safe base64; the API
// mixes the two depending on the message.
func decodeBody(data string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
	}
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
