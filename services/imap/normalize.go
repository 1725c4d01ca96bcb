package imap

import (
	"io"
	"strconv"
	"strings"
	"time"

	goimap "github.com/emersion/go-imap"
	"github.com/jhillyerd/enmime"

	"github.com/ikonesteve/email-imap-proxy/internal/enum"
	"github.com/ikonesteve/email-imap-proxy/internal/models"
	"github.com/ikonesteve/email-imap-proxy/internal/utils"
)

const (
	snippetLength      = 200
	subjectPlaceholder = "(no subject)"
)

// Flag some servers set on messages marked important (RFC 8457 and the
// common keyword variant)
const (
	importantFlag        = "\\Important"
	importantKeywordFlag = "$Important"
)

// normalizeMessage shapes one raw fetched message into the gateway's record.
func normalizeMessage(msg *goimap.Message) models.EmailMessage {
	record := models.EmailMessage{
		UID:      msg.Uid,
		Priority: enum.EmailPriorityNormal,
		Date:     time.Now().UTC(),
	}

	if envelope := msg.Envelope; envelope != nil {
		record.Subject = envelope.Subject
		record.MessageID = utils.NormalizeMessageID(envelope.MessageId)
		if !envelope.Date.IsZero() {
			record.Date = envelope.Date
		}
		if len(envelope.From) > 0 {
			sender := envelope.From[0]
			record.From = sender.Address()
			record.FromName = sender.PersonalName
		}
		if len(envelope.To) > 0 {
			record.To = envelope.To[0].Address()
		}
	}

	if record.FromName == "" {
		record.FromName = utils.ExtractLocalPartFromEmail(record.From)
	}
	if record.Subject == "" {
		record.Subject = subjectPlaceholder
	}

	for _, flag := range msg.Flags {
		switch flag {
		case goimap.SeenFlag:
			record.IsRead = true
		case goimap.FlaggedFlag:
			record.IsStarred = true
		case importantFlag, importantKeywordFlag:
			record.Priority = enum.EmailPriorityUrgent
		}
	}

	if msg.BodyStructure != nil && len(msg.BodyStructure.Parts) > 1 {
		record.HasAttachments = true
	}

	record.Body = extractBodyText(msg)
	record.Snippet = makeSnippet(record.Body)

	record.ID = record.MessageID
	if record.ID == "" {
		record.ID = strconv.FormatUint(uint64(msg.Uid), 10)
	}

	return record
}

// extractBodyText pulls the full message literal from the fetch response and
// parses out its text content. Parse failures yield an empty body, never an
// error: a message the gateway cannot decode is still listed.
func extractBodyText(msg *goimap.Message) string {
	var literal io.Reader
	for section, body := range msg.Body {
		if len(section.Path) == 0 && section.Specifier == goimap.EntireSpecifier {
			literal = body
			break
		}
	}
	if literal == nil {
		return ""
	}

	envelope, err := enmime.ReadEnvelope(literal)
	if err != nil {
		return ""
	}

	if envelope.Text != "" {
		return envelope.Text
	}
	return envelope.HTML
}

// makeSnippet returns the first snippetLength characters of the body on a
// single line, with surrounding whitespace trimmed. Truncation counts runes,
// never splitting a multi-byte character.
func makeSnippet(body string) string {
	replacer := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
	snippet := strings.TrimSpace(replacer.Replace(body))
	if runes := []rune(snippet); len(runes) > snippetLength {
		snippet = strings.TrimSpace(string(runes[:snippetLength]))
	}
	return snippet
}
