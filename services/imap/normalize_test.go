package imap

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	goimap "github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikonesteve/email-imap-proxy/internal/enum"
)

func rawMessage(body string) goimap.Literal {
	raw := "From: Alice <alice@example.com>\r\n" +
		"To: bob@example.com\r\n" +
		"Subject: hello\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body
	return bytes.NewBufferString(raw)
}

func testMessage(body string) *goimap.Message {
	sent := time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)
	section := &goimap.BodySectionName{Peek: true}
	return &goimap.Message{
		SeqNum: 3,
		Uid:    42,
		Flags:  []string{goimap.SeenFlag},
		Envelope: &goimap.Envelope{
			Date:      sent,
			Subject:   "hello",
			MessageId: "<msg-1@example.com>",
			From: []*goimap.Address{
				{PersonalName: "Alice", MailboxName: "alice", HostName: "example.com"},
			},
			To: []*goimap.Address{
				{MailboxName: "bob", HostName: "example.com"},
			},
		},
		Body: map[*goimap.BodySectionName]goimap.Literal{
			section: rawMessage(body),
		},
	}
}

func TestNormalizeMessage(t *testing.T) {
	record := normalizeMessage(testMessage("Hi Bob,\nsee you tomorrow.\n"))

	assert.Equal(t, "msg-1@example.com", record.ID)
	assert.Equal(t, "msg-1@example.com", record.MessageID)
	assert.Equal(t, "alice@example.com", record.From)
	assert.Equal(t, "Alice", record.FromName)
	assert.Equal(t, "bob@example.com", record.To)
	assert.Equal(t, "hello", record.Subject)
	assert.Equal(t, "Hi Bob, see you tomorrow.", record.Snippet)
	assert.True(t, record.IsRead)
	assert.False(t, record.IsStarred)
	assert.Equal(t, enum.EmailPriorityNormal, record.Priority)
	assert.False(t, record.HasAttachments)
	assert.Equal(t, uint32(42), record.UID)
	assert.Equal(t, time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC), record.Date)
}

func TestNormalizeMessage_Fallbacks(t *testing.T) {
	msg := testMessage("body")
	msg.Envelope.Subject = ""
	msg.Envelope.MessageId = ""
	msg.Envelope.From[0].PersonalName = ""
	msg.Envelope.Date = time.Time{}

	record := normalizeMessage(msg)

	assert.Equal(t, "(no subject)", record.Subject)
	assert.Equal(t, "42", record.ID, "uid stands in when the message id header is absent")
	assert.Equal(t, "alice", record.FromName, "local part stands in for a missing display name")
	assert.False(t, record.Date.IsZero(), "date must never be zero")
	assert.WithinDuration(t, time.Now().UTC(), record.Date, time.Minute)
}

func TestNormalizeMessage_FlagsAndPriority(t *testing.T) {
	msg := testMessage("body")
	msg.Flags = []string{goimap.FlaggedFlag, `\Important`}

	record := normalizeMessage(msg)

	assert.False(t, record.IsRead)
	assert.True(t, record.IsStarred)
	assert.Equal(t, enum.EmailPriorityUrgent, record.Priority)
}

func TestNormalizeMessage_AttachmentsFromBodyStructure(t *testing.T) {
	msg := testMessage("body")
	msg.BodyStructure = &goimap.BodyStructure{
		MIMEType:    "multipart",
		MIMESubType: "mixed",
		Parts: []*goimap.BodyStructure{
			{MIMEType: "text", MIMESubType: "plain"},
			{MIMEType: "application", MIMESubType: "pdf"},
		},
	}

	record := normalizeMessage(msg)

	assert.True(t, record.HasAttachments)
}

func TestNormalizeMessage_NoEnvelope(t *testing.T) {
	record := normalizeMessage(&goimap.Message{Uid: 9})

	assert.Equal(t, "9", record.ID)
	assert.Equal(t, "(no subject)", record.Subject)
	assert.Empty(t, record.Body)
	assert.Empty(t, record.Snippet)
	assert.False(t, record.Date.IsZero())
}

func TestMakeSnippet_LongBodyWithNewlines(t *testing.T) {
	body := strings.Repeat("abcde fghij\nklmno pqrst\n", 21) // ~500 chars

	snippet := makeSnippet(body)

	assert.Len(t, snippet, 200)
	assert.NotContains(t, snippet, "\n")
	assert.NotContains(t, snippet, "\r")
	assert.Equal(t, strings.TrimSpace(snippet), snippet)
}

func TestMakeSnippet_MultiByteBodyTruncatesOnRunes(t *testing.T) {
	body := "café " + strings.Repeat("héllo wörld ", 40)

	snippet := makeSnippet(body)

	require.True(t, utf8.ValidString(snippet), "truncation must not split a character")
	assert.Equal(t, 200, utf8.RuneCountInString(snippet))
	assert.Equal(t, string([]rune(body)[:200]), snippet)
}

func TestMakeSnippet_ShortBody(t *testing.T) {
	assert.Equal(t, "one two", makeSnippet("  one\r\ntwo \r\n"))
	assert.Empty(t, makeSnippet(""))
}
