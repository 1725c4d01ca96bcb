package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikonesteve/email-imap-proxy/internal/models"
)

func TestBuildMessage(t *testing.T) {
	email := &models.OutboundEmail{
		To:      "bob@example.com",
		Subject: "quarterly numbers",
		Body:    "see attached.\nthanks",
	}

	buffer := buildMessage("alice@example.com", email, "<123.abc@example.com>")
	raw := buffer.String()

	headers, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found, "headers and body must be separated by a blank line")

	assert.Contains(t, headers, "From: alice@example.com\r\n")
	assert.Contains(t, headers, "To: bob@example.com\r\n")
	assert.Contains(t, headers, "Subject: quarterly numbers\r\n")
	assert.Contains(t, headers, "Message-ID: <123.abc@example.com>\r\n")
	assert.Contains(t, headers, "Date: ")
	// the blank-line cut consumes the final header's CRLF
	assert.True(t, strings.HasSuffix(headers, "Content-Type: text/plain; charset=UTF-8"))
	assert.NotContains(t, headers, "In-Reply-To")
	assert.Equal(t, "see attached.\nthanks", body)
}

func TestBuildMessage_Reply(t *testing.T) {
	email := &models.OutboundEmail{
		To:        "bob@example.com",
		Subject:   "Re: quarterly numbers",
		Body:      "looks good",
		InReplyTo: "original-id@example.com",
	}

	buffer := buildMessage("alice@example.com", email, "<456.def@example.com>")
	raw := buffer.String()

	assert.Contains(t, raw, "In-Reply-To: <original-id@example.com>\r\n")
	assert.Contains(t, raw, "References: <original-id@example.com>\r\n")
}
