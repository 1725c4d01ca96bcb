package models

import (
	"time"

	"github.com/ikonesteve/email-imap-proxy/internal/enum"
)

// EmailMessage is the gateway's shape of one fetched message. ID prefers the
// protocol Message-ID header and falls back to the stringified UID; the UID is
// only stable within its mailbox at fetch time.
type EmailMessage struct {
	ID             string             `json:"id"`
	MessageID      string             `json:"message_id,omitempty"`
	From           string             `json:"from"`
	FromName       string             `json:"from_name"`
	To             string             `json:"to"`
	Subject        string             `json:"subject"`
	Snippet        string             `json:"snippet"`
	Body           string             `json:"body"`
	Date           time.Time          `json:"date"`
	IsRead         bool               `json:"is_read"`
	IsStarred      bool               `json:"is_starred"`
	Priority       enum.EmailPriority `json:"priority"`
	HasAttachments bool               `json:"has_attachments"`
	UID            uint32             `json:"uid"`
}

// Folder describes one mailbox exposed by the server, produced fresh on each
// listing request.
type Folder struct {
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	Delimiter  string   `json:"delimiter"`
	SpecialUse *string  `json:"special_use"`
	Flags      []string `json:"flags"`
}

// EmailPage is the result of one paginated fetch against a folder.
type EmailPage struct {
	Emails []EmailMessage `json:"emails"`
	Total  uint32         `json:"total"`
	Folder string         `json:"folder"`
	Unseen uint32         `json:"unseen"`
}

// ConnectionCheck reports the outcome of probing an upstream server.
type ConnectionCheck struct {
	Connected    bool   `json:"connected"`
	Server       string `json:"server"`
	MailboxCount int    `json:"mailboxes_count"`
}

// MessageUpdates carries the requested mutations for one message. A nil field
// means unchanged, not "set to false".
type MessageUpdates struct {
	IsRead       *bool
	IsStarred    *bool
	MoveToFolder string
}

// OutboundEmail is one message submission request.
type OutboundEmail struct {
	To        string
	Subject   string
	Body      string
	InReplyTo string
}
