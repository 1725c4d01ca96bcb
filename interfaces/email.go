package interfaces

import (
	"context"

	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/models"
)

// EmailSender submits one outbound message and returns its message id.
type EmailSender interface {
	Send(ctx context.Context, config *connection.SMTPConfig, email *models.OutboundEmail) (string, error)
}
