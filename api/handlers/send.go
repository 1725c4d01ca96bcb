package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikonesteve/email-imap-proxy/interfaces"
	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/errors"
	"github.com/ikonesteve/email-imap-proxy/internal/models"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
)

// SendEmailRequest represents the API request for sending an email
type SendEmailRequest struct {
	Connection connection.Descriptor `json:"connection"`
	To         string                `json:"to"`
	Subject    string                `json:"subject"`
	Body       string                `json:"body"`
	ReplyToID  string                `json:"reply_to_id"`
}

func SendEmail(sender interfaces.EmailSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "SendEmail", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request SendEmailRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			respondWithError(c, span, errors.Configuration("invalid request format: %s", err.Error()), "")
			return
		}

		if err := validateSMTPDescriptor(&request.Connection); err != nil {
			respondWithError(c, span, err, "")
			return
		}
		if request.To == "" {
			respondWithError(c, span, errors.Configuration("to is required"), "")
			return
		}
		if request.Subject == "" {
			respondWithError(c, span, errors.Configuration("subject is required"), "")
			return
		}
		if request.Body == "" {
			respondWithError(c, span, errors.Configuration("body is required"), "")
			return
		}

		email := &models.OutboundEmail{
			To:        request.To,
			Subject:   request.Subject,
			Body:      request.Body,
			InReplyTo: request.ReplyToID,
		}

		config := request.Connection.SMTP()
		messageID, err := sender.Send(ctx, config, email)
		if err != nil {
			respondWithError(c, span, err, config.Host)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"sent":      true,
			"messageId": messageID,
		})
	}
}
