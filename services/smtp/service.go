package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"time"

	"github.com/opentracing/opentracing-go"

	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/errors"
	"github.com/ikonesteve/email-imap-proxy/internal/logger"
	"github.com/ikonesteve/email-imap-proxy/internal/models"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
	"github.com/ikonesteve/email-imap-proxy/internal/utils"
)

// SMTPService submits outbound messages over a transient SMTP session.
type SMTPService struct {
	log logger.Logger
}

func NewSMTPService(log logger.Logger) *SMTPService {
	return &SMTPService{log: log}
}

// Send builds an RFC 5322 message and submits it. Implicit TLS is used on the
// dedicated submission port; otherwise the server's STARTTLS support decides
// (net/smtp upgrades opportunistically).
func (s *SMTPService) Send(ctx context.Context, config *connection.SMTPConfig, email *models.OutboundEmail) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SMTPService.Send")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagHost(span, config.Host)
	span.SetTag("to", email.To)

	messageID := utils.GenerateMessageID(utils.ExtractDomainFromEmail(config.Username))
	buffer := buildMessage(config.Username, email, messageID)

	addr := config.Address()
	auth := smtp.PlainAuth("", config.Username, config.Password, config.Host)

	var err error
	if config.Secure {
		err = s.sendWithImplicitTLS(ctx, addr, auth, config, email.To, buffer)
	} else {
		err = smtp.SendMail(addr, auth, config.Username, []string{email.To}, buffer.Bytes())
	}
	if err != nil {
		classified := errors.Send(config.Host, err)
		tracing.TraceErr(span, classified)
		return "", classified
	}

	s.log.Infof("sent message %s to %s via %s", messageID, email.To, addr)
	span.SetTag("message_id", messageID)

	return utils.NormalizeMessageID(messageID), nil
}

// buildMessage assembles headers and body into wire format.
func buildMessage(from string, email *models.OutboundEmail, messageID string) *bytes.Buffer {
	buffer := bytes.NewBuffer(nil)

	writeHeader(buffer, "From", from)
	writeHeader(buffer, "To", email.To)
	writeHeader(buffer, "Subject", email.Subject)
	writeHeader(buffer, "Date", time.Now().Format(time.RFC1123Z))
	writeHeader(buffer, "Message-ID", messageID)
	if email.InReplyTo != "" {
		inReplyTo := utils.EnsureMessageIDBrackets(email.InReplyTo)
		writeHeader(buffer, "In-Reply-To", inReplyTo)
		writeHeader(buffer, "References", inReplyTo)
	}
	writeHeader(buffer, "MIME-Version", "1.0")
	writeHeader(buffer, "Content-Type", "text/plain; charset=UTF-8")

	buffer.WriteString("\r\n")
	buffer.WriteString(email.Body)

	return buffer
}

func writeHeader(buffer *bytes.Buffer, key, value string) {
	buffer.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
}

// sendWithImplicitTLS drives the submission dialog over a connection that is
// TLS from the first byte (port 465 servers do not speak STARTTLS).
func (s *SMTPService) sendWithImplicitTLS(ctx context.Context, addr string, auth smtp.Auth, config *connection.SMTPConfig, to string, buffer *bytes.Buffer) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "SMTPService.sendWithImplicitTLS")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	tlsConfig := &tls.Config{
		ServerName: config.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		err = fmt.Errorf("failed to connect to SMTP server: %w", err)
		tracing.TraceErr(span, err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, config.Host)
	if err != nil {
		err = fmt.Errorf("failed to create SMTP client: %w", err)
		tracing.TraceErr(span, err)
		return err
	}
	defer client.Close()

	if err = client.Auth(auth); err != nil {
		err = fmt.Errorf("SMTP authentication failed: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	if err = client.Mail(config.Username); err != nil {
		err = fmt.Errorf("SMTP MAIL command failed: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	if err = client.Rcpt(to); err != nil {
		err = fmt.Errorf("SMTP RCPT command failed: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	writer, err := client.Data()
	if err != nil {
		err = fmt.Errorf("SMTP DATA command failed: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	if _, err = writer.Write(buffer.Bytes()); err != nil {
		err = fmt.Errorf("failed to write message data: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	if err = writer.Close(); err != nil {
		err = fmt.Errorf("failed to finalize message data: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	return client.Quit()
}
