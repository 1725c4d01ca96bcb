package services

import (
	"github.com/ikonesteve/email-imap-proxy/interfaces"
	"github.com/ikonesteve/email-imap-proxy/internal/logger"
	"github.com/ikonesteve/email-imap-proxy/services/imap"
	"github.com/ikonesteve/email-imap-proxy/services/smtp"
)

type Services struct {
	IMAPService interfaces.IMAPGateway
	SMTPService interfaces.EmailSender
}

func InitServices(log logger.Logger) *Services {
	return &Services{
		IMAPService: imap.NewIMAPService(log, imap.NewClientDialer(log)),
		SMTPService: smtp.NewSMTPService(log),
	}
}
