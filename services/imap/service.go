package imap

import (
	"github.com/ikonesteve/email-imap-proxy/interfaces"
	"github.com/ikonesteve/email-imap-proxy/internal/logger"
)

// IMAPService translates gateway operations into transient IMAP sessions. It
// holds no per-request state: every operation opens, uses and tears down its
// own connection.
type IMAPService struct {
	log    logger.Logger
	dialer interfaces.IMAPDialer
}

func NewIMAPService(log logger.Logger, dialer interfaces.IMAPDialer) *IMAPService {
	return &IMAPService{
		log:    log,
		dialer: dialer,
	}
}
