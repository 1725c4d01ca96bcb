package imap

import (
	"context"
	"time"

	goimap "github.com/emersion/go-imap"
	"github.com/opentracing/opentracing-go"

	"github.com/ikonesteve/email-imap-proxy/interfaces"
	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/errors"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
)

// SessionFunc runs inside an open session. When a folder was requested, status
// is the SELECT response for that folder; otherwise it is nil.
type SessionFunc func(ctx context.Context, conn interfaces.IMAPConnection, status *goimap.MailboxStatus) error

// WithSession owns the connect, select, operate, release, disconnect lifecycle
// for one request. The selected folder acts as a session-scoped mailbox lock:
// it is released (Close) before the connection is torn down (Logout) on every
// exit path, including a failing body. Any failure comes back classified.
func (s *IMAPService) WithSession(ctx context.Context, config *connection.IMAPConfig, folder string, body SessionFunc) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPService.WithSession")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagHost(span, config.Host)
	span.SetTag("folder", folder)

	conn, err := s.dialer.Dial(ctx, config)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Upstream(config.Host, err)
	}
	defer s.disconnect(conn, config.Host)

	var status *goimap.MailboxStatus
	if folder != "" {
		status, err = conn.Select(folder, false)
		if err != nil {
			tracing.TraceErr(span, err)
			return errors.Upstream(config.Host, err)
		}
		// Release the mailbox before logout, whatever body did
		defer func() {
			if closeErr := conn.Close(); closeErr != nil {
				s.log.Warnf("failed to close folder %s on %s: %v", folder, config.Host, closeErr)
			}
		}()
	}

	if err := body(ctx, conn, status); err != nil {
		classified := errors.Classify(err, config.Host)
		tracing.TraceErr(span, classified)
		return classified
	}

	return nil
}

// disconnect performs a best-effort logout. A server that never answers must
// not hold the request hostage, so the wait is bounded.
func (s *IMAPService) disconnect(conn interfaces.IMAPConnection, host string) {
	done := make(chan error, 1)

	go func() {
		done <- conn.Logout()
	}()

	select {
	case err := <-done:
		if err != nil {
			s.log.Warnf("error during logout from %s: %v", host, err)
		}
	case <-time.After(logoutTimeout):
		s.log.Warnf("logout from %s timed out", host)
	}
}
