package imap

import (
	"context"
	"fmt"

	goimap "github.com/emersion/go-imap"
	"github.com/opentracing/opentracing-go"

	"github.com/ikonesteve/email-imap-proxy/interfaces"
	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/errors"
	"github.com/ikonesteve/email-imap-proxy/internal/models"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
)

// FetchEmails retrieves one page of messages from a folder, newest first.
// Negative paging values are caller bugs and are rejected up front rather
// than clamped.
func (s *IMAPService) FetchEmails(ctx context.Context, config *connection.IMAPConfig, folder string, limit, offset int) (*models.EmailPage, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPService.FetchEmails")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagHost(span, config.Host)
	span.SetTag("folder", folder)
	span.SetTag("limit", limit)
	span.SetTag("offset", offset)

	if limit <= 0 {
		err := errors.Configuration("limit must be a positive number, got %d", limit)
		tracing.TraceErr(span, err)
		return nil, err
	}
	if offset < 0 {
		err := errors.Configuration("offset must not be negative, got %d", offset)
		tracing.TraceErr(span, err)
		return nil, err
	}

	page := &models.EmailPage{
		Emails: []models.EmailMessage{},
		Folder: folder,
	}

	err := s.WithSession(ctx, config, folder, func(ctx context.Context, conn interfaces.IMAPConnection, status *goimap.MailboxStatus) error {
		page.Total = status.Messages
		if status.Messages == 0 {
			return nil
		}

		page.Unseen = s.unseenCount(conn, status)

		start, end := computeRange(status.Messages, limit, offset)
		span.SetTag("range.start", start)
		span.SetTag("range.end", end)

		seqSet := new(goimap.SeqSet)
		seqSet.AddRange(start, end)

		section := &goimap.BodySectionName{Peek: true}
		items := []goimap.FetchItem{
			goimap.FetchEnvelope,
			goimap.FetchFlags,
			goimap.FetchBodyStructure,
			goimap.FetchUid,
			section.FetchItem(),
		}

		messages := make(chan *goimap.Message, 10)
		done := make(chan error, 1)

		go func() {
			done <- conn.Fetch(seqSet, items, messages)
		}()

		for msg := range messages {
			page.Emails = append(page.Emails, normalizeMessage(msg))
		}

		if err := <-done; err != nil {
			return fmt.Errorf("failed to fetch messages %d:%d: %w", start, end, err)
		}

		// The server streams the range oldest to newest; expose newest first
		for i, j := 0, len(page.Emails)-1; i < j; i, j = i+1, j-1 {
			page.Emails[i], page.Emails[j] = page.Emails[j], page.Emails[i]
		}

		span.SetTag("messages.fetched", len(page.Emails))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return page, nil
}

// unseenCount asks the server for the unseen messages in the selected folder,
// falling back to the SELECT response hint when the search fails.
func (s *IMAPService) unseenCount(conn interfaces.IMAPConnection, status *goimap.MailboxStatus) uint32 {
	criteria := goimap.NewSearchCriteria()
	criteria.WithoutFlags = []string{goimap.SeenFlag}

	ids, err := conn.Search(criteria)
	if err != nil {
		s.log.Warnf("error counting unseen messages in %s: %v", status.Name, err)
		return status.Unseen
	}

	return uint32(len(ids))
}

// TestConnection opens a session and lists mailboxes to prove the descriptor
// actually reaches a working server.
func (s *IMAPService) TestConnection(ctx context.Context, config *connection.IMAPConfig) (*models.ConnectionCheck, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPService.TestConnection")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagHost(span, config.Host)

	check := &models.ConnectionCheck{Server: config.Host}

	err := s.WithSession(ctx, config, "", func(ctx context.Context, conn interfaces.IMAPConnection, _ *goimap.MailboxStatus) error {
		folders, err := listMailboxes(conn)
		if err != nil {
			return err
		}
		check.Connected = true
		check.MailboxCount = len(folders)
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetTag("mailboxes.count", check.MailboxCount)
	return check, nil
}
