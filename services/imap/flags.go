package imap

import (
	"context"
	"fmt"
	"strconv"

	goimap "github.com/emersion/go-imap"
	"github.com/opentracing/opentracing-go"

	"github.com/ikonesteve/email-imap-proxy/interfaces"
	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/errors"
	"github.com/ikonesteve/email-imap-proxy/internal/models"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
)

// UpdateMessage applies read/starred/move mutations to the message identified
// by emailID. The id must parse as a message uid; anything else is a caller
// bug, rejected before any protocol call.
func (s *IMAPService) UpdateMessage(ctx context.Context, config *connection.IMAPConfig, folder, emailID string, updates models.MessageUpdates) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPService.UpdateMessage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagHost(span, config.Host)
	span.SetTag("folder", folder)
	span.SetTag("email_id", emailID)

	uid, err := strconv.ParseUint(emailID, 10, 32)
	if err != nil {
		classified := errors.Configuration("email_id %q is not a valid message uid", emailID)
		tracing.TraceErr(span, classified)
		return classified
	}

	return s.WithSession(ctx, config, folder, func(ctx context.Context, conn interfaces.IMAPConnection, _ *goimap.MailboxStatus) error {
		return applyUpdates(conn, uint32(uid), updates)
	})
}

// applyUpdates issues one protocol call per present field. The move is always
// last so it cannot race the flag writes against the same message; an absent
// field leaves its flag untouched.
func applyUpdates(conn interfaces.IMAPConnection, uid uint32, updates models.MessageUpdates) error {
	seqSet := new(goimap.SeqSet)
	seqSet.AddNum(uid)

	if updates.IsRead != nil {
		if err := storeFlag(conn, seqSet, *updates.IsRead, goimap.SeenFlag); err != nil {
			return fmt.Errorf("failed to update read flag on message %d: %w", uid, err)
		}
	}

	if updates.IsStarred != nil {
		if err := storeFlag(conn, seqSet, *updates.IsStarred, goimap.FlaggedFlag); err != nil {
			return fmt.Errorf("failed to update starred flag on message %d: %w", uid, err)
		}
	}

	if updates.MoveToFolder != "" {
		if err := conn.UidMove(seqSet, updates.MoveToFolder); err != nil {
			return fmt.Errorf("failed to move message %d to %s: %w", uid, updates.MoveToFolder, err)
		}
	}

	return nil
}

func storeFlag(conn interfaces.IMAPConnection, seqSet *goimap.SeqSet, add bool, flag string) error {
	op := goimap.FlagsOp(goimap.RemoveFlags)
	if add {
		op = goimap.AddFlags
	}
	item := goimap.FormatFlagsOp(op, true)
	return conn.UidStore(seqSet, item, []interface{}{flag}, nil)
}
