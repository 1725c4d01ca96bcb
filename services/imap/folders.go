package imap

import (
	"context"
	"fmt"
	"sort"
	"strings"

	goimap "github.com/emersion/go-imap"
	"github.com/opentracing/opentracing-go"

	"github.com/ikonesteve/email-imap-proxy/interfaces"
	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/models"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
)

var specialUseAttributes = map[string]string{
	goimap.AllAttr:     "all",
	goimap.ArchiveAttr: "archive",
	goimap.DraftsAttr:  "drafts",
	goimap.FlaggedAttr: "flagged",
	goimap.JunkAttr:    "junk",
	goimap.SentAttr:    "sent",
	goimap.TrashAttr:   "trash",
}

// ListFolders returns every mailbox exposed by the server, sorted by path.
func (s *IMAPService) ListFolders(ctx context.Context, config *connection.IMAPConfig) ([]models.Folder, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "IMAPService.ListFolders")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagHost(span, config.Host)

	var folders []models.Folder

	err := s.WithSession(ctx, config, "", func(ctx context.Context, conn interfaces.IMAPConnection, _ *goimap.MailboxStatus) error {
		infos, err := listMailboxes(conn)
		if err != nil {
			return err
		}
		for _, info := range infos {
			folders = append(folders, folderFromInfo(info))
		}
		sort.Slice(folders, func(i, j int) bool {
			return folders[i].Path < folders[j].Path
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetTag("folders.count", len(folders))
	return folders, nil
}

// listMailboxes drives the channel-based LIST command to completion.
func listMailboxes(conn interfaces.IMAPConnection) ([]*goimap.MailboxInfo, error) {
	mailboxes := make(chan *goimap.MailboxInfo, 10)
	done := make(chan error, 1)

	go func() {
		done <- conn.List("", "*", mailboxes)
	}()

	var infos []*goimap.MailboxInfo
	for m := range mailboxes {
		infos = append(infos, m)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	return infos, nil
}

func folderFromInfo(info *goimap.MailboxInfo) models.Folder {
	folder := models.Folder{
		Name:      info.Name,
		Path:      info.Name,
		Delimiter: info.Delimiter,
		Flags:     info.Attributes,
	}

	if info.Delimiter != "" {
		parts := strings.Split(info.Name, info.Delimiter)
		folder.Name = parts[len(parts)-1]
	}

	for _, attr := range info.Attributes {
		if use, ok := specialUseAttributes[attr]; ok {
			folder.SpecialUse = &use
			break
		}
	}

	return folder
}
