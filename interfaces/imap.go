package interfaces

import (
	"context"

	"github.com/emersion/go-imap"

	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/models"
)

// IMAPConnection is the subset of the go-imap client one gateway session
// issues commands against. Selecting a folder is the session-scoped mailbox
// lock; Close releases it before Logout tears the session down.
type IMAPConnection interface {
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	Close() error
	List(ref, name string, ch chan *imap.MailboxInfo) error
	Search(criteria *imap.SearchCriteria) ([]uint32, error)
	Fetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	UidStore(seqset *imap.SeqSet, item imap.StoreItem, flags interface{}, ch chan *imap.Message) error
	UidMove(seqset *imap.SeqSet, dest string) error
	Logout() error
}

// IMAPDialer opens one authenticated connection per request.
type IMAPDialer interface {
	Dial(ctx context.Context, config *connection.IMAPConfig) (IMAPConnection, error)
}

// IMAPGateway exposes the mailbox read/write operations backed by transient
// IMAP sessions.
type IMAPGateway interface {
	TestConnection(ctx context.Context, config *connection.IMAPConfig) (*models.ConnectionCheck, error)
	FetchEmails(ctx context.Context, config *connection.IMAPConfig, folder string, limit, offset int) (*models.EmailPage, error)
	ListFolders(ctx context.Context, config *connection.IMAPConfig) ([]models.Folder, error)
	UpdateMessage(ctx context.Context, config *connection.IMAPConfig, folder, emailID string, updates models.MessageUpdates) error
}
