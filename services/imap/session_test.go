package imap

import (
	"context"
	"testing"

	goimap "github.com/emersion/go-imap"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikonesteve/email-imap-proxy/interfaces"
	"github.com/ikonesteve/email-imap-proxy/internal/errors"
)

func TestWithSession_ReleasesLockAndConnectionOnBodyFailure(t *testing.T) {
	conn := newFakeConn()
	conn.status.Messages = 5
	service := NewIMAPService(getLogger(), &fakeDialer{conn: conn})

	err := service.WithSession(context.Background(), testConfig(), "INBOX", func(ctx context.Context, c interfaces.IMAPConnection, status *goimap.MailboxStatus) error {
		return pkgerrors.New("body blew up")
	})

	require.Error(t, err)
	assert.True(t, conn.released, "mailbox must be released even when body fails")
	assert.True(t, conn.loggedOut, "connection must be torn down even when body fails")

	var classified *errors.Error
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, errors.KindUpstream, classified.Kind)
	assert.Equal(t, "imap.example.com", classified.Host)
}

func TestWithSession_ReleaseOrdering(t *testing.T) {
	conn := newFakeConn()
	service := NewIMAPService(getLogger(), &fakeDialer{conn: conn})

	err := service.WithSession(context.Background(), testConfig(), "INBOX", func(ctx context.Context, c interfaces.IMAPConnection, status *goimap.MailboxStatus) error {
		return nil
	})

	require.NoError(t, err)
	// lock release strictly precedes connection teardown
	require.Equal(t, []string{"select:INBOX", "close", "logout"}, conn.ops)
}

func TestWithSession_DialFailureIsUpstream(t *testing.T) {
	service := NewIMAPService(getLogger(), &fakeDialer{dialErr: pkgerrors.New("connection refused")})

	err := service.WithSession(context.Background(), testConfig(), "INBOX", func(ctx context.Context, c interfaces.IMAPConnection, status *goimap.MailboxStatus) error {
		t.Fatal("body must not run when the dial fails")
		return nil
	})

	var classified *errors.Error
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, errors.KindUpstream, classified.Kind)
}

func TestWithSession_SelectFailureStillLogsOut(t *testing.T) {
	conn := newFakeConn()
	conn.selectErr = pkgerrors.New("no such mailbox")
	service := NewIMAPService(getLogger(), &fakeDialer{conn: conn})

	err := service.WithSession(context.Background(), testConfig(), "Nope", func(ctx context.Context, c interfaces.IMAPConnection, status *goimap.MailboxStatus) error {
		t.Fatal("body must not run when select fails")
		return nil
	})

	require.Error(t, err)
	assert.False(t, conn.released, "nothing to release when the lock was never acquired")
	assert.True(t, conn.loggedOut)
}

func TestWithSession_NoFolderSkipsSelect(t *testing.T) {
	conn := newFakeConn()
	service := NewIMAPService(getLogger(), &fakeDialer{conn: conn})

	err := service.WithSession(context.Background(), testConfig(), "", func(ctx context.Context, c interfaces.IMAPConnection, status *goimap.MailboxStatus) error {
		assert.Nil(t, status)
		return nil
	})

	require.NoError(t, err)
	assert.Empty(t, conn.selected)
	assert.False(t, conn.released)
	assert.True(t, conn.loggedOut)
}

func TestWithSession_PreservesClassifiedErrorsFromBody(t *testing.T) {
	conn := newFakeConn()
	service := NewIMAPService(getLogger(), &fakeDialer{conn: conn})

	err := service.WithSession(context.Background(), testConfig(), "", func(ctx context.Context, c interfaces.IMAPConnection, status *goimap.MailboxStatus) error {
		return errors.Configuration("bad input")
	})

	var classified *errors.Error
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, errors.KindConfiguration, classified.Kind)
}
