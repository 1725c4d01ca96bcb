package imap

import (
	"context"
	"fmt"

	goimap "github.com/emersion/go-imap"

	"github.com/ikonesteve/email-imap-proxy/interfaces"
	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/logger"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func testConfig() *connection.IMAPConfig {
	return &connection.IMAPConfig{
		Host:     "imap.example.com",
		Port:     993,
		Secure:   true,
		Username: "alice@example.com",
		Password: "secret",
	}
}

// fakeConn records the protocol calls a session issues against it. The
// selected mailbox stands in for the session-scoped lock: Select acquires it,
// Close releases it.
type fakeConn struct {
	status    *goimap.MailboxStatus
	selectErr error
	listInfos []*goimap.MailboxInfo
	listErr   error
	fetchMsgs []*goimap.Message
	fetchErr  error
	searchIDs []uint32
	searchErr error
	storeErr  error
	moveErr   error

	selected  string
	released  bool
	loggedOut bool
	ops       []string
	flags     map[string]bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		status: &goimap.MailboxStatus{},
		flags:  make(map[string]bool),
	}
}

func (f *fakeConn) Select(name string, readOnly bool) (*goimap.MailboxStatus, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	f.selected = name
	f.ops = append(f.ops, "select:"+name)
	f.status.Name = name
	return f.status, nil
}

func (f *fakeConn) Close() error {
	f.released = true
	f.ops = append(f.ops, "close")
	return nil
}

func (f *fakeConn) List(ref, name string, ch chan *goimap.MailboxInfo) error {
	f.ops = append(f.ops, "list")
	for _, info := range f.listInfos {
		ch <- info
	}
	close(ch)
	return f.listErr
}

func (f *fakeConn) Search(criteria *goimap.SearchCriteria) ([]uint32, error) {
	f.ops = append(f.ops, "search")
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchIDs, nil
}

func (f *fakeConn) Fetch(seqset *goimap.SeqSet, items []goimap.FetchItem, ch chan *goimap.Message) error {
	f.ops = append(f.ops, "fetch:"+seqset.String())
	for _, msg := range f.fetchMsgs {
		ch <- msg
	}
	close(ch)
	return f.fetchErr
}

func (f *fakeConn) UidStore(seqset *goimap.SeqSet, item goimap.StoreItem, flags interface{}, ch chan *goimap.Message) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	values, _ := flags.([]interface{})
	for _, v := range values {
		flag := fmt.Sprintf("%v", v)
		f.ops = append(f.ops, fmt.Sprintf("store:%s:%s", item, flag))
		switch string(item) {
		case "+FLAGS.SILENT", "+FLAGS":
			f.flags[flag] = true
		case "-FLAGS.SILENT", "-FLAGS":
			f.flags[flag] = false
		}
	}
	return nil
}

func (f *fakeConn) UidMove(seqset *goimap.SeqSet, dest string) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	f.ops = append(f.ops, "move:"+dest)
	return nil
}

func (f *fakeConn) Logout() error {
	f.loggedOut = true
	f.ops = append(f.ops, "logout")
	return nil
}

type fakeDialer struct {
	conn    *fakeConn
	dialErr error
	dials   int
}

func (d *fakeDialer) Dial(ctx context.Context, config *connection.IMAPConfig) (interfaces.IMAPConnection, error) {
	d.dials++
	if d.dialErr != nil {
		return nil, d.dialErr
	}
	return d.conn, nil
}
