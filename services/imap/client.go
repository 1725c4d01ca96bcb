package imap

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-imap/client"
	"github.com/opentracing/opentracing-go"

	"github.com/ikonesteve/email-imap-proxy/interfaces"
	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/logger"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
)

const (
	dialTimeout   = 30 * time.Second
	loginTimeout  = 30 * time.Second
	logoutTimeout = 5 * time.Second
)

// ClientDialer opens authenticated go-imap connections.
type ClientDialer struct {
	log logger.Logger
}

func NewClientDialer(log logger.Logger) *ClientDialer {
	return &ClientDialer{log: log}
}

// Dial establishes a connection to the IMAP server described by config and
// logs in. A connection whose login fails is closed before returning.
func (d *ClientDialer) Dial(ctx context.Context, config *connection.IMAPConfig) (interfaces.IMAPConnection, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ClientDialer.Dial")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("server", config.Host)
	span.SetTag("port", config.Port)
	span.SetTag("tls", config.Secure)

	serverAddr := config.Address()

	dialer := &net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: dialTimeout,
	}

	var c *client.Client
	var err error

	if config.Secure {
		tlsConfig := &tls.Config{
			ServerName: config.Host,
		}
		c, err = client.DialWithDialerTLS(dialer, serverAddr, tlsConfig)
	} else {
		c, err = client.DialWithDialer(dialer, serverAddr)
	}

	if err != nil {
		tracing.TraceErr(span, err)
		return nil, fmt.Errorf("failed to connect to %s: %w", serverAddr, err)
	}

	// Bound the login exchange; normal operations keep the client default
	c.Timeout = loginTimeout

	if err := c.Login(config.Username, config.Password); err != nil {
		c.Logout()
		tracing.TraceErr(span, err)
		return nil, fmt.Errorf("failed to login as %s: %w", config.Username, err)
	}

	c.Timeout = 0

	d.log.Debugf("connected and logged in to %s as %s", serverAddr, config.Username)
	span.SetTag("success", true)

	return c, nil
}
