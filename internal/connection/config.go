package connection

import (
	"encoding/base64"
	"fmt"
)

const (
	DefaultIMAPPort     = 993
	DefaultSMTPPort     = 587
	ImplicitTLSSMTPPort = 465
)

// Descriptor is the loosely-typed connection record supplied by the caller on
// every request. It lives for exactly one request and is never persisted.
type Descriptor struct {
	IMAPHost string `json:"imap_host"`
	IMAPPort int    `json:"imap_port"`
	SMTPHost string `json:"smtp_host"`
	SMTPPort int    `json:"smtp_port"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UseSSL   *bool  `json:"use_ssl"`
}

// IMAPConfig is a fully resolved retrieval configuration. Immutable once built.
type IMAPConfig struct {
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string
}

// SMTPConfig is a fully resolved sending configuration. Immutable once built.
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string
}

// IMAP derives the retrieval configuration: port defaults to 993, secure
// transport follows the descriptor flag and defaults to on.
func (d *Descriptor) IMAP() *IMAPConfig {
	port := d.IMAPPort
	if port == 0 {
		port = DefaultIMAPPort
	}

	secure := true
	if d.UseSSL != nil {
		secure = *d.UseSSL
	}

	return &IMAPConfig{
		Host:     d.IMAPHost,
		Port:     port,
		Secure:   secure,
		Username: d.Email,
		Password: decodePassword(d.Password),
	}
}

// SMTP derives the sending configuration: port defaults to 587, implicit TLS
// only when the submission port 465 is in effect.
func (d *Descriptor) SMTP() *SMTPConfig {
	port := d.SMTPPort
	if port == 0 {
		port = DefaultSMTPPort
	}

	return &SMTPConfig{
		Host:     d.SMTPHost,
		Port:     port,
		Secure:   port == ImplicitTLSSMTPPort,
		Username: d.Email,
		Password: decodePassword(d.Password),
	}
}

func (c *IMAPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *SMTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// decodePassword reverses the stored credential encoding. This is best-effort
// and never fails a request: a value that does not decode is used as-is. The
// encoding is reversible and has no secrecy property.
func decodePassword(stored string) string {
	if stored == "" {
		return stored
	}
	decoded, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return stored
	}
	return string(decoded)
}
