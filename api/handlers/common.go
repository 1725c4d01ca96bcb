package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/errors"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
)

const defaultFolder = "INBOX"

// respondWithError classifies err and writes the structured failure payload.
func respondWithError(c *gin.Context, span opentracing.Span, err error, host string) {
	classified := errors.Classify(err, host)
	tracing.TraceErr(span, classified)

	payload := gin.H{
		"error": classified.Message,
		"kind":  string(classified.Kind),
	}
	if classified.Host != "" {
		payload["host"] = classified.Host
	}

	c.JSON(errors.HTTPStatus(classified), payload)
}

// validateIMAPDescriptor checks the boundary requirements once, so nothing
// downstream re-validates the descriptor ad hoc.
func validateIMAPDescriptor(descriptor *connection.Descriptor) error {
	if descriptor.IMAPHost == "" {
		return errors.Configuration("imap_host is required")
	}
	if descriptor.Email == "" {
		return errors.Configuration("email is required")
	}
	return nil
}

func validateSMTPDescriptor(descriptor *connection.Descriptor) error {
	if descriptor.SMTPHost == "" {
		return errors.Configuration("smtp_host is required")
	}
	if descriptor.Email == "" {
		return errors.Configuration("email is required")
	}
	return nil
}
