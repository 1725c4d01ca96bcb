package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikonesteve/email-imap-proxy/interfaces"
	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/errors"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
)

// TestConnectionRequest probes whether a descriptor reaches a working server.
type TestConnectionRequest struct {
	Connection connection.Descriptor `json:"connection"`
}

func TestConnection(imapService interfaces.IMAPGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "TestConnection", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request TestConnectionRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			respondWithError(c, span, errors.Configuration("invalid request format: %s", err.Error()), "")
			return
		}

		if err := validateIMAPDescriptor(&request.Connection); err != nil {
			respondWithError(c, span, err, "")
			return
		}

		config := request.Connection.IMAP()
		check, err := imapService.TestConnection(ctx, config)
		if err != nil {
			respondWithError(c, span, err, config.Host)
			return
		}

		c.JSON(http.StatusOK, check)
	}
}
