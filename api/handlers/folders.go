package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ikonesteve/email-imap-proxy/interfaces"
	"github.com/ikonesteve/email-imap-proxy/internal/connection"
	"github.com/ikonesteve/email-imap-proxy/internal/errors"
	"github.com/ikonesteve/email-imap-proxy/internal/models"
	"github.com/ikonesteve/email-imap-proxy/internal/tracing"
)

// ListFoldersRequest asks for every mailbox the server exposes.
type ListFoldersRequest struct {
	Connection connection.Descriptor `json:"connection"`
}

func ListFolders(imapService interfaces.IMAPGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "ListFolders", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request ListFoldersRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			respondWithError(c, span, errors.Configuration("invalid request format: %s", err.Error()), "")
			return
		}

		if err := validateIMAPDescriptor(&request.Connection); err != nil {
			respondWithError(c, span, err, "")
			return
		}

		config := request.Connection.IMAP()
		folders, err := imapService.ListFolders(ctx, config)
		if err != nil {
			respondWithError(c, span, err, config.Host)
			return
		}
		if folders == nil {
			folders = []models.Folder{}
		}

		c.JSON(http.StatusOK, gin.H{
			"folders": folders,
		})
	}
}
