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

const defaultFetchLimit = 30

// FetchEmailsRequest asks for one page of a folder, newest first.
type FetchEmailsRequest struct {
	Connection connection.Descriptor `json:"connection"`
	Folder     string                `json:"folder"`
	Limit      *int                  `json:"limit"`
	Offset     *int                  `json:"offset"`
}

// UpdateEmailRequest mutates flags of one message and optionally moves it.
// Absent flags are left untouched.
type UpdateEmailRequest struct {
	Connection   connection.Descriptor `json:"connection"`
	EmailID      string                `json:"email_id"`
	Folder       string                `json:"folder"`
	IsRead       *bool                 `json:"is_read"`
	IsStarred    *bool                 `json:"is_starred"`
	MoveToFolder string                `json:"move_to_folder"`
}

func FetchEmails(imapService interfaces.IMAPGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "FetchEmails", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request FetchEmailsRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			respondWithError(c, span, errors.Configuration("invalid request format: %s", err.Error()), "")
			return
		}

		if err := validateIMAPDescriptor(&request.Connection); err != nil {
			respondWithError(c, span, err, "")
			return
		}

		folder := request.Folder
		if folder == "" {
			folder = defaultFolder
		}
		limit := defaultFetchLimit
		if request.Limit != nil {
			limit = *request.Limit
		}
		offset := 0
		if request.Offset != nil {
			offset = *request.Offset
		}

		config := request.Connection.IMAP()
		page, err := imapService.FetchEmails(ctx, config, folder, limit, offset)
		if err != nil {
			respondWithError(c, span, err, config.Host)
			return
		}

		c.JSON(http.StatusOK, page)
	}
}

func UpdateEmail(imapService interfaces.IMAPGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "UpdateEmail", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request UpdateEmailRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			respondWithError(c, span, errors.Configuration("invalid request format: %s", err.Error()), "")
			return
		}

		if err := validateIMAPDescriptor(&request.Connection); err != nil {
			respondWithError(c, span, err, "")
			return
		}
		if request.EmailID == "" {
			respondWithError(c, span, errors.Configuration("email_id is required"), "")
			return
		}

		folder := request.Folder
		if folder == "" {
			folder = defaultFolder
		}

		updates := models.MessageUpdates{
			IsRead:       request.IsRead,
			IsStarred:    request.IsStarred,
			MoveToFolder: request.MoveToFolder,
		}

		config := request.Connection.IMAP()
		if err := imapService.UpdateMessage(ctx, config, folder, request.EmailID, updates); err != nil {
			respondWithError(c, span, err, config.Host)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"updated": true,
		})
	}
}
