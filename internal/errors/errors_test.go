package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_WrapsUnknownFailuresAsUpstream(t *testing.T) {
	classified := Classify(fmt.Errorf("connection reset by peer"), "imap.example.com")

	assert.Equal(t, KindUpstream, classified.Kind)
	assert.Equal(t, "imap.example.com", classified.Host)
	assert.Contains(t, classified.Error(), "connection reset by peer")
	assert.Contains(t, classified.Error(), "imap.example.com")
}

func TestClassify_PassesClassifiedErrorsThrough(t *testing.T) {
	original := Configuration("limit must be positive")

	classified := Classify(original, "imap.example.com")

	assert.Same(t, original, classified)
	assert.Empty(t, classified.Host, "configuration errors predate any network attempt")
}

func TestClassify_UnwrapsWrappedClassifiedErrors(t *testing.T) {
	original := Send("smtp.example.com", fmt.Errorf("550 rejected"))
	wrapped := fmt.Errorf("handler: %w", original)

	classified := Classify(wrapped, "other-host")

	require.NotNil(t, classified)
	assert.Equal(t, KindSend, classified.Kind)
	assert.Equal(t, "smtp.example.com", classified.Host)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Configuration("bad")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Authorization("nope")))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(Upstream("h", fmt.Errorf("x"))))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(Send("h", fmt.Errorf("x"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("unclassified")))
}

func TestUpstream_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("EOF")

	classified := Upstream("imap.example.com", cause)

	assert.ErrorIs(t, classified, cause)
}
