package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/tinylinks/internal/config"
)

func TestNewWiresTheHTTPSurface(t *testing.T) {
	application, err := New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)
	require.NotNil(t, application.httpHandler)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(
		http.MethodPost,
		"/api/user/register",
		strings.NewReader(`{"email":"a@x.com","password":"pw1"}`),
	)
	application.httpHandler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Code)
}
