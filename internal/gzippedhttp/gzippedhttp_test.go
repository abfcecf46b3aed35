package gzippedhttp

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipString(t *testing.T, input string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(input))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func gunzipBytes(t *testing.T, input []byte) string {
	t.Helper()

	zr, err := gzip.NewReader(bytes.NewReader(input))
	require.NoError(t, err)
	decompressed, err := io.ReadAll(zr)
	require.NoError(t, err)

	return string(decompressed)
}

func TestGzipResponseCompressesSuccess(t *testing.T) {
	handler := GzipResponse(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		response.WriteHeader(http.StatusOK)
		_, err := response.Write([]byte(`{"result":"ok"}`))
		assert.NoError(t, err)
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Accept-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))
	assert.Equal(t, `{"result":"ok"}`, gunzipBytes(t, recorder.Body.Bytes()))
}

func TestGzipResponseLeavesErrorsUncompressed(t *testing.T) {
	handler := GzipResponse(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		http.Error(response, "nope", http.StatusNotFound)
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Accept-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Empty(t, recorder.Header().Get("Content-Encoding"))
	assert.Equal(t, "nope\n", recorder.Body.String())
}

func TestGzipResponseLeavesInformationalUncompressed(t *testing.T) {
	handler := GzipResponse(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		response.WriteHeader(http.StatusSwitchingProtocols)
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Accept-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusSwitchingProtocols, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Content-Encoding"))
}

func TestGzipResponseSkipsClientsWithoutGzip(t *testing.T) {
	handler := GzipResponse(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		_, err := response.Write([]byte("plain"))
		assert.NoError(t, err)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, recorder.Header().Get("Content-Encoding"))
	assert.Equal(t, "plain", recorder.Body.String())
}

func TestUngzipRequest(t *testing.T) {
	var received string
	handler := UngzipRequest(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		body, err := io.ReadAll(request.Body)
		assert.NoError(t, err)
		received = string(body)
	}))

	body := bytes.NewReader(gzipString(t, `{"url":"https://a.com"}`))
	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, `{"url":"https://a.com"}`, received)
}

func TestUngzipRequestRejectsCorruptBody(t *testing.T) {
	handler := UngzipRequest(http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		t.Fatal("The handler must not run for a corrupt body")
	}))

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
	request.Header.Set("Content-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
