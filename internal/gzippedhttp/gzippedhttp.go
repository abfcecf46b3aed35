// Package gzippedhttp provides middleware for gzip-compressed HTTP requests
// and responses. Responses are compressed only when the client accepts gzip
// and the handler answers with a 2xx status; request bodies are transparently
// decompressed when the client declares gzip content encoding.
package gzippedhttp

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		w, _ := gzip.NewWriterLevel(nil, gzip.BestSpeed)
		return w
	},
}

type compressedReader struct {
	body io.ReadCloser
	zr   *gzip.Reader
}

func newCompressedReader(body io.ReadCloser) (*compressedReader, error) {
	zr, err := gzip.NewReader(body)
	if err != nil {
		return nil, err
	}

	return &compressedReader{body: body, zr: zr}, nil
}

func (c *compressedReader) Read(p []byte) (int, error) {
	return c.zr.Read(p)
}

func (c *compressedReader) Close() error {
	if err := c.body.Close(); err != nil {
		return err
	}
	return c.zr.Close()
}

// compressedResponseWriter defers the compression decision until the status
// is known, so error and redirect bodies pass through untouched.
type compressedResponseWriter struct {
	http.ResponseWriter
	zw          *gzip.Writer
	wroteHeader bool
}

func (c *compressedResponseWriter) WriteHeader(statusCode int) {
	if c.wroteHeader {
		return
	}
	c.wroteHeader = true

	if statusCode >= 200 && statusCode < 300 {
		c.Header().Set("Content-Encoding", "gzip")
		c.Header().Del("Content-Length")

		c.zw = gzipWriterPool.Get().(*gzip.Writer)
		c.zw.Reset(c.ResponseWriter)
	}

	c.ResponseWriter.WriteHeader(statusCode)
}

func (c *compressedResponseWriter) Write(p []byte) (int, error) {
	if !c.wroteHeader {
		c.WriteHeader(http.StatusOK)
	}
	if c.zw != nil {
		return c.zw.Write(p)
	}
	return c.ResponseWriter.Write(p)
}

func (c *compressedResponseWriter) close() {
	if c.zw == nil {
		return
	}
	_ = c.zw.Close()
	gzipWriterPool.Put(c.zw)
	c.zw = nil
}

// GzipResponse is the middleware that compresses responses for clients whose
// "Accept-Encoding" header includes gzip.
func GzipResponse(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		if !strings.Contains(request.Header.Get("Accept-Encoding"), "gzip") {
			h.ServeHTTP(response, request)
			return
		}

		compressed := &compressedResponseWriter{ResponseWriter: response}
		defer compressed.close()

		h.ServeHTTP(compressed, request)
	}

	return http.HandlerFunc(middleware)
}

// UngzipRequest is the middleware that replaces a gzip-encoded request body
// with a decompressing reader before the next handler runs.
func UngzipRequest(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		if strings.Contains(request.Header.Get("Content-Encoding"), "gzip") {
			decompressed, err := newCompressedReader(request.Body)
			if err != nil {
				response.WriteHeader(http.StatusBadRequest)
				return
			}
			request.Body = decompressed
			defer decompressed.Close()
		}

		h.ServeHTTP(response, request)
	}

	return http.HandlerFunc(middleware)
}
