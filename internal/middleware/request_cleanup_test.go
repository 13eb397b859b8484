package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func TestLimitAndDrainRequest_DrainsAndCloses(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader(`{"message":"I ate pasta","userId":"user-1"}`)}

	var readByHandler int
	handler := LimitAndDrainRequest(1024)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// read only part of the body, the rest is drained afterwards
		buf := make([]byte, 5)
		n, err := r.Body.Read(buf)
		require.NoError(t, err)
		readByHandler = n
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/coach/message", nil)
	req.Body = body
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, readByHandler)
	assert.True(t, body.closed)
	rest, err := io.ReadAll(body.Reader)
	require.NoError(t, err)
	assert.Empty(t, rest)
}

func TestLimitAndDrainRequest_TooLargeBody(t *testing.T) {
	var readErr error
	handler := LimitAndDrainRequest(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
		if readErr != nil {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/coach/message", strings.NewReader(strings.Repeat("x", 64)))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var maxBytesErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxBytesErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestLimitAndDrainRequest_NoBody(t *testing.T) {
	called := false
	handler := LimitAndDrainRequest(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
}
