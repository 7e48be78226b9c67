package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_drainAndCloseRequestMiddleware(t *testing.T) {
	handler := DrainAndCloseRequest()
	handlerFunc := handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// handler bails out without touching the body
		w.WriteHeader(http.StatusBadRequest)
	}))

	body := &recordingBody{Reader: strings.NewReader(`{"weight":81.5}`)}
	req := httptest.NewRequest("POST", "/history/weight", nil)
	req.Body = body

	rr := httptest.NewRecorder()
	handlerFunc.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.True(t, body.closed)
	// fully drained
	remaining, err := body.Read(make([]byte, 1))
	assert.Zero(t, remaining)
	assert.Error(t, err)
}

func Test_drainAndCloseRequestMiddleware_nilBody(t *testing.T) {
	handler := DrainAndCloseRequest()
	handlerFunc := handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Body = nil

	rr := httptest.NewRecorder()
	handlerFunc.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

type recordingBody struct {
	*strings.Reader
	closed bool
}

func (b *recordingBody) Close() error {
	b.closed = true
	return nil
}
