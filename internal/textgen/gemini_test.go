package textgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_missingAPIKey(t *testing.T) {
	client, err := NewClient(DefaultBaseURL, "", "gemini-3-flash-preview", http.DefaultClient)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrAPIKeyNotSet)
}

func TestClient_GenerateText(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/models/gemini-3-flash-preview:generateContent", r.URL.Path)
		assert.Equal(t, "dummy-api-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var genReq generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&genReq))
		require.Len(t, genReq.Contents, 1)
		require.Len(t, genReq.Contents[0].Parts, 1)
		assert.Equal(t, "analise meu progresso", genReq.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{
			"candidates": [
				{"content": {"parts": [{"text": "Ótimo ritmo! "}, {"text": "Continue assim."}]}}
			]
		}`))
		require.NoError(t, err)
	}))
	defer testServer.Close()

	client, err := NewClient(testServer.URL, "dummy-api-key", "gemini-3-flash-preview", testServer.Client())
	require.NoError(t, err)

	// parts of the first candidate are concatenated
	text, err := client.GenerateText(context.Background(), "analise meu progresso")
	require.NoError(t, err)
	assert.Equal(t, "Ótimo ritmo! Continue assim.", text)
}

func TestClient_GenerateText_apiError(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"code": 429, "message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer testServer.Close()

	client, err := NewClient(testServer.URL, "dummy-api-key", "gemini-3-flash-preview", testServer.Client())
	require.NoError(t, err)

	text, err := client.GenerateText(context.Background(), "prompt")
	assert.Empty(t, text)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClient_GenerateText_emptyResponse(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"candidates": []}`))
		require.NoError(t, err)
	}))
	defer testServer.Close()

	client, err := NewClient(testServer.URL, "dummy-api-key", "gemini-3-flash-preview", testServer.Client())
	require.NoError(t, err)

	text, err := client.GenerateText(context.Background(), "prompt")
	assert.Empty(t, text)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
