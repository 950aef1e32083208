package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusBadRequest, "invalid request body")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error":"invalid request body"}`, rec.Body.String())
}

func TestRespondJSON_EncodeErrorIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]any{"timestamp": time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"failed to encode response"}`, rec.Body.String())
}

func TestSendSSEEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	SetupSSEHeaders(rec)

	require.NoError(t, SendSSEEvent(rec, rec, "emotion", map[string]int{"happy": 10}))
	require.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	require.Equal(t, "event: emotion\ndata: {\"happy\":10}\n\n", rec.Body.String())
	require.True(t, rec.Flushed)
}

func TestSendSSEEvent_MarshalError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := SendSSEEvent(rec, rec, "bad", make(chan int))
	require.Error(t, err)
	require.Empty(t, rec.Body.String())
}
