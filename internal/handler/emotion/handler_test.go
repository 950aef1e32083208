package emotion

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analysis "github.com/moodmate/companion/internal/analysis/emotion"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New(5*time.Millisecond, nil).RegisterRoutes(r)
	return r
}

func TestStreamSendsBaselineThenSamples(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/stream?limit=3", nil))

	assert.Equal(t, "text/event-stream", resp.Header().Get("Content-Type"))

	var samples []Sample
	for _, line := range strings.Split(resp.Body.String(), "\n") {
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}
		var s Sample
		require.NoError(t, json.Unmarshal([]byte(data), &s))
		samples = append(samples, s)
	}

	require.Len(t, samples, 3)
	assert.Equal(t, analysis.Baseline(), samples[0].Readings)
	assert.Equal(t, 3, strings.Count(resp.Body.String(), "event: emotion"))
	for _, s := range samples {
		assert.Equal(t, s.Readings.Dominant(), s.Dominant)
	}
}

func TestStreamRejectsBadLimit(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/stream?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDominant(t *testing.T) {
	body := `{"happy":10,"sad":60,"angry":2,"surprised":8,"neutral":20}`
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/dominant", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"emotion":"sad","value":60}`, resp.Body.String())
}
