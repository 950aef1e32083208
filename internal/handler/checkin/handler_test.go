package checkin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodmate/companion/internal/catalog"
	checkinService "github.com/moodmate/companion/internal/service/checkin"
	moodService "github.com/moodmate/companion/internal/service/mood"
	"github.com/moodmate/companion/internal/storage"
)

func TestCheckInRecordsMood(t *testing.T) {
	repo := storage.NewMemoryStorage()
	moodSvc := moodService.NewService(repo, nil)
	r := chi.NewRouter()
	New(checkinService.NewService(catalog.MustLoad(), moodSvc), nil).RegisterRoutes(r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"mood":"Calm","notes":" walked outside "}`)))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var got checkinService.Result
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "Calm", got.Mood.Label)
	assert.NotEmpty(t, got.Feedback)

	entries, err := moodSvc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "calm", entries[0].Mood)
	assert.Equal(t, "walked outside", entries[0].Journal)
}

func TestCheckInUnknownMood(t *testing.T) {
	r := chi.NewRouter()
	New(checkinService.NewService(catalog.MustLoad(), moodService.NewService(storage.NewMemoryStorage(), nil)), nil).RegisterRoutes(r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"mood":"ecstatic"}`)))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/moods", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	var moods []catalog.Mood
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &moods))
	assert.Len(t, moods, 8)
}
