package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-guestlist/internal/models"
	"wedding-guestlist/internal/storage"
	"wedding-guestlist/internal/summary"
)

func newTestRouter(t *testing.T) (*gin.Engine, *storage.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registry := storage.NewMemory()
	return NewRouter(registry, zerolog.Nop(), RouterConfig{}), registry
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

const johnDoeJSON = `{
	"name": "John Doe",
	"association": "James",
	"family": true,
	"dietaryRestrictions": "None",
	"bringingGuest": true,
	"additionalGuestName": "Jane Doe",
	"additionalGuestDietaryRestrictions": "Vegetarian"
}`

const aliceSmithJSON = `{
	"name": "Alice Smith",
	"association": "Molly",
	"family": false,
	"dietaryRestrictions": "Vegan",
	"bringingGuest": false
}`

func TestListGuestsEmpty(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/guests", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAddGuest(t *testing.T) {
	r, registry := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/guests", johnDoeJSON)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"id": "0",
		"name": "John Doe",
		"association": "James",
		"family": true,
		"dietaryRestrictions": "None",
		"bringingGuest": true,
		"additionalGuestName": "Jane Doe",
		"additionalGuestDietaryRestrictions": "Vegetarian"
	}`, rec.Body.String())

	// An id in the payload is ignored; the registry assigns its own.
	rec = doJSON(t, r, http.MethodPost, "/api/guests",
		`{"id":"42","name":"Bob Brown","association":"James","family":false,"dietaryRestrictions":"None"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	bob := decode[models.Guest](t, rec)
	assert.Equal(t, "1", bob.ID)
	assert.Equal(t, models.PlusOneUnknown, bob.BringingGuest)
	assert.NotContains(t, rec.Body.String(), "bringingGuest")

	guests, err := registry.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, guests, 2)
}

func TestAddGuestValidation(t *testing.T) {
	r, registry := newTestRouter(t)

	tests := []struct {
		name  string
		body  string
		want  int
		field string
	}{
		{"empty name", `{"name":"","association":"James","family":true}`, http.StatusBadRequest, "name"},
		{"bad association", `{"name":"A","association":"Bob","family":true}`, http.StatusBadRequest, "association"},
		{"missing family", `{"name":"A","association":"Molly"}`, http.StatusBadRequest, "family"},
		{"family not boolean", `{"name":"A","association":"Molly","family":"yes"}`, http.StatusBadRequest, ""},
		{"malformed json", `{"name":`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/guests", tt.body)
			require.Equal(t, tt.want, rec.Code)
			body := decode[ErrorResponse](t, rec)
			assert.Equal(t, tt.field, body.Field)
			if tt.field != "" {
				assert.Equal(t, msgMissingFields, body.Error)
			} else {
				assert.Equal(t, msgInvalidFormat, body.Error)
			}
		})
	}

	guests, err := registry.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, guests)
}

func TestUpdateGuest(t *testing.T) {
	r, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/guests", johnDoeJSON).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/guests", aliceSmithJSON).Code)

	rec := doJSON(t, r, http.MethodPut, "/api/guests/1",
		`{"name":"Alice Johnson","association":"Molly","family":false,"dietaryRestrictions":"Vegetarian","bringingGuest":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.Guest](t, rec)
	assert.Equal(t, "1", updated.ID)
	assert.Equal(t, "Alice Johnson", updated.Name)
	assert.Equal(t, "Vegetarian", updated.DietaryRestrictions)

	list := decode[[]models.Guest](t, doJSON(t, r, http.MethodGet, "/api/guests", ""))
	require.Len(t, list, 2)
	assert.Equal(t, "John Doe", list[0].Name)
	assert.Equal(t, updated, list[1])
}

func TestUpdateGuestErrors(t *testing.T) {
	r, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/guests", johnDoeJSON).Code)

	rec := doJSON(t, r, http.MethodPut, "/api/guests/non-existing-id", `{"name":"John Smith","association":"James","family":true}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Guest not found"}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodPut, "/api/guests/0", `{"name":"","association":"James","family":true}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrorResponse{Error: msgInvalidFormat, Field: "name"}, decode[ErrorResponse](t, rec))

	list := decode[[]models.Guest](t, doJSON(t, r, http.MethodGet, "/api/guests", ""))
	require.Len(t, list, 1)
	assert.Equal(t, "John Doe", list[0].Name)
}

func TestRemoveGuest(t *testing.T) {
	r, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/guests", johnDoeJSON).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/guests", aliceSmithJSON).Code)

	rec := doJSON(t, r, http.MethodDelete, "/api/guests/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	remaining := decode[[]models.Guest](t, rec)
	require.Len(t, remaining, 1)
	assert.Equal(t, "1", remaining[0].ID)

	// Deleting again is not an error.
	rec = doJSON(t, r, http.MethodDelete, "/api/guests/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, remaining, decode[[]models.Guest](t, rec))
}

func TestGetSummary(t *testing.T) {
	r, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/guests", johnDoeJSON).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/guests", aliceSmithJSON).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/guests",
		`{"name":"Bob Brown","association":"James","family":false,"dietaryRestrictions":"None"}`).Code)

	rec := doJSON(t, r, http.MethodGet, "/api/guests/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, summary.Summary{
		Molly: summary.Range{FamilyCount: 0, MinGuests: 1, MaxGuests: 1},
		James: summary.Range{FamilyCount: 1, MinGuests: 3, MaxGuests: 4},
	}, decode[summary.Summary](t, rec))
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doJSON(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
