package itinerary

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *mux.Router {
	handler := NewHandler(NewServiceWithDays([]Day{
		{
			Date:        "2026-01-20",
			Location:    "Sapporo",
			Coordinates: Coordinates{Lat: 43.06, Lon: 141.35},
			Activities: []Activity{
				{Time: "09:30", Title: "Flight", Type: TypeTransport, VoucherKey: "flight"},
				{Time: "18:30", Title: "Dinner", Type: TypeFood, Menu: []string{"Soup curry"}},
			},
		},
	}))
	r := mux.NewRouter()
	r.HandleFunc("/api/days", handler.ListDays).Methods("GET")
	r.HandleFunc("/api/days/{day}", handler.GetDay).Methods("GET")
	r.HandleFunc("/api/navigation", handler.Navigation).Methods("GET")
	return r
}

func TestHandler_GetDay(t *testing.T) {
	router := setupRouter()

	t.Run("should return day with ordered activities", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/days/1", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var day DayDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&day))
		assert.Equal(t, "Sapporo", day.Location)
		require.Len(t, day.Activities, 2)
		assert.Equal(t, "Flight", day.Activities[0].Title)
		assert.Equal(t, "transport", day.Activities[0].Type)
		assert.Equal(t, "flight", day.Activities[0].VoucherKey)
		assert.Equal(t, []string{"Soup curry"}, day.Activities[1].Menu)
	})

	t.Run("should return 404 for unknown day", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/days/9", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should return 400 for invalid day", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/days/first", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var errResponse struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
		assert.Equal(t, "Invalid day number", errResponse.Error)
	})
}

func TestHandler_ListDays(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/days", nil)
	w := httptest.NewRecorder()

	setupRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var days []DayDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&days))
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].Number)
}

func TestHandler_Navigation(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/navigation", nil)
	w := httptest.NewRecorder()

	setupRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var entries []NavEntryDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
	assert.Len(t, entries, 3)
	assert.Equal(t, "Day 1 · Sapporo", entries[1].Label)
}
