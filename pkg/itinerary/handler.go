package itinerary

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/snowtrip/hokkaido/internal/rest"
)

type DayDTO struct {
	Number      int           `json:"number"`
	Date        string        `json:"date"`
	Location    string        `json:"location"`
	Coordinates CoordinateDTO `json:"coordinates"`
	Hotel       string        `json:"hotel,omitempty"`
	Activities  []ActivityDTO `json:"activities,omitempty"`
}

type CoordinateDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type ActivityDTO struct {
	Time        string   `json:"time"`
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Menu        []string `json:"menu,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	MapURL      string   `json:"mapUrl,omitempty"`
	VoucherKey  string   `json:"voucherKey,omitempty"`
}

type NavEntryDTO struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListDays godoc
// @Summary List all itinerary days
// @Tags Itinerary
// @Produce json
// @Success 200 {array} DayDTO
// @Router /api/days [get]
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing itinerary days")
	days := h.service.ListDays(r.Context())
	dtos := make([]DayDTO, 0, len(days))
	for _, d := range days {
		dtos = append(dtos, DayToDTO(d))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetDay godoc
// @Summary Get one itinerary day
// @Tags Itinerary
// @Produce json
// @Param day path int true "Day number"
// @Success 200 {object} DayDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/days/{day} [get]
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid day number", err.Error())
		return
	}
	day, err := h.service.GetDay(r.Context(), number)
	if err != nil {
		if errors.Is(err, ErrDayNotFound) {
			rest.WriteError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, DayToDTO(day))
}

// Navigation godoc
// @Summary Top navigation strip
// @Tags Itinerary
// @Produce json
// @Success 200 {array} NavEntryDTO
// @Router /api/navigation [get]
func (h *Handler) Navigation(w http.ResponseWriter, r *http.Request) {
	entries := h.service.Navigation(r.Context())
	dtos := make([]NavEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, NavEntryDTO{Label: e.Label, Path: e.Path})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func DayToDTO(day Day) DayDTO {
	activities := make([]ActivityDTO, 0, len(day.Activities))
	for _, a := range day.Activities {
		activities = append(activities, ActivityToDTO(a))
	}
	return DayDTO{
		Number:      day.Number,
		Date:        day.Date,
		Location:    day.Location,
		Coordinates: CoordinateDTO{Lat: day.Coordinates.Lat, Lon: day.Coordinates.Lon},
		Hotel:       day.Hotel,
		Activities:  activities,
	}
}

func ActivityToDTO(a Activity) ActivityDTO {
	return ActivityDTO{
		Time:        a.Time,
		Title:       a.Title,
		Type:        string(a.Type),
		Description: a.Description,
		Menu:        a.Menu,
		Notes:       a.Notes,
		MapURL:      a.MapURL,
		VoucherKey:  a.VoucherKey,
	}
}
