package weather

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/snowtrip/hokkaido/internal/rest"
	"github.com/snowtrip/hokkaido/pkg/itinerary"
	"github.com/snowtrip/hokkaido/pkg/lookup"
)

type ReportDTO struct {
	Temperature float64 `json:"temperature"`
	Label       string  `json:"label"`
	Code        int     `json:"code"`
}

// DayProvider resolves an itinerary day by its number.
type DayProvider func(ctx context.Context, number int) (itinerary.Day, error)

type Handler struct {
	service     Service
	dayProvider DayProvider
}

func NewHandler(service Service, dayProvider DayProvider) *Handler {
	return &Handler{service: service, dayProvider: dayProvider}
}

// GetWeather godoc
// @Summary Current weather
// @Description Current weather at lat/lon, or at the default location when both are omitted. Always answers 200; degraded=true marks the fallback value.
// @Tags Weather
// @Produce json
// @Param lat query number false "Latitude"
// @Param lon query number false "Longitude"
// @Success 200 {object} lookup.Result[ReportDTO]
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/weather [get]
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting weather")
	at, err := coordinatesFromQuery(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid coordinates", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, resultToDTO(h.service.Current(r.Context(), at)))
}

// GetDayWeather godoc
// @Summary Current weather at an itinerary day's location
// @Tags Weather
// @Produce json
// @Param day path int true "Day number"
// @Success 200 {object} lookup.Result[ReportDTO]
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/days/{day}/weather [get]
func (h *Handler) GetDayWeather(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid day number", err.Error())
		return
	}
	day, err := h.dayProvider(r.Context(), number)
	if err != nil {
		if errors.Is(err, itinerary.ErrDayNotFound) {
			rest.WriteError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	at := Coordinates{Lat: day.Coordinates.Lat, Lon: day.Coordinates.Lon}
	rest.WriteJSON(w, http.StatusOK, resultToDTO(h.service.Current(r.Context(), &at)))
}

func coordinatesFromQuery(r *http.Request) (*Coordinates, error) {
	latParam := r.URL.Query().Get("lat")
	lonParam := r.URL.Query().Get("lon")
	if latParam == "" && lonParam == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(latParam, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, errors.New("lat must be a number between -90 and 90")
	}
	lon, err := strconv.ParseFloat(lonParam, 64)
	if err != nil || math.IsNaN(lon) || lon < -180 || lon > 180 {
		return nil, errors.New("lon must be a number between -180 and 180")
	}
	return &Coordinates{Lat: lat, Lon: lon}, nil
}

func resultToDTO(result lookup.Result[Report]) lookup.Result[ReportDTO] {
	return lookup.Result[ReportDTO]{
		Value: ReportDTO{
			Temperature: result.Value.Temperature,
			Label:       string(result.Value.Label),
			Code:        result.Value.Code,
		},
		Failure: result.Failure,
	}
}
