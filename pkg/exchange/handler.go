package exchange

import (
	"math"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/snowtrip/hokkaido/internal/rest"
	"github.com/snowtrip/hokkaido/pkg/lookup"
)

type RateDTO struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

type ConversionDTO struct {
	Yen  float64 `json:"yen"`
	Twd  float64 `json:"twd"`
	Rate float64 `json:"rate"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetRate godoc
// @Summary JPY to TWD exchange rate
// @Description Always answers 200; degraded=true marks the fallback rate.
// @Tags Exchange
// @Produce json
// @Success 200 {object} lookup.Result[RateDTO]
// @Router /api/exchange/jpy-twd [get]
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting exchange rate")
	result := h.service.JPYToTWD(r.Context())
	rest.WriteJSON(w, http.StatusOK, lookup.Result[RateDTO]{
		Value:   RateDTO{From: "JPY", To: "TWD", Rate: float64(result.Value)},
		Failure: result.Failure,
	})
}

// Convert godoc
// @Summary Convert a yen amount to TWD
// @Tags Exchange
// @Produce json
// @Param yen query number true "Amount in JPY"
// @Success 200 {object} lookup.Result[ConversionDTO]
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/exchange/jpy-twd/convert [get]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	yen, err := strconv.ParseFloat(r.URL.Query().Get("yen"), 64)
	if err != nil || yen < 0 || math.IsInf(yen, 0) || math.IsNaN(yen) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid yen amount", "yen must be a non-negative number")
		return
	}
	result := h.service.Convert(r.Context(), yen)
	rest.WriteJSON(w, http.StatusOK, lookup.Result[ConversionDTO]{
		Value: ConversionDTO{
			Yen:  result.Value.Yen,
			Twd:  result.Value.Twd,
			Rate: float64(result.Value.Rate),
		},
		Failure: result.Failure,
	})
}
