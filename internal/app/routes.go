package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/snowtrip/hokkaido/internal/config"
	"github.com/snowtrip/hokkaido/internal/rest"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	r.HandleFunc("/api/health", health).Methods("GET")

	// Itinerary
	r.HandleFunc("/api/navigation", deps.ItineraryHandler.Navigation).Methods("GET")
	r.HandleFunc("/api/days", deps.ItineraryHandler.ListDays).Methods("GET")
	r.HandleFunc("/api/days/{day}", deps.ItineraryHandler.GetDay).Methods("GET")

	// Weather
	r.HandleFunc("/api/days/{day}/weather", deps.WeatherHandler.GetDayWeather).Methods("GET")
	r.HandleFunc("/api/weather", deps.WeatherHandler.GetWeather).Methods("GET")

	// Exchange rate
	r.HandleFunc("/api/exchange/jpy-twd", deps.ExchangeHandler.GetRate).Methods("GET")
	r.HandleFunc("/api/exchange/jpy-twd/convert", deps.ExchangeHandler.Convert).Methods("GET")

	// Vouchers
	r.HandleFunc("/api/vouchers", deps.VoucherHandler.List).Methods("GET")
	r.HandleFunc("/api/vouchers/images/{ref}", deps.VoucherHandler.Image).Methods("GET")
	r.HandleFunc("/api/vouchers/{key}", deps.VoucherHandler.Open).Methods("GET")
	r.HandleFunc("/api/vouchers/{key}", deps.VoucherHandler.Save).Methods("PUT")
	r.HandleFunc("/api/vouchers/{key}/edit", deps.VoucherHandler.Edit).Methods("POST")
	r.HandleFunc("/api/vouchers/{key}/image", deps.VoucherHandler.UploadImage).Methods("POST")
	r.HandleFunc("/api/vouchers/{key}/qr", deps.VoucherHandler.QRCode).Methods("GET")

	// Packing list
	r.HandleFunc("/api/packing", deps.PackingHandler.Get).Methods("GET")
	r.HandleFunc("/api/packing/items/{item}/checked", deps.PackingHandler.Toggle).Methods("PUT")
	r.HandleFunc("/api/packing/categories", deps.PackingHandler.AddCategory).Methods("POST")
	r.HandleFunc("/api/packing/categories/{category}", deps.PackingHandler.RemoveCategory).Methods("DELETE")
	r.HandleFunc("/api/packing/categories/{category}/items", deps.PackingHandler.AddItem).Methods("POST")
	r.HandleFunc("/api/packing/categories/{category}/items/{item}", deps.PackingHandler.RemoveItem).Methods("DELETE")
}

type HealthDTO struct {
	Status string `json:"status"`
}

// health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} HealthDTO
// @Router /api/health [get]
func health(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, HealthDTO{Status: "ok"})
}
