package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/snowtrip/hokkaido/pkg/lookup"
)

type Client interface {
	// Current fetches the current conditions at the given coordinates.
	Current(ctx context.Context, at Coordinates) (Report, error)
}

type ClientImpl struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *ClientImpl {
	return &ClientImpl{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature *float64 `json:"temperature"`
		WeatherCode *int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Current calls GET {baseURL}/v1/forecast?latitude=..&longitude=..&current_weather=true
func (c *ClientImpl) Current(ctx context.Context, at Coordinates) (Report, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(at.Lat, 'f', 4, 64))
	query.Set("longitude", strconv.FormatFloat(at.Lon, 'f', 4, 64))
	query.Set("current_weather", "true")
	endpoint := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, query.Encode())

	var response forecastResponse
	if err := lookup.GetJSON(ctx, c.http, endpoint, &response); err != nil {
		return Report{}, err
	}
	current := response.CurrentWeather
	if current == nil || current.Temperature == nil || current.WeatherCode == nil {
		return Report{}, lookup.Malformed("current_weather missing temperature or weathercode")
	}

	return Report{
		Temperature: *current.Temperature,
		Label:       LabelForCode(*current.WeatherCode),
		Code:        *current.WeatherCode,
	}, nil
}
