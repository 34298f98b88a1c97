package exchange

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/snowtrip/hokkaido/pkg/lookup"
)

type Client interface {
	// JPYToTWD fetches the latest JPY→TWD rate.
	JPYToTWD(ctx context.Context) (Rate, error)
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

type latestResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// JPYToTWD calls GET {baseURL}/v6/latest/JPY
func (c *ClientImpl) JPYToTWD(ctx context.Context) (Rate, error) {
	var response latestResponse
	if err := lookup.GetJSON(ctx, c.http, fmt.Sprintf("%s/v6/latest/JPY", c.baseURL), &response); err != nil {
		return 0, err
	}
	if response.Result != "success" {
		return 0, lookup.Malformed("result is %q", response.Result)
	}
	twd, ok := response.Rates["TWD"]
	if !ok || twd <= 0 {
		return 0, lookup.Malformed("no positive TWD rate in response")
	}
	return Rate(twd), nil
}
