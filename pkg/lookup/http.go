package lookup

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 512

// GetJSON performs a GET and decodes the JSON body into out.
// Non-2xx answers become *StatusError and undecodable bodies *MalformedError.
func GetJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedError{Err: err}
	}
	return nil
}
