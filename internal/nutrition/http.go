package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// getJSON issues a GET and decodes a 200 response body into dst.
func getJSON(ctx context.Context, client *http.Client, url string, header http.Header, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	slog.Debug("external lookup completed", "host", req.URL.Host, "path", req.URL.Path)
	return nil
}

// optionalNumber decodes a JSON number and treats anything else
// (strings such as "premium only", null) as absent.
type optionalNumber struct {
	Value float64
	Valid bool
}

func (n *optionalNumber) UnmarshalJSON(b []byte) error {
	var f float64
	if string(b) == "null" {
		*n = optionalNumber{}
		return nil
	}
	if err := json.Unmarshal(b, &f); err != nil {
		*n = optionalNumber{}
		return nil
	}
	*n = optionalNumber{Value: f, Valid: true}
	return nil
}
