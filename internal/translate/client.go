// Package translate wraps a DeepL-compatible translation API.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"groovebot/pkg/retrylimit"
)

// ErrNotConfigured is returned when the client was built without an endpoint
// or API key.
var ErrNotConfigured = errors.New("translation API not configured")

type Client struct {
	endpoint string
	apiKey   string
	httpc    *http.Client
	limiter  *retrylimit.AdaptiveLimiter
}

func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpc:    &http.Client{Timeout: 15 * time.Second},
		limiter:  retrylimit.NewAdaptiveLimiter(5, 1, 10, 1, 0.5),
	}
}

// Configured reports whether the client can actually reach an API.
func (c *Client) Configured() bool {
	return c.endpoint != "" && c.apiKey != ""
}

type apiError struct {
	status int
}

func (e *apiError) Error() string   { return fmt.Sprintf("translation API returned %d", e.status) }
func (e *apiError) StatusCode() int { return e.status }

// Translate renders text into targetLang (e.g. "EN", "JA"). The source
// language is detected by the API.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(map[string]any{
		"text":        []string{text},
		"target_lang": targetLang,
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}

	err = retrylimit.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return &retrylimit.Permanent{Err: err}
		}
		req.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return &apiError{status: resp.StatusCode}
		}
		return json.NewDecoder(resp.Body).Decode(&out)
	}, c.limiter, 3)
	if err != nil {
		return "", err
	}

	if len(out.Translations) == 0 {
		return "", errors.New("translation API returned no results")
	}
	return out.Translations[0].Text, nil
}
