package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// CatalogClient fetches a tariff catalog published over HTTP.
type CatalogClient struct {
	// Token, when set, is sent as a bearer token.
	Token  string
	Client *http.Client
	Log    zerolog.Logger
}

func NewCatalogClient(token string, log zerolog.Logger) *CatalogClient {
	return &CatalogClient{
		Token: token,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		Log: log,
	}
}

// CatalogFetchError is a non-200 response from the catalog server.
type CatalogFetchError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *CatalogFetchError) Error() string {
	return e.Message
}

// IsRemote reports whether a catalog location is an http(s) URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// maxCatalogBytes bounds the response body.
const maxCatalogBytes = 4 << 20

// Fetch downloads and decodes a catalog. JSON is used when the response
// says so or the URL ends in .json; otherwise the body is read as YAML.
func (c *CatalogClient) Fetch(ctx context.Context, rawURL string) (*CatalogFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.Log.Error().Err(err).Str("url", rawURL).Dur("duration", duration).Msg("catalog request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.Log.Debug().Str("url", rawURL).Int("status", resp.StatusCode).Dur("duration", duration).Msg("catalog response")

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &CatalogFetchError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    fmt.Sprintf("catalog server rejected credentials (%d)", resp.StatusCode),
		}
	case http.StatusNotFound:
		return nil, &CatalogFetchError{
			StatusCode: resp.StatusCode,
			Code:       "NOT_FOUND",
			Message:    "catalog not found at " + rawURL,
		}
	default:
		return nil, &CatalogFetchError{
			StatusCode: resp.StatusCode,
			Code:       "CATALOG_ERROR",
			Message:    fmt.Sprintf("catalog server returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var cat CatalogFile
	if strings.Contains(resp.Header.Get("Content-Type"), "json") || isJSON(strings.SplitN(rawURL, "?", 2)[0]) {
		err = json.Unmarshal(raw, &cat)
	} else {
		err = yaml.Unmarshal(raw, &cat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c.Log.Info().Str("url", rawURL).Int("schedules", len(cat.Schedules)).Msg("fetched tariff catalog")
	return &cat, nil
}
