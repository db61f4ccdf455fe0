// Package registry queries a package index for latest published versions.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/khanhnv2901/srcaudit-cli/internal/shared/constants"
	sharederrors "github.com/khanhnv2901/srcaudit-cli/internal/shared/errors"
)

// Client talks to a PyPI-compatible JSON API. Lookups share one rate
// limiter so concurrent checks cannot hammer the index.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

// NewClient builds a Client with a bounded per-request timeout and a
// requests-per-second cap. No retries: a failed lookup stays failed.
func NewClient(baseURL string, timeout time.Duration, rps int) *Client {
	if baseURL == "" {
		baseURL = constants.DefaultRegistryBaseURL
	}
	if timeout <= 0 {
		timeout = constants.DefaultRegistryTimeout
	}
	if rps <= 0 {
		rps = constants.DefaultRegistryRPS
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(rate.Limit(rps), rps),
	}
}

type packageInfo struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

// LatestVersion fetches the latest published version for pkg. Every
// failure mode (network, non-200, malformed body, missing field) comes
// back as an error; the caller treats all of them as "latest unknown".
func (c *Client) LatestVersion(ctx context.Context, pkg string) (string, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/pypi/%s/json", c.BaseURL, url.PathEscape(pkg))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request for %s: %w", pkg, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", sharederrors.ErrRegistryUnavailable, pkg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", sharederrors.ErrPackageNotFound, pkg)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s: status %d", sharederrors.ErrRegistryResponse, pkg, resp.StatusCode)
	}

	var info packageInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("%w: %s: %v", sharederrors.ErrRegistryResponse, pkg, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	if info.Info.Version == "" {
		return "", fmt.Errorf("%w: %s: missing version field", sharederrors.ErrRegistryResponse, pkg)
	}
	return info.Info.Version, nil
}
