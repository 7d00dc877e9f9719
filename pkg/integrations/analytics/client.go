package analytics

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/chartfit/pkg/errors"
	"github.com/matzehuels/chartfit/pkg/httputil"
	"github.com/matzehuels/chartfit/pkg/integrations"
)

// Chart is the metadata the service reports for a saved chart.
type Chart struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Client provides access to the analytics service's chart API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an analytics client for the service at baseURL.
// The token is sent as a bearer credential on every request; pass an empty
// string for unauthenticated services. Pass a nil cache to disable HTTP
// response caching.
func NewClient(baseURL, token string, cache *httputil.Cache) *Client {
	var headers map[string]string
	if token != "" {
		headers = map[string]string{"Authorization": "Bearer " + token}
	}
	if cache != nil {
		cache = cache.Namespace("analytics:")
	}
	return &Client{
		Client:  integrations.NewClient(cache, headers),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// ListCharts returns the saved charts visible to the caller.
// If refresh is true, the cache is bypassed.
func (c *Client) ListCharts(ctx context.Context, refresh bool) ([]Chart, error) {
	var charts []Chart
	err := c.Cached(ctx, "charts", refresh, &charts, func() error {
		return c.Get(ctx, c.baseURL+"/api/v1/charts", &charts)
	})
	if err != nil {
		return nil, translateErr(err, "")
	}
	return charts, nil
}

// FetchSpec retrieves the raw spec JSON of a saved chart by ID.
// If refresh is true, the cache is bypassed.
func (c *Client) FetchSpec(ctx context.Context, chartID string, refresh bool) ([]byte, error) {
	if chartID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart ID is required")
	}

	var spec string
	key := "spec:" + chartID
	err := c.Cached(ctx, key, refresh, &spec, func() error {
		url := fmt.Sprintf("%s/api/v1/charts/%s/spec", c.baseURL, integrations.URLEncode(chartID))
		body, err := c.GetText(ctx, url)
		if err != nil {
			return err
		}
		spec = body
		return nil
	})
	if err != nil {
		return nil, translateErr(err, chartID)
	}
	return []byte(spec), nil
}

// translateErr maps transport-level sentinels onto structured codes.
func translateErr(err error, chartID string) error {
	switch {
	case stderrors.Is(err, integrations.ErrNotFound):
		if chartID != "" {
			return errors.Wrap(errors.ErrCodeChartNotFound, err, "chart %q not found", chartID)
		}
		return errors.Wrap(errors.ErrCodeNotFound, err, "resource not found")
	case stderrors.Is(err, integrations.ErrUnauthorized):
		return errors.Wrap(errors.ErrCodeUnauthorized, err, "analytics service rejected credentials")
	default:
		return errors.Wrap(errors.ErrCodeNetwork, err, "calling analytics service")
	}
}
