package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/chartfit/pkg/errors"
	"github.com/matzehuels/chartfit/pkg/httputil"
)

// RemoteRenderer talks to an HTTP rendering service that accepts a chart
// spec and responds with a Frame.
//
// The wire contract is a POST of the raw spec JSON to the configured URL,
// answered with {"svg": ..., "bounds": {...}, "width": ..., "height": ...}.
type RemoteRenderer struct {
	URL    string
	Client *http.Client
}

// NewRemoteRenderer builds a renderer for the service at url.
func NewRemoteRenderer(url string) *RemoteRenderer {
	return &RemoteRenderer{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Render posts the spec and decodes the returned frame. Server-side
// errors (5xx) are retried with backoff; client-side errors are not.
func (r *RemoteRenderer) Render(ctx context.Context, spec map[string]any) (*Frame, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "encoding spec")
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	var frame Frame
	err = httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			io.Copy(io.Discard, resp.Body)
			return &httputil.RetryableError{
				Err: fmt.Errorf("render service returned %d", resp.StatusCode),
			}
		}
		if resp.StatusCode != http.StatusOK {
			data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return errors.New(errors.ErrCodeRenderFailed,
				"render service returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
		}

		frame = Frame{}
		if err := json.NewDecoder(resp.Body).Decode(&frame); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "decoding render response")
		}
		return nil
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "calling render service")
	}
	return &frame, nil
}

var _ Renderer = (*RemoteRenderer)(nil)
