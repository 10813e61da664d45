package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxResponseBytes = 1 << 20

type HTTPClient struct {
	inner *http.Client
}

// NewHTTPClient builds the transport. Deadlines come from the per-call
// context, so the inner client carries no global timeout.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{inner: &http.Client{}}
}

func (c *HTTPClient) GetJSON(ctx context.Context, endpoint string, out any) error {
	return c.sendJSON(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *HTTPClient) PostJSON(ctx context.Context, endpoint string, body, out any) error {
	return c.sendJSON(ctx, http.MethodPost, endpoint, body, out)
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.inner.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrBackendUnreachable, method, endpoint, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", ErrBackendUnreachable, endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RejectedError{Status: resp.StatusCode, Detail: parseDetail(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrMalformedResponse, endpoint, err)
	}
	return nil
}

// parseDetail extracts a string "detail" field. Validation errors carry a
// list there instead, which is not user-presentable and yields "".
func parseDetail(raw []byte) string {
	var body struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	detail, _ := body.Detail.(string)
	return detail
}
