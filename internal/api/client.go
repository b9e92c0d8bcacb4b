// Package api implements the HTTP gateways to the BlitzWare REST
// backend. All authenticated calls send the bearer token taken from the
// cached account; the token itself is opaque to the client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a BlitzWare backend at a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the backend at baseURL. hc may be nil, in
// which case a default client with a 15s timeout is used.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// do issues one JSON request. body (when non-nil) is marshalled as the
// request payload; out (when non-nil) receives the decoded response.
// Transport failures come back as *NetworkError, non-2xx responses as
// *RemoteError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	op := method + " " + path

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return remoteError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// remoteError builds a RemoteError from a non-2xx response, picking up
// the server's {code, message} error body when it parses.
func remoteError(resp *http.Response) error {
	re := &RemoteError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return re
	}
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		re.Code = payload.Code
		re.Message = payload.Message
	}
	return re
}
