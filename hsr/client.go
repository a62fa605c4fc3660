package hsr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Doer sends HTTP requests. *http.Client implements it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestEditorFn is a function that can modify an HTTP request.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// Request describes a single call made by a generated client.
type Request struct {
	Method  string
	BaseURL string
	// Path is the already substituted and escaped request path.
	Path  string
	Query url.Values
	// Body is encoded as JSON when non-nil.
	Body      any
	UserAgent string
	Editors   []RequestEditorFn
}

// NewRequest builds the *http.Request for req.
func NewRequest(ctx context.Context, req Request) (*http.Request, error) {
	u := req.BaseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("hsr: failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("hsr: failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.UserAgent != "" {
		httpReq.Header.Set("User-Agent", req.UserAgent)
	}
	for _, edit := range req.Editors {
		if err := edit(ctx, httpReq); err != nil {
			return nil, fmt.Errorf("hsr: request editor failed: %w", err)
		}
	}
	return httpReq, nil
}

// Do builds and sends req. Any failure before a response is received is
// returned as a *ClientError with Status 0.
func Do(ctx context.Context, doer Doer, req Request) (*http.Response, error) {
	httpReq, err := NewRequest(ctx, req)
	if err != nil {
		return nil, &ClientError{Err: err}
	}
	resp, err := doer.Do(httpReq)
	if err != nil {
		return nil, &ClientError{Err: err}
	}
	return resp, nil
}

// DecodeResponse decodes the JSON body of resp into v. A failure is returned
// as a *ClientError carrying the response status.
func DecodeResponse(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &ClientError{Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// CloseBody drains and closes resp.Body so the connection can be reused.
func CloseBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
