package attendees

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"iftar/internal/shared/metrics"
	"iftar/internal/shared/middleware"
)

//go:generate mockgen -source=client.go -destination=client_mock_test.go -package=attendees

const attendPath = "/attend"

// maxErrorBody bounds how much of an error response is kept for logging
const maxErrorBody = 512

// Client talks to the external attendance service
type Client interface {
	Register(ctx context.Context, req RegistrationRequest) error
	List(ctx context.Context) ([]Attendee, error)
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an attendance service client. baseURL is not validated;
// an empty value makes every call fail with ErrBaseURLNotConfigured.
func NewClient(baseURL string, timeout time.Duration) Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a client on top of an existing *http.Client
func NewClientWithHTTP(baseURL string, hc *http.Client) Client {
	return &httpClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    hc,
	}
}

func (c *httpClient) Register(ctx context.Context, req RegistrationRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal registration: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, bytes.NewReader(body))
	if err != nil {
		observe("register", err)
		return err
	}
	defer resp.Body.Close()

	// The acknowledgement body is not used
	_, _ = io.Copy(io.Discard, resp.Body)
	observe("register", nil)
	return nil
}

func (c *httpClient) List(ctx context.Context) ([]Attendee, error) {
	resp, err := c.do(ctx, http.MethodGet, nil)
	if err != nil {
		observe("list", err)
		return nil, err
	}
	defer resp.Body.Close()

	var attendees []Attendee
	if err := json.NewDecoder(resp.Body).Decode(&attendees); err != nil {
		err = fmt.Errorf("decode attendee list: %w", err)
		observe("list", err)
		return nil, err
	}

	observe("list", nil)
	return attendees, nil
}

// do sends the request and returns the response only for 2xx statuses
func (c *httpClient) do(ctx context.Context, method string, body io.Reader) (*http.Response, error) {
	if c.baseURL == "" {
		return nil, ErrBaseURLNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+attendPath, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("attendance service %s: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Method:     method,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	return resp, nil
}

func observe(operation string, err error) {
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}
	metrics.AttendanceRequestsTotal.WithLabelValues(operation, result).Inc()
}
