package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"CraneView/internal/crane/analysis"
	"CraneView/internal/crane/geometry"

	"golang.org/x/time/rate"
)

// Client talks to the external FEM service.
type Client struct {
	BaseURL    string
	User       string
	Password   string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

// StatusError is a non-2xx answer from the solver.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("solver returned %d: %s", e.Code, e.Body)
}

func NewClient(baseURL string, timeout time.Duration, rps float64) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if rps > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return c
}

// Calculate runs one analysis. The request body carries exactly the eleven
// parameter fields.
func (c *Client) Calculate(ctx context.Context, p geometry.ParameterSet) (*analysis.Result, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("solver limiter: %w", err)
		}
	}
	var out struct {
		analysis.Result
		Error string `json:"error"`
	}
	if err := c.postJSON(ctx, "/calculate", p, &out); err != nil {
		return nil, err
	}
	// the solver reports its own exceptions in a 200 body
	if out.Error != "" {
		return nil, fmt.Errorf("solver error: %s", out.Error)
	}
	res := out.Result
	return &res, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.User != "" {
		req.SetBasicAuth(c.User, c.Password)
	}
	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("solver request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode solver response: %w", err)
	}
	return nil
}
