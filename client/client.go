// Package client submits registrations to the registration service and
// holds the state of a form being filled in.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"registration-backend/entity"
)

const (
	RegisterPath = "/api/register"

	defaultTimeout = 15 * time.Second
)

var (
	ErrUnreachable = errors.New("registration service unreachable")
)

// SubmitError is a failure reported by the service.
type SubmitError struct {
	Status  int
	Message string
	Detail  string
}

func (e *SubmitError) Error() string {
	if e.Detail != "" {
		return "registration rejected: " + e.Detail
	}
	return "registration rejected: " + e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type successResponse struct {
	Message string              `json:"message"`
	Data    entity.Registration `json:"data"`
}

type failureResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Register posts req. Any 2xx is success; everything else is a *SubmitError,
// except transport failures which are ErrUnreachable.
func (c *Client) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.Registration, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+RegisterPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	hr.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(hr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var f failureResponse
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("%w: unexpected %d response", ErrUnreachable, res.StatusCode)
		}
		return nil, &SubmitError{Status: res.StatusCode, Message: f.Message, Detail: f.Error}
	}

	var s successResponse
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}

	return &s.Data, nil
}
