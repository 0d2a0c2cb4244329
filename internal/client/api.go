package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/tidwall/gjson"
)

const DefaultBaseURL = "http://localhost:3000"

// APIError is returned for any non-2xx response from the flights API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("flights api: status %d", e.Status)
	}
	return fmt.Sprintf("flights api: status %d: %s", e.Status, e.Message)
}

// API talks to the /flights resource over HTTP.
type API struct {
	baseURL string
	http    *http.Client
}

type APIOption func(*API)

func WithHTTPClient(c *http.Client) APIOption {
	return func(a *API) {
		a.http = c
	}
}

func NewAPI(baseURL string, opts ...APIOption) *API {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	a := &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *API) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	var flights []domain.Flight
	if err := a.do(ctx, http.MethodGet, "/flights", nil, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (a *API) GetFlight(ctx context.Context, id string) (*domain.Flight, error) {
	var flight domain.Flight
	if err := a.do(ctx, http.MethodGet, flightPath(id), nil, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (a *API) CreateFlight(ctx context.Context, input domain.FlightInput) (*domain.Flight, error) {
	var flight domain.Flight
	if err := a.do(ctx, http.MethodPost, "/flights", input, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}

func (a *API) UpdateFlight(ctx context.Context, flight domain.Flight) (*domain.Flight, error) {
	var updated domain.Flight
	if err := a.do(ctx, http.MethodPut, flightPath(flight.ID), flight, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *API) DeleteFlight(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, flightPath(id), nil, nil)
}

func flightPath(id string) string {
	return "/flights/" + url.PathEscape(id)
}

func (a *API) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: gjson.GetBytes(raw, "message").String()}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
