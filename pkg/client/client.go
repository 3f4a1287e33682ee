// Package client is a typed Go client for the valuation HTTP API.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"valuation_service/pkg/httpx"
	"valuation_service/pkg/logx"
	"valuation_service/pkg/middlewarex"
	"valuation_service/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx reply of the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	SupportID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("valuation api: status %d: %s: %s (support id %s)", e.StatusCode, e.Code, e.Message, e.SupportID)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL. The transport of httpClient (or a default
// one when nil) is wrapped with request/response logging and trace id
// forwarding.
func New(baseURL string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	next := httpClient.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	wrapped := *httpClient
	wrapped.Transport = httpx.NewLoggingRoundTripper(
		next,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		httpx.WithTraceHeader(middlewarex.TraceIDHeader),
	)

	return Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &wrapped,
	}
}

func (c Client) Estimate(ctx context.Context, request rest.ValuationRequest) (rest.ValuationResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return rest.ValuationResponse{}, fmt.Errorf("json.Marshal: %w", err)
	}

	return c.EstimateRaw(ctx, body)
}

// EstimateRaw sends an already encoded request, leaving validation to the
// server.
func (c Client) EstimateRaw(ctx context.Context, body []byte) (rest.ValuationResponse, error) {
	var response rest.ValuationResponse

	if err := c.do(ctx, http.MethodPost, "/api/valuation/estimate", body, &response); err != nil {
		return rest.ValuationResponse{}, err
	}

	return response, nil
}

func (c Client) Batch(ctx context.Context, requests []rest.ValuationRequest) (rest.BatchValuationResponse, error) {
	body, err := json.Marshal(requests)
	if err != nil {
		return rest.BatchValuationResponse{}, fmt.Errorf("json.Marshal: %w", err)
	}

	return c.BatchRaw(ctx, body)
}

// BatchRaw sends an already encoded JSON array. Elements the server cannot
// decode come back as failed results.
func (c Client) BatchRaw(ctx context.Context, body []byte) (rest.BatchValuationResponse, error) {
	var response rest.BatchValuationResponse

	if err := c.do(ctx, http.MethodPost, "/api/valuation/batch", body, &response); err != nil {
		return rest.BatchValuationResponse{}, err
	}

	return response, nil
}

func (c Client) Cities(ctx context.Context) (rest.CitiesResponse, error) {
	var response rest.CitiesResponse

	if err := c.do(ctx, http.MethodGet, "/api/valuation/cities", nil, &response); err != nil {
		return rest.CitiesResponse{}, err
	}

	return response, nil
}

func (c Client) PropertyTypes(ctx context.Context) (rest.PropertyTypesResponse, error) {
	var response rest.PropertyTypesResponse

	if err := c.do(ctx, http.MethodGet, "/api/valuation/property-types", nil, &response); err != nil {
		return rest.PropertyTypesResponse{}, err
	}

	return response, nil
}

func (c Client) Factors(ctx context.Context) (rest.FactorsResponse, error) {
	var response rest.FactorsResponse

	if err := c.do(ctx, http.MethodGet, "/api/valuation/factors", nil, &response); err != nil {
		return rest.FactorsResponse{}, err
	}

	return response, nil
}

func (c Client) do(ctx context.Context, method, endpoint string, body []byte, dest any) error {
	var payload io.Reader = http.NoBody
	if body != nil {
		payload = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp)
	}

	if err = json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	return nil
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body rest.Error

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}

	apiErr.Code = body.Code
	apiErr.Message = body.Message
	apiErr.SupportID = body.SupportID

	return apiErr
}
