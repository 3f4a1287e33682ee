package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"valuation_service/internal/domain/service/pricing"
	"valuation_service/internal/domain/service/valuation"
	"valuation_service/internal/server"
	"valuation_service/pkg/errcodes"
	"valuation_service/pkg/logx"
	"valuation_service/pkg/middlewarex"
	"valuation_service/pkg/rest"
	"valuation_service/pkg/tests"
)

var fixedNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC) //nolint:gochecknoglobals

const istanbulRequest = `{
	"property_type": "daire",
	"features": {"sq_meters": 100, "room_count": 2, "building_age": 0},
	"location": {"city": "istanbul", "district": "Kadikoy"}
}`

func newTestServer(t *testing.T, maxBatchSize int) tests.APIClient {
	t.Helper()

	reg := prometheus.NewRegistry()
	svc := valuation.NewService(pricing.NewDefaultEngine(), valuation.NewMetrics(reg, "test")).
		WithClock(func() time.Time { return fixedNow })
	httpMetrics := middlewarex.NewHTTPMetrics(reg, "test")

	router := server.NewRouter(
		server.NewServer(server.NewValuationServer(svc, maxBatchSize)),
		server.RouterOptions{
			AllowedOrigins: []string{"http://localhost:3000"},
			Masker:         logx.NewSensitiveDataMasker(),
			Metrics:        &httpMetrics,
		},
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return tests.NewAPIClient(srv.URL, srv.Client())
}

func TestPostEstimate(t *testing.T) {
	rq := require.New(t)
	client := newTestServer(t, 0)

	var got rest.ValuationResponse

	resp, err := client.PostJSON(context.Background(), "/api/valuation/estimate", nil, istanbulRequest, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.NotEmpty(resp.Header.Get(middlewarex.TraceIDHeader))

	rq.InDelta(2475000.0, got.EstimatedPrice, 1e-6)
	rq.InDelta(0.85, got.ConfidenceScore, 1e-9)
	rq.InDelta(2103750.0, got.PriceRange.Min, 1e-6)
	rq.InDelta(2846250.0, got.PriceRange.Max, 1e-6)
	rq.InDelta(1.5, got.Factors.LocationMultiplier, 1e-9)
	rq.InDelta(15000.0, got.Factors.BasePricePerSqm, 1e-9)
	rq.Equal(pricing.ModelVersion, got.ModelVersion)
	rq.True(fixedNow.Equal(got.Timestamp))
}

func TestPostEstimateRejectsInvalidRequest(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "Malformed JSON",
			body: `{"property_type":`,
		},
		{
			name: "Missing area",
			body: `{"property_type":"daire","features":{"room_count":2,"building_age":0},` +
				`"location":{"city":"istanbul","district":"Kadikoy"}}`,
		},
		{
			name: "Zero rooms",
			body: `{"property_type":"daire","features":{"sq_meters":100,"room_count":0,"building_age":0},` +
				`"location":{"city":"istanbul","district":"Kadikoy"}}`,
		},
		{
			name: "Negative age",
			body: `{"property_type":"daire","features":{"sq_meters":100,"room_count":2,"building_age":-1},` +
				`"location":{"city":"istanbul","district":"Kadikoy"}}`,
		},
		{
			name: "Latitude out of range",
			body: `{"property_type":"daire","features":{"sq_meters":100,"room_count":2,"building_age":0},` +
				`"location":{"city":"istanbul","district":"Kadikoy","latitude":91,"longitude":29}}`,
		},
		{
			name: "Missing location",
			body: `{"property_type":"daire","features":{"sq_meters":100,"room_count":2,"building_age":0}}`,
		},
		{
			name: "Negative market price",
			body: `{"property_type":"daire","features":{"sq_meters":100,"room_count":2,"building_age":0},` +
				`"location":{"city":"istanbul","district":"Kadikoy"},"current_market_price":-5}`,
		},
	}

	client := newTestServer(t, 0)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var got rest.Error

			resp, err := client.PostJSON(context.Background(), "/api/valuation/estimate", nil, tc.body, nil, &got)
			rq.NoError(err)
			rq.Equal(http.StatusBadRequest, resp.StatusCode)
			rq.Equal(errcodes.ValidationError.String(), got.Code)
			rq.Equal(resp.Header.Get(middlewarex.TraceIDHeader), got.SupportID)
		})
	}
}

func TestPostEstimateNonFinitePriceIsServerError(t *testing.T) {
	rq := require.New(t)
	client := newTestServer(t, 0)

	body := `{"property_type":"daire","features":{"sq_meters":1e308,"room_count":2,"building_age":0},` +
		`"location":{"city":"istanbul","district":"Kadikoy"}}`

	var got rest.Error

	resp, err := client.PostJSON(context.Background(), "/api/valuation/estimate", nil, body, nil, &got)
	rq.NoError(err)
	rq.Equal(http.StatusInternalServerError, resp.StatusCode)
	rq.Equal(errcodes.InternalServerError.String(), got.Code)
}

func TestPostBatch(t *testing.T) {
	rq := require.New(t)
	client := newTestServer(t, 0)

	body := `[` +
		istanbulRequest + `,` +
		`{"property_type":"daire","features":{"sq_meters":0,"room_count":2,"building_age":0},` +
		`"location":{"city":"istanbul","district":"Kadikoy"}},` +
		`42,` +
		`{"property_type":"daire","features":{"sq_meters":1e308,"room_count":2,"building_age":0},` +
		`"location":{"city":"istanbul","district":"Kadikoy"}},` +
		`{"property_type":"daire","features":{"sq_meters":100,"room_count":2,"building_age":0,` +
		`"floor":1,"total_floors":1},"location":{"city":"istanbul","district":"Kadikoy"}}` +
		`]`

	var got rest.BatchValuationResponse

	resp, err := client.PostJSON(context.Background(), "/api/valuation/batch", nil, body, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal("5 properties valued", got.Message)
	rq.Equal(5, got.TotalProcessed)
	rq.Equal(2, got.Successful)
	rq.Equal(3, got.Failed)
	rq.Len(got.Results, 5)

	for i, result := range got.Results {
		rq.Equal(i, result.Index)
	}

	rq.True(got.Results[0].Success)
	rq.NotNil(got.Results[0].EstimatedPrice)
	rq.InDelta(2475000.0, *got.Results[0].EstimatedPrice, 1e-6)

	rq.False(got.Results[1].Success)
	rq.Nil(got.Results[1].EstimatedPrice)
	rq.Equal(errcodes.ValidationError.String(), got.Results[1].Code)
	rq.NotEmpty(got.Results[1].Error)

	rq.False(got.Results[2].Success)
	rq.Equal(errcodes.ValidationError.String(), got.Results[2].Code)

	rq.False(got.Results[3].Success)
	rq.Equal(errcodes.ValuationFailed.String(), got.Results[3].Code)

	rq.True(got.Results[4].Success)
	rq.InDelta(2227500.0, *got.Results[4].EstimatedPrice, 1e-6)
}

func TestPostBatchRejectsWholeRequest(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		wantCode string
	}{
		{
			name:     "Not an array",
			body:     istanbulRequest,
			wantCode: errcodes.ValidationError.String(),
		},
		{
			name:     "Too large",
			body:     `[` + istanbulRequest + `,` + istanbulRequest + `,` + istanbulRequest + `]`,
			wantCode: errcodes.BatchTooLarge.String(),
		},
	}

	client := newTestServer(t, 2)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var got rest.Error

			resp, err := client.PostJSON(context.Background(), "/api/valuation/batch", nil, tc.body, nil, &got)
			rq.NoError(err)
			rq.Equal(http.StatusBadRequest, resp.StatusCode)
			rq.Equal(tc.wantCode, got.Code)
		})
	}
}

func TestPostBatchEmpty(t *testing.T) {
	rq := require.New(t)
	client := newTestServer(t, 2)

	var got rest.BatchValuationResponse

	resp, err := client.PostJSON(context.Background(), "/api/valuation/batch", nil, `[]`, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(0, got.TotalProcessed)
	rq.Empty(got.Results)
}

func TestMetadataEndpoints(t *testing.T) {
	rq := require.New(t)
	client := newTestServer(t, 0)
	ctx := context.Background()

	var cities rest.CitiesResponse

	_, err := client.Get(ctx, "/api/valuation/cities", nil, &cities, nil)
	rq.NoError(err)
	rq.Equal([]string{"istanbul", "ankara", "izmir", "antalya", "bursa"}, cities.Cities)
	rq.Equal(5, cities.Total)

	var types rest.PropertyTypesResponse

	_, err = client.Get(ctx, "/api/valuation/property-types", nil, &types, nil)
	rq.NoError(err)
	rq.Equal([]string{"daire", "villa", "dükkan", "ofis", "arsa"}, types.PropertyTypes)
	rq.Equal(5, types.Total)

	var factors rest.FactorsResponse

	_, err = client.Get(ctx, "/api/valuation/factors", nil, &factors, nil)
	rq.NoError(err)
	rq.Len(factors.Factors, 7)
	rq.Contains(factors.Factors, "floor")
	rq.Equal("1.0.0", factors.ModelInfo.Version)
	rq.Equal("2024-01-15", factors.ModelInfo.LastUpdated)
}

func TestUnknownRoutes(t *testing.T) {
	rq := require.New(t)
	client := newTestServer(t, 0)
	ctx := context.Background()

	var notFound rest.Error

	resp, err := client.Get(ctx, "/api/valuation/unknown", nil, nil, &notFound)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.Equal(errcodes.NotFound.String(), notFound.Code)

	resp, err = client.Get(ctx, "/api/valuation/estimate", nil, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	rq := require.New(t)
	client := newTestServer(t, 0)

	headers := http.Header{}
	headers.Set("Origin", "http://localhost:3000")
	headers.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := client.Options(context.Background(), "/api/valuation/estimate", headers)
	rq.NoError(err)
	rq.Equal("http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))

	headers.Set("Origin", "http://evil.example")

	resp, err = client.Options(context.Background(), "/api/valuation/estimate", headers)
	rq.NoError(err)
	rq.Empty(resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouterWithoutMetrics(t *testing.T) {
	rq := require.New(t)

	router := server.NewRouter(
		server.NewServer(server.NewValuationServer(
			valuation.NewService(pricing.NewDefaultEngine(), valuation.NewMetrics(nil, "test")), 0,
		)),
		server.RouterOptions{Masker: logx.NewNopSensitiveDataMasker()},
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/valuation/cities", nil))

	rq.Equal(http.StatusOK, w.Code)
}
