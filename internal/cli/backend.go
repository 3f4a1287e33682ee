package cli

import (
	"context"
	"fmt"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"valuation_service/internal/domain/service/pricing"
	"valuation_service/internal/domain/service/valuation"
	"valuation_service/internal/server"
	"valuation_service/pkg/client"
	"valuation_service/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type tables struct {
	Cities        []string             `json:"cities"`
	PropertyTypes []string             `json:"property_types"`
	Factors       rest.FactorsResponse `json:"factors"`
}

type backend interface {
	Estimate(ctx context.Context, raw []byte) (rest.ValuationResponse, error)
	Batch(ctx context.Context, raw []byte) (rest.BatchValuationResponse, error)
	Tables(ctx context.Context) (tables, error)
}

// localBackend prices in process with the same validation as the API.
type localBackend struct {
	service *valuation.Service
}

func newLocalBackend() localBackend {
	return localBackend{
		service: valuation.NewService(pricing.NewDefaultEngine(), valuation.NewMetrics(nil, "")),
	}
}

func (b localBackend) Estimate(ctx context.Context, raw []byte) (response rest.ValuationResponse, err error) {
	request, err := server.DecodeValuationRequest(ctx, raw)
	if err != nil {
		return rest.ValuationResponse{}, fmt.Errorf("invalid request: %s", failure.Description(err))
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("valuation failed: %v", rec)
		}
	}()

	return server.NewRESTValuation(b.service.Estimate(ctx, request)), nil
}

func (b localBackend) Batch(ctx context.Context, raw []byte) (rest.BatchValuationResponse, error) {
	var raws []jsoniter.RawMessage

	if err := json.Unmarshal(raw, &raws); err != nil {
		return rest.BatchValuationResponse{}, fmt.Errorf("batch input must be a JSON array: %w", err)
	}

	report := b.service.EstimateBatch(ctx, server.PrepareBatchItems(ctx, raws))

	return server.NewRESTBatchValuation(report), nil
}

func (b localBackend) Tables(context.Context) (tables, error) {
	return tables{
		Cities:        b.service.Cities(),
		PropertyTypes: b.service.PropertyTypes(),
		Factors:       server.NewRESTFactors(b.service.Factors(), b.service.ModelInfo()),
	}, nil
}

type remoteBackend struct {
	client client.Client
}

func newRemoteBackend(baseURL string) remoteBackend {
	return remoteBackend{
		client: client.New(baseURL, nil),
	}
}

func (b remoteBackend) Estimate(ctx context.Context, raw []byte) (rest.ValuationResponse, error) {
	response, err := b.client.EstimateRaw(ctx, raw)
	if err != nil {
		return rest.ValuationResponse{}, fmt.Errorf("client.EstimateRaw: %w", err)
	}

	return response, nil
}

func (b remoteBackend) Batch(ctx context.Context, raw []byte) (rest.BatchValuationResponse, error) {
	response, err := b.client.BatchRaw(ctx, raw)
	if err != nil {
		return rest.BatchValuationResponse{}, fmt.Errorf("client.BatchRaw: %w", err)
	}

	return response, nil
}

func (b remoteBackend) Tables(ctx context.Context) (tables, error) {
	cities, err := b.client.Cities(ctx)
	if err != nil {
		return tables{}, fmt.Errorf("client.Cities: %w", err)
	}

	propertyTypes, err := b.client.PropertyTypes(ctx)
	if err != nil {
		return tables{}, fmt.Errorf("client.PropertyTypes: %w", err)
	}

	factors, err := b.client.Factors(ctx)
	if err != nil {
		return tables{}, fmt.Errorf("client.Factors: %w", err)
	}

	return tables{
		Cities:        cities.Cities,
		PropertyTypes: propertyTypes.PropertyTypes,
		Factors:       factors,
	}, nil
}
