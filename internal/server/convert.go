package server

import (
	"context"
	"fmt"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"valuation_service/internal/domain"
	"valuation_service/internal/domain/entity"
	"valuation_service/internal/domain/service/batch"
	"valuation_service/pkg/errcodes"
	"valuation_service/pkg/httpx/req"
	"valuation_service/pkg/lox"
	"valuation_service/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// DecodeValuationRequest parses and validates one raw request. The CLI uses it
// to apply the same rules as the HTTP API.
func DecodeValuationRequest(ctx context.Context, raw []byte) (entity.ValuationRequest, error) {
	var request rest.ValuationRequest

	if err := json.Unmarshal(raw, &request); err != nil {
		return entity.ValuationRequest{}, failure.NewInvalidArgumentError(
			fmt.Errorf("json.Unmarshal: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid JSON"),
		)
	}

	if err := req.Validate(ctx, request); err != nil {
		return entity.ValuationRequest{}, fmt.Errorf("req.Validate: %w", err)
	}

	return newDomainValuationRequest(request), nil
}

// PrepareBatchItems turns raw batch elements into runner items. Elements that
// fail to decode or validate are kept as failed items at their position.
func PrepareBatchItems(ctx context.Context, raws []jsoniter.RawMessage) []batch.Item {
	return lox.Map(raws, func(raw jsoniter.RawMessage) batch.Item {
		request, err := DecodeValuationRequest(ctx, raw)
		if err != nil {
			return batch.Item{Err: domain.NewError(errcodes.ValidationError, failure.Description(err))}
		}

		return batch.Item{Request: request}
	})
}

func newDomainValuationRequest(request rest.ValuationRequest) entity.ValuationRequest {
	return entity.ValuationRequest{
		PropertyType: request.PropertyType,
		Features: entity.PropertyFeatures{
			SqMeters:    lo.FromPtr(request.Features.SqMeters),
			RoomCount:   lo.FromPtr(request.Features.RoomCount),
			BuildingAge: lo.FromPtr(request.Features.BuildingAge),
			Floor:       request.Features.Floor,
			TotalFloors: request.Features.TotalFloors,
			HeatingType: request.Features.HeatingType,
			HasParking:  request.Features.HasParking,
			HasBalcony:  request.Features.HasBalcony,
			IsFurnished: request.Features.IsFurnished,
		},
		Location: entity.Location{
			City:      request.Location.City,
			District:  request.Location.District,
			Latitude:  request.Location.Latitude,
			Longitude: request.Location.Longitude,
		},
		CurrentMarketPrice: request.CurrentMarketPrice,
	}
}

func newRESTPriceRange(priceRange entity.PriceRange) rest.PriceRange {
	return rest.PriceRange{
		Min: priceRange.Min,
		Max: priceRange.Max,
	}
}

func NewRESTValuation(valuation entity.Valuation) rest.ValuationResponse {
	factors := valuation.Factors

	return rest.ValuationResponse{
		EstimatedPrice:  valuation.EstimatedPrice,
		ConfidenceScore: valuation.ConfidenceScore,
		PriceRange:      newRESTPriceRange(valuation.PriceRange),
		Factors: rest.Factors{
			BasePricePerSqm:    factors.BasePricePerSqm,
			LocationMultiplier: factors.LocationMultiplier,
			TypeMultiplier:     factors.TypeMultiplier,
			AgeFactor:          factors.AgeFactor,
			RoomFactor:         factors.RoomFactor,
			AmenitiesFactor:    factors.AmenitiesFactor,
			FloorFactor:        factors.FloorFactor,
		},
		Timestamp:    valuation.Timestamp,
		ModelVersion: valuation.ModelVersion,
	}
}

func newRESTBatchItemResult(result entity.BatchItemResult) rest.BatchItemResult {
	if !result.Success {
		return rest.BatchItemResult{
			Index: result.Index,
			Error: result.Error,
			Code:  result.ErrorCode,
		}
	}

	return rest.BatchItemResult{
		Index:           result.Index,
		Success:         true,
		EstimatedPrice:  lo.ToPtr(result.Estimate.EstimatedPrice),
		ConfidenceScore: lo.ToPtr(result.Estimate.ConfidenceScore),
		PriceRange:      lo.ToPtr(newRESTPriceRange(result.Estimate.PriceRange)),
	}
}

func NewRESTBatchValuation(report entity.BatchReport) rest.BatchValuationResponse {
	return rest.BatchValuationResponse{
		Message:        fmt.Sprintf("%d properties valued", report.Total()),
		Results:        lox.Map(report.Results, newRESTBatchItemResult),
		TotalProcessed: report.Total(),
		Successful:     report.Succeeded(),
		Failed:         report.Failed(),
	}
}

func NewRESTFactors(factors []entity.FactorDescription, info entity.ModelInfo) rest.FactorsResponse {
	return rest.FactorsResponse{
		Factors: lo.SliceToMap(factors, func(f entity.FactorDescription) (string, string) {
			return f.Name, f.Description
		}),
		ModelInfo: rest.ModelInfo{
			Version:     info.Version,
			Description: info.Description,
			LastUpdated: info.LastUpdated,
		},
	}
}
