package server

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"valuation_service/internal/domain/entity"
	"valuation_service/internal/domain/service/batch"
	"valuation_service/pkg/errcodes"
	"valuation_service/pkg/httpx/reply"
	"valuation_service/pkg/httpx/req"
	"valuation_service/pkg/rest"
)

type valuationService interface {
	Estimate(context.Context, entity.ValuationRequest) entity.Valuation
	EstimateBatch(context.Context, []batch.Item) entity.BatchReport
	Cities() []string
	PropertyTypes() []string
	Factors() []entity.FactorDescription
	ModelInfo() entity.ModelInfo
}

type ValuationServer struct {
	valuationService valuationService
	// 0 means unlimited.
	maxBatchSize int
}

func NewValuationServer(valuationService valuationService, maxBatchSize int) ValuationServer {
	return ValuationServer{
		valuationService: valuationService,
		maxBatchSize:     maxBatchSize,
	}
}

func (s ValuationServer) postEstimate(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.ValuationRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	valuation := s.valuationService.Estimate(ctx, newDomainValuationRequest(request))

	reply.JSON(ctx, w, http.StatusOK, NewRESTValuation(valuation))

	return nil
}

func (s ValuationServer) postBatch(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var raws []jsoniter.RawMessage

	if err := req.Decode(r, &raws); err != nil {
		return fmt.Errorf("req.Decode: %w", err)
	}

	if s.maxBatchSize > 0 && len(raws) > s.maxBatchSize {
		return failure.NewInvalidArgumentError(
			fmt.Sprintf("batch of %d exceeds %d", len(raws), s.maxBatchSize),
			failure.WithCode(errcodes.BatchTooLarge),
			failure.WithDescription(fmt.Sprintf("Batch size must not exceed %d", s.maxBatchSize)),
		)
	}

	report := s.valuationService.EstimateBatch(ctx, PrepareBatchItems(ctx, raws))

	reply.JSON(ctx, w, http.StatusOK, NewRESTBatchValuation(report))

	return nil
}

func (s ValuationServer) getFactors(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, NewRESTFactors(
		s.valuationService.Factors(),
		s.valuationService.ModelInfo(),
	))

	return nil
}

func (s ValuationServer) getCities(w http.ResponseWriter, r *http.Request) error {
	cities := s.valuationService.Cities()

	reply.JSON(r.Context(), w, http.StatusOK, rest.CitiesResponse{
		Cities: cities,
		Total:  len(cities),
	})

	return nil
}

func (s ValuationServer) getPropertyTypes(w http.ResponseWriter, r *http.Request) error {
	propertyTypes := s.valuationService.PropertyTypes()

	reply.JSON(r.Context(), w, http.StatusOK, rest.PropertyTypesResponse{
		PropertyTypes: propertyTypes,
		Total:         len(propertyTypes),
	})

	return nil
}
