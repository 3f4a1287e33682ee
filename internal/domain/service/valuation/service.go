package valuation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"

	"valuation_service/internal/domain/entity"
	"valuation_service/internal/domain/service/batch"
	"valuation_service/internal/domain/service/pricing"
	"valuation_service/pkg/contextx"
	"valuation_service/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const modelDescription = "Rule-based multi-factor valuation model"

const modelLastUpdated = "2024-01-15"

// EstimateCache stores engine output. It is an optimisation only: a failing
// cache is logged and bypassed.
type EstimateCache interface {
	Get(ctx context.Context, key string) (entity.Estimate, bool, error)
	Set(ctx context.Context, key string, estimate entity.Estimate) error
}

type Service struct {
	engine  pricing.Engine
	runner  batch.Runner
	metrics Metrics
	cache   EstimateCache
	now     func() time.Time
}

func NewService(engine pricing.Engine, metrics Metrics) *Service {
	return &Service{
		engine:  engine,
		runner:  batch.NewRunner(engine),
		metrics: metrics,
		now:     time.Now,
	}
}

func (s *Service) WithCache(cache EstimateCache) *Service {
	s.cache = cache
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Estimate prices one request. A panic in the engine is recorded and
// re-raised for the caller's recovery to turn into a service error.
func (s *Service) Estimate(ctx context.Context, req entity.ValuationRequest) entity.Valuation {
	defer func() {
		if rec := recover(); rec != nil {
			s.metrics.requests.WithLabelValues(operationEstimate, outcomeFailure).Inc()
			panic(rec)
		}
	}()

	logger(ctx).Info(
		"valuation requested",
		slog.String(logx.FieldPropertyType, req.PropertyType),
		slog.String(logx.FieldCity, req.Location.City),
	)

	if !s.engine.Cities().Contains(req.Location.City) || !s.engine.PropertyTypes().Contains(req.PropertyType) {
		logger(ctx).Debug(
			"unknown city or property type, neutral multiplier applied",
			slog.String(logx.FieldPropertyType, req.PropertyType),
			slog.String(logx.FieldCity, req.Location.City),
		)
	}

	key, err := cacheKey(req)
	if err != nil {
		logger(ctx).Warn("cacheKey", logx.Error(err))
	}

	estimate, ok := s.cached(ctx, key)
	if !ok {
		estimate = s.engine.PriceRequest(req)
		s.store(ctx, key, estimate)
	}

	s.metrics.requests.WithLabelValues(operationEstimate, outcomeSuccess).Inc()
	s.metrics.estimatedPrice.Observe(estimate.EstimatedPrice)

	logger(ctx).Info(
		"valuation completed",
		slog.Float64(logx.FieldEstimatedPrice, estimate.EstimatedPrice),
		slog.Float64(logx.FieldConfidence, estimate.ConfidenceScore),
	)

	return entity.Valuation{
		Estimate:     estimate,
		Timestamp:    s.now(),
		ModelVersion: pricing.ModelVersion,
	}
}

// EstimateBatch prices items in order without the cache, isolating failures
// per item.
func (s *Service) EstimateBatch(ctx context.Context, items []batch.Item) entity.BatchReport {
	report := s.runner.Run(ctx, items)

	s.metrics.requests.WithLabelValues(operationBatch, outcomeSuccess).Inc()
	s.metrics.batchItems.WithLabelValues(outcomeSuccess).Add(float64(report.Succeeded()))
	s.metrics.batchItems.WithLabelValues(outcomeFailure).Add(float64(report.Failed()))

	logger(ctx).Info(
		"batch valuation completed",
		slog.Int(logx.FieldBatchSize, report.Total()),
		slog.Int(logx.FieldBatchFailed, report.Failed()),
	)

	return report
}

func (s *Service) Cities() []string {
	return s.engine.Cities().Keys()
}

func (s *Service) PropertyTypes() []string {
	return s.engine.PropertyTypes().Keys()
}

func (s *Service) Factors() []entity.FactorDescription {
	return []entity.FactorDescription{
		{Name: "location", Description: "Market value by city and district"},
		{Name: "property_type", Description: "Value factor by property type"},
		{Name: "size", Description: "Base price per square meter"},
		{Name: "age", Description: "Building age (newer buildings are worth more)"},
		{Name: "rooms", Description: "Room count and layout"},
		{Name: "amenities", Description: "Parking, balcony and furnishing"},
		{Name: "floor", Description: "Floor position relative to the total floor count"},
	}
}

func (s *Service) ModelInfo() entity.ModelInfo {
	return entity.ModelInfo{
		Version:     pricing.ModelVersion,
		Description: modelDescription,
		LastUpdated: modelLastUpdated,
	}
}

func (s *Service) cached(ctx context.Context, key string) (entity.Estimate, bool) {
	if s.cache == nil || key == "" {
		return entity.Estimate{}, false
	}

	estimate, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.metrics.cacheLookups.WithLabelValues(cacheError).Inc()
		logger(ctx).Warn("cache.Get", slog.String(logx.FieldCacheKey, key), logx.Error(err))

		return entity.Estimate{}, false
	}

	if !ok {
		s.metrics.cacheLookups.WithLabelValues(cacheMiss).Inc()
		return entity.Estimate{}, false
	}

	s.metrics.cacheLookups.WithLabelValues(cacheHit).Inc()

	return estimate, true
}

func (s *Service) store(ctx context.Context, key string, estimate entity.Estimate) {
	if s.cache == nil || key == "" {
		return
	}

	if err := s.cache.Set(ctx, key, estimate); err != nil {
		logger(ctx).Warn("cache.Set", slog.String(logx.FieldCacheKey, key), logx.Error(err))
	}
}

// cacheKey covers exactly the inputs the formula reads, so requests that must
// price the same share a key.
func cacheKey(req entity.ValuationRequest) (string, error) {
	req.PropertyType = strings.ToLower(req.PropertyType)
	req.Location.City = strings.ToLower(req.Location.City)
	req.Location.District = ""
	req.CurrentMarketPrice = nil

	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	return fmt.Sprintf("valuation:%s:%016x", pricing.ModelVersion, xxhash.Sum64(b)), nil
}
