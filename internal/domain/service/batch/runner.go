package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"git.appkode.ru/pub/go/failure"

	"valuation_service/internal/domain"
	"valuation_service/internal/domain/entity"
	"valuation_service/pkg/contextx"
	"valuation_service/pkg/errcodes"
	"valuation_service/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Item is one batch element: either a prepared request or the reason it could
// not be prepared (malformed or invalid input).
type Item struct {
	Request entity.ValuationRequest
	Err     error
}

type pricer interface {
	PriceRequest(entity.ValuationRequest) entity.Estimate
}

type Runner struct {
	pricer pricer
}

func NewRunner(pricer pricer) Runner {
	return Runner{
		pricer: pricer,
	}
}

// Run prices items in order and returns exactly one result per item at the
// item's index. A failing item, including a panicking one, never affects the
// others.
func (r Runner) Run(ctx context.Context, items []Item) entity.BatchReport {
	results := make([]entity.BatchItemResult, len(items))

	for i, item := range items {
		results[i] = r.runOne(ctx, i, item)
	}

	return entity.BatchReport{Results: results}
}

func (r Runner) runOne(ctx context.Context, index int, item Item) (result entity.BatchItemResult) {
	if item.Err != nil {
		return failed(index, item.Err, errcodes.ValidationError)
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger(ctx).Error(
				"panic in batch item",
				slog.Int(logx.FieldItemIndex, index),
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			result = failed(
				index,
				domain.NewError(errcodes.ValuationFailed, fmt.Sprintf("valuation failed: %v", rec)),
				errcodes.ValuationFailed,
			)
		}
	}()

	return entity.BatchItemResult{
		Index:    index,
		Success:  true,
		Estimate: r.pricer.PriceRequest(item.Request),
	}
}

func failed(index int, err error, defaultCode failure.ErrorCode) entity.BatchItemResult {
	code, ok := domain.GetCode(err)
	if !ok {
		code = defaultCode
	}

	return entity.BatchItemResult{
		Index:     index,
		Success:   false,
		Error:     err.Error(),
		ErrorCode: code.String(),
	}
}
