package reply

import (
	"context"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"valuation_service/pkg/contextx"
	"valuation_service/pkg/errcodes"
	"valuation_service/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

func (e *errorResponse) WithDefaultCode(code failure.ErrorCode) {
	if e.Code == "" {
		e.Code = code.String()
	}
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	response := errorResponse{
		Code:      failure.Code(err).String(),
		Message:   failure.Description(err),
		SupportID: supportID(ctx),
	}

	switch {
	case failure.IsInvalidArgumentError(err):
		logger(ctx).Warn("invalid argument", logx.Error(err))
		response.WithDefaultCode(errcodes.ValidationError)
		JSON(ctx, w, http.StatusBadRequest, response)
	case failure.IsNotFoundError(err):
		logger(ctx).Warn("not found", logx.Error(err))
		response.WithDefaultCode(errcodes.NotFound)
		JSON(ctx, w, http.StatusNotFound, response)
	case failure.IsForbiddenError(err):
		logger(ctx).Warn("forbidden", logx.Error(err))
		response.WithDefaultCode(errcodes.Forbidden)
		JSON(ctx, w, http.StatusForbidden, response)
	case failure.IsUnprocessableEntityError(err):
		logger(ctx).Warn("unprocessable entity", logx.Error(err))
		JSON(ctx, w, http.StatusUnprocessableEntity, response)
	default:
		logger(ctx).Error("error", logx.Error(err))
		response.WithDefaultCode(errcodes.InternalServerError)
		JSON(ctx, w, http.StatusInternalServerError, response)
	}
}

// NotFound replies to requests for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	JSON(ctx, w, http.StatusNotFound, errorResponse{
		Code:      errcodes.NotFound.String(),
		Message:   "route not found",
		SupportID: supportID(ctx),
	})
}

// MethodNotAllowed replies to known routes called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	JSON(ctx, w, http.StatusMethodNotAllowed, errorResponse{
		Code:      errcodes.ValidationError.String(),
		Message:   "method not allowed",
		SupportID: supportID(ctx),
	})
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
