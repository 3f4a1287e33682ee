package logx

const (
	FieldAddress         = "address"
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldBatchFailed     = "batch-failed"
	FieldBatchSize       = "batch-size"
	FieldCacheDriver     = "cache-driver"
	FieldCacheKey        = "cache-key"
	FieldCity            = "city"
	FieldConfidence      = "confidence"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldEstimatedPrice  = "estimated-price"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldItemIndex       = "item-index"
	FieldModelVersion    = "model-version"
	FieldPropertyType    = "property-type"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
)
