package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	Forbidden           failure.ErrorCode = "Forbidden"
	NotFound            failure.ErrorCode = "NotFound"
	ValidationError     failure.ErrorCode = "ValidationError"
	BatchTooLarge       failure.ErrorCode = "BatchTooLarge"
	ValuationFailed     failure.ErrorCode = "ValuationFailed"
)
