package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrValidation = New(
		CodeValidation,
		"The provided query parameters are invalid",
		http.StatusUnprocessableEntity,
	)

	ErrRateLimited = New(
		CodeRateLimited,
		"Too many requests",
		http.StatusTooManyRequests,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrServiceUnavailable = New(
		CodeServiceUnavailable,
		"The service is temporarily unavailable",
		http.StatusServiceUnavailable,
	)
)

// RequiredField reports a missing mandatory parameter.
func RequiredField(field string) *AppError {
	return New(CodeValidation, field+" is required", http.StatusUnprocessableEntity)
}

// InvalidField reports a parameter that failed a validation rule.
func InvalidField(field string) *AppError {
	return New(CodeValidation, field+" is invalid", http.StatusUnprocessableEntity)
}
