package employeeerrors

import (
	"net/http"

	"github.com/unibna/employee-search/internal/shared/apperror"
)

var (
	ErrStoreUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Employee directory is temporarily unavailable",
		http.StatusServiceUnavailable,
	)
	ErrStoreFailure = apperror.New(
		apperror.CodeInternalError,
		"Failed to query employees",
		http.StatusInternalServerError,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeValidation,
		"Status must be one of ACTIVE, INACTIVE, TERMINATED",
		http.StatusUnprocessableEntity,
	)
)
