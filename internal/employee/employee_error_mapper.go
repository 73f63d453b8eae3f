package employee

import (
	"errors"

	employeeerrors "github.com/unibna/employee-search/internal/employee/errors"
	"github.com/unibna/employee-search/internal/shared/apperror"
	"github.com/unibna/employee-search/internal/shared/dberror"
)

// mapRepositoryError classifies store failures: anything a later retry could
// fix maps to 503, the rest to 500. The cause is kept for logging.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if dberror.IsTransient(err) {
		return employeeerrors.ErrStoreUnavailable.WithCause(err)
	}
	return employeeerrors.ErrStoreFailure.WithCause(err)
}
