package department

import (
	"context"
	"errors"
	"time"

	departmenterrors "github.com/unibna/employee-search/internal/department/errors"
	"github.com/unibna/employee-search/internal/shared/apperror"
	"github.com/unibna/employee-search/internal/shared/dberror"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetAll(ctx context.Context, filter ListFilter) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id int64) (DepartmentResponse, error)
}

type service struct {
	repo         Repository
	queryTimeout time.Duration
	logger       *zap.Logger
}

// NewService builds the lookup service. Each store call is bounded by
// queryTimeout when it is positive.
func NewService(repo Repository, queryTimeout time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, queryTimeout: queryTimeout, logger: l}
}

func (s *service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]DepartmentResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	depts, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, mapRepositoryError(dberror.WithContext(ctx, err))
	}
	return mapToListResponse(depts), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (DepartmentResponse, error) {
	if id <= 0 {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(dberror.WithContext(ctx, err))
	}
	return mapToResponse(*dept), nil
}

func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return departmenterrors.ErrDepartmentNotFound
	case dberror.IsTransient(err):
		return apperror.ErrServiceUnavailable.WithCause(err)
	default:
		return apperror.ErrInternal.WithCause(err)
	}
}
