package company

import (
	"context"
	"errors"
	"time"

	companyerrors "github.com/unibna/employee-search/internal/company/errors"
	"github.com/unibna/employee-search/internal/shared/apperror"
	"github.com/unibna/employee-search/internal/shared/dberror"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetAll(ctx context.Context, organisationID *int64) ([]CompanyResponse, error)
	GetByID(ctx context.Context, id int64) (CompanyResponse, error)
}

type service struct {
	repo         Repository
	queryTimeout time.Duration
	logger       *zap.Logger
}

// NewService builds the lookup service. Each store call is bounded by
// queryTimeout when it is positive.
func NewService(repo Repository, queryTimeout time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, queryTimeout: queryTimeout, logger: l}
}

func (s *service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

func (s *service) GetAll(ctx context.Context, organisationID *int64) ([]CompanyResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	companies, err := s.repo.FindAll(ctx, organisationID)
	if err != nil {
		s.logger.Error("list companies failed", zap.Error(err))
		return nil, mapRepositoryError(dberror.WithContext(ctx, err))
	}
	return mapToListResponse(companies), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (CompanyResponse, error) {
	if id <= 0 {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(dberror.WithContext(ctx, err))
	}
	return mapToResponse(*c), nil
}

func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return companyerrors.ErrCompanyNotFound
	case dberror.IsTransient(err):
		return apperror.ErrServiceUnavailable.WithCause(err)
	default:
		return apperror.ErrInternal.WithCause(err)
	}
}
