package employee

import (
	"context"
	"time"

	employeeerrors "github.com/unibna/employee-search/internal/employee/errors"
	"github.com/unibna/employee-search/internal/metrics"
	"github.com/unibna/employee-search/internal/shared/contextutil"
	"github.com/unibna/employee-search/internal/shared/response"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, filter Filter) (EmployeeListResponse, error)
	GetOptions(ctx context.Context, organisationID *int64) (OptionsResponse, error)
}

type service struct {
	repo         Repository
	queryTimeout time.Duration
	metrics      *metrics.Collection
	logger       *zap.Logger
}

// NewService builds the query engine. A zero queryTimeout leaves the caller's
// deadline as the only bound.
func NewService(repo Repository, queryTimeout time.Duration, mc *metrics.Collection, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:         repo,
		queryTimeout: queryTimeout,
		metrics:      mc,
		logger:       l,
	}
}

func (s *service) List(ctx context.Context, filter Filter) (EmployeeListResponse, error) {
	filter = filter.Normalize()
	for _, st := range filter.Statuses {
		if !st.Valid() {
			return EmployeeListResponse{}, employeeerrors.ErrInvalidStatus.WithDetails(string(st))
		}
	}

	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("list employees requested",
		zap.Int("page", filter.Page),
		zap.Int("page_size", filter.PageSize),
		zap.Int("statuses", len(filter.Statuses)),
		zap.Int("company_ids", len(filter.CompanyIDs)),
		zap.Int("department_ids", len(filter.DepartmentIDs)),
		zap.Bool("search", filter.Search != ""),
	)

	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	var (
		total int64
		rows  []EmployeeView
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		n, err := s.repo.Count(gctx, filter)
		s.metrics.ObserveQuery("count", time.Since(start), err)
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		views, err := s.repo.FindPage(gctx, filter)
		s.metrics.ObserveQuery("page", time.Since(start), err)
		if err != nil {
			return err
		}
		rows = views
		return nil
	})

	if err := g.Wait(); err != nil {
		mapped := mapRepositoryError(err)
		log.Error("list employees failed", zap.Error(err))
		return EmployeeListResponse{}, mapped
	}

	data := make([]EmployeeResponse, 0, len(rows))
	for _, v := range rows {
		data = append(data, mapToResponse(v))
	}

	log.Debug("list employees completed",
		zap.Int64("total", total),
		zap.Int("returned", len(data)),
	)
	return response.NewPage(data, total, filter.Page, filter.PageSize), nil
}

func (s *service) GetOptions(ctx context.Context, organisationID *int64) (OptionsResponse, error) {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	resp := OptionsResponse{Statuses: AllStatuses()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		values, err := s.repo.DistinctValues(gctx, "position", organisationID)
		resp.Positions = values
		return err
	})
	g.Go(func() error {
		values, err := s.repo.DistinctValues(gctx, "location", organisationID)
		resp.Locations = values
		return err
	})

	if err := g.Wait(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get employee options failed", zap.Error(err))
		return OptionsResponse{}, mapRepositoryError(err)
	}
	if resp.Positions == nil {
		resp.Positions = []string{}
	}
	if resp.Locations == nil {
		resp.Locations = []string{}
	}
	return resp, nil
}
