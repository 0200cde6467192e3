package jobs

import (
	"context"
	"database/sql"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/friendsofgo/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nrfta/jobtrack"
)

// ListRequest is a cursor listing request.
type ListRequest struct {
	Filters
	Sort   *Sort   `json:"sort,omitempty"`
	Take   *int    `json:"take,omitempty" validate:"omitempty,min=1"`
	Cursor *string `json:"cursor,omitempty"`
}

// OffsetListRequest is an offset listing request.
type OffsetListRequest struct {
	Filters
	Sort *Sort `json:"sort,omitempty"`
	Skip int   `json:"skip,omitempty" validate:"min=0"`
	Take *int  `json:"take,omitempty" validate:"omitempty,min=1"`
}

// StageResponse is the stage of a listed application.
type StageResponse struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Name      string        `json:"name"`
	Color     string        `json:"color"`
	Category  StageCategory `json:"category"`
	Position  int           `json:"position"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt null.Time     `json:"updated_at"`
}

// ApplicationResponse is a listed application with its stage.
type ApplicationResponse struct {
	JobApplication
	Stage StageResponse `json:"stage"`
}

// ToResponse maps a listed row to its response.
func ToResponse(r *ApplicationRow) (ApplicationResponse, error) {
	if r == nil {
		return ApplicationResponse{}, errors.New("nil application row")
	}

	stage := r.Stage()
	return ApplicationResponse{
		JobApplication: r.Application(),
		Stage:          StageResponse(stage),
	}, nil
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service implements the application use cases.
type Service struct {
	db       *sql.DB
	repo     *Repository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates a Service. db opens the transactions of cascading deletes.
func NewService(db *sql.DB, repo *Repository, opts ...ServiceOption) *Service {
	s := &Service{
		db:       db,
		repo:     repo,
		validate: validator.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListApplications returns a page of the user's applications.
func (s *Service) ListApplications(ctx context.Context, userID string, req ListRequest) (*paging.CursorPage[ApplicationResponse], error) {
	if err := s.validate.Struct(&req); err != nil {
		return nil, errors.Wrap(err, "invalid list request")
	}

	page, err := s.repo.FindWithPagination(ctx, FindInput{
		UserID:  userID,
		Filters: req.Filters,
		Sort:    req.Sort,
		Page:    &paging.PageArgs{Take: req.Take, Cursor: req.Cursor},
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("listed applications",
		zap.String("user_id", userID),
		zap.Int("count", len(page.Data)),
		zap.Bool("has_next_page", page.Pagination.HasNextPage),
	)

	return paging.MapCursorPage(page, ToResponse)
}

// ListApplicationsByOffset returns a numbered page of the user's applications.
func (s *Service) ListApplicationsByOffset(ctx context.Context, userID string, req OffsetListRequest) (*paging.OffsetPage[ApplicationResponse], error) {
	if err := s.validate.Struct(&req); err != nil {
		return nil, errors.Wrap(err, "invalid list request")
	}

	page, err := s.repo.FindWithOffset(ctx, OffsetInput{
		UserID:  userID,
		Filters: req.Filters,
		Sort:    req.Sort,
		Page:    paging.OffsetArgs{Skip: req.Skip, Take: req.Take},
	})
	if err != nil {
		return nil, err
	}

	return paging.MapOffsetPage(page, ToResponse)
}

// CountApplications returns the number of the user's applications matching filters.
func (s *Service) CountApplications(ctx context.Context, userID string, filters Filters) (int64, error) {
	if err := s.validate.Struct(&filters); err != nil {
		return 0, errors.Wrap(err, "invalid filters")
	}

	return s.repo.CountByFilters(ctx, userID, filters)
}

// GetApplication returns the application with the given id.
func (s *Service) GetApplication(ctx context.Context, id string) (ApplicationResponse, error) {
	row, err := s.repo.FindByIDWithStage(ctx, id)
	if err != nil {
		return ApplicationResponse{}, err
	}

	return ToResponse(row)
}

// DeleteApplication removes an application with its column values and
// interviews in one transaction.
func (s *Service) DeleteApplication(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	repo := s.repo.WithTx(tx)
	if err := repo.DeleteDependents(ctx, id); err != nil {
		s.rollback(tx, id)
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		s.rollback(tx, id)
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}

	s.logger.Info("deleted application", zap.String("job_id", id))
	return nil
}

func (s *Service) rollback(tx *sql.Tx, id string) {
	if err := tx.Rollback(); err != nil {
		s.logger.Error("rollback failed", zap.String("job_id", id), zap.Error(err))
	}
}
