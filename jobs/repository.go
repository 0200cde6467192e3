package jobs

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"
	"github.com/google/uuid"

	"github.com/nrfta/jobtrack"
	"github.com/nrfta/jobtrack/cursor"
	"github.com/nrfta/jobtrack/offset"
	"github.com/nrfta/jobtrack/sqlboiler"
	"github.com/nrfta/jobtrack/squirrel"
)

// ErrNotFound is returned when an application does not exist.
var ErrNotFound = errors.New("job application not found")

var dialect = drivers.Dialect{
	LQ:                   '"',
	RQ:                   '"',
	UseIndexPlaceholders: true,
	UseDefaultKeyword:    true,
}

// newQuery creates a PostgreSQL query from mods.
func newQuery(mods ...qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &dialect)
	qm.Apply(q, mods...)
	return q
}

// FindInput is a cursor listing request.
type FindInput struct {
	UserID  string
	Filters Filters
	Sort    *Sort
	Page    *paging.PageArgs
}

// OffsetInput is an offset listing request.
type OffsetInput struct {
	UserID  string
	Filters Filters
	Sort    *Sort
	Page    paging.OffsetArgs
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithQueryBuilder sets the builder resolving filters and sorts.
func WithQueryBuilder(b *QueryBuilder) RepositoryOption {
	return func(r *Repository) {
		if b != nil {
			r.builder = b
		}
	}
}

// WithPageOptions sets the page size limits of both listing modes.
func WithPageOptions(opts ...paging.PaginateOption) RepositoryOption {
	return func(r *Repository) {
		r.pageOpts = append(r.pageOpts, opts...)
	}
}

// Repository reads and writes job applications.
type Repository struct {
	db       boil.ContextExecutor
	builder  *QueryBuilder
	pageOpts []paging.PaginateOption
}

// NewRepository creates a Repository over db, which may be a *sql.DB or a *sql.Tx.
func NewRepository(db boil.ContextExecutor, opts ...RepositoryOption) *Repository {
	r := &Repository{
		db:      db,
		builder: NewQueryBuilder(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithTx returns a copy of the repository running on tx.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	c := *r
	c.db = tx
	return &c
}

// listQuery selects the user's applications joined with their stage and the
// sorted custom column, if any.
func listQuery(userID string, plan SortPlan) sq.SelectBuilder {
	q := sq.Select(listColumns(plan)...).
		From(applicationsTable).
		Join(stagesJoin)
	if plan.Join != nil {
		q = q.LeftJoin(plan.Join.Clause, plan.Join.Args...)
	}
	return q.Where(sq.Eq{"ja.user_id": userID})
}

// FindWithPagination returns the page of the user's applications after
// in.Page.Cursor.
func (r *Repository) FindWithPagination(ctx context.Context, in FindInput) (*paging.CursorPage[*ApplicationRow], error) {
	where, err := r.builder.ApplyFilters(in.Filters)
	if err != nil {
		return nil, err
	}

	plan, err := r.builder.CreateOrderBy(in.Sort)
	if err != nil {
		return nil, err
	}

	fetcher := squirrel.NewFetcher(r.db, listQuery(in.UserID, plan), scanApplicationRow)
	paginator := cursor.New[*ApplicationRow](fetcher, rowSchema, r.pageOpts...)

	return paginator.Paginate(ctx, in.Page, plan.OrderBy, where...)
}

// FindWithOffset returns a numbered page of the user's applications and
// their total.
func (r *Repository) FindWithOffset(ctx context.Context, in OffsetInput) (*paging.OffsetPage[*ApplicationRow], error) {
	where, err := r.builder.ApplyFilters(in.Filters)
	if err != nil {
		return nil, err
	}

	plan, err := r.builder.CreateOrderBy(in.Sort)
	if err != nil {
		return nil, err
	}

	fetcher := sqlboiler.NewFetcher(
		func(ctx context.Context, mods ...qm.QueryMod) ([]*ApplicationRow, error) {
			var rows []*ApplicationRow
			q := newQuery(append(listMods(in.UserID, plan), mods...)...)
			if err := q.Bind(ctx, r.db, &rows); err != nil {
				return nil, errors.Wrap(err, "bind applications")
			}
			return rows, nil
		},
		func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
			var total int64
			q := newQuery(append(countMods(in.UserID), mods...)...)
			err := q.QueryRowContext(ctx, r.db).Scan(&total)
			if errors.Is(err, sql.ErrNoRows) {
				return 0, paging.ErrCountUnavailable
			}
			if err != nil {
				return 0, errors.Wrap(err, "count applications")
			}
			return total, nil
		},
		sqlboiler.OffsetToQueryMods,
	)

	return offset.New(fetcher, r.pageOpts...).Paginate(ctx, in.Page, plan.OrderBy, where...)
}

func listMods(userID string, plan SortPlan) []qm.QueryMod {
	mods := []qm.QueryMod{
		qm.Select(listColumns(plan)...),
		qm.From(applicationsTable),
		qm.InnerJoin(stagesJoin),
	}
	if plan.Join != nil {
		mods = append(mods, qm.LeftOuterJoin(plan.Join.Clause, plan.Join.Args...))
	}
	return append(mods, qm.Where("ja.user_id = ?", userID))
}

func countMods(userID string) []qm.QueryMod {
	return []qm.QueryMod{
		qm.Select("COUNT(ja.id)"),
		qm.From(applicationsTable),
		qm.InnerJoin(stagesJoin),
		qm.Where("ja.user_id = ?", userID),
	}
}

// CountByFilters returns the number of the user's applications matching filters.
func (r *Repository) CountByFilters(ctx context.Context, userID string, filters Filters) (int64, error) {
	where, err := r.builder.ApplyFilters(filters)
	if err != nil {
		return 0, err
	}

	base := sq.Select("ja.id").
		From(applicationsTable).
		Join(stagesJoin).
		Where(sq.Eq{"ja.user_id": userID})

	return squirrel.NewFetcher(r.db, base, scanApplicationRow).
		Count(ctx, paging.FetchParams{Where: where})
}

// FindByIDWithStage returns the application with the given id joined with its stage.
func (r *Repository) FindByIDWithStage(ctx context.Context, id string) (*ApplicationRow, error) {
	stmt, args, err := sq.Select(listColumns(SortPlan{})...).
		From(applicationsTable).
		Join(stagesJoin).
		Where(sq.Eq{"ja.id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build find query")
	}

	row, err := scanRow(r.db.QueryRowContext(ctx, stmt, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find application")
	}

	return row, nil
}

// Create inserts app. A missing id is generated and a zero AppliedAt
// defaults to now; CreatedAt is read back from the database.
func (r *Repository) Create(ctx context.Context, app *JobApplication) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}

	values := app.columnValues()
	row := make([]any, 0, len(insertColumns))
	for _, col := range insertColumns {
		row = append(row, values[col])
	}

	stmt, args, err := sq.Insert("job_applications").
		Columns(insertColumns...).
		Values(row...).
		Suffix("RETURNING created_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build insert")
	}

	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&app.CreatedAt); err != nil {
		return errors.Wrap(err, "insert application")
	}

	return nil
}

// Update writes the given columns of app, or every updatable column when
// none are given, and stamps updated_at.
func (r *Repository) Update(ctx context.Context, app *JobApplication, cols ...string) error {
	if len(cols) == 0 {
		cols = updatableColumns
	}

	values := app.columnValues()
	q := sq.Update("job_applications").
		Where(sq.Eq{"id": app.ID}).
		PlaceholderFormat(sq.Dollar)

	for _, col := range cols {
		if !isUpdatable(col) {
			return errors.Errorf("column %q cannot be updated", col)
		}
		q = q.Set(col, values[col])
	}

	now := time.Now().UTC()
	q = q.Set("updated_at", now)

	stmt, args, err := q.ToSql()
	if err != nil {
		return errors.Wrap(err, "build update")
	}

	if err := r.execOne(ctx, stmt, args...); err != nil {
		return errors.Wrap(err, "update application")
	}

	app.UpdatedAt.SetValid(now)
	return nil
}

// Delete removes the application with the given id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	stmt, args, err := sq.Delete("job_applications").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build delete")
	}

	if err := r.execOne(ctx, stmt, args...); err != nil {
		return errors.Wrap(err, "delete application")
	}

	return nil
}

// DeleteDependents removes the custom column values and interviews of an application.
func (r *Repository) DeleteDependents(ctx context.Context, id string) error {
	for _, table := range []string{"job_column_values", "job_interviews"} {
		stmt, args, err := sq.Delete(table).
			Where(sq.Eq{"job_id": id}).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return errors.Wrapf(err, "build delete from %s", table)
		}

		if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
			return errors.Wrapf(err, "delete from %s", table)
		}
	}

	return nil
}

// execOne runs stmt and fails with ErrNotFound when no row was affected.
func (r *Repository) execOne(ctx context.Context, stmt string, args ...any) error {
	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

var insertColumns = []string{
	"id", "user_id", "stage_id", "company_name", "job_title",
	"salary_min", "salary_max", "job_description", "notes",
	"applied_at", "is_archived", "archived_at",
}

var updatableColumns = []string{
	"stage_id", "company_name", "job_title",
	"salary_min", "salary_max", "job_description", "notes",
	"applied_at", "is_archived", "archived_at",
}

func isUpdatable(col string) bool {
	for _, c := range updatableColumns {
		if c == col {
			return true
		}
	}
	return false
}

func (a *JobApplication) columnValues() map[string]any {
	return map[string]any{
		"id":              a.ID,
		"user_id":         a.UserID,
		"stage_id":        a.StageID,
		"company_name":    a.CompanyName,
		"job_title":       a.JobTitle,
		"salary_min":      a.SalaryMin,
		"salary_max":      a.SalaryMax,
		"job_description": a.JobDescription,
		"notes":           a.Notes,
		"applied_at":      a.AppliedAt,
		"is_archived":     a.IsArchived,
		"archived_at":     a.ArchivedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(s rowScanner) (*ApplicationRow, error) {
	r := &ApplicationRow{}
	err := s.Scan(
		&r.ID, &r.UserID, &r.StageID, &r.CompanyName, &r.JobTitle,
		&r.SalaryMin, &r.SalaryMax, &r.JobDescription, &r.Notes,
		&r.AppliedAt, &r.IsArchived, &r.ArchivedAt, &r.CreatedAt, &r.UpdatedAt,
		&r.StageUserID, &r.StageName, &r.StageColor, &r.StageCategory,
		&r.StagePosition, &r.StageCreatedAt, &r.StageUpdatedAt,
		&r.CustomColumnValue,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func scanApplicationRow(rows *sql.Rows) (*ApplicationRow, error) {
	return scanRow(rows)
}
