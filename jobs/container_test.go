package jobs_test

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nrfta/jobtrack/filter"
	"github.com/nrfta/jobtrack/jobs"
)

// Container represents a running PostgreSQL testcontainer with the
// job tracking schema.
type Container struct {
	Container *postgres.PostgresContainer
	DB        *sql.DB
	ConnStr   string
}

// SetupPostgres starts a PostgreSQL container with initialized tables.
// It fails instead of panicking when no container provider is available.
func SetupPostgres(ctx context.Context) (c *Container, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("container provider unavailable: %v", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("jobtrack"),
		postgres.WithUsername("jobtrack"),
		postgres.WithPassword("jobtrack"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Container{
		Container: pgContainer,
		DB:        db,
		ConnStr:   connStr,
	}, nil
}

// Terminate stops and removes the PostgreSQL container.
func (c *Container) Terminate(ctx context.Context) error {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Container != nil {
		return c.Container.Terminate(ctx)
	}
	return nil
}

const schema = `
	CREATE TABLE job_stages (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		name TEXT NOT NULL,
		color TEXT NOT NULL,
		category TEXT NOT NULL CHECK (category IN ('initial', 'interview', 'positive', 'negative')),
		position INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);

	CREATE TABLE job_applications (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		stage_id UUID NOT NULL REFERENCES job_stages(id),
		company_name TEXT NOT NULL,
		job_title TEXT NOT NULL,
		salary_min INTEGER,
		salary_max INTEGER,
		job_description TEXT,
		notes TEXT,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		is_archived BOOLEAN NOT NULL DEFAULT false,
		archived_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);

	CREATE TABLE job_column_definitions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		name TEXT NOT NULL,
		column_type TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);

	CREATE TABLE job_column_options (
		id UUID PRIMARY KEY,
		column_id UUID NOT NULL REFERENCES job_column_definitions(id),
		label TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '#cccccc',
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);

	CREATE TABLE job_column_values (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		job_id UUID NOT NULL REFERENCES job_applications(id),
		column_id UUID NOT NULL REFERENCES job_column_definitions(id),
		option_id UUID REFERENCES job_column_options(id),
		value TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);

	CREATE TABLE job_interviews (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		job_id UUID NOT NULL REFERENCES job_applications(id),
		type TEXT NOT NULL,
		scheduled_at TIMESTAMPTZ NOT NULL,
		duration_mins INTEGER,
		location TEXT,
		meeting_url TEXT,
		notes TEXT,
		outcome TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);

	CREATE INDEX idx_job_applications_user_created ON job_applications(user_id, created_at DESC, id DESC);
	CREATE INDEX idx_job_column_values_job_column ON job_column_values(job_id, column_id);
`

// Board seeds the rows of one user.
type Board struct {
	DB     *sql.DB
	UserID string
	Stages map[jobs.StageCategory]string
}

// SeedBoard creates a user with one stage per category.
func SeedBoard(ctx context.Context, db *sql.DB) (*Board, error) {
	b := &Board{
		DB:     db,
		UserID: uuid.NewString(),
		Stages: make(map[jobs.StageCategory]string),
	}

	categories := []jobs.StageCategory{jobs.CategoryInitial, jobs.CategoryInterview, jobs.CategoryPositive, jobs.CategoryNegative}
	for i, category := range categories {
		id := uuid.NewString()
		_, err := db.ExecContext(ctx,
			`INSERT INTO job_stages (id, user_id, name, color, category, position) VALUES ($1, $2, $3, $4, $5, $6)`,
			id, b.UserID, string(category), "#cccccc", string(category), i,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to seed stage %s: %w", category, err)
		}
		b.Stages[category] = id
	}

	return b, nil
}

// SeedApplication describes one seeded application.
type SeedApplication struct {
	Category  jobs.StageCategory
	Company   string
	SalaryMin *int
	Archived  bool
	CreatedAt time.Time
}

// AddApplication inserts an application and returns its id.
func (b *Board) AddApplication(ctx context.Context, app SeedApplication) (string, error) {
	category := app.Category
	if category == "" {
		category = jobs.CategoryInitial
	}
	createdAt := app.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	id := uuid.NewString()
	_, err := b.DB.ExecContext(ctx,
		`INSERT INTO job_applications (id, user_id, stage_id, company_name, job_title, salary_min, is_archived, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, b.UserID, b.Stages[category], app.Company, "Engineer", app.SalaryMin, app.Archived, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to seed application %s: %w", app.Company, err)
	}

	return id, nil
}

// AddColumn creates a custom column and returns its id.
func (b *Board) AddColumn(ctx context.Context, name string, columnType filter.ColumnType) (string, error) {
	id := uuid.NewString()
	_, err := b.DB.ExecContext(ctx,
		`INSERT INTO job_column_definitions (id, user_id, name, column_type) VALUES ($1, $2, $3, $4)`,
		id, b.UserID, name, string(columnType),
	)
	if err != nil {
		return "", fmt.Errorf("failed to seed column %s: %w", name, err)
	}
	return id, nil
}

// AddOption creates an option of a select column and returns its id.
func (b *Board) AddOption(ctx context.Context, columnID, label string) (string, error) {
	id := uuid.NewString()
	_, err := b.DB.ExecContext(ctx,
		`INSERT INTO job_column_options (id, column_id, label) VALUES ($1, $2, $3)`,
		id, columnID, label,
	)
	if err != nil {
		return "", fmt.Errorf("failed to seed option %s: %w", label, err)
	}
	return id, nil
}

// SetValue stores a text value for a custom column.
func (b *Board) SetValue(ctx context.Context, jobID, columnID, value string) error {
	_, err := b.DB.ExecContext(ctx,
		`INSERT INTO job_column_values (job_id, column_id, value) VALUES ($1, $2, $3)`,
		jobID, columnID, value,
	)
	return err
}

// SetOption selects an option of a custom column.
func (b *Board) SetOption(ctx context.Context, jobID, columnID, optionID string) error {
	_, err := b.DB.ExecContext(ctx,
		`INSERT INTO job_column_values (job_id, column_id, option_id) VALUES ($1, $2, $3)`,
		jobID, columnID, optionID,
	)
	return err
}
