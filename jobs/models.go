// Package jobs lists, counts and maintains job applications.
//
// Listings combine the application table with its stage, resolve column
// filters through the filter package and page with either the cursor or the
// offset paginator.
package jobs

import (
	"time"

	"github.com/aarondl/null/v8"

	"github.com/nrfta/jobtrack/filter"
)

// StageCategory groups stages by outcome.
type StageCategory string

const (
	CategoryInitial   StageCategory = "initial"
	CategoryInterview StageCategory = "interview"
	CategoryPositive  StageCategory = "positive"
	CategoryNegative  StageCategory = "negative"
)

// Valid reports whether c is a known category.
func (c StageCategory) Valid() bool {
	switch c {
	case CategoryInitial, CategoryInterview, CategoryPositive, CategoryNegative:
		return true
	default:
		return false
	}
}

// Stage is a column of a user's application board.
type Stage struct {
	ID        string        `boil:"id" json:"id"`
	UserID    string        `boil:"user_id" json:"user_id"`
	Name      string        `boil:"name" json:"name"`
	Color     string        `boil:"color" json:"color"`
	Category  StageCategory `boil:"category" json:"category"`
	Position  int           `boil:"position" json:"position"`
	CreatedAt time.Time     `boil:"created_at" json:"created_at"`
	UpdatedAt null.Time     `boil:"updated_at" json:"updated_at"`
}

// JobApplication is an object representing the job_applications table.
type JobApplication struct {
	ID             string      `boil:"id" json:"id"`
	UserID         string      `boil:"user_id" json:"user_id"`
	StageID        string      `boil:"stage_id" json:"stage_id"`
	CompanyName    string      `boil:"company_name" json:"company_name"`
	JobTitle       string      `boil:"job_title" json:"job_title"`
	SalaryMin      null.Int    `boil:"salary_min" json:"salary_min"`
	SalaryMax      null.Int    `boil:"salary_max" json:"salary_max"`
	JobDescription null.String `boil:"job_description" json:"job_description"`
	Notes          null.String `boil:"notes" json:"notes"`
	AppliedAt      time.Time   `boil:"applied_at" json:"applied_at"`
	IsArchived     bool        `boil:"is_archived" json:"is_archived"`
	ArchivedAt     null.Time   `boil:"archived_at" json:"archived_at"`
	CreatedAt      time.Time   `boil:"created_at" json:"created_at"`
	UpdatedAt      null.Time   `boil:"updated_at" json:"updated_at"`
}

// ApplicationRow is an application joined with its stage, as listed.
// CustomColumnValue holds the sorted custom column's value when sorting by one.
type ApplicationRow struct {
	ID             string      `boil:"id"`
	UserID         string      `boil:"user_id"`
	StageID        string      `boil:"stage_id"`
	CompanyName    string      `boil:"company_name"`
	JobTitle       string      `boil:"job_title"`
	SalaryMin      null.Int    `boil:"salary_min"`
	SalaryMax      null.Int    `boil:"salary_max"`
	JobDescription null.String `boil:"job_description"`
	Notes          null.String `boil:"notes"`
	AppliedAt      time.Time   `boil:"applied_at"`
	IsArchived     bool        `boil:"is_archived"`
	ArchivedAt     null.Time   `boil:"archived_at"`
	CreatedAt      time.Time   `boil:"created_at"`
	UpdatedAt      null.Time   `boil:"updated_at"`

	StageUserID    string        `boil:"stage_user_id"`
	StageName      string        `boil:"stage_name"`
	StageColor     string        `boil:"stage_color"`
	StageCategory  StageCategory `boil:"stage_category"`
	StagePosition  int           `boil:"stage_position"`
	StageCreatedAt time.Time     `boil:"stage_created_at"`
	StageUpdatedAt null.Time     `boil:"stage_updated_at"`

	CustomColumnValue null.String `boil:"custom_column_value"`
}

// Application returns the application part of the row.
func (r *ApplicationRow) Application() JobApplication {
	return JobApplication{
		ID:             r.ID,
		UserID:         r.UserID,
		StageID:        r.StageID,
		CompanyName:    r.CompanyName,
		JobTitle:       r.JobTitle,
		SalaryMin:      r.SalaryMin,
		SalaryMax:      r.SalaryMax,
		JobDescription: r.JobDescription,
		Notes:          r.Notes,
		AppliedAt:      r.AppliedAt,
		IsArchived:     r.IsArchived,
		ArchivedAt:     r.ArchivedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Stage returns the stage part of the row.
func (r *ApplicationRow) Stage() Stage {
	return Stage{
		ID:        r.StageID,
		UserID:    r.StageUserID,
		Name:      r.StageName,
		Color:     r.StageColor,
		Category:  r.StageCategory,
		Position:  r.StagePosition,
		CreatedAt: r.StageCreatedAt,
		UpdatedAt: r.StageUpdatedAt,
	}
}

// ColumnDefinition is a user-defined column of the application board.
type ColumnDefinition struct {
	ID         string            `boil:"id" json:"id"`
	UserID     string            `boil:"user_id" json:"user_id"`
	Name       string            `boil:"name" json:"name"`
	ColumnType filter.ColumnType `boil:"column_type" json:"column_type"`
	CreatedAt  time.Time         `boil:"created_at" json:"created_at"`
	UpdatedAt  null.Time         `boil:"updated_at" json:"updated_at"`
}

// ColumnOption is a choice of a select or multi_select column.
type ColumnOption struct {
	ID        string    `boil:"id" json:"id"`
	ColumnID  string    `boil:"column_id" json:"column_id"`
	Label     string    `boil:"label" json:"label"`
	Color     string    `boil:"color" json:"color"`
	Position  int       `boil:"position" json:"position"`
	CreatedAt time.Time `boil:"created_at" json:"created_at"`
	UpdatedAt null.Time `boil:"updated_at" json:"updated_at"`
}

// ColumnValue is the value of a custom column for one application.
// Select columns store OptionID, every other type stores Value as text.
type ColumnValue struct {
	ID        string      `boil:"id" json:"id"`
	JobID     string      `boil:"job_id" json:"job_id"`
	ColumnID  string      `boil:"column_id" json:"column_id"`
	OptionID  null.String `boil:"option_id" json:"option_id"`
	Value     null.String `boil:"value" json:"value"`
	CreatedAt time.Time   `boil:"created_at" json:"created_at"`
	UpdatedAt null.Time   `boil:"updated_at" json:"updated_at"`
}
