package jobs

import (
	"github.com/google/uuid"

	"github.com/nrfta/jobtrack"
	"github.com/nrfta/jobtrack/cursor"
)

// SortBy names a sort strategy.
type SortBy string

const (
	SortByStage        SortBy = "stage"
	SortByCategory     SortBy = "category"
	SortByIsArchived   SortBy = "is_archived"
	SortByCompanyName  SortBy = "company_name"
	SortByJobTitle     SortBy = "job_title"
	SortByAppliedAt    SortBy = "applied_at"
	SortBySalaryMin    SortBy = "salary_min"
	SortBySalaryMax    SortBy = "salary_max"
	SortByCreatedAt    SortBy = "created_at"
	SortByCustomColumn SortBy = "custom_column"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Sort is the requested ordering of a listing. ColumnID names the custom
// column for SortByCustomColumn.
type Sort struct {
	SortBy   SortBy    `json:"sort_by" validate:"required"`
	Order    SortOrder `json:"order" validate:"omitempty,oneof=asc desc"`
	ColumnID string    `json:"column_id,omitempty" validate:"omitempty,uuid"`
}

// Join is a join the listing query needs for its ORDER BY.
type Join struct {
	Alias  string
	Clause string
	Args   []any
}

// SortPlan is a resolved sort: the composite sort key and the join it needs, if any.
type SortPlan struct {
	OrderBy []paging.OrderBy
	Join    *Join
}

const customSortAlias = "jcv_sort"

// rowSchema declares the sortable columns of ApplicationRow and their cursor
// keys. Every strategy ends with ja.id ASC.
var rowSchema = cursor.NewSchema[*ApplicationRow]().
	Field(string(SortByStage), "js.position", "stage_position",
		func(r *ApplicationRow) any { return r.StagePosition }).
	Field(string(SortByCategory), "js.category", "stage_category",
		func(r *ApplicationRow) any { return r.StageCategory }).
	Field(string(SortByIsArchived), "ja.is_archived", "is_archived",
		func(r *ApplicationRow) any { return r.IsArchived }).
	Field(string(SortByCompanyName), "ja.company_name", "company_name",
		func(r *ApplicationRow) any { return r.CompanyName }).
	Field(string(SortByJobTitle), "ja.job_title", "job_title",
		func(r *ApplicationRow) any { return r.JobTitle }).
	Field(string(SortByAppliedAt), "ja.applied_at", "applied_at",
		func(r *ApplicationRow) any { return r.AppliedAt }).
	Field(string(SortBySalaryMin), "ja.salary_min", "salary_min",
		func(r *ApplicationRow) any { return r.SalaryMin }).
	Field(string(SortBySalaryMax), "ja.salary_max", "salary_max",
		func(r *ApplicationRow) any { return r.SalaryMax }).
	Field(string(SortByCreatedAt), "ja.created_at", "created_at",
		func(r *ApplicationRow) any { return r.CreatedAt }).
	Field(string(SortByCustomColumn), customSortAlias+".value", "custom_column_value",
		func(r *ApplicationRow) any { return r.CustomColumnValue }).
	FixedField("ja.id", cursor.ASC, "id",
		func(r *ApplicationRow) any { return r.ID })

// DefaultOrderBy is the ordering of listings without a recognised sort.
func DefaultOrderBy() []paging.OrderBy {
	return []paging.OrderBy{
		{Column: "ja.created_at", Key: "created_at", Desc: true},
		{Column: "ja.id", Key: "id", Desc: true},
	}
}

// planSort resolves s into a sort plan. It reports false when s is not
// recognised and the plan falls back: to DefaultOrderBy for an unknown
// strategy, or to creation time in the requested order for a custom column
// sort without a valid column id.
func planSort(s *Sort) (SortPlan, bool) {
	if s == nil {
		return SortPlan{OrderBy: DefaultOrderBy()}, true
	}

	sortBy := s.SortBy
	recognised := true
	var join *Join

	if sortBy == SortByCustomColumn {
		id, err := uuid.Parse(s.ColumnID)
		if err != nil {
			sortBy = SortByCreatedAt
			recognised = false
		} else {
			join = &Join{
				Alias:  customSortAlias,
				Clause: "job_column_values AS " + customSortAlias + " ON " + customSortAlias + ".job_id = ja.id AND " + customSortAlias + ".column_id = ?",
				Args:   []any{id.String()},
			}
		}
	}

	orderBy, err := rowSchema.BuildOrderBy(cursor.Sort{Field: string(sortBy), Desc: s.Order == OrderDesc})
	if err != nil {
		return SortPlan{OrderBy: DefaultOrderBy()}, false
	}

	return SortPlan{OrderBy: orderBy, Join: join}, recognised
}
