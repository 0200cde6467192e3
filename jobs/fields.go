package jobs

import (
	"github.com/nrfta/jobtrack/filter"
)

const (
	applicationsTable = "job_applications AS ja"
	stagesJoin        = "job_stages AS js ON js.id = ja.stage_id"
)

// CoreFields are the application columns column filters can target by name.
var CoreFields = map[string]filter.CoreField{
	"company_name":    {Column: "ja.company_name", Type: filter.TypeText},
	"job_title":       {Column: "ja.job_title", Type: filter.TypeText},
	"stage_id":        {Column: "ja.stage_id", Type: filter.TypeSelect},
	"salary_min":      {Column: "ja.salary_min", Type: filter.TypeNumber},
	"salary_max":      {Column: "ja.salary_max", Type: filter.TypeNumber},
	"job_description": {Column: "ja.job_description", Type: filter.TypeText},
	"notes":           {Column: "ja.notes", Type: filter.TypeText},
	"applied_at":      {Column: "ja.applied_at", Type: filter.TypeDate},
	"is_archived":     {Column: "ja.is_archived", Type: filter.TypeCheckbox},
	"created_at":      {Column: "ja.created_at", Type: filter.TypeDate},
	"updated_at":      {Column: "ja.updated_at", Type: filter.TypeDate},
}

// selectColumns are the listed columns, in ApplicationRow scan order. Every
// column carries an alias matching its boil tag: sqlboiler relabels bare
// qualified columns of joined queries as "ja.id", which Bind cannot map.
var selectColumns = []string{
	"ja.id AS id",
	"ja.user_id AS user_id",
	"ja.stage_id AS stage_id",
	"ja.company_name AS company_name",
	"ja.job_title AS job_title",
	"ja.salary_min AS salary_min",
	"ja.salary_max AS salary_max",
	"ja.job_description AS job_description",
	"ja.notes AS notes",
	"ja.applied_at AS applied_at",
	"ja.is_archived AS is_archived",
	"ja.archived_at AS archived_at",
	"ja.created_at AS created_at",
	"ja.updated_at AS updated_at",

	"js.user_id AS stage_user_id",
	"js.name AS stage_name",
	"js.color AS stage_color",
	"js.category AS stage_category",
	"js.position AS stage_position",
	"js.created_at AS stage_created_at",
	"js.updated_at AS stage_updated_at",
}

// listColumns returns the listed columns. The custom column value is NULL
// unless the plan joins the sorted column.
func listColumns(plan SortPlan) []string {
	value := "NULL AS custom_column_value"
	if plan.Join != nil {
		value = plan.Join.Alias + ".value AS custom_column_value"
	}

	columns := make([]string, 0, len(selectColumns)+1)
	columns = append(columns, selectColumns...)
	return append(columns, value)
}
