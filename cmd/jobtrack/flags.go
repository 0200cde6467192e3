package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/nrfta/jobtrack/filter"
	"github.com/nrfta/jobtrack/jobs"
)

// queryFlags are the filter and sort flags shared by list and count.
type queryFlags struct {
	user       string
	search     string
	stageID    string
	category   string
	archived   bool
	filters    []string
	sortBy     string
	order      string
	sortColumn string
}

func (q *queryFlags) register(fs *pflag.FlagSet, withSort bool) {
	fs.StringVarP(&q.user, "user", "u", "", "ID of the user owning the applications (required)")
	fs.StringVarP(&q.search, "search", "s", "", "Match company name or job title")
	fs.StringVar(&q.stageID, "stage", "", "Only applications in this stage")
	fs.StringVar(&q.category, "category", "", "Only applications in stages of this category")
	fs.BoolVar(&q.archived, "archived", false, "List archived applications instead of active ones")
	fs.StringArrayVarP(&q.filters, "filter", "f", nil,
		`Column filter as JSON, e.g. {"column_id":"salary_min","operator":"gte","value":50000} (repeatable)`)

	if withSort {
		fs.StringVar(&q.sortBy, "sort-by", "", "Sort strategy, e.g. company_name or custom_column")
		fs.StringVar(&q.order, "order", "", "Sort direction: asc or desc")
		fs.StringVar(&q.sortColumn, "sort-column", "", "Custom column ID when sorting by custom_column")
	}
}

// Filters builds the listing filters. fs reports whether --archived was set.
func (q *queryFlags) Filters(fs *pflag.FlagSet) (jobs.Filters, error) {
	f := jobs.Filters{
		Search:   q.search,
		StageID:  q.stageID,
		Category: jobs.StageCategory(q.category),
	}
	if fs.Changed("archived") {
		archived := q.archived
		f.IsArchived = &archived
	}

	for _, raw := range q.filters {
		var cf filter.ColumnFilter
		if err := json.Unmarshal([]byte(raw), &cf); err != nil {
			return jobs.Filters{}, fmt.Errorf("invalid --filter %q: %w", raw, err)
		}
		f.ColumnFilters = append(f.ColumnFilters, cf)
	}

	return f, nil
}

// Sort returns nil without --sort-by.
func (q *queryFlags) Sort() *jobs.Sort {
	if q.sortBy == "" {
		return nil
	}
	return &jobs.Sort{
		SortBy:   jobs.SortBy(q.sortBy),
		Order:    jobs.SortOrder(q.order),
		ColumnID: q.sortColumn,
	}
}
