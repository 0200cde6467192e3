package jobs

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/friendsofgo/errors"

	"github.com/nrfta/jobtrack/filter"
)

// ErrUnknownSort is returned by a strict QueryBuilder for a sort it cannot plan.
var ErrUnknownSort = errors.New("unknown sort")

// Filters narrows an application listing.
type Filters struct {
	Search        string                `json:"search,omitempty" validate:"max=200"`
	StageID       string                `json:"stage_id,omitempty" validate:"omitempty,uuid"`
	Category      StageCategory         `json:"category,omitempty" validate:"omitempty,oneof=initial interview positive negative"`
	IsArchived    *bool                 `json:"is_archived,omitempty"`
	ColumnFilters []filter.ColumnFilter `json:"column_filters,omitempty" validate:"dive"`
}

// QueryBuilder turns listing requests into predicates and sort plans.
type QueryBuilder struct {
	resolver *filter.Resolver
}

// NewQueryBuilder creates a QueryBuilder resolving column filters over CoreFields.
func NewQueryBuilder(opts ...filter.Option) *QueryBuilder {
	return &QueryBuilder{
		resolver: filter.NewResolver(CoreFields, opts...),
	}
}

// ApplyFilters returns the predicates of f, to be combined with AND.
//
// Archived applications are excluded unless f.IsArchived is set. Search
// matches company name or job title case-insensitively.
func (b *QueryBuilder) ApplyFilters(f Filters) ([]sq.Sqlizer, error) {
	preds := make([]sq.Sqlizer, 0, 4+len(f.ColumnFilters))

	archived := false
	if f.IsArchived != nil {
		archived = *f.IsArchived
	}
	preds = append(preds, sq.Eq{"ja.is_archived": archived})

	if f.Search != "" {
		term := "%" + filter.EscapeLike(strings.ToLower(f.Search)) + "%"
		preds = append(preds, sq.Or{
			sq.ILike{"ja.company_name": term},
			sq.ILike{"ja.job_title": term},
		})
	}

	if f.StageID != "" {
		preds = append(preds, sq.Eq{"ja.stage_id": f.StageID})
	}

	if f.Category != "" {
		preds = append(preds, sq.Eq{"js.category": string(f.Category)})
	}

	columnPreds, err := b.resolver.Resolve(f.ColumnFilters)
	if err != nil {
		return nil, err
	}

	return append(preds, columnPreds...), nil
}

// CreateOrderBy resolves s into a sort plan.
// Unrecognised sorts fall back to DefaultOrderBy, or fail a strict builder.
func (b *QueryBuilder) CreateOrderBy(s *Sort) (SortPlan, error) {
	plan, ok := planSort(s)
	if !ok && b.resolver.Strict() {
		return SortPlan{}, errors.Wrapf(ErrUnknownSort, "sort_by %q", s.SortBy)
	}
	return plan, nil
}
