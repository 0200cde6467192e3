package sqlboiler

import (
	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/nrfta/jobtrack"
)

// OffsetToQueryMods renders an offset page request as query mods, in the
// order WHERE, OFFSET, LIMIT, ORDER BY. Each predicate of params.Where
// becomes its own raw WHERE mod; ordering uses the same clause as
// CursorToQueryMods, so NULL placement matches across both modes.
//
//	mods, err := sqlboiler.OffsetToQueryMods(paging.FetchParams{
//	    Offset:  20,
//	    Limit:   10,
//	    OrderBy: []paging.OrderBy{{Column: "ja.created_at", Desc: true}},
//	})
//	// renders ORDER BY ja.created_at DESC LIMIT 10 OFFSET 20
func OffsetToQueryMods(params paging.FetchParams) ([]qm.QueryMod, error) {
	mods, err := WhereToQueryMods(params.Where)
	if err != nil {
		return nil, err
	}

	if params.Offset > 0 {
		mods = append(mods, qm.Offset(params.Offset))
	}

	if params.Limit > 0 {
		mods = append(mods, qm.Limit(params.Limit))
	}

	if len(params.OrderBy) > 0 {
		mods = append(mods, qm.OrderBy(buildOrderByClause(params.OrderBy)))
	}

	return mods, nil
}
