package alerts

import (
	"context"
	"fmt"
	"sort"

	"github.com/martatracker-data/internal/common/logger"
)

// QueryService is the read path. It folds the historical rows the store holds
// per route into one composite alert by recency, using the same merge rule
// the write side relies on.
type QueryService struct {
	store  AlertStore
	logger logger.Logger
}

func NewQueryService(store AlertStore, log logger.Logger) *QueryService {
	return &QueryService{store: store, logger: log}
}

// ByRoute returns the composite alert for one route. A route with no live
// rows still appears in the result, mapped to an empty record, so callers can
// tell "known route, no current alert" apart from "unknown route".
func (q *QueryService) ByRoute(ctx context.Context, route string) (map[string]Record, error) {
	rows, err := q.store.QueryByRoute(ctx, route)
	if err != nil {
		return nil, fmt.Errorf("querying alerts for route %s: %w", route, err)
	}

	result := make(map[string]Record, 1)
	if composite := foldNewestFirst(rows); composite != nil {
		result[route] = *composite
	} else {
		result[route] = Record{Route: route}
	}

	return result, nil
}

// All returns the composite alert for every route with at least one live row.
// Rows are grouped per route and sorted newest-first before folding, so the
// per-route result matches ByRoute exactly.
func (q *QueryService) All(ctx context.Context) (map[string]Record, error) {
	rows, err := q.store.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanning alerts: %w", err)
	}

	byRoute := make(map[string][]Record)
	for _, row := range rows {
		byRoute[row.Route] = append(byRoute[row.Route], row)
	}

	result := make(map[string]Record, len(byRoute))
	for route, group := range byRoute {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})
		result[route] = *foldNewestFirst(group)
	}

	return result, nil
}

// foldNewestFirst folds rows left to right through Merge, starting from
// absent. Rows must already be ordered newest-created-first.
func foldNewestFirst(rows []Record) *Record {
	var composite *Record
	for _, row := range rows {
		merged := Merge(composite, row)
		composite = &merged
	}
	return composite
}
