// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"

	"github.com/bheadmaster/fastread/internal/model"
	"github.com/bheadmaster/fastread/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions []model.SessionAggregate
	Sources  []model.SourceAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	sources, err := st.ListSourceAggregates(ctx, cfg)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions: sessions,
		Sources:  sources,
	}, nil
}
