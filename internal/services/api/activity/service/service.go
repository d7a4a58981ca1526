// Package service contains the activity feed workflows
package service

import (
	"context"
	"time"

	"herdbook/internal/core/names"
	perr "herdbook/internal/platform/errors"
	"herdbook/internal/platform/logger"
	"herdbook/internal/services/api/activity/domain"
	"herdbook/internal/services/api/activity/repo"
	herdsdom "herdbook/internal/services/api/herds/domain"
)

const defaultLimit = 50

// Service defines the service contract for the activity feed
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
// repo may be nil when ClickHouse is not configured; reads then fail
// with ErrorCodeUnavailable and writes drop silently
type Svc struct {
	repo repo.Repo
}

// New creates a new activity service. r may be nil
func New(r repo.Repo) *Svc { return &Svc{repo: r} }

// Recent returns the owner's latest events, newest first
func (s *Svc) Recent(ctx context.Context, owner string, in domain.RecentInput) ([]domain.EventView, error) {
	if s.repo == nil {
		return nil, perr.Unavailablef("activity feed is not configured")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > 500 {
		limit = 500
	}
	rows, err := s.repo.Recent(ctx, owner, names.Name(in.Herd), limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.EventView, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.EventView{
			Herd:     row.Herd,
			Action:   row.Action,
			AnimalID: row.AnimalID,
			Detail:   row.Detail,
			At:       row.At.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

// Recorder receives herd mutation events and writes them to the feed
// failures are logged and swallowed so a broken feed never fails a mutation
type Recorder struct {
	repo repo.Repo
}

// NewRecorder creates a feed recorder. r may be nil, which disables recording
func NewRecorder(r repo.Repo) *Recorder { return &Recorder{repo: r} }

// Record implements the herds event sink
func (rec *Recorder) Record(ctx context.Context, ev herdsdom.Event) {
	if rec == nil || rec.repo == nil {
		return
	}
	row := repo.EventRow{
		Owner:    ev.Owner,
		Herd:     ev.Herd,
		Action:   ev.Action,
		AnimalID: ev.AnimalID,
		Detail:   ev.Detail,
		At:       ev.At,
	}
	if row.At.IsZero() {
		row.At = time.Now().UTC()
	}
	if err := rec.repo.InsertEvent(ctx, row); err != nil {
		logger.C(ctx).Warn().Err(err).
			Str("action", ev.Action).
			Str("herd", ev.Herd).
			Msg("activity event dropped")
	}
}
