// Package repo provides clickhouse access for the activity feed
package repo

import (
	"context"
	"time"

	perr "herdbook/internal/platform/errors"
	"herdbook/internal/platform/store"
)

// EventRow is the herd_events table shape
type EventRow struct {
	Owner    string
	Herd     string
	Action   string
	AnimalID string
	Detail   string
	At       time.Time
}

// Repo defines the columnar surface for herd events
type Repo interface {
	InsertEvent(ctx context.Context, row EventRow) error
	Recent(ctx context.Context, owner, herd string, limit int) ([]EventRow, error)
}

// NewCH wraps the ClickHouse seam as an event repo
func NewCH(ch store.Clickhouse) Repo { return &chStore{ch: ch} }

type chStore struct{ ch store.Clickhouse }

func (s *chStore) InsertEvent(ctx context.Context, row EventRow) error {
	data := [][]any{{row.Owner, row.Herd, row.Action, row.AnimalID, row.Detail, row.At}}
	if err := s.ch.Insert(ctx, "herd_events", data); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "insert herd event")
	}
	return nil
}

func (s *chStore) Recent(ctx context.Context, owner, herd string, limit int) ([]EventRow, error) {
	const sql = `
select owner_id, herd_name, action, animal_id, detail, at
from herd_events
where owner_id = ?
and (? = '' or herd_name = ?)
order by at desc
limit ?
`
	rows, err := s.ch.Query(ctx, sql, owner, herd, herd, limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "query herd events")
	}
	defer rows.Close()

	var out []EventRow
	for rows.Next() {
		var row EventRow
		if err := rows.Scan(&row.Owner, &row.Herd, &row.Action, &row.AnimalID, &row.Detail, &row.At); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan herd event")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
