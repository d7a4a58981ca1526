// Package repo provides postgres access for weight records
package repo

import (
	"context"
	"time"

	"herdbook/internal/modkit/repokit"
	perr "herdbook/internal/platform/errors"
)

// WeightRow is the animal_weights table shape
type WeightRow struct {
	ID         string
	AnimalID   string
	WeightKG   float64
	MeasuredAt time.Time
	Notes      string
}

// Repo defines the repository contract for weights
type Repo interface {
	Insert(ctx context.Context, row WeightRow) error
	ListByAnimal(ctx context.Context, animalID string) ([]WeightRow, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Insert(ctx context.Context, row WeightRow) error {
	const sql = `
insert into animal_weights (id, animal_id, weight_kg, measured_at, notes, created_at)
values ($1, $2, $3, $4, $5, now())
`
	_, err := r.q.Exec(ctx, sql, row.ID, row.AnimalID, row.WeightKG, row.MeasuredAt, row.Notes)
	if err != nil {
		return perr.FromPostgres(err, "insert weight")
	}
	return nil
}

func (r *queries) ListByAnimal(ctx context.Context, animalID string) ([]WeightRow, error) {
	const sql = `
select id, animal_id, weight_kg, measured_at, notes
from animal_weights
where animal_id = $1
order by measured_at desc
`
	rows, err := r.q.Query(ctx, sql, animalID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list weights")
	}
	defer rows.Close()

	var out []WeightRow
	for rows.Next() {
		var row WeightRow
		if err := rows.Scan(&row.ID, &row.AnimalID, &row.WeightKG, &row.MeasuredAt, &row.Notes); err != nil {
			return nil, perr.FromPostgres(err, "scan weight")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
