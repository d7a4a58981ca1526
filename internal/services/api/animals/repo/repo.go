// Package repo provides postgres access for the animal register
package repo

import (
	"context"
	"time"

	"herdbook/internal/modkit/repokit"
	perr "herdbook/internal/platform/errors"
)

// AnimalRow is the animals table shape
type AnimalRow struct {
	ID        string
	Owner     string
	Tag       string
	Name      string
	Species   string
	Breed     string
	Sex       string
	BirthDate *time.Time
	Notes     string
}

// Repo defines the repository contract for animals
// GetByTag returns ErrorCodeNotFound when no row matches,
// Insert surfaces (owner, tag) collisions as ErrorCodeDuplicateKey
type Repo interface {
	Insert(ctx context.Context, row AnimalRow) error
	GetByTag(ctx context.Context, owner, tag string) (AnimalRow, error)
	ListByOwner(ctx context.Context, owner string) ([]AnimalRow, error)
	Exists(ctx context.Context, owner, id string) (bool, error)
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

func (r *queries) Insert(ctx context.Context, row AnimalRow) error {
	const sql = `
insert into animals (id, owner_id, tag, name, species, breed, sex, birth_date, notes, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
`
	_, err := r.q.Exec(ctx, sql,
		row.ID, row.Owner, row.Tag, row.Name, row.Species, row.Breed, row.Sex, row.BirthDate, row.Notes,
	)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return perr.WithField(perr.DuplicateKeyf("tag %q already registered", row.Tag), "tag")
		}
		return perr.FromPostgres(err, "insert animal")
	}
	return nil
}

func (r *queries) GetByTag(ctx context.Context, owner, tag string) (AnimalRow, error) {
	const sql = `
select id, owner_id, tag, name, species, breed, sex, birth_date, notes
from animals
where owner_id = $1 and tag = $2
`
	var row AnimalRow
	rows, err := r.q.Query(ctx, sql, owner, tag)
	if err != nil {
		return AnimalRow{}, perr.FromPostgres(err, "fetch animal")
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return AnimalRow{}, perr.FromPostgres(err, "fetch animal")
		}
		return AnimalRow{}, perr.NotFoundf("no animal with tag %q", tag)
	}
	if err := rows.Scan(
		&row.ID, &row.Owner, &row.Tag, &row.Name, &row.Species, &row.Breed, &row.Sex, &row.BirthDate, &row.Notes,
	); err != nil {
		return AnimalRow{}, perr.FromPostgres(err, "scan animal")
	}
	return row, rows.Err()
}

func (r *queries) ListByOwner(ctx context.Context, owner string) ([]AnimalRow, error) {
	const sql = `
select id, owner_id, tag, name, species, breed, sex, birth_date, notes
from animals
where owner_id = $1
order by tag
`
	rows, err := r.q.Query(ctx, sql, owner)
	if err != nil {
		return nil, perr.FromPostgres(err, "list animals")
	}
	defer rows.Close()

	var out []AnimalRow
	for rows.Next() {
		var row AnimalRow
		if err := rows.Scan(
			&row.ID, &row.Owner, &row.Tag, &row.Name, &row.Species, &row.Breed, &row.Sex, &row.BirthDate, &row.Notes,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan animal")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *queries) Exists(ctx context.Context, owner, id string) (bool, error) {
	const sql = `select exists(select 1 from animals where owner_id = $1 and id = $2)`
	rows, err := r.q.Query(ctx, sql, owner, id)
	if err != nil {
		return false, perr.FromPostgres(err, "check animal")
	}
	defer rows.Close()
	if !rows.Next() {
		return false, rows.Err()
	}
	var ok bool
	if err := rows.Scan(&ok); err != nil {
		return false, perr.FromPostgres(err, "check animal")
	}
	return ok, rows.Err()
}
