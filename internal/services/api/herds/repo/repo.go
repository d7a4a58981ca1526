// Package repo provides postgres access for the herd registry
package repo

import (
	"context"

	"herdbook/internal/modkit/repokit"
	perr "herdbook/internal/platform/errors"
)

// HerdRow is the herds table shape
type HerdRow struct {
	ID          string
	Owner       string
	Name        string
	Description string
	Archived    bool
}

// Repo defines the repository contract for herds
// Get/GetForUpdate return ErrorCodeNotFound when no row matches,
// Insert surfaces (owner, name) collisions as ErrorCodeDuplicateKey
type Repo interface {
	Insert(ctx context.Context, row HerdRow) error
	Get(ctx context.Context, owner, name string) (HerdRow, error)
	GetForUpdate(ctx context.Context, owner, name string) (HerdRow, error)
	SetArchived(ctx context.Context, id string, archived bool) error
	DeleteRow(ctx context.Context, id string) error
	ListByArchived(ctx context.Context, owner string, archived bool) ([]HerdRow, error)

	Members(ctx context.Context, herdID string) ([]string, error)
	MissingMembers(ctx context.Context, herdID string, ids []string) ([]string, error)
	AddMember(ctx context.Context, herdID, animalID string) (bool, error)
	RemoveMember(ctx context.Context, herdID, animalID string) (bool, error)
	MoveMembers(ctx context.Context, sourceID, targetID string, ids []string) error
	UnionInto(ctx context.Context, targetID, sourceID string) error
	ClearMembers(ctx context.Context, herdID string) error
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

func (r *queries) Insert(ctx context.Context, row HerdRow) error {
	const sql = `
insert into herds (id, owner_id, name, description, archived, created_at, updated_at)
values ($1, $2, $3, $4, $5, now(), now())
`
	_, err := r.q.Exec(ctx, sql, row.ID, row.Owner, row.Name, row.Description, row.Archived)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return perr.WithField(perr.DuplicateKeyf("herd %q already exists", row.Name), "name")
		}
		return perr.FromPostgres(err, "insert herd")
	}
	return nil
}

func (r *queries) Get(ctx context.Context, owner, name string) (HerdRow, error) {
	return r.fetch(ctx, owner, name, false)
}

func (r *queries) GetForUpdate(ctx context.Context, owner, name string) (HerdRow, error) {
	return r.fetch(ctx, owner, name, true)
}

func (r *queries) fetch(ctx context.Context, owner, name string, lock bool) (HerdRow, error) {
	sql := `
select id, owner_id, name, description, archived
from herds
where owner_id = $1 and name = $2
`
	if lock {
		sql += " for update"
	}
	var row HerdRow
	rows, err := r.q.Query(ctx, sql, owner, name)
	if err != nil {
		return HerdRow{}, perr.FromPostgres(err, "fetch herd")
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return HerdRow{}, perr.FromPostgres(err, "fetch herd")
		}
		return HerdRow{}, perr.NotFoundf("herd %q not found", name)
	}
	if err := rows.Scan(&row.ID, &row.Owner, &row.Name, &row.Description, &row.Archived); err != nil {
		return HerdRow{}, perr.FromPostgres(err, "scan herd")
	}
	return row, rows.Err()
}

func (r *queries) SetArchived(ctx context.Context, id string, archived bool) error {
	const sql = `update herds set archived = $2, updated_at = now() where id = $1`
	tag, err := r.q.Exec(ctx, sql, id, archived)
	if err != nil {
		return perr.FromPostgres(err, "set archived")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("herd not found")
	}
	return nil
}

func (r *queries) DeleteRow(ctx context.Context, id string) error {
	// herd_members rows go with it via on delete cascade
	const sql = `delete from herds where id = $1`
	if _, err := r.q.Exec(ctx, sql, id); err != nil {
		return perr.FromPostgres(err, "delete herd")
	}
	return nil
}

func (r *queries) ListByArchived(ctx context.Context, owner string, archived bool) ([]HerdRow, error) {
	const sql = `
select id, owner_id, name, description, archived
from herds
where owner_id = $1 and archived = $2
order by name
`
	rows, err := r.q.Query(ctx, sql, owner, archived)
	if err != nil {
		return nil, perr.FromPostgres(err, "list herds")
	}
	defer rows.Close()
	var out []HerdRow
	for rows.Next() {
		var h HerdRow
		if err := rows.Scan(&h.ID, &h.Owner, &h.Name, &h.Description, &h.Archived); err != nil {
			return nil, perr.FromPostgres(err, "scan herd row")
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *queries) Members(ctx context.Context, herdID string) ([]string, error) {
	const sql = `select animal_id from herd_members where herd_id = $1 order by animal_id`
	rows, err := r.q.Query(ctx, sql, herdID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list members")
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, perr.FromPostgres(err, "scan member")
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *queries) MissingMembers(ctx context.Context, herdID string, ids []string) ([]string, error) {
	const sql = `
select x.animal_id
from unnest($2::text[]) as x(animal_id)
where not exists (
	select 1 from herd_members m where m.herd_id = $1 and m.animal_id = x.animal_id
)
order by x.animal_id
`
	rows, err := r.q.Query(ctx, sql, herdID, ids)
	if err != nil {
		return nil, perr.FromPostgres(err, "check membership")
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, perr.FromPostgres(err, "scan missing member")
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *queries) AddMember(ctx context.Context, herdID, animalID string) (bool, error) {
	const sql = `
insert into herd_members (herd_id, animal_id, added_at)
values ($1, $2, now())
on conflict do nothing
`
	tag, err := r.q.Exec(ctx, sql, herdID, animalID)
	if err != nil {
		return false, perr.FromPostgres(err, "add member")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) RemoveMember(ctx context.Context, herdID, animalID string) (bool, error) {
	const sql = `delete from herd_members where herd_id = $1 and animal_id = $2`
	tag, err := r.q.Exec(ctx, sql, herdID, animalID)
	if err != nil {
		return false, perr.FromPostgres(err, "remove member")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) MoveMembers(ctx context.Context, sourceID, targetID string, ids []string) error {
	const del = `delete from herd_members where herd_id = $1 and animal_id = any($2::text[])`
	if _, err := r.q.Exec(ctx, del, sourceID, ids); err != nil {
		return perr.FromPostgres(err, "move members: remove from source")
	}
	const ins = `
insert into herd_members (herd_id, animal_id, added_at)
select $1, unnest($2::text[]), now()
on conflict do nothing
`
	if _, err := r.q.Exec(ctx, ins, targetID, ids); err != nil {
		return perr.FromPostgres(err, "move members: add to target")
	}
	return nil
}

func (r *queries) UnionInto(ctx context.Context, targetID, sourceID string) error {
	const sql = `
insert into herd_members (herd_id, animal_id, added_at)
select $1, animal_id, now()
from herd_members
where herd_id = $2
on conflict do nothing
`
	if _, err := r.q.Exec(ctx, sql, targetID, sourceID); err != nil {
		return perr.FromPostgres(err, "union members")
	}
	return nil
}

func (r *queries) ClearMembers(ctx context.Context, herdID string) error {
	const sql = `delete from herd_members where herd_id = $1`
	if _, err := r.q.Exec(ctx, sql, herdID); err != nil {
		return perr.FromPostgres(err, "clear members")
	}
	return nil
}
