// Package service contains the animal register workflows
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"herdbook/internal/core/names"
	"herdbook/internal/modkit/repokit"
	perr "herdbook/internal/platform/errors"
	ptime "herdbook/internal/platform/time"
	"herdbook/internal/services/api/animals/domain"
	"herdbook/internal/services/api/animals/repo"
)

// Service defines the service contract for animals
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new animals service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("animals.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("animals.Service requires a non nil Repo binder")
	}
	return &Svc{binder: binder, db: db}
}

// Register records a new animal and mints its identifier
func (s *Svc) Register(ctx context.Context, owner string, in domain.RegisterInput) (string, error) {
	tag, err := earTag(in.Tag)
	if err != nil {
		return "", err
	}
	row := repo.AnimalRow{
		ID:      uuid.NewString(),
		Owner:   owner,
		Tag:     tag,
		Name:    names.Name(in.Name),
		Species: strings.ToLower(strings.TrimSpace(in.Species)),
		Breed:   strings.TrimSpace(in.Breed),
		Sex:     strings.ToLower(strings.TrimSpace(in.Sex)),
		Notes:   strings.TrimSpace(in.Notes),
	}
	if in.BirthDate != "" {
		d, err := time.Parse("2006-01-02", in.BirthDate)
		if err != nil {
			return "", perr.WithField(perr.InvalidArgf("birth_date must be YYYY-MM-DD"), "birth_date")
		}
		row.BirthDate = ptime.Ptr(d)
	}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Insert(ctx, row)
	})
	if err != nil {
		return "", err
	}
	return row.ID, nil
}

// LookupByTag finds the owner's animal by its canonicalized ear tag
func (s *Svc) LookupByTag(ctx context.Context, owner, tag string) (domain.AnimalView, error) {
	t, err := earTag(tag)
	if err != nil {
		return domain.AnimalView{}, err
	}
	row, err := s.binder.Bind(s.db).GetByTag(ctx, owner, t)
	if err != nil {
		return domain.AnimalView{}, err
	}
	return view(row), nil
}

// List returns every animal registered under the owner, ordered by tag
func (s *Svc) List(ctx context.Context, owner string) ([]domain.AnimalView, error) {
	rows, err := s.binder.Bind(s.db).ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AnimalView, 0, len(rows))
	for _, row := range rows {
		out = append(out, view(row))
	}
	return out, nil
}

// Owns reports whether the id belongs to one of the owner's animals
func (s *Svc) Owns(ctx context.Context, owner, animalID string) (bool, error) {
	id := strings.TrimSpace(animalID)
	if id == "" {
		return false, perr.WithField(perr.InvalidArgf("animal id is required"), "animal_id")
	}
	return s.binder.Bind(s.db).Exists(ctx, owner, id)
}

func view(row repo.AnimalRow) domain.AnimalView {
	v := domain.AnimalView{
		AnimalID: row.ID,
		Tag:      row.Tag,
		Name:     row.Name,
		Species:  row.Species,
		Breed:    row.Breed,
		Sex:      row.Sex,
		Notes:    row.Notes,
	}
	if row.BirthDate != nil {
		v.BirthDate = row.BirthDate.Format("2006-01-02")
	}
	return v
}

func earTag(raw string) (string, error) {
	t := names.Tag(raw)
	if !names.Valid(t, 64) {
		return "", perr.WithField(perr.InvalidArgf("ear tag is required and must stay under 64 characters"), "tag")
	}
	return t, nil
}
