// Package service contains the weight recording workflows
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"herdbook/internal/modkit/repokit"
	perr "herdbook/internal/platform/errors"
	"herdbook/internal/services/api/weights/domain"
	"herdbook/internal/services/api/weights/repo"
)

// Service defines the service contract for weights
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
// every call verifies animal ownership through the animals port before
// touching weight rows, so one owner can never read another's history
type Svc struct {
	binder  repokit.Binder[repo.Repo]
	db      repokit.TxRunner
	animals domain.AnimalResolver
}

// New creates a new weights service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], animals domain.AnimalResolver) *Svc {
	if db == nil {
		panic("weights.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("weights.Service requires a non nil Repo binder")
	}
	if animals == nil {
		panic("weights.Service requires the animals port")
	}
	return &Svc{binder: binder, db: db, animals: animals}
}

// Record stores one measurement for an owned animal
func (s *Svc) Record(ctx context.Context, owner string, in domain.RecordInput) (string, error) {
	animalID, err := s.ownedAnimal(ctx, owner, in.AnimalID)
	if err != nil {
		return "", err
	}
	if in.WeightKG <= 0 {
		return "", perr.WithField(perr.InvalidArgf("weight must be positive"), "weight_kg")
	}
	measured := time.Now().UTC()
	if in.MeasuredAt != "" {
		t, err := time.Parse(time.RFC3339, in.MeasuredAt)
		if err != nil {
			return "", perr.WithField(perr.InvalidArgf("measured_at must be RFC 3339"), "measured_at")
		}
		measured = t.UTC()
	}
	row := repo.WeightRow{
		ID:         uuid.NewString(),
		AnimalID:   animalID,
		WeightKG:   in.WeightKG,
		MeasuredAt: measured,
		Notes:      strings.TrimSpace(in.Notes),
	}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Insert(ctx, row)
	})
	if err != nil {
		return "", err
	}
	return row.ID, nil
}

// History returns the animal's measurements, newest first
func (s *Svc) History(ctx context.Context, owner, animalID string) ([]domain.WeightView, error) {
	id, err := s.ownedAnimal(ctx, owner, animalID)
	if err != nil {
		return nil, err
	}
	rows, err := s.binder.Bind(s.db).ListByAnimal(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]domain.WeightView, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.WeightView{
			WeightID:   row.ID,
			AnimalID:   row.AnimalID,
			WeightKG:   row.WeightKG,
			MeasuredAt: row.MeasuredAt.UTC().Format(time.RFC3339),
			Notes:      row.Notes,
		})
	}
	return out, nil
}

func (s *Svc) ownedAnimal(ctx context.Context, owner, animalID string) (string, error) {
	id := strings.TrimSpace(animalID)
	if id == "" {
		return "", perr.WithField(perr.InvalidArgf("animal id is required"), "animal_id")
	}
	ok, err := s.animals.Owns(ctx, owner, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", perr.NotFoundf("animal %q not found", id)
	}
	return id, nil
}
