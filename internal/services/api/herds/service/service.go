// Package service contains the herd registry workflows
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"herdbook/internal/core/names"
	"herdbook/internal/modkit/repokit"
	perr "herdbook/internal/platform/errors"
	"herdbook/internal/services/api/herds/domain"
	"herdbook/internal/services/api/herds/repo"
)

// Service defines the service contract for herds
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
// every mutation runs inside a single transaction so precondition checks
// and writes are one unit of work
type Svc struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	events domain.EventSink // optional, nil disables the feed
}

// New creates a new herds service. sink may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], sink domain.EventSink) *Svc {
	if db == nil {
		panic("herds.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("herds.Service requires a non nil Repo binder")
	}
	return &Svc{binder: binder, db: db, events: sink}
}

// Create inserts a new active herd with empty membership
func (s *Svc) Create(ctx context.Context, owner string, in domain.CreateInput) (string, error) {
	name, err := herdName(in.Name)
	if err != nil {
		return "", err
	}
	row := repo.HerdRow{
		ID:          uuid.NewString(),
		Owner:       owner,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		return s.binder.Bind(q).Insert(ctx, row)
	})
	if err != nil {
		return "", err
	}
	s.emit(ctx, domain.Event{Owner: owner, Herd: name, Action: domain.ActionCreate})
	return row.ID, nil
}

// AddMember inserts animalID into the herd's member set
func (s *Svc) AddMember(ctx context.Context, owner, herd, animalID string) error {
	name, err := herdName(herd)
	if err != nil {
		return err
	}
	id, err := memberID(animalID)
	if err != nil {
		return err
	}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		h, err := r.GetForUpdate(ctx, owner, name)
		if err != nil {
			return err
		}
		if h.Archived {
			return perr.Archivedf("herd %q is archived", name)
		}
		added, err := r.AddMember(ctx, h.ID, id)
		if err != nil {
			return err
		}
		if !added {
			return perr.AlreadyMemberf("animal %q is already in herd %q", id, name)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.emit(ctx, domain.Event{Owner: owner, Herd: name, Action: domain.ActionAdd, AnimalID: id})
	return nil
}

// RemoveMember removes animalID from the herd's member set
func (s *Svc) RemoveMember(ctx context.Context, owner, herd, animalID string) error {
	name, err := herdName(herd)
	if err != nil {
		return err
	}
	id, err := memberID(animalID)
	if err != nil {
		return err
	}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		h, err := r.GetForUpdate(ctx, owner, name)
		if err != nil {
			return err
		}
		if h.Archived {
			return perr.Archivedf("herd %q is archived", name)
		}
		removed, err := r.RemoveMember(ctx, h.ID, id)
		if err != nil {
			return err
		}
		if !removed {
			return perr.NotMemberf("animal %q is not in herd %q", id, name)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.emit(ctx, domain.Event{Owner: owner, Herd: name, Action: domain.ActionRemove, AnimalID: id})
	return nil
}

// MoveMember transfers one animal between herds atomically
// an id already present in the target is left as-is, not errored
func (s *Svc) MoveMember(ctx context.Context, owner, source, target, animalID string) error {
	src, err := herdName(source)
	if err != nil {
		return err
	}
	tgt, err := herdName(target)
	if err != nil {
		return err
	}
	if src == tgt {
		return perr.WithField(perr.InvalidArgf("source and target are the same herd"), "target")
	}
	id, err := memberID(animalID)
	if err != nil {
		return err
	}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		srcRow, tgtRow, err := lockPair(ctx, r, owner, src, tgt)
		if err != nil {
			return err
		}
		removed, err := r.RemoveMember(ctx, srcRow.ID, id)
		if err != nil {
			return err
		}
		if !removed {
			return perr.NotMemberf("animal %q is not in herd %q", id, src)
		}
		// set-union add; already-present in target is fine
		if _, err := r.AddMember(ctx, tgtRow.ID, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.emit(ctx, domain.Event{Owner: owner, Herd: src, Action: domain.ActionMove, AnimalID: id, Detail: "to " + tgt})
	return nil
}

// SplitMembers transfers a batch of animals atomically, all or nothing
// a missing target herd is created as part of the operation; this is a
// deliberate branch of split, not a general upsert
func (s *Svc) SplitMembers(ctx context.Context, owner, source, target string, animalIDs []string) error {
	src, err := herdName(source)
	if err != nil {
		return err
	}
	tgt, err := herdName(target)
	if err != nil {
		return err
	}
	if src == tgt {
		return perr.WithField(perr.InvalidArgf("source and target are the same herd"), "target")
	}
	ids, err := memberIDs(animalIDs)
	if err != nil {
		return err
	}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		// lock source before deciding the target's fate; creation must not
		// happen when the source checks fail
		srcRow, err := r.GetForUpdate(ctx, owner, src)
		if err != nil {
			return err
		}
		if srcRow.Archived {
			return perr.Archivedf("herd %q is archived", src)
		}

		missing, err := r.MissingMembers(ctx, srcRow.ID, ids)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return perr.WithField(
				perr.PartialMembershipf("animals not in herd %q: %s", src, strings.Join(missing, ", ")),
				"animal_ids",
			)
		}

		tgtRow, err := r.GetForUpdate(ctx, owner, tgt)
		switch {
		case err == nil:
			if tgtRow.Archived {
				return perr.Archivedf("herd %q is archived", tgt)
			}
		case perr.IsCode(err, perr.ErrorCodeNotFound):
			tgtRow = repo.HerdRow{ID: uuid.NewString(), Owner: owner, Name: tgt}
			if err := r.Insert(ctx, tgtRow); err != nil {
				return err
			}
		default:
			return err
		}

		return r.MoveMembers(ctx, srcRow.ID, tgtRow.ID, ids)
	})
	if err != nil {
		return err
	}
	s.emit(ctx, domain.Event{
		Owner: owner, Herd: src, Action: domain.ActionSplit,
		Detail: "to " + tgt + ": " + strings.Join(ids, ", "),
	})
	return nil
}

// MergeInto unions the donor's members into keep, then archives the donor
func (s *Svc) MergeInto(ctx context.Context, owner, keep, archive string) error {
	keepName, err := herdName(keep)
	if err != nil {
		return err
	}
	donorName, err := herdName(archive)
	if err != nil {
		return err
	}
	if keepName == donorName {
		return perr.WithField(perr.InvalidArgf("cannot merge a herd into itself"), "archive")
	}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		keepRow, donorRow, err := lockPair(ctx, r, owner, keepName, donorName)
		if err != nil {
			return err
		}
		if err := r.UnionInto(ctx, keepRow.ID, donorRow.ID); err != nil {
			return err
		}
		if err := r.ClearMembers(ctx, donorRow.ID); err != nil {
			return err
		}
		return r.SetArchived(ctx, donorRow.ID, true)
	})
	if err != nil {
		return err
	}
	s.emit(ctx, domain.Event{Owner: owner, Herd: donorName, Action: domain.ActionMerge, Detail: "into " + keepName})
	return nil
}

// Delete archives an active herd; called again on the archived herd it
// permanently removes it. The two-call lifecycle is the contract
func (s *Svc) Delete(ctx context.Context, owner, name string) (string, error) {
	hn, err := herdName(name)
	if err != nil {
		return "", err
	}
	var outcome string
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		h, err := r.GetForUpdate(ctx, owner, hn)
		if err != nil {
			return err
		}
		if !h.Archived {
			if err := r.ClearMembers(ctx, h.ID); err != nil {
				return err
			}
			if err := r.SetArchived(ctx, h.ID, true); err != nil {
				return err
			}
			outcome = domain.DeleteOutcomeArchived
			return nil
		}
		if err := r.DeleteRow(ctx, h.ID); err != nil {
			return err
		}
		outcome = domain.DeleteOutcomePurged
		return nil
	})
	if err != nil {
		return "", err
	}
	action := domain.ActionArchive
	if outcome == domain.DeleteOutcomePurged {
		action = domain.ActionPurge
	}
	s.emit(ctx, domain.Event{Owner: owner, Herd: hn, Action: action})
	return outcome, nil
}

// Restore clears the archived flag; membership stays empty
func (s *Svc) Restore(ctx context.Context, owner, name string) error {
	hn, err := herdName(name)
	if err != nil {
		return err
	}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		h, err := r.GetForUpdate(ctx, owner, hn)
		if err != nil {
			return err
		}
		if !h.Archived {
			return perr.NotArchivedf("herd %q is not archived", hn)
		}
		return r.SetArchived(ctx, h.ID, false)
	})
	if err != nil {
		return err
	}
	s.emit(ctx, domain.Event{Owner: owner, Herd: hn, Action: domain.ActionRestore})
	return nil
}

// ViewMembers returns the herd's current member set
// archived herds answer too (always empty by invariant)
func (s *Svc) ViewMembers(ctx context.Context, owner, name string) ([]string, error) {
	hn, err := herdName(name)
	if err != nil {
		return nil, err
	}
	r := s.binder.Bind(s.db)
	h, err := r.Get(ctx, owner, hn)
	if err != nil {
		return nil, err
	}
	members, err := r.Members(ctx, h.ID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []string{}
	}
	return members, nil
}

// ListActive returns the owner's non-archived herds
func (s *Svc) ListActive(ctx context.Context, owner string) ([]domain.HerdSummary, error) {
	return s.list(ctx, owner, false)
}

// ListArchived returns the owner's archived herds
func (s *Svc) ListArchived(ctx context.Context, owner string) ([]domain.HerdSummary, error) {
	return s.list(ctx, owner, true)
}

func (s *Svc) list(ctx context.Context, owner string, archived bool) ([]domain.HerdSummary, error) {
	rows, err := s.binder.Bind(s.db).ListByArchived(ctx, owner, archived)
	if err != nil {
		return nil, err
	}
	out := make([]domain.HerdSummary, 0, len(rows))
	for _, h := range rows {
		out = append(out, domain.HerdSummary{Name: h.Name, Description: h.Description, Archived: h.Archived})
	}
	return out, nil
}

// lockPair locks two existing herds in lexicographic name order so
// concurrent two-herd transfers cannot deadlock on each other
// both herds must exist and be active
func lockPair(ctx context.Context, r repo.Repo, owner, a, b string) (repo.HerdRow, repo.HerdRow, error) {
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	firstRow, err := r.GetForUpdate(ctx, owner, first)
	if err != nil {
		return repo.HerdRow{}, repo.HerdRow{}, err
	}
	secondRow, err := r.GetForUpdate(ctx, owner, second)
	if err != nil {
		return repo.HerdRow{}, repo.HerdRow{}, err
	}
	for _, h := range []repo.HerdRow{firstRow, secondRow} {
		if h.Archived {
			return repo.HerdRow{}, repo.HerdRow{}, perr.Archivedf("herd %q is archived", h.Name)
		}
	}
	if firstRow.Name == a {
		return firstRow, secondRow, nil
	}
	return secondRow, firstRow, nil
}

// emit records an event when a sink is wired; failures never surface
func (s *Svc) emit(ctx context.Context, ev domain.Event) {
	if s.events == nil {
		return
	}
	ev.At = time.Now().UTC()
	s.events.Record(ctx, ev)
}

func herdName(raw string) (string, error) {
	n := names.Name(raw)
	if !names.Valid(n, 120) {
		return "", perr.WithField(perr.InvalidArgf("herd name must be 1-120 characters"), "name")
	}
	return n, nil
}

func memberID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", perr.WithField(perr.InvalidArgf("animal id is required"), "animal_id")
	}
	return id, nil
}

func memberIDs(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, perr.WithField(perr.InvalidArgf("animal_ids must not be empty"), "animal_ids")
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		id, err := memberID(r)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
