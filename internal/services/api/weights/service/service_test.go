package service

import (
	"context"
	"testing"
	"time"

	"herdbook/internal/modkit/repokit"
	perr "herdbook/internal/platform/errors"
	"herdbook/internal/services/api/weights/domain"
	"herdbook/internal/services/api/weights/repo"
)

type fakeRepo struct {
	rows []repo.WeightRow
}

func (f *fakeRepo) Insert(_ context.Context, row repo.WeightRow) error {
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeRepo) ListByAnimal(_ context.Context, animalID string) ([]repo.WeightRow, error) {
	var out []repo.WeightRow
	for _, row := range f.rows {
		if row.AnimalID == animalID {
			out = append(out, row)
		}
	}
	// newest first, matching the query's order by
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].MeasuredAt.After(out[i].MeasuredAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	panic("not used by fake repo")
}
func (fakeTx) Query(context.Context, string, ...any) (repokit.Rows, error) {
	panic("not used by fake repo")
}
func (fakeTx) QueryRow(context.Context, string, ...any) repokit.Row {
	panic("not used by fake repo")
}
func (fakeTx) Tx(_ context.Context, fn func(q repokit.Queryer) error) error { return fn(fakeTx{}) }

// fakeResolver owns "a-1" for "u1" only
type fakeResolver struct{}

func (fakeResolver) Owns(_ context.Context, owner, animalID string) (bool, error) {
	return owner == "u1" && animalID == "a-1", nil
}

func newSvc(t *testing.T) (*Svc, *fakeRepo) {
	t.Helper()
	fr := &fakeRepo{}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return fr })
	return New(fakeTx{}, binder, fakeResolver{}), fr
}

func wantCode(t *testing.T, err error, code perr.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %v, got nil", code)
	}
	if got := perr.CodeOf(err); got != code {
		t.Fatalf("error code = %v, want %v (err: %v)", got, code, err)
	}
}

func TestRecord_StoresMeasurement(t *testing.T) {
	t.Parallel()
	s, fr := newSvc(t)

	id, err := s.Record(context.Background(), "u1", domain.RecordInput{
		AnimalID:   "a-1",
		WeightKG:   42.5,
		MeasuredAt: "2026-08-14T09:30:00Z",
		Notes:      " weaning weight ",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if id == "" {
		t.Fatal("expected a minted weight id")
	}
	if len(fr.rows) != 1 {
		t.Fatalf("stored %d rows, want 1", len(fr.rows))
	}
	row := fr.rows[0]
	if row.WeightKG != 42.5 || row.Notes != "weaning weight" {
		t.Fatalf("stored row = %+v", row)
	}
	if !row.MeasuredAt.Equal(time.Date(2026, 8, 14, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("measured_at = %v", row.MeasuredAt)
	}
}

func TestRecord_DefaultsMeasuredAtToNow(t *testing.T) {
	t.Parallel()
	s, fr := newSvc(t)

	before := time.Now().UTC()
	if _, err := s.Record(context.Background(), "u1", domain.RecordInput{AnimalID: "a-1", WeightKG: 10}); err != nil {
		t.Fatalf("record: %v", err)
	}
	got := fr.rows[0].MeasuredAt
	if got.Before(before) || got.After(time.Now().UTC()) {
		t.Fatalf("measured_at = %v, want roughly now", got)
	}
}

func TestRecord_Rejections(t *testing.T) {
	t.Parallel()
	s, _ := newSvc(t)
	ctx := context.Background()

	_, err := s.Record(ctx, "u1", domain.RecordInput{AnimalID: " ", WeightKG: 10})
	wantCode(t, err, perr.ErrorCodeInvalidArgument)

	_, err = s.Record(ctx, "u1", domain.RecordInput{AnimalID: "a-1", WeightKG: 0})
	wantCode(t, err, perr.ErrorCodeInvalidArgument)

	_, err = s.Record(ctx, "u1", domain.RecordInput{AnimalID: "a-1", WeightKG: 10, MeasuredAt: "yesterday"})
	wantCode(t, err, perr.ErrorCodeInvalidArgument)

	// another owner's animal reads as absent, never as forbidden
	_, err = s.Record(ctx, "u2", domain.RecordInput{AnimalID: "a-1", WeightKG: 10})
	wantCode(t, err, perr.ErrorCodeNotFound)
}

func TestHistory_NewestFirst(t *testing.T) {
	t.Parallel()
	s, _ := newSvc(t)
	ctx := context.Background()

	for _, in := range []domain.RecordInput{
		{AnimalID: "a-1", WeightKG: 30, MeasuredAt: "2026-06-01T00:00:00Z"},
		{AnimalID: "a-1", WeightKG: 42.5, MeasuredAt: "2026-08-14T00:00:00Z"},
		{AnimalID: "a-1", WeightKG: 35, MeasuredAt: "2026-07-01T00:00:00Z"},
	} {
		if _, err := s.Record(ctx, "u1", in); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := s.History(ctx, "u1", "a-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	want := []float64{42.5, 35, 30}
	if len(got) != len(want) {
		t.Fatalf("history length = %d, want %d", len(got), len(want))
	}
	for i, kg := range want {
		if got[i].WeightKG != kg {
			t.Fatalf("history[%d] = %+v, want %.1f kg", i, got[i], kg)
		}
	}
}

func TestHistory_OwnershipEnforced(t *testing.T) {
	t.Parallel()
	s, _ := newSvc(t)

	_, err := s.History(context.Background(), "u2", "a-1")
	wantCode(t, err, perr.ErrorCodeNotFound)
}
