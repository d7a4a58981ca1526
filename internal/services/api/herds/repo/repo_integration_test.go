//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	perr "herdbook/internal/platform/errors"
	"herdbook/internal/platform/store"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

// applySchema runs the real migration so the constraints under test
// are the ones production relies on, not a test-local copy
func applySchema(t *testing.T, ctx context.Context, q store.RowQuerier) {
	t.Helper()

	ddl, err := os.ReadFile("../../../../../migrations/0001_init.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	for _, stmt := range strings.Split(string(ddl), ";") {
		if strings.TrimSpace(stripSQLComments(stmt)) == "" {
			continue
		}
		if _, err := q.Exec(ctx, stmt); err != nil {
			t.Fatalf("apply schema: %v\nstatement: %s", err, stmt)
		}
	}
}

func stripSQLComments(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func seedHerd(t *testing.T, ctx context.Context, r Repo, owner, name string) HerdRow {
	t.Helper()
	row := HerdRow{ID: uuid.NewString(), Owner: owner, Name: name}
	if err := r.Insert(ctx, row); err != nil {
		t.Fatalf("seed herd %q: %v", name, err)
	}
	return row
}

func TestRepo_Postgres_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{Enabled: true, URL: dsn},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	applySchema(t, ctx, st.PG)

	r := NewPG().Bind(st.PG)

	t.Run("insert duplicate name per owner", func(t *testing.T) {
		seedHerd(t, ctx, r, "owner-dup", "north paddock")

		err := r.Insert(ctx, HerdRow{ID: uuid.NewString(), Owner: "owner-dup", Name: "north paddock"})
		if perr.CodeOf(err) != perr.ErrorCodeDuplicateKey {
			t.Fatalf("want DuplicateKey for same (owner, name), got %v", err)
		}
		if e, ok := perr.As(err); !ok || e.Field() != "name" {
			t.Fatalf("want field %q on duplicate, got %v", "name", err)
		}

		// same name for another owner is fine
		if err := r.Insert(ctx, HerdRow{ID: uuid.NewString(), Owner: "owner-dup-2", Name: "north paddock"}); err != nil {
			t.Fatalf("same name for other owner: %v", err)
		}
	})

	t.Run("member adds and removes are set operations", func(t *testing.T) {
		h := seedHerd(t, ctx, r, "owner-set", "ewes")

		added, err := r.AddMember(ctx, h.ID, "a-1")
		if err != nil || !added {
			t.Fatalf("first add: added=%v err=%v", added, err)
		}
		added, err = r.AddMember(ctx, h.ID, "a-1")
		if err != nil || added {
			t.Fatalf("repeat add must be a no-op: added=%v err=%v", added, err)
		}

		removed, err := r.RemoveMember(ctx, h.ID, "a-1")
		if err != nil || !removed {
			t.Fatalf("first remove: removed=%v err=%v", removed, err)
		}
		removed, err = r.RemoveMember(ctx, h.ID, "a-1")
		if err != nil || removed {
			t.Fatalf("repeat remove must be a no-op: removed=%v err=%v", removed, err)
		}
	})

	t.Run("missing members via unnest", func(t *testing.T) {
		h := seedHerd(t, ctx, r, "owner-miss", "rams")
		for _, id := range []string{"a-1", "a-2"} {
			if _, err := r.AddMember(ctx, h.ID, id); err != nil {
				t.Fatalf("add %s: %v", id, err)
			}
		}

		missing, err := r.MissingMembers(ctx, h.ID, []string{"a-1", "a-2", "a-3", "a-4"})
		if err != nil {
			t.Fatalf("missing members: %v", err)
		}
		if len(missing) != 2 || missing[0] != "a-3" || missing[1] != "a-4" {
			t.Fatalf("want [a-3 a-4], got %v", missing)
		}

		missing, err = r.MissingMembers(ctx, h.ID, []string{"a-1"})
		if err != nil {
			t.Fatalf("missing members subset: %v", err)
		}
		if len(missing) != 0 {
			t.Fatalf("want none missing, got %v", missing)
		}
	})

	t.Run("move is idempotent against target overlap", func(t *testing.T) {
		src := seedHerd(t, ctx, r, "owner-move", "source")
		tgt := seedHerd(t, ctx, r, "owner-move", "target")
		for _, id := range []string{"a-1", "a-2"} {
			if _, err := r.AddMember(ctx, src.ID, id); err != nil {
				t.Fatalf("seed source: %v", err)
			}
		}
		if _, err := r.AddMember(ctx, tgt.ID, "a-2"); err != nil {
			t.Fatalf("seed target overlap: %v", err)
		}

		if err := r.MoveMembers(ctx, src.ID, tgt.ID, []string{"a-1", "a-2"}); err != nil {
			t.Fatalf("move: %v", err)
		}

		got, err := r.Members(ctx, tgt.ID)
		if err != nil {
			t.Fatalf("target members: %v", err)
		}
		if len(got) != 2 || got[0] != "a-1" || got[1] != "a-2" {
			t.Fatalf("target after move: want [a-1 a-2], got %v", got)
		}
		got, err = r.Members(ctx, src.ID)
		if err != nil {
			t.Fatalf("source members: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("source must be drained, got %v", got)
		}
	})

	t.Run("union into is idempotent", func(t *testing.T) {
		src := seedHerd(t, ctx, r, "owner-union", "source")
		tgt := seedHerd(t, ctx, r, "owner-union", "target")
		for _, id := range []string{"a-1", "a-2"} {
			if _, err := r.AddMember(ctx, src.ID, id); err != nil {
				t.Fatalf("seed source: %v", err)
			}
		}
		if _, err := r.AddMember(ctx, tgt.ID, "a-2"); err != nil {
			t.Fatalf("seed target: %v", err)
		}

		for i := 0; i < 2; i++ {
			if err := r.UnionInto(ctx, tgt.ID, src.ID); err != nil {
				t.Fatalf("union pass %d: %v", i, err)
			}
		}

		got, err := r.Members(ctx, tgt.ID)
		if err != nil {
			t.Fatalf("target members: %v", err)
		}
		if len(got) != 2 || got[0] != "a-1" || got[1] != "a-2" {
			t.Fatalf("union result: want [a-1 a-2], got %v", got)
		}
	})

	t.Run("delete cascades memberships", func(t *testing.T) {
		h := seedHerd(t, ctx, r, "owner-del", "cull")
		if _, err := r.AddMember(ctx, h.ID, "a-1"); err != nil {
			t.Fatalf("seed member: %v", err)
		}

		if err := r.DeleteRow(ctx, h.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}

		if _, err := r.Get(ctx, "owner-del", "cull"); perr.CodeOf(err) != perr.ErrorCodeNotFound {
			t.Fatalf("want NotFound after delete, got %v", err)
		}

		var n int
		if err := st.PG.QueryRow(ctx, `select count(*) from herd_members where herd_id = $1`, h.ID).Scan(&n); err != nil {
			t.Fatalf("count members: %v", err)
		}
		if n != 0 {
			t.Fatalf("memberships must cascade with the herd, %d left", n)
		}
	})

	t.Run("lock and archive inside a transaction", func(t *testing.T) {
		h := seedHerd(t, ctx, r, "owner-lock", "winter")

		err := st.PG.Tx(ctx, func(q store.RowQuerier) error {
			tr := NewPG().Bind(q)
			locked, err := tr.GetForUpdate(ctx, "owner-lock", "winter")
			if err != nil {
				return err
			}
			if locked.ID != h.ID {
				t.Fatalf("locked wrong row: %q", locked.ID)
			}
			return tr.SetArchived(ctx, locked.ID, true)
		})
		if err != nil {
			t.Fatalf("tx: %v", err)
		}

		got, err := r.Get(ctx, "owner-lock", "winter")
		if err != nil {
			t.Fatalf("get after archive: %v", err)
		}
		if !got.Archived {
			t.Fatalf("archive flag must persist")
		}

		archived, err := r.ListByArchived(ctx, "owner-lock", true)
		if err != nil {
			t.Fatalf("list archived: %v", err)
		}
		if len(archived) != 1 || archived[0].ID != h.ID {
			t.Fatalf("archived listing: %#v", archived)
		}
	})
}
