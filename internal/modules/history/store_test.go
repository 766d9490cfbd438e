// README: Ride history store tests (DB-backed, skipped without CAB_TEST_DSN).
package history

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestInsertOrReplaceUpserts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	rec := testRecord("h1", time.Now().UTC().Truncate(time.Second))
	if err := store.InsertOrReplace(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Re-archiving the same ride with a rating replaces the row.
	rec.Rating = 5
	if err := store.InsertOrReplace(ctx, rec); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	if got[0].Rating != 5 {
		t.Fatalf("rating = %d, want 5", got[0].Rating)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"old", "mid", "new"} {
		if err := store.InsertOrReplace(ctx, testRecord(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("rows = %d, want 3", len(got))
	}
	if got[0].ID != "new" || got[2].ID != "old" {
		t.Fatalf("order = %s, %s, %s; want newest first", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestDeleteByID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.InsertOrReplace(ctx, testRecord("gone", time.Now().UTC())); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.DeleteByID(ctx, "gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("rows after delete = %d, want 0", len(got))
	}

	// Deleting a missing id is not an error.
	if err := store.DeleteByID(ctx, "never-existed"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func testRecord(id string, at time.Time) Record {
	return Record{
		ID:            id,
		FromAddress:   "Karl Marx St 1",
		ToAddress:     "Lenin St 5",
		FromLat:       58.1387,
		FromLng:       52.6584,
		ToLat:         58.1300,
		ToLng:         52.6584,
		Tariff:        "ECONOMY",
		PaymentMethod: "CASH",
		Price:         150,
		DistanceKm:    0.97,
		DurationMin:   5,
		Status:        "COMPLETED",
		DriverName:    "Ivan",
		CreatedAt:     at,
	}
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("CAB_TEST_DSN")
	if dsn == "" {
		t.Skip("CAB_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE ride_history"); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return NewStore(db)
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	content, err := os.ReadFile(filepath.Join(root, "migrations", "0001_init.sql"))
	if err != nil {
		return err
	}
	for _, stmt := range splitSQL(stripSQLComments(string(content))) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	parts := strings.Split(input, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
