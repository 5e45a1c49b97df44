package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const analysesSchema = `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		summary TEXT NOT NULL,
		risky_clauses TEXT NOT NULL DEFAULT '[]',
		explanations TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)
`

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite", filepath.Join(t.TempDir(), "analyses.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(analysesSchema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return db
}

func TestSQLiteStorePutGet(t *testing.T) {
	s := NewSQLiteStore(newTestDB(t))
	ctx := context.Background()

	id, err := s.Put(ctx, sampleAnalysis())
	if err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !reflect.DeepEqual(got, sampleAnalysis()) {
		t.Errorf("stored analysis mismatch: got %+v", got)
	}
}

func TestSQLiteStoreGetUnknownID(t *testing.T) {
	s := NewSQLiteStore(newTestDB(t))

	_, err := s.Get(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
