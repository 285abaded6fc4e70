package vscdb

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStore(t *testing.T, path string, values map[string]string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE ItemTable (key TEXT UNIQUE ON CONFLICT REPLACE, value BLOB)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	for k, v := range values {
		if _, err := db.Exec(`INSERT INTO ItemTable (key, value) VALUES (?, ?)`, k, v); err != nil {
			t.Fatalf("insert %s: %v", k, err)
		}
	}
}

func TestStoreValue(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "with space")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, FileName)
	writeStore(t, path, map[string]string{KeyPrompts: `[{"text":"a"}]`})

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer store.Close()

	got, ok, err := store.Value(KeyPrompts)
	if err != nil || !ok {
		t.Fatalf("expected value, got ok=%v err=%v", ok, err)
	}
	if got != `[{"text":"a"}]` {
		t.Fatalf("unexpected value: %q", got)
	}

	_, ok, err = store.Value(KeyComposerData)
	if err != nil {
		t.Fatalf("missing key should not error: %v", err)
	}
	if ok {
		t.Fatalf("expected missing key to report ok=false")
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), FileName)); err == nil {
		t.Fatalf("expected error for missing store")
	}
}

func TestOpenDoesNotCreateOrWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeStore(t, path, map[string]string{KeyHistoryEntries: `[]`})
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if _, err := store.db.Exec(`INSERT INTO ItemTable (key, value) VALUES ('x', 'y')`); err == nil {
		t.Fatalf("expected write to a read-only store to fail")
	}
	_ = store.Close()

	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) || after.Size() != before.Size() {
		t.Fatalf("store was modified")
	}
}

func TestValueOnNonStateDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("not a database"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, err := Open(path)
	if err != nil {
		return
	}
	defer store.Close()
	if _, _, err := store.Value(KeyPrompts); err == nil {
		t.Fatalf("expected error reading a non-sqlite file")
	}
}

func TestReadOnlyDSN(t *testing.T) {
	dsn := readOnlyDSN("/tmp/a b/state.vscdb")
	if !strings.HasPrefix(dsn, "file:///tmp/a%20b/state.vscdb") {
		t.Fatalf("unexpected dsn: %q", dsn)
	}
	if !strings.HasSuffix(dsn, "?mode=ro") {
		t.Fatalf("expected read-only mode, got %q", dsn)
	}
}
