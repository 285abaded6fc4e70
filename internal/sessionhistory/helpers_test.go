package sessionhistory

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/baaaaaaaka/agent_history/internal/vscdb"
)

// writeUnit creates <root>/<name>/state.vscdb holding values and sets its
// mtime. It returns the store path.
func writeUnit(t *testing.T, root, name string, values map[string]string, mtime time.Time) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, vscdb.FileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE ItemTable (key TEXT UNIQUE ON CONFLICT REPLACE, value BLOB)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	for k, v := range values {
		if _, err := db.Exec(`INSERT INTO ItemTable (key, value) VALUES (?, ?)`, k, v); err != nil {
			t.Fatalf("insert %s: %v", k, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close sqlite: %v", err)
	}
	if !mtime.IsZero() {
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}
	return path
}

func writeDescriptor(t *testing.T, unitPath, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(filepath.Dir(unitPath), "workspace.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("write workspace.json: %v", err)
	}
}

func testEnv(home string) Environment {
	return Environment{
		Platform: PlatformLinux,
		Home:     home,
		Getenv:   func(string) string { return "" },
	}
}

func utcExtractor() Extractor {
	return Extractor{Provider: ProviderCursor, Location: time.UTC}
}
