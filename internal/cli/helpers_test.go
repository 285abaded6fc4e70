package cli

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/baaaaaaaka/agent_history/internal/sessionhistory"
	"github.com/baaaaaaaka/agent_history/internal/vscdb"
)

var testNow = time.Date(2023, 11, 15, 12, 0, 0, 0, time.UTC)

// writeStore creates <root>/<name>/state.vscdb with the given keys.
func writeStore(t *testing.T, root, name string, values map[string]string) string {
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
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE ItemTable (key TEXT UNIQUE ON CONFLICT REPLACE, value BLOB)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	for k, v := range values {
		if _, err := db.Exec(`INSERT INTO ItemTable (key, value) VALUES (?, ?)`, k, v); err != nil {
			t.Fatalf("insert %s: %v", k, err)
		}
	}
	return path
}

// writeConfig writes a config file pointing the cursor provider at root.
func writeConfig(t *testing.T, root, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := extra + "\n[providers.cursor]\nroots = ['" + root + "']\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// sampleRoot holds two workspaces with three distinct sessions, one of
// which appears in both.
func sampleRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	api := writeStore(t, root, "ws1", map[string]string{
		vscdb.KeyPrompts: `[{"text":"a"},{"text":"b"}]`,
		vscdb.KeyComposerData: `{"allComposers":[
			{"name":"Refactor cache","subtitle":"cache.go, cache_test.go","lastUpdatedAt":1700000000000},
			{"name":"Add login","lastUpdatedAt":1699990000000}
		]}`,
	})
	if err := os.WriteFile(filepath.Join(filepath.Dir(api), "workspace.json"), []byte(`{"folder":"file:///src/api"}`), 0o644); err != nil {
		t.Fatalf("write workspace.json: %v", err)
	}
	writeStore(t, root, "ws2", map[string]string{
		vscdb.KeyHistoryEntries: `[{"editor":{"resource":"file:///src/web/index.ts"}}]`,
		vscdb.KeyComposerData: `{"allComposers":[
			{"name":"Style header","subtitle":"header.css","lastUpdatedAt":1700000100000}
		]}`,
	})
	return root
}

func runCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	opts := &rootOptions{
		env: func() sessionhistory.Environment {
			return sessionhistory.Environment{
				Platform: sessionhistory.PlatformLinux,
				Home:     home,
				Getenv:   func(string) string { return "" },
			}
		},
		now:         func() time.Time { return testNow },
		interactive: func() bool { return false },
	}
	cmd := newRootCmdWith(opts)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
