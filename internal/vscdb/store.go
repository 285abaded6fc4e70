// Package vscdb reads the SQLite key/value stores ("state.vscdb") that
// VS Code based editors keep per workspace. Stores are always opened
// read-only.
package vscdb

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const FileName = "state.vscdb"

const (
	KeyComposerData   = "composer.composerData"
	KeyPrompts        = "aiService.prompts"
	KeyHistoryEntries = "history.entries"
)

type Store struct {
	path string
	db   *sql.DB
}

func Open(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	db, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return &Store{path: path, db: db}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Value returns the raw value stored under key. A missing key is not an
// error; ok reports whether a row was found.
func (s *Store) Value(key string) (string, bool, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT value FROM ItemTable WHERE key = ? LIMIT 1`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s from %s: %w", key, s.path, err)
	}
	return string(raw), true, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func readOnlyDSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro"}
	return u.String()
}
