package sessionhistory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/baaaaaaaka/agent_history/internal/vscdb"
)

// Extractor turns one state.vscdb into session records. It never returns an
// error: a store that cannot be read contributes nothing, and a single bad
// session entry is skipped without affecting its neighbours.
type Extractor struct {
	Provider string
	Location *time.Location
	Logger   *slog.Logger
}

func (e Extractor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (e Extractor) Extract(unitPath string) []Record {
	records, err := e.extract(unitPath)
	if err != nil {
		e.logger().Debug("skipping datastore", "path", unitPath, "err", err)
		return nil
	}
	return records
}

func (e Extractor) extract(unitPath string) ([]Record, error) {
	info, err := os.Stat(unitPath)
	if err != nil {
		return nil, err
	}
	mtime := timeToSeconds(info.ModTime())

	store, err := vscdb.Open(unitPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	workspacePath, workspace := resolveWorkspace(unitPath, store)
	messageCount := promptCount(store)

	raw, ok, err := store.Value(vscdb.KeyComposerData)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	composers, err := composerEntries(raw)
	if err != nil {
		return nil, err
	}

	var records []Record
	for i, entry := range composers {
		rec, ok, err := e.recordFromEntry(entry, mtime)
		if err != nil {
			e.logger().Debug("skipping session entry", "path", unitPath, "index", i, "err", err)
			continue
		}
		if !ok {
			continue
		}
		rec.WorkspaceName = workspace
		rec.WorkspacePath = workspacePath
		rec.MessageCount = messageCount
		records = append(records, rec)
	}
	return records, nil
}

// promptCount is shared by every session of a store: the prompt log is kept
// per workspace, not per session.
func promptCount(store valueReader) int {
	raw, ok, err := store.Value(vscdb.KeyPrompts)
	if err != nil || !ok || !gjson.Valid(raw) {
		return 0
	}
	prompts := gjson.Parse(raw)
	if !prompts.IsArray() {
		return 0
	}
	return len(prompts.Array())
}

var errMalformedComposerData = errors.New("malformed composer data")

func composerEntries(raw string) ([]gjson.Result, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON", errMalformedComposerData)
	}
	root := gjson.Parse(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected object, got %s", errMalformedComposerData, root.Type)
	}
	all := root.Get("allComposers")
	if all.Type == gjson.Null {
		return nil, nil
	}
	if !all.IsArray() {
		return nil, fmt.Errorf("%w: allComposers is %s", errMalformedComposerData, all.Type)
	}
	return all.Array(), nil
}

func (e Extractor) recordFromEntry(entry gjson.Result, mtime float64) (Record, bool, error) {
	if !entry.IsObject() {
		return Record{}, false, fmt.Errorf("expected object, got %s", entry.Type)
	}
	name, err := stringField(entry, "name")
	if err != nil {
		return Record{}, false, err
	}
	if strings.TrimSpace(name) == "" {
		return Record{}, false, nil
	}
	subtitle, err := stringField(entry, "subtitle")
	if err != nil {
		return Record{}, false, err
	}
	ts, err := resolveTimestamp(entry, sessionTimestampSources, mtime)
	if err != nil {
		return Record{}, false, err
	}
	var stats Stats
	if stats.LinesAdded, err = intField(entry, "totalLinesAdded"); err != nil {
		return Record{}, false, err
	}
	if stats.LinesRemoved, err = intField(entry, "totalLinesRemoved"); err != nil {
		return Record{}, false, err
	}
	if stats.FilesChanged, err = intField(entry, "filesChangedCount"); err != nil {
		return Record{}, false, err
	}
	archived, err := boolField(entry, "isArchived")
	if err != nil {
		return Record{}, false, err
	}

	rec := Record{
		Provider:  e.Provider,
		Title:     name,
		Stats:     stats,
		FileTypes: ParseFileTypes(subtitle),
		Subtitle:  subtitle,
		Archived:  archived,
	}
	rec.setTimestamp(ts, e.Location)
	return rec, true, nil
}
