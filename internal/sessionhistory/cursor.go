package sessionhistory

import (
	"os"
	"path/filepath"

	"github.com/baaaaaaaka/agent_history/internal/vscdb"
)

const ProviderCursor = "cursor"

// Cursor reads composer sessions from Cursor's per-workspace state stores
// under User/workspaceStorage.
type Cursor struct {
	roots      []string
	searchPool int
	extractor  Extractor
}

func NewCursor(opts Options) *Cursor {
	ex := opts.Extractor
	ex.Provider = ProviderCursor
	return &Cursor{
		roots:      opts.Env.ResolveRoots(opts.candidates(ProviderCursor, CursorPaths)),
		searchPool: opts.searchPool(),
		extractor:  ex,
	}
}

func (c *Cursor) Name() string { return ProviderCursor }

func (c *Cursor) StorageRoots() []string {
	return append([]string(nil), c.roots...)
}

func (c *Cursor) List(limit int) ([]Record, error) {
	var pooled []Record
	for _, unit := range c.units() {
		pooled = append(pooled, c.extractor.Extract(unit)...)
	}
	return Aggregate(pooled, limit), nil
}

func (c *Cursor) Search(query string, limit int) ([]Record, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}
	pool, err := c.List(max(c.searchPool, limit))
	if err != nil {
		return nil, err
	}
	return Filter(pool, query, limit)
}

func (c *Cursor) units() []string {
	var units []string
	for _, root := range c.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			c.extractor.logger().Debug("skipping storage root", "path", root, "err", err)
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			unit := filepath.Join(root, entry.Name(), vscdb.FileName)
			if isFile(unit) {
				units = append(units, unit)
			}
		}
	}
	return units
}
