package sessionhistory

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/baaaaaaaka/agent_history/internal/vscdb"
)

const (
	workspaceDescriptorName = "workspace.json"
	historyEntriesScanned   = 3
	fileURIPrefix           = "file://"
)

type valueReader interface {
	Value(key string) (string, bool, error)
}

type workspaceSource struct {
	name    string
	resolve func(unitPath string, store valueReader) (string, bool)
}

var workspaceSources = []workspaceSource{
	{name: "descriptor", resolve: workspaceFromDescriptor},
	{name: "history", resolve: workspaceFromHistory},
}

// resolveWorkspace returns the workspace path and display name for the
// store at unitPath. Both are Unknown when no source yields a path.
func resolveWorkspace(unitPath string, store valueReader) (string, string) {
	for _, src := range workspaceSources {
		if p, ok := src.resolve(unitPath, store); ok {
			return p, workspaceName(p)
		}
	}
	return Unknown, Unknown
}

func workspaceName(p string) string {
	if p == "" || p == Unknown {
		return Unknown
	}
	name := path.Base(filepath.ToSlash(p))
	if name == "." || name == "/" {
		return p
	}
	return name
}

func workspaceFromDescriptor(unitPath string, _ valueReader) (string, bool) {
	data, err := os.ReadFile(filepath.Join(filepath.Dir(unitPath), workspaceDescriptorName))
	if err != nil || !gjson.ValidBytes(data) {
		return "", false
	}
	folder := gjson.GetBytes(data, "folder")
	if folder.Type != gjson.String {
		return "", false
	}
	p := fileURIToPath(folder.Str)
	if strings.TrimSpace(p) == "" {
		return "", false
	}
	return p, true
}

func workspaceFromHistory(_ string, store valueReader) (string, bool) {
	if store == nil {
		return "", false
	}
	raw, ok, err := store.Value(vscdb.KeyHistoryEntries)
	if err != nil || !ok || !gjson.Valid(raw) {
		return "", false
	}
	entries := gjson.Parse(raw)
	if !entries.IsArray() {
		return "", false
	}
	for i, entry := range entries.Array() {
		if i >= historyEntriesScanned {
			break
		}
		resource := entry.Get("editor.resource")
		if resource.Type != gjson.String || !strings.HasPrefix(resource.Str, fileURIPrefix) {
			continue
		}
		file := fileURIToPath(resource.Str)
		return path.Dir(file), true
	}
	return "", false
}

func fileURIToPath(raw string) string {
	p := strings.TrimPrefix(raw, fileURIPrefix)
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	return p
}
