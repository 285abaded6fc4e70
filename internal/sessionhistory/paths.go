package sessionhistory

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

type Platform string

const (
	PlatformMacOS   Platform = "macos"
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
	PlatformUnknown Platform = "unknown"
)

func PlatformFor(goos string) Platform {
	switch goos {
	case "darwin":
		return PlatformMacOS
	case "linux":
		return PlatformLinux
	case "windows":
		return PlatformWindows
	}
	return PlatformUnknown
}

// PathTable holds one candidate storage root per platform, before expansion.
type PathTable map[Platform]string

var (
	CursorPaths = PathTable{
		PlatformMacOS:   "~/Library/Application Support/Cursor/User/workspaceStorage",
		PlatformLinux:   "~/.config/Cursor/User/workspaceStorage",
		PlatformWindows: "%APPDATA%/Cursor/User/workspaceStorage",
	}
	ClaudePaths = PathTable{
		PlatformMacOS:   "~/Library/Application Support/Claude",
		PlatformLinux:   "~/.config/claude",
		PlatformWindows: "%APPDATA%/Claude",
	}
)

// Environment is everything path resolution reads from the process, so
// tests can supply their own.
type Environment struct {
	Platform Platform
	Home     string
	Getenv   func(string) string
}

func CurrentEnvironment() Environment {
	home, _ := os.UserHomeDir()
	return Environment{
		Platform: PlatformFor(runtime.GOOS),
		Home:     home,
		Getenv:   os.Getenv,
	}
}

func (env Environment) getenv(key string) string {
	if env.Getenv == nil {
		return ""
	}
	return env.Getenv(key)
}

// ExpandPath applies home-directory and environment-variable expansion.
// Both %VAR% and $VAR forms are understood; unset %VAR% references are kept
// verbatim.
func (env Environment) ExpandPath(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return ""
	}
	p = expandPercentVars(p, env.getenv)
	p = os.Expand(p, env.getenv)
	if env.Home != "" {
		if p == "~" {
			p = env.Home
		} else if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
			p = filepath.Join(env.Home, p[2:])
		}
	}
	return filepath.Clean(p)
}

func expandPercentVars(s string, getenv func(string) string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start+1:], '%')
		if end < 0 {
			break
		}
		end += start + 1
		name := s[start+1 : end]
		if val := getenv(name); name != "" && val != "" {
			b.WriteString(s[:start])
			b.WriteString(val)
		} else {
			b.WriteString(s[:end])
			s = s[end:]
			continue
		}
		s = s[end+1:]
	}
	b.WriteString(s)
	return b.String()
}

// ResolveRoots expands the candidates and keeps the ones that exist as
// directories. A missing root is not an error.
func (env Environment) ResolveRoots(candidates []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, c := range candidates {
		p := env.ExpandPath(c)
		if p == "" || seen[p] || !isDir(p) {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func (t PathTable) Candidates(platform Platform) []string {
	if p, ok := t[platform]; ok && p != "" {
		return []string{p}
	}
	return nil
}

func isDir(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
