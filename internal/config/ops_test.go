package config

import "testing"

func TestProviderRoots(t *testing.T) {
	cfg := Default()
	if got := cfg.ProviderRoots("cursor"); got != nil {
		t.Fatalf("expected no roots by default, got %#v", got)
	}

	cfg.Providers = map[string]ProviderConfig{
		"Cursor": {Roots: []string{" /a ", "", "/b"}},
	}
	got := cfg.ProviderRoots("cursor")
	if len(got) != 2 || got[0] != "/a" || got[1] != "/b" {
		t.Fatalf("unexpected roots: %#v", got)
	}
	if cfg.ProviderRoots("") != nil {
		t.Fatalf("expected empty name to return nil")
	}
}

func TestRootOverrides(t *testing.T) {
	cfg := Default()
	cfg.SetProviderRoots("cursor", []string{"/a"})
	cfg.SetProviderRoots("claude", nil)
	cfg.Providers["empty"] = ProviderConfig{Roots: []string{"  "}}

	got := cfg.RootOverrides()
	if len(got) != 1 {
		t.Fatalf("expected one override, got %#v", got)
	}
	if roots := got["cursor"]; len(roots) != 1 || roots[0] != "/a" {
		t.Fatalf("unexpected cursor roots: %#v", roots)
	}
}

func TestSetProviderRootsRemoves(t *testing.T) {
	cfg := Default()
	cfg.SetProviderRoots("cursor", []string{"/a"})
	cfg.SetProviderRoots("CURSOR", nil)
	if _, ok := cfg.Providers["cursor"]; ok {
		t.Fatalf("expected cursor override to be removed")
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	cfg := Default()
	cfg.Defaults.SearchPool = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected zero search pool to be rejected")
	}
}
