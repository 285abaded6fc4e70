package config

import "strings"

// ProviderRoots returns the configured storage roots for a provider, or nil
// when the built-in locations should be used.
func (c Config) ProviderRoots(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	for key, pc := range c.Providers {
		if strings.ToLower(strings.TrimSpace(key)) != name {
			continue
		}
		var out []string
		for _, root := range pc.Roots {
			if root = strings.TrimSpace(root); root != "" {
				out = append(out, root)
			}
		}
		return out
	}
	return nil
}

// RootOverrides collects every provider that has roots configured, keyed by
// lower-case provider name.
func (c Config) RootOverrides() map[string][]string {
	out := map[string][]string{}
	for key := range c.Providers {
		name := strings.ToLower(strings.TrimSpace(key))
		if roots := c.ProviderRoots(name); len(roots) > 0 {
			out[name] = roots
		}
	}
	return out
}

func (c *Config) SetProviderRoots(name string, roots []string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	if c.Providers == nil {
		c.Providers = map[string]ProviderConfig{}
	}
	if len(roots) == 0 {
		delete(c.Providers, name)
		return
	}
	c.Providers[name] = ProviderConfig{Roots: append([]string(nil), roots...)}
}
