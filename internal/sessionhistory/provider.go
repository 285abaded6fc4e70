package sessionhistory

// Provider is one assistant tool whose local session history can be read.
type Provider interface {
	Name() string
	// StorageRoots returns the existing storage directories for this
	// provider on the current machine.
	StorageRoots() []string
	List(limit int) ([]Record, error)
	Search(query string, limit int) ([]Record, error)
}

type ProviderInfo struct {
	Name      string   `json:"name" yaml:"name"`
	Available bool     `json:"available" yaml:"available"`
	Paths     []string `json:"paths" yaml:"paths"`
}

func Describe(p Provider) ProviderInfo {
	roots := p.StorageRoots()
	if roots == nil {
		roots = []string{}
	}
	return ProviderInfo{
		Name:      p.Name(),
		Available: len(roots) > 0,
		Paths:     roots,
	}
}

// Options configures the built-in providers. Zero values select defaults.
type Options struct {
	Env        Environment
	Roots      map[string][]string
	SearchPool int
	Extractor  Extractor
}

func (o Options) candidates(name string, table PathTable) []string {
	if roots, ok := o.Roots[name]; ok && len(roots) > 0 {
		return roots
	}
	return table.Candidates(o.Env.Platform)
}

func (o Options) searchPool() int {
	if o.SearchPool > 0 {
		return o.SearchPool
	}
	return DefaultSearchPool
}
