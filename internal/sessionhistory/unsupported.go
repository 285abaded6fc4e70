package sessionhistory

const ProviderClaude = "claude"

// Unsupported is a provider whose storage format is not read yet. It still
// reports its storage roots but never returns sessions.
type Unsupported struct {
	name  string
	roots []string
}

func NewUnsupported(name string, table PathTable, opts Options) *Unsupported {
	return &Unsupported{
		name:  name,
		roots: opts.Env.ResolveRoots(opts.candidates(name, table)),
	}
}

func (u *Unsupported) Name() string { return u.name }

func (u *Unsupported) StorageRoots() []string {
	return append([]string(nil), u.roots...)
}

func (u *Unsupported) List(int) ([]Record, error) {
	return nil, nil
}

func (u *Unsupported) Search(query string, _ int) ([]Record, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}
	return nil, nil
}
