package sources

import (
	"sort"
	"strings"

	"github.com/Adda-Baaj/newsq/internal/domain"
)

// Registry maps source ids to sources. It is immutable once built.
type Registry struct {
	sources map[string]Source
	names   []string
}

// NewRegistry builds a registry for the provided sources. Nil entries are
// skipped; a later source with the same id replaces an earlier one.
func NewRegistry(srcs ...Source) *Registry {
	reg := &Registry{
		sources: make(map[string]Source, len(srcs)),
	}

	for _, s := range srcs {
		if s == nil {
			continue
		}
		reg.sources[s.ID()] = s
	}

	reg.names = make([]string, 0, len(reg.sources))
	for name := range reg.sources {
		reg.names = append(reg.names, name)
	}
	sort.Strings(reg.names)

	return reg
}

// Source returns the source registered under name. Lookup is case-sensitive.
func (r *Registry) Source(name string) (Source, error) {
	if r != nil {
		if s, ok := r.sources[name]; ok {
			return s, nil
		}
	}
	return nil, domain.NewSourceError("unknown source %q (valid sources: %s)", name, strings.Join(r.Names(), ", "))
}

// Names returns the registered ids in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len reports how many sources are registered.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.sources)
}

// Settings carries the per-provider options used by DefaultRegistry.
type Settings struct {
	Guardian Options
	NewsAPI  Options
}

// DefaultRegistry wires up the known providers.
func DefaultRegistry(client HTTPClient, s Settings) *Registry {
	if client == nil {
		client = DefaultHTTPClient(0)
	}

	return NewRegistry(
		NewGuardianSource(client, s.Guardian),
		NewNewsAPISource(client, s.NewsAPI),
	)
}
