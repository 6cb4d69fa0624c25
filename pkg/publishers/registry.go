package publishers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Adda-Baaj/newsq/internal/domain"
)

// Builder creates a Publisher from a validated config entry.
type Builder func(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error)

// Factory maps publisher types to builders. It is immutable once built.
type Factory struct {
	builders map[string]Builder
}

// NewFactory returns a Factory for builders. Blank types and nil builders are skipped.
func NewFactory(builders map[string]Builder) *Factory {
	f := &Factory{builders: make(map[string]Builder, len(builders))}
	for typ, b := range builders {
		typ = strings.ToLower(strings.TrimSpace(typ))
		if typ == "" || b == nil {
			continue
		}
		f.builders[typ] = b
	}
	return f
}

// DefaultFactory knows the http and queue publishers.
func DefaultFactory() *Factory {
	return NewFactory(map[string]Builder{
		TypeHTTP:  newHTTPPublisher,
		TypeQueue: newQueuePublisher,
	})
}

// Types returns the registered publisher types, sorted.
func (f *Factory) Types() []string {
	out := make([]string, 0, len(f.builders))
	for typ := range f.builders {
		out = append(out, typ)
	}
	sort.Strings(out)
	return out
}

// Build returns the publisher for cfg. Unknown types and builder failures are ConfigErrors.
func (f *Factory) Build(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.Type == "" {
		return nil, domain.NewConfigError("publisher %q has no type configured", cfg.ID)
	}
	builder, ok := f.builders[strings.ToLower(cfg.Type)]
	if !ok {
		return nil, domain.NewConfigError("no publisher registered for type %q (known: %s)",
			cfg.Type, strings.Join(f.Types(), ", "))
	}

	pub, err := builder(ctx, cfg, ensureLogger(log))
	if err != nil {
		return nil, domain.NewConfigError("build publisher %q: %v", cfg.ID, err)
	}
	return pub, nil
}

// BuildEnabled builds every enabled publisher in reg, stopping at the first failure.
func (f *Factory) BuildEnabled(ctx context.Context, reg *ConfigRegistry, log Logger) ([]Publisher, error) {
	cfgs := reg.Enabled()
	pubs := make([]Publisher, 0, len(cfgs))
	for _, cfg := range cfgs {
		pub, err := f.Build(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, pub)
	}
	return pubs, nil
}

// PublishAll delivers evt to every publisher. A failing publisher does not
// stop the others; all failures are joined in the returned error.
func PublishAll(ctx context.Context, pubs []Publisher, evt Event, log Logger) error {
	log = ensureLogger(log)

	var errs []error
	for _, p := range pubs {
		start := time.Now()
		if err := p.Publish(ctx, evt); err != nil {
			log.WarnObj("publish failed", "publish_error", map[string]any{
				"publisher_id": p.ID(),
				"type":         p.Type(),
				"event_id":     evt.ID,
				"error":        err.Error(),
			})
			errs = append(errs, fmt.Errorf("publisher %s: %w", p.ID(), err))
			continue
		}
		log.InfoObj("published search result", "publish_done", map[string]any{
			"publisher_id": p.ID(),
			"event_id":     evt.ID,
			"articles":     len(evt.Articles),
			"took_ms":      time.Since(start).Milliseconds(),
		})
	}
	return errors.Join(errs...)
}
