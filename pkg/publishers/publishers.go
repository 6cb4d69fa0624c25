// Package publishers forwards search results to external sinks (HTTP endpoints and cloud queues).
package publishers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Adda-Baaj/newsq/internal/domain"
)

type configFile struct {
	Publishers []PublisherConfig `json:"publishers" yaml:"publishers"`
}

// ConfigRegistry holds the validated publisher definitions in file order.
// It is read-only after LoadRegistry.
type ConfigRegistry struct {
	publishers []PublisherConfig
	byID       map[string]int
}

// LoadRegistry loads publisher definitions from a YAML or JSON file after
// expanding ${VAR} references from the environment. Any problem with the
// file is reported as a ConfigError.
func LoadRegistry(path string) (*ConfigRegistry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, domain.NewConfigError("publishers file: path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewConfigError("publishers file: %v", err)
	}

	parsed, err := decodeConfigFile([]byte(os.ExpandEnv(string(raw))), filepath.Ext(path))
	if err != nil {
		return nil, domain.NewConfigError("publishers file %s: %v", path, err)
	}

	reg, err := newConfigRegistry(parsed.Publishers)
	if err != nil {
		return nil, domain.NewConfigError("publishers file %s: %v", path, err)
	}
	return reg, nil
}

func newConfigRegistry(cfgs []PublisherConfig) (*ConfigRegistry, error) {
	if len(cfgs) == 0 {
		return nil, errors.New("no publishers entries")
	}

	reg := &ConfigRegistry{
		publishers: make([]PublisherConfig, 0, len(cfgs)),
		byID:       make(map[string]int, len(cfgs)),
	}
	for i, raw := range cfgs {
		cfg := raw.normalized()
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if _, dup := reg.byID[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate publisher id %q", cfg.ID)
		}
		reg.byID[cfg.ID] = len(reg.publishers)
		reg.publishers = append(reg.publishers, cfg)
	}
	return reg, nil
}

// decodeConfigFile picks the decoder from the file extension. Unknown
// extensions try YAML first, then JSON.
func decodeConfigFile(data []byte, ext string) (configFile, error) {
	var out configFile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &out); err != nil {
			return configFile{}, fmt.Errorf("decode yaml publishers: %w", err)
		}
		return out, nil
	case ".json":
		if err := json.Unmarshal(data, &out); err != nil {
			return configFile{}, fmt.Errorf("decode json publishers: %w", err)
		}
		return out, nil
	}

	if err := yaml.Unmarshal(data, &out); err == nil {
		return out, nil
	}
	out = configFile{}
	if err := json.Unmarshal(data, &out); err == nil {
		return out, nil
	}
	return configFile{}, errors.New("format not recognized (expected YAML or JSON)")
}

// ByID returns the publisher config by id.
func (r *ConfigRegistry) ByID(id string) (PublisherConfig, bool) {
	if r == nil {
		return PublisherConfig{}, false
	}
	i, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return PublisherConfig{}, false
	}
	return r.publishers[i], true
}

// All returns a copy of every configured publisher.
func (r *ConfigRegistry) All() []PublisherConfig {
	if r == nil {
		return nil
	}
	out := make([]PublisherConfig, len(r.publishers))
	copy(out, r.publishers)
	return out
}

// Enabled returns the publishers that are enabled.
func (r *ConfigRegistry) Enabled() []PublisherConfig {
	var out []PublisherConfig
	for _, cfg := range r.All() {
		if cfg.EnabledValue() {
			out = append(out, cfg)
		}
	}
	return out
}
