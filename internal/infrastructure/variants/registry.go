// Package variants loads the hero block registrations from YAML.
package variants

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
)

//go:embed variants.yaml
var embeddedVariants []byte

type file struct {
	Variants []hero.Variant `yaml:"variants"`
}

// Registry holds the variants a block can be created as.
type Registry struct {
	variants map[string]hero.Variant
	order    []string
	mu       sync.RWMutex
}

// Load reads the variants from path, or the embedded set when path is empty.
func Load(path string, logger *logging.ChanneledLogger) (*Registry, error) {
	data := embeddedVariants
	source := "embedded"
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read variants file: %w", err)
		}
		data = b
		source = path
	}

	list, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse variants from %s: %w", source, err)
	}

	registry, err := NewRegistry(list)
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Startup().Info("Hero variants loaded", "source", source, "count", len(list), "names", registry.Names())
	}
	return registry, nil
}

// Parse decodes a variants document.
func Parse(data []byte) ([]hero.Variant, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Variants) == 0 {
		return nil, fmt.Errorf("no variants defined")
	}
	return f.Variants, nil
}

// Default returns a registry of the built-in variants.
func Default() *Registry {
	r, err := NewRegistry(hero.BuiltinVariants())
	if err != nil {
		panic(err)
	}
	return r
}

// NewRegistry validates the variants and indexes them by name.
func NewRegistry(list []hero.Variant) (*Registry, error) {
	r := &Registry{variants: make(map[string]hero.Variant, len(list))}

	var err error
	for i, v := range list {
		v = v.Normalized()
		if v.Name == "" {
			err = multierr.Append(err, fmt.Errorf("variant %d has no name", i))
			continue
		}
		if _, dup := r.variants[v.Name]; dup {
			err = multierr.Append(err, fmt.Errorf("variant %s defined twice", v.Name))
			continue
		}
		if verr := defaultsPatch(v.Defaults).Validate(v); verr != nil {
			err = multierr.Append(err, fmt.Errorf("variant %s defaults: %w", v.Name, verr))
			continue
		}
		r.variants[v.Name] = v
		r.order = append(r.order, v.Name)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func defaultsPatch(d hero.Defaults) hero.Patch {
	opacity := d.BackgroundOpacity
	width := d.ContentWidth
	return hero.Patch{
		BackgroundColor:   d.BackgroundColor,
		BackgroundOpacity: &opacity,
		ContentWidth:      &width,
		ContentTextColor:  d.ContentTextColor,
	}
}

// Get returns the named variant.
func (r *Registry) Get(name string) (hero.Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.variants[name]
	if !ok {
		return hero.Variant{}, fmt.Errorf("%w: %s", hero.ErrUnknownVariant, name)
	}
	return v, nil
}

// Resolve returns the named variant, or the default one when name is empty.
func (r *Registry) Resolve(name string) (hero.Variant, error) {
	if name == "" {
		return r.DefaultVariant(), nil
	}
	return r.Get(name)
}

// Mapper returns a presentation mapper bound to the named variant.
func (r *Registry) Mapper(name string) (hero.Mapper, error) {
	v, err := r.Resolve(name)
	if err != nil {
		return hero.Mapper{}, err
	}
	return hero.NewMapper(v), nil
}

// DefaultVariant is the first registered variant.
func (r *Registry) DefaultVariant() hero.Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.variants[r.order[0]]
}

// List returns the variants in registration order.
func (r *Registry) List() []hero.Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]hero.Variant, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.variants[name])
	}
	return out
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
