package scan

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-logr/logr"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/opendatahub-io/secscan/pkg/security/ui"
	"github.com/opendatahub-io/secscan/pkg/teststep"
	"github.com/opendatahub-io/secscan/pkg/util"
)

var (
	// ErrNameConflict is returned by Register when the display name of a factory
	// is already bound to a factory of a different type.
	ErrNameConflict = errors.New("scan name already bound to a different type")

	// ErrUnknownType is returned when no factory is registered for a type.
	ErrUnknownType = errors.New("unknown scan type")
)

type registryConfig struct {
	logger    logr.Logger
	factories []Factory
	sources   []FactorySource
}

// Option configures a Registry.
type Option = util.Option[registryConfig]

// WithLogger sets the logger used to report registry changes.
func WithLogger(logger logr.Logger) Option {
	return util.FunctionalOption[registryConfig](func(cfg *registryConfig) {
		cfg.logger = logger
	})
}

// WithFactories adds factories registered, in order, when the registry is built.
func WithFactories(factories ...Factory) Option {
	return util.FunctionalOption[registryConfig](func(cfg *registryConfig) {
		cfg.factories = append(cfg.factories, factories...)
	})
}

// WithSources adds sources queried by NewDefaultRegistry after the initial
// factories have been registered.
func WithSources(sources ...FactorySource) Option {
	return util.FunctionalOption[registryConfig](func(cfg *registryConfig) {
		cfg.sources = append(cfg.sources, sources...)
	})
}

// Registry catalogs scan factories by display name and by type.
//
// At most one factory is registered per type and per name. All three indexes
// are updated together under a single lock, so concurrent readers never see a
// partially applied change.
type Registry struct {
	mu         sync.RWMutex
	log        logr.Logger
	byName     map[string]Factory
	byType     map[string]Factory
	typeOfName map[string]string
}

// NewRegistry creates a registry holding the factories given through
// WithFactories. Sources are ignored; use NewDefaultRegistry to query them.
func NewRegistry(opts ...Option) *Registry {
	return newRegistry(newRegistryConfig(opts...))
}

func newRegistryConfig(opts ...Option) registryConfig {
	cfg := registryConfig{logger: logr.Discard()}
	util.ApplyOptions(&cfg, opts...)

	return cfg
}

func newRegistry(cfg registryConfig) *Registry {
	r := &Registry{
		log:        cfg.logger,
		byName:     make(map[string]Factory),
		byType:     make(map[string]Factory),
		typeOfName: make(map[string]string),
	}

	for _, f := range cfg.factories {
		r.Add(f)
	}

	return r
}

// NewDefaultRegistry creates a registry with the factories given through
// WithFactories, then adds the factories of every source in the order they
// are returned. A failing source aborts construction.
func NewDefaultRegistry(ctx context.Context, opts ...Option) (*Registry, error) {
	cfg := newRegistryConfig(opts...)
	r := newRegistry(cfg)

	for _, src := range cfg.sources {
		factories, err := src.ScanFactories(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading factories from source: %w", err)
		}

		for _, f := range factories {
			r.Add(f)
		}
	}

	r.log.V(1).Info("scan registry ready", "factories", r.Len())

	return r, nil
}

// Add registers factory. A factory already registered with the same type is
// removed first. If the display name is bound to a factory of another type,
// that factory is replaced and dropped from the registry entirely.
func (r *Registry) Add(factory Factory) {
	if factory == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.upsert(factory)
}

// Register is the strict form of Add: it fails with ErrNameConflict instead
// of replacing a factory of a different type that uses the same name.
func (r *Registry) Register(factory Factory) error {
	if factory == nil {
		return errors.New("factory must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := factory.Name()
	if t, ok := r.typeOfName[name]; ok && t != factory.Type() {
		return fmt.Errorf("registering %q as %q: %w (bound to %q)", factory.Type(), name, ErrNameConflict, t)
	}

	r.upsert(factory)

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(factory Factory) {
	if err := r.Register(factory); err != nil {
		panic(err)
	}
}

// upsert must be called with the write lock held.
func (r *Registry) upsert(factory Factory) {
	typ := factory.Type()
	name := factory.Name()

	if old, ok := r.byType[typ]; ok {
		r.delete(old.Name(), typ)
		r.log.V(1).Info("replacing scan factory", "type", typ, "previous", old.Name(), "name", name)
	}

	if oldType, ok := r.typeOfName[name]; ok && oldType != typ {
		r.delete(name, oldType)
		r.log.Info("scan name reassigned, dropping previous factory", "name", name, "previous", oldType, "type", typ)
	}

	r.byName[name] = factory
	r.byType[typ] = factory
	r.typeOfName[name] = typ
}

func (r *Registry) delete(name string, typ string) {
	delete(r.byName, name)
	delete(r.typeOfName, name)
	delete(r.byType, typ)
}

// Remove unregisters the factory with the given type and reports whether one
// was registered.
func (r *Registry) Remove(typ string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.byType[typ]
	if !ok {
		return false
	}

	r.delete(f.Name(), typ)

	return true
}

// Get returns the factory registered for typ.
func (r *Registry) Get(typ string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byType[typ]

	return f, ok
}

// GetByName returns the factory registered under the display name.
func (r *Registry) GetByName(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typ, ok := r.typeOfName[name]
	if !ok {
		return nil, false
	}

	f, ok := r.byType[typ]

	return f, ok
}

// Lookup resolves key as a type first and as a display name second.
func (r *Registry) Lookup(key string) (Factory, bool) {
	if f, ok := r.Get(key); ok {
		return f, true
	}

	return r.GetByName(key)
}

// TypeForName returns the type bound to a display name.
func (r *Registry) TypeForName(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typ, ok := r.typeOfName[name]

	return typ, ok
}

// Has returns true if a factory is registered for the type of cfg.
func (r *Registry) Has(cfg Config) bool {
	if cfg == nil {
		return false
	}

	_, ok := r.Get(cfg.ScanType())

	return ok
}

// Names returns the display names of all registered factories, sorted.
func (r *Registry) Names() []string {
	return r.names(func(Factory) bool { return true })
}

// NamesFor returns the sorted display names of the factories applicable to step.
func (r *Registry) NamesFor(step *teststep.TestStep) []string {
	return r.names(func(f Factory) bool { return f.CanApply(step) })
}

func (r *Registry) names(include func(Factory) bool) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := sets.New[string]()

	for name, f := range r.byName {
		if include(f) {
			names.Insert(name)
		}
	}

	return sets.List(names)
}

// List returns all registered factories sorted by display name.
func (r *Registry) List() []Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factories := make([]Factory, 0, len(r.byName))
	for _, f := range r.byName {
		factories = append(factories, f)
	}

	sort.Slice(factories, func(i int, j int) bool {
		return factories[i].Name() < factories[j].Name()
	})

	return factories
}

// ListByPattern returns the factories whose type matches pattern, sorted by
// display name. See matchesPattern for the accepted syntax.
func (r *Registry) ListByPattern(pattern string) ([]Factory, error) {
	matched := make([]Factory, 0)

	for _, f := range r.List() {
		ok, err := matchesPattern(f, pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern matching: %w", err)
		}

		if ok {
			matched = append(matched, f)
		}
	}

	return matched, nil
}

// Len returns the number of registered factories.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byName)
}

// ValidateConfig checks that a factory exists for cfg and, for ScanConfig
// values, that the settings decode into the factory's settings.
func (r *Registry) ValidateConfig(cfg Config) error {
	if cfg == nil {
		return errors.New("scan config must not be nil")
	}

	f, ok := r.Get(cfg.ScanType())
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, cfg.ScanType())
	}

	sc, ok := cfg.(*ScanConfig)
	if !ok {
		return nil
	}

	settings := f.Settings()
	if settings == nil {
		if len(sc.Settings) > 0 {
			return fmt.Errorf("scan %q does not accept settings", f.Type())
		}

		return nil
	}

	return sc.Decode(settings)
}

// UIBuilder returns a new configuration form builder.
func (r *Registry) UIBuilder() *ui.DialogBuilder {
	return ui.NewDialogBuilder()
}
