// Package plugin holds factories contributed by plugins and loads scan
// plugins from manifest files.
package plugin

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/logr"

	"github.com/opendatahub-io/secscan/pkg/security/scan"
)

// Kind identifies the capability a contributed factory provides.
type Kind string

const (
	// KindSecurityScan is the kind of scan.Factory contributions.
	KindSecurityScan Kind = "security-scan"
)

// FactoryRegistry keeps plugin contributed factories grouped by kind, in the
// order they were added.
type FactoryRegistry struct {
	mu        sync.RWMutex
	log       logr.Logger
	factories map[Kind][]any
}

// NewFactoryRegistry creates an empty registry.
func NewFactoryRegistry(log logr.Logger) *FactoryRegistry {
	return &FactoryRegistry{
		log:       log,
		factories: make(map[Kind][]any),
	}
}

// Add contributes a factory of the given kind.
func (r *FactoryRegistry) Add(kind Kind, factory any) {
	if factory == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[kind] = append(r.factories[kind], factory)
}

// AddScanFactories contributes scan factories.
func (r *FactoryRegistry) AddScanFactories(factories ...scan.Factory) {
	for _, f := range factories {
		r.Add(KindSecurityScan, f)
	}
}

// Factories returns a copy of the factories contributed for kind.
func (r *FactoryRegistry) Factories(kind Kind) []any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]any, len(r.factories[kind]))
	copy(out, r.factories[kind])

	return out
}

// ScanFactories implements scan.FactorySource. Contributions of the
// security-scan kind that are not scan factories are skipped.
func (r *FactoryRegistry) ScanFactories(_ context.Context) ([]scan.Factory, error) {
	contributed := r.Factories(KindSecurityScan)
	out := make([]scan.Factory, 0, len(contributed))

	for _, c := range contributed {
		f, ok := c.(scan.Factory)
		if !ok {
			r.log.Info("skipping contribution that is not a scan factory", "type", fmt.Sprintf("%T", c))

			continue
		}

		out = append(out, f)
	}

	return out, nil
}
