// Package scan holds the registry of security scan factories.
//
// A Factory describes one kind of security scan: a stable type identifier, a
// display name, the settings the scan accepts and the test steps it can be
// attached to. The Registry catalogs factories by both keys so that hosts can
// enumerate the scans applicable to a step and resolve a stored configuration
// back to its factory.
package scan

import (
	"context"

	"github.com/opendatahub-io/secscan/pkg/teststep"
)

// Factory is the capability set every security scan factory implements.
type Factory interface {
	// Type returns the stable machine identifier, unique within a registry
	// (e.g. "XSSSecurityScan").
	Type() string

	// Name returns the human-readable display name (e.g. "Cross Site Scripting").
	Name() string

	// Description returns a one-line summary of what the scan does.
	Description() string

	// CanApply returns true if the factory can produce a usable scan for step.
	CanApply(step *teststep.TestStep) bool

	// Settings returns a newly allocated value holding the default settings of
	// the scan, typically a pointer to a struct. Decoding a Config into it
	// validates the configuration.
	Settings() any
}

// Config is a stored scan configuration.
type Config interface {
	// ScanType returns the type identifier of the factory the config belongs to.
	ScanType() string
}

// FactorySource contributes factories beyond the built-in set, typically from
// plugins discovered at start-up.
type FactorySource interface {
	ScanFactories(ctx context.Context) ([]Factory, error)
}

// FactorySourceFunc adapts a function to FactorySource.
type FactorySourceFunc func(ctx context.Context) ([]Factory, error)

func (f FactorySourceFunc) ScanFactories(ctx context.Context) ([]Factory, error) {
	return f(ctx)
}
