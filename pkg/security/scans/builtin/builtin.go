// Package builtin provides the security scan factories shipped with secscan.
package builtin

import (
	"context"

	"github.com/opendatahub-io/secscan/pkg/security/scan"
)

// All returns new instances of the built-in factories in registration order.
func All() []scan.Factory {
	return []scan.Factory{
		NewScriptFactory(),
		NewXSSFactory(),
		NewXMLBombFactory(),
		NewMaliciousAttachmentFactory(),
		NewXPathInjectionFactory(),
		NewInvalidTypesFactory(),
		NewBoundaryFactory(),
		NewSQLInjectionFactory(),
		NewMalformedXMLFactory(),
		NewFuzzerFactory(),
	}
}

// NewRegistry creates a registry holding the built-in factories followed by
// the factories of the configured sources.
func NewRegistry(ctx context.Context, opts ...scan.Option) (*scan.Registry, error) {
	opts = append([]scan.Option{scan.WithFactories(All()...)}, opts...)

	return scan.NewDefaultRegistry(ctx, opts...)
}
