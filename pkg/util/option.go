package util

// Option applies a single setting to a configuration value of type T.
// Registries, loaders and renderers in this module all accept their
// settings as a list of Option values.
//
// Example:
//
//	type loaderConfig struct {
//	    HostVersion string
//	}
//
//	func WithHostVersion(v string) util.Option[loaderConfig] {
//	    return util.FunctionalOption[loaderConfig](func(cfg *loaderConfig) {
//	        cfg.HostVersion = v
//	    })
//	}
type Option[T any] interface {
	ApplyTo(target *T)
}

// FunctionalOption adapts a plain function to the Option interface.
type FunctionalOption[T any] func(*T)

// ApplyTo implements the Option interface for FunctionalOption.
func (f FunctionalOption[T]) ApplyTo(target *T) {
	f(target)
}

// ApplyOptions applies opts to target in order; later options win.
func ApplyOptions[T any](target *T, opts ...Option[T]) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt.ApplyTo(target)
	}
}
