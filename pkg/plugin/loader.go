package plugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/blang/semver/v4"
	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/yaml"

	"github.com/opendatahub-io/secscan/pkg/util"
)

const defaultConcurrency = 4

type loaderConfig struct {
	hostVersion semver.Version
	logger      logr.Logger
	concurrency int
}

// LoaderOption configures manifest loading.
type LoaderOption = util.Option[loaderConfig]

// WithHostVersion sets the version plugin requirements are checked against.
func WithHostVersion(v semver.Version) LoaderOption {
	return util.FunctionalOption[loaderConfig](func(cfg *loaderConfig) {
		cfg.hostVersion = v
	})
}

// WithLoaderLogger sets the logger used while loading manifests.
func WithLoaderLogger(logger logr.Logger) LoaderOption {
	return util.FunctionalOption[loaderConfig](func(cfg *loaderConfig) {
		cfg.logger = logger
	})
}

// WithConcurrency bounds the number of manifests read in parallel.
func WithConcurrency(n int) LoaderOption {
	return util.FunctionalOption[loaderConfig](func(cfg *loaderConfig) {
		cfg.concurrency = n
	})
}

// ParseManifest decodes a YAML or JSON manifest. Unknown fields are rejected.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decoding manifest: %w", err)
	}

	return m, nil
}

func isManifestFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// LoadDir loads the scan plugin manifests found directly in dir. Manifests
// whose requirements exclude the host version are skipped. Errors of
// individual files are aggregated; the factories of valid files are returned
// alongside them, ordered by file name.
func LoadDir(ctx context.Context, dir string, opts ...LoaderOption) ([]*ManifestFactory, error) {
	cfg := loaderConfig{
		logger:      logr.Discard(),
		concurrency: defaultConcurrency,
	}
	util.ApplyOptions(&cfg, opts...)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading plugin directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isManifestFile(e.Name()) {
			continue
		}

		files = append(files, filepath.Join(dir, e.Name()))
	}

	sort.Strings(files)

	results := make([]*ManifestFactory, len(files))

	var (
		mu   sync.Mutex
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	if cfg.concurrency > 0 {
		g.SetLimit(cfg.concurrency)
	}

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			f, err := loadFile(file, cfg)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", file, err))
				mu.Unlock()

				return nil
			}

			results[i] = f

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading plugin manifests: %w", err)
	}

	factories := make([]*ManifestFactory, 0, len(results))
	for _, f := range results {
		if f != nil {
			factories = append(factories, f)
		}
	}

	sort.Slice(errs, func(i int, j int) bool {
		return errs[i].Error() < errs[j].Error()
	})

	return factories, utilerrors.NewAggregate(errs)
}

// loadFile returns nil without error when the plugin does not support the
// host version.
func loadFile(file string, cfg loaderConfig) (*ManifestFactory, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}

	f, err := NewManifestFactory(m, file)
	if err != nil {
		return nil, err
	}

	ok, err := m.Supports(cfg.hostVersion)
	if err != nil {
		return nil, err
	}

	if !ok {
		cfg.logger.Info("skipping plugin not supported by host version",
			"plugin", m.Metadata.Name, "requires", m.Spec.Requires, "host", cfg.hostVersion.String())

		return nil, nil
	}

	cfg.logger.V(1).Info("loaded scan plugin", "plugin", m.Metadata.Name, "type", m.Spec.Type, "file", file)

	return f, nil
}

// LoadDirs loads every directory and contributes the resulting factories to
// registry, directory by directory. Directory level failures abort loading;
// invalid manifests are reported in the aggregated error after all valid
// ones have been contributed.
func LoadDirs(ctx context.Context, registry *FactoryRegistry, dirs []string, opts ...LoaderOption) error {
	var errs []error

	for _, dir := range dirs {
		factories, err := LoadDir(ctx, dir, opts...)

		for _, f := range factories {
			registry.Add(KindSecurityScan, f)
		}

		if err == nil {
			continue
		}

		var agg utilerrors.Aggregate
		if !errors.As(err, &agg) {
			return err
		}

		errs = append(errs, agg.Errors()...)
	}

	return utilerrors.NewAggregate(errs)
}
