package scans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"sigs.k8s.io/yaml"

	"github.com/opendatahub-io/secscan/pkg/config"
	"github.com/opendatahub-io/secscan/pkg/logging"
	"github.com/opendatahub-io/secscan/pkg/plugin"
	"github.com/opendatahub-io/secscan/pkg/security/scan"
	"github.com/opendatahub-io/secscan/pkg/security/scans/builtin"
	"github.com/opendatahub-io/secscan/pkg/util/iostreams"
)

// OutputFormat represents the output format of scans commands.
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"

	sourceBuiltin = "builtin"
)

// Validate checks if the output format is valid.
func (o OutputFormat) Validate() error {
	switch o {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (must be one of: table, json, yaml)", o)
	}
}

// SharedOptions contains options common to all scans subcommands.
type SharedOptions struct {
	IO iostreams.Interface

	// OutputFormat specifies the output format (table, json, yaml)
	OutputFormat OutputFormat

	// Config is resolved from flags, environment and config file during Complete
	Config *config.Config

	Log logr.Logger

	// Registry is built during Complete
	Registry *scan.Registry
}

// NewSharedOptions creates a new SharedOptions with defaults.
func NewSharedOptions(io iostreams.Interface) *SharedOptions {
	return &SharedOptions{
		IO:           io,
		OutputFormat: OutputFormatTable,
		Log:          logr.Discard(),
	}
}

// AddFlags registers the output flag.
func (o *SharedOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP((*string)(&o.OutputFormat), "output", "o", string(OutputFormatTable), "Output format (table|json|yaml)")
}

// Complete loads the configuration and builds the scan registry: built-in
// factories first, then plugin factories, then removal of disabled types.
func (o *SharedOptions) Complete(ctx context.Context, fs *pflag.FlagSet) error {
	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	o.Config = cfg

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, o.IO.ErrOut())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	o.Log = log

	registry, err := o.buildRegistry(ctx)
	if err != nil {
		return err
	}

	o.Registry = registry

	return nil
}

func (o *SharedOptions) buildRegistry(ctx context.Context) (*scan.Registry, error) {
	hostVersion, err := o.Config.ParsedHostVersion()
	if err != nil {
		return nil, err
	}

	plugins := plugin.NewFactoryRegistry(o.Log.WithName("plugins"))

	err = plugin.LoadDirs(ctx, plugins, o.Config.PluginDirs,
		plugin.WithHostVersion(hostVersion),
		plugin.WithLoaderLogger(o.Log.WithName("plugins")),
	)
	if err != nil {
		// invalid manifests are reported, valid ones are still used
		o.Log.Error(err, "some scan plugins could not be loaded")
	}

	registry, err := builtin.NewRegistry(ctx,
		scan.WithSources(plugins),
		scan.WithLogger(o.Log.WithName("registry")),
	)
	if err != nil {
		return nil, fmt.Errorf("creating scan registry: %w", err)
	}

	for _, typ := range o.Config.Disable {
		if !registry.Remove(typ) {
			o.Log.Info("cannot disable unknown scan type", "type", typ)
		}
	}

	return registry, nil
}

// Validate checks that all required options are valid.
func (o *SharedOptions) Validate() error {
	return o.OutputFormat.Validate()
}

// resolve finds a factory by type or display name.
func (o *SharedOptions) resolve(key string) (scan.Factory, error) {
	if key == "" {
		return nil, errors.New("scan name or type must not be empty")
	}

	f, ok := o.Registry.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: no scan with type or name %q", scan.ErrUnknownType, key)
	}

	return f, nil
}

// write prints value as JSON or YAML.
func (o *SharedOptions) write(value any) error {
	if o.OutputFormat == OutputFormatTable {
		return errors.New("table output must be rendered by the command")
	}

	b, err := encode(value, o.OutputFormat)
	if err != nil {
		return err
	}

	o.IO.Fprintf("%s", string(b))

	return nil
}

func encode(value any, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatJSON:
		b, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding JSON: %w", err)
		}

		return append(b, '\n'), nil
	case OutputFormatYAML:
		b, err := yaml.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}

		return b, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// sourceOf returns where a factory comes from.
func sourceOf(f scan.Factory) string {
	if pf, ok := f.(*plugin.ManifestFactory); ok {
		return "plugin/" + pf.Plugin()
	}

	return sourceBuiltin
}

// ValidateSelector validates the scan selector pattern.
func ValidateSelector(selector string) error {
	if err := scan.ValidateSelector(selector); err != nil {
		return err
	}

	// Reject patterns that can never match a type identifier.
	if path.Base(selector) != selector {
		return fmt.Errorf("invalid scan selector %q: must not contain '/'", selector)
	}

	return nil
}
