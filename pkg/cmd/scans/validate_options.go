package scans

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"sigs.k8s.io/yaml"

	"github.com/opendatahub-io/secscan/pkg/security/scan"
)

// ScanConfigFile is the on-disk format of a list of scan configurations.
type ScanConfigFile struct {
	Scans []*scan.ScanConfig `json:"scans"`
}

// ValidationResult is the outcome of validating one scan configuration.
type ValidationResult struct {
	Type    string `json:"type"              yaml:"type"`
	Name    string `json:"name,omitempty"    yaml:"name,omitempty"`
	Valid   bool   `json:"valid"             yaml:"valid"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// ValidateOptions contains options for the validate command.
type ValidateOptions struct {
	*SharedOptions

	// File holds the scan configurations to validate
	File string

	configs []*scan.ScanConfig
}

// NewValidateOptions creates a new ValidateOptions.
func NewValidateOptions(shared *SharedOptions) *ValidateOptions {
	return &ValidateOptions{
		SharedOptions: shared,
	}
}

// AddFlags registers the validate flags.
func (o *ValidateOptions) AddFlags(fs *pflag.FlagSet) {
	o.SharedOptions.AddFlags(fs)
}

// Complete populates ValidateOptions and reads the configuration file.
func (o *ValidateOptions) Complete(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	if len(args) > 0 {
		o.File = args[0]
	}

	if err := o.SharedOptions.Complete(ctx, fs); err != nil {
		return fmt.Errorf("completing shared options: %w", err)
	}

	if o.File == "" {
		return nil
	}

	data, err := os.ReadFile(o.File)
	if err != nil {
		return fmt.Errorf("reading scan configurations: %w", err)
	}

	configs, err := ParseScanConfigs(data)
	if err != nil {
		return err
	}

	o.configs = configs

	return nil
}

// ParseScanConfigs decodes a scan configuration file.
func ParseScanConfigs(data []byte) ([]*scan.ScanConfig, error) {
	var f ScanConfigFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("decoding scan configurations: %w", err)
	}

	for i, c := range f.Scans {
		if c == nil || c.Type == "" {
			return nil, fmt.Errorf("scan configuration #%d has no type", i)
		}
	}

	return f.Scans, nil
}

// Validate checks that all required options are valid.
func (o *ValidateOptions) Validate() error {
	if err := o.SharedOptions.Validate(); err != nil {
		return fmt.Errorf("validating shared options: %w", err)
	}

	if o.File == "" {
		return errors.New("scan configuration file is required")
	}

	return nil
}

// Run validates every configuration and fails if any is invalid.
func (o *ValidateOptions) Run(_ context.Context) error {
	results := o.validateAll()

	invalid := 0
	for _, r := range results {
		if !r.Valid {
			invalid++
		}
	}

	if o.OutputFormat != OutputFormatTable {
		if err := o.write(results); err != nil {
			return err
		}
	} else {
		o.outputTable(results)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d scan configurations are invalid", invalid, len(results))
	}

	return nil
}

func (o *ValidateOptions) validateAll() []ValidationResult {
	results := make([]ValidationResult, 0, len(o.configs))

	for _, c := range o.configs {
		r := ValidationResult{
			Type:  c.Type,
			Name:  c.Name,
			Valid: true,
		}

		if !o.Registry.Has(c) {
			r.Valid = false
			r.Message = "no scan registered for this type"
		} else if err := o.Registry.ValidateConfig(c); err != nil {
			r.Valid = false
			r.Message = err.Error()
		}

		results = append(results, r)
	}

	return results
}

func (o *ValidateOptions) outputTable(results []ValidationResult) {
	ok := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	passed := 0

	for _, r := range results {
		label := r.Type
		if r.Name != "" {
			label = fmt.Sprintf("%s (%s)", r.Name, r.Type)
		}

		if r.Valid {
			passed++
			o.IO.Fprintf("%s %s\n", ok("✓"), label)

			continue
		}

		o.IO.Fprintf("%s %s - %s\n", fail("✗"), label, r.Message)
	}

	o.IO.Fprintf("\nSummary:\n")
	o.IO.Fprintf("  Total: %d | Valid: %d | Invalid: %d\n", len(results), passed, len(results)-passed)
}
