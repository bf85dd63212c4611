package scans

import (
	"context"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/opendatahub-io/secscan/pkg/printer/table"
	"github.com/opendatahub-io/secscan/pkg/teststep"
)

// ScanDescription is the detailed view of a registered scan.
type ScanDescription struct {
	ScanInfo

	// AppliesTo lists the test step kinds the scan can be attached to
	AppliesTo []string `json:"appliesTo" yaml:"appliesTo"`

	// Defaults are the default settings of the scan
	Defaults any `json:"defaults,omitempty" yaml:"defaults,omitempty"`
}

// DescribeOptions contains options for the describe command.
type DescribeOptions struct {
	*SharedOptions

	// Scan is the type or display name of the scan to describe
	Scan string
}

// NewDescribeOptions creates a new DescribeOptions.
func NewDescribeOptions(shared *SharedOptions) *DescribeOptions {
	return &DescribeOptions{
		SharedOptions: shared,
	}
}

// AddFlags registers the describe flags.
func (o *DescribeOptions) AddFlags(fs *pflag.FlagSet) {
	o.SharedOptions.AddFlags(fs)
}

// Complete populates DescribeOptions and performs pre-validation setup.
func (o *DescribeOptions) Complete(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	if len(args) > 0 {
		o.Scan = args[0]
	}

	if err := o.SharedOptions.Complete(ctx, fs); err != nil {
		return fmt.Errorf("completing shared options: %w", err)
	}

	return nil
}

// Validate checks that all required options are valid.
func (o *DescribeOptions) Validate() error {
	if err := o.SharedOptions.Validate(); err != nil {
		return fmt.Errorf("validating shared options: %w", err)
	}

	if o.Scan == "" {
		return fmt.Errorf("scan name or type is required")
	}

	return nil
}

// Run executes the describe command.
func (o *DescribeOptions) Run(_ context.Context) error {
	f, err := o.resolve(o.Scan)
	if err != nil {
		return err
	}

	desc := ScanDescription{
		ScanInfo: ScanInfo{
			Name:        f.Name(),
			Type:        f.Type(),
			Description: f.Description(),
			Source:      sourceOf(f),
		},
		AppliesTo: applicableKinds(f.CanApply),
		Defaults:  f.Settings(),
	}

	if o.OutputFormat != OutputFormatTable {
		return o.write(desc)
	}

	label := color.New(color.Bold).SprintFunc()

	o.IO.Fprintf("%s %s\n", label("Name:"), desc.Name)
	o.IO.Fprintf("%s %s\n", label("Type:"), desc.Type)
	o.IO.Fprintf("%s %s\n", label("Source:"), desc.Source)
	o.IO.Fprintf("%s %s\n", label("Description:"), desc.Description)
	o.IO.Fprintf("%s\n", label("Applies to:"))

	for _, k := range desc.AppliesTo {
		o.IO.Fprintf("  - %s\n", k)
	}

	o.IO.Fprintf("\n%s\n", label("Defaults:"))

	renderer := table.NewRenderer[[]any](
		table.WithWriter[[]any](o.IO.Out()),
		table.WithHeaders[[]any]("Setting", "Value"),
	)

	form, err := o.Registry.UIBuilder().Build(f.Name(), desc.Defaults)
	if err != nil {
		return fmt.Errorf("reading defaults of %s: %w", f.Type(), err)
	}

	for _, fld := range form.Fields {
		if err := renderer.Append([]any{fld.Name, fld.Default}); err != nil {
			return err
		}
	}

	return renderer.Render()
}

// applicableKinds probes a minimal step of every kind, with one parameter so
// that parameter based scans are reported for the kinds they support.
func applicableKinds(canApply func(*teststep.TestStep) bool) []string {
	kinds := []teststep.Kind{
		teststep.KindSOAPRequest,
		teststep.KindRESTRequest,
		teststep.KindHTTPRequest,
		teststep.KindJDBCRequest,
		teststep.KindAMFRequest,
		teststep.KindGroovyScript,
		teststep.KindPropertyTransfer,
		teststep.KindDelay,
	}

	out := make([]string, 0, len(kinds))

	for _, k := range kinds {
		probe := &teststep.TestStep{
			Name:       "probe",
			Kind:       k,
			Parameters: []string{"probe"},
		}

		if canApply(probe) {
			out = append(out, string(k))
		}
	}

	sort.Strings(out)

	return out
}
