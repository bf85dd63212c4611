package scans

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/opendatahub-io/secscan/pkg/printer/table"
	"github.com/opendatahub-io/secscan/pkg/security/scan"
	"github.com/opendatahub-io/secscan/pkg/teststep"
)

// ScanInfo is the listing entry of a registered scan.
type ScanInfo struct {
	Name        string `json:"name"                  yaml:"name"`
	Type        string `json:"type"                  yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Source      string `json:"source"                yaml:"source"`
}

// StepScans lists the scans applicable to one test step.
type StepScans struct {
	Step  string   `json:"step"  yaml:"step"`
	Kind  string   `json:"kind"  yaml:"kind"`
	Scans []string `json:"scans" yaml:"scans"`
}

// ListOptions contains options for the list command.
type ListOptions struct {
	*SharedOptions

	// Selector filters scans by type (glob pattern)
	Selector string

	// StepsFile is a test step file used to filter by applicability
	StepsFile string

	// Step restricts the listing to scans applicable to this step of StepsFile
	Step string

	steps []*teststep.TestStep
}

// NewListOptions creates a new ListOptions with defaults.
func NewListOptions(shared *SharedOptions) *ListOptions {
	return &ListOptions{
		SharedOptions: shared,
		Selector:      "*",
	}
}

// AddFlags registers the list flags.
func (o *ListOptions) AddFlags(fs *pflag.FlagSet) {
	o.SharedOptions.AddFlags(fs)
	fs.StringVar(&o.Selector, "selector", o.Selector, "Scan type selector (glob pattern)")
	fs.StringVar(&o.StepsFile, "steps", "", "Test step file; lists the scans applicable to each step")
	fs.StringVar(&o.Step, "step", "", "Only list scans applicable to this step of --steps")
}

// Complete populates ListOptions and performs pre-validation setup.
func (o *ListOptions) Complete(ctx context.Context, fs *pflag.FlagSet) error {
	if err := o.SharedOptions.Complete(ctx, fs); err != nil {
		return fmt.Errorf("completing shared options: %w", err)
	}

	if o.StepsFile != "" {
		steps, err := teststep.LoadFile(o.StepsFile)
		if err != nil {
			return err
		}

		o.steps = steps
	}

	return nil
}

// Validate checks that all required options are valid.
func (o *ListOptions) Validate() error {
	if err := o.SharedOptions.Validate(); err != nil {
		return fmt.Errorf("validating shared options: %w", err)
	}

	if err := ValidateSelector(o.Selector); err != nil {
		return err
	}

	if o.Step != "" && o.StepsFile == "" {
		return errors.New("--step requires --steps")
	}

	return nil
}

// Run executes the list command.
func (o *ListOptions) Run(_ context.Context) error {
	factories, err := o.Registry.ListByPattern(o.Selector)
	if err != nil {
		return err
	}

	selected := sets.New[string]()
	for _, f := range factories {
		selected.Insert(f.Name())
	}

	if o.StepsFile == "" {
		return o.outputScans(factories)
	}

	if o.Step != "" {
		step, ok := teststep.Find(o.steps, o.Step)
		if !ok {
			return fmt.Errorf("test step %q not found in %s", o.Step, o.StepsFile)
		}

		applicable := sets.New(o.Registry.NamesFor(step)...)

		filtered := make([]scan.Factory, 0, len(factories))
		for _, f := range factories {
			if applicable.Has(f.Name()) {
				filtered = append(filtered, f)
			}
		}

		return o.outputScans(filtered)
	}

	result := make([]StepScans, 0, len(o.steps))
	for _, step := range o.steps {
		names := sets.New(o.Registry.NamesFor(step)...).Intersection(selected)

		result = append(result, StepScans{
			Step:  step.Name,
			Kind:  string(step.Kind),
			Scans: sets.List(names),
		})
	}

	return o.outputSteps(result)
}

func (o *ListOptions) outputScans(factories []scan.Factory) error {
	infos := make([]ScanInfo, 0, len(factories))
	for _, f := range factories {
		infos = append(infos, ScanInfo{
			Name:        f.Name(),
			Type:        f.Type(),
			Description: f.Description(),
			Source:      sourceOf(f),
		})
	}

	if o.OutputFormat != OutputFormatTable {
		return o.write(infos)
	}

	if len(infos) == 0 {
		o.IO.Errorf("No scans found")

		return nil
	}

	isPlugin := func(v any) bool {
		s, ok := v.(string)

		return ok && s != sourceBuiltin
	}

	renderer := table.NewWithColumns[ScanInfo](o.IO.Out(),
		table.NewColumn("Name"),
		table.NewColumn("Type"),
		table.NewColumn("Source").Color(isPlugin, color.FgCyan),
		table.NewColumn("Description").Default("-"),
	)

	if err := renderer.AppendAll(infos); err != nil {
		return err
	}

	return renderer.Render()
}

func (o *ListOptions) outputSteps(result []StepScans) error {
	if o.OutputFormat != OutputFormatTable {
		return o.write(result)
	}

	renderer := table.NewWithColumns[StepScans](o.IO.Out(),
		table.NewColumn("Step"),
		table.NewColumn("Kind"),
		table.NewColumn("Scans").JQ(`join(", ")`).Default("-"),
	)

	if err := renderer.AppendAll(result); err != nil {
		return err
	}

	return renderer.Render()
}
