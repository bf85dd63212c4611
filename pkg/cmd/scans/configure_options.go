package scans

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/opendatahub-io/secscan/pkg/printer/table"
	"github.com/opendatahub-io/secscan/pkg/security/scan"
	"github.com/opendatahub-io/secscan/pkg/security/ui"
	"github.com/opendatahub-io/secscan/pkg/util/prompt"
)

// clearAnswer is the interactive answer that empties a setting.
const clearAnswer = "-"

// ConfigureOptions contains options for the configure command.
type ConfigureOptions struct {
	*SharedOptions

	// Scan is the type or display name of the scan
	Scan string

	// Interactive prompts for every setting and prints the resulting configuration
	Interactive bool

	// SaveFile receives the configuration built interactively
	SaveFile string
}

// NewConfigureOptions creates a new ConfigureOptions.
func NewConfigureOptions(shared *SharedOptions) *ConfigureOptions {
	return &ConfigureOptions{
		SharedOptions: shared,
	}
}

// AddFlags registers the configure flags.
func (o *ConfigureOptions) AddFlags(fs *pflag.FlagSet) {
	o.SharedOptions.AddFlags(fs)
	fs.BoolVarP(&o.Interactive, "interactive", "i", false, "Prompt for each setting and print the scan configuration")
	fs.StringVar(&o.SaveFile, "save", "", "Write the interactive configuration to this file")
}

// Complete populates ConfigureOptions and performs pre-validation setup.
func (o *ConfigureOptions) Complete(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	if len(args) > 0 {
		o.Scan = args[0]
	}

	if err := o.SharedOptions.Complete(ctx, fs); err != nil {
		return fmt.Errorf("completing shared options: %w", err)
	}

	return nil
}

// Validate checks that all required options are valid.
func (o *ConfigureOptions) Validate() error {
	if err := o.SharedOptions.Validate(); err != nil {
		return fmt.Errorf("validating shared options: %w", err)
	}

	if o.Scan == "" {
		return errors.New("scan name or type is required")
	}

	if o.SaveFile != "" && !o.Interactive {
		return errors.New("--save requires --interactive")
	}

	return nil
}

// Run builds the configuration form of the scan and either prints it or,
// in interactive mode, fills it in.
func (o *ConfigureOptions) Run(_ context.Context) error {
	f, err := o.resolve(o.Scan)
	if err != nil {
		return err
	}

	form, err := o.Registry.UIBuilder().Build(f.Name(), f.Settings())
	if err != nil {
		return fmt.Errorf("building configuration form for %s: %w", f.Type(), err)
	}

	if o.Interactive {
		return o.runInteractive(f, form)
	}

	if o.OutputFormat != OutputFormatTable {
		return o.write(form)
	}

	o.IO.Fprintf("%s (%s)\n\n", form.Title, f.Type())

	renderer := table.NewWithColumns[ui.Field](o.IO.Out(),
		table.NewColumn("Name"),
		table.NewColumn("Label"),
		table.NewColumn("Kind"),
		table.NewColumn("Default").JQ(
			`if type == "array" then join(", ") elif type == "object" then (to_entries | map("\(.key)=\(.value)") | join(", ")) else . end`,
		),
		table.NewColumn("Description").Default("-"),
	)

	if err := renderer.AppendAll(form.Fields); err != nil {
		return err
	}

	return renderer.Render()
}

// runInteractive asks for every field of form, keeping defaults for empty
// answers, and emits a validated scan configuration file.
func (o *ConfigureOptions) runInteractive(f scan.Factory, form *ui.Form) error {
	p := prompt.New(o.IO)

	settings := make(map[string]any)

	o.IO.Errorf("Press enter to keep a default, or answer %q to clear it.", clearAnswer)

	for _, fld := range form.Fields {
		def := formatAnswer(fld.Default)

		answer, err := p.Ask(fld.Label, def)
		if err != nil {
			return err
		}

		if answer == def {
			continue
		}

		if answer == clearAnswer {
			v, err := emptyValue(fld.Kind)
			if err != nil {
				return fmt.Errorf("setting %s: %w", fld.Name, err)
			}

			settings[fld.Name] = v

			continue
		}

		v, err := parseAnswer(fld.Kind, answer)
		if err != nil {
			return fmt.Errorf("setting %s: %w", fld.Name, err)
		}

		settings[fld.Name] = v
	}

	cfg := &scan.ScanConfig{Type: f.Type(), Name: f.Name()}
	if len(settings) > 0 {
		cfg.Settings = settings
	}

	if err := o.Registry.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	format := o.OutputFormat
	if format == OutputFormatTable {
		format = OutputFormatYAML
	}

	data, err := encode(ScanConfigFile{Scans: []*scan.ScanConfig{cfg}}, format)
	if err != nil {
		return err
	}

	if o.SaveFile == "" {
		o.IO.Fprintf("%s", string(data))

		return nil
	}

	if _, err := os.Stat(o.SaveFile); err == nil {
		if !p.Confirm(fmt.Sprintf("Overwrite %s?", o.SaveFile)) {
			return errors.New("configuration not saved")
		}
	}

	if err := os.WriteFile(o.SaveFile, data, 0o600); err != nil {
		return fmt.Errorf("saving scan configuration: %w", err)
	}

	o.IO.Errorf("Saved %s configuration to %s", f.Type(), o.SaveFile)

	return nil
}

// formatAnswer renders a default the way parseAnswer reads it back.
func formatAnswer(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(t, ",")
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, fmt.Sprint(e))
		}

		return strings.Join(parts, ",")
	case map[string]string:
		pairs := make([]string, 0, len(t))
		for k, val := range t {
			pairs = append(pairs, k+"="+val)
		}

		sort.Strings(pairs)

		return strings.Join(pairs, ",")
	case map[string]any:
		pairs := make([]string, 0, len(t))
		for k, val := range t {
			pairs = append(pairs, k+"="+fmt.Sprint(val))
		}

		sort.Strings(pairs)

		return strings.Join(pairs, ",")
	default:
		return fmt.Sprint(t)
	}
}

func emptyValue(kind ui.FieldKind) (any, error) {
	switch kind {
	case ui.FieldText:
		return "", nil
	case ui.FieldList:
		return []string{}, nil
	case ui.FieldMap:
		return map[string]any{}, nil
	default:
		return nil, fmt.Errorf("a %s setting cannot be cleared", kind)
	}
}

func parseAnswer(kind ui.FieldKind, answer string) (any, error) {
	switch kind {
	case ui.FieldBoolean:
		b, err := strconv.ParseBool(answer)
		if err != nil {
			return nil, fmt.Errorf("expected true or false, got %q", answer)
		}

		return b, nil
	case ui.FieldNumber:
		if i, err := strconv.ParseInt(answer, 10, 64); err == nil {
			return i, nil
		}

		n, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", answer)
		}

		return n, nil
	case ui.FieldList:
		items := make([]string, 0)
		for _, s := range strings.Split(answer, ",") {
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, s)
			}
		}

		return items, nil
	case ui.FieldMap:
		entries := make(map[string]any)
		for _, pair := range strings.Split(answer, ",") {
			k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok || k == "" {
				return nil, fmt.Errorf("expected key=value pairs, got %q", pair)
			}

			entries[k] = v
		}

		return entries, nil
	default:
		return answer, nil
	}
}
