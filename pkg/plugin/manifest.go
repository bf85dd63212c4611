package plugin

import (
	"errors"
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/itchyny/gojq"

	"sigs.k8s.io/yaml"

	"github.com/opendatahub-io/secscan/pkg/teststep"
	"github.com/opendatahub-io/secscan/pkg/util/jq"
)

const (
	ManifestAPIVersion = "secscan.io/v1"
	ManifestKind       = "ScanPlugin"
)

// ManifestMetadata identifies a plugin.
type ManifestMetadata struct {
	Name string `json:"name"`
}

// ManifestSpec describes the scan factory a plugin contributes.
type ManifestSpec struct {
	// Type is the scan type identifier. A plugin using the type of a built-in
	// scan replaces it.
	Type string `json:"type"`

	// DisplayName is the scan display name.
	DisplayName string `json:"displayName"`

	Description string `json:"description,omitempty"`

	// Requires is a semver range the host version must satisfy, e.g. ">=1.2.0 <2.0.0".
	Requires string `json:"requires,omitempty"`

	// AppliesTo is a jq expression evaluated against the test step; the scan
	// applies when it yields true. When empty the scan applies to every
	// step that sends a request.
	AppliesTo string `json:"appliesTo,omitempty"`

	// Defaults are the default settings of the scan.
	Defaults map[string]any `json:"defaults,omitempty"`
}

// Manifest is the on-disk description of a scan plugin.
type Manifest struct {
	APIVersion string           `json:"apiVersion"`
	Kind       string           `json:"kind"`
	Metadata   ManifestMetadata `json:"metadata"`
	Spec       ManifestSpec     `json:"spec"`
}

// Validate checks the manifest is complete and its expressions compile.
func (m *Manifest) Validate() error {
	if m.APIVersion != ManifestAPIVersion {
		return fmt.Errorf("unsupported apiVersion %q (expected %s)", m.APIVersion, ManifestAPIVersion)
	}

	if m.Kind != ManifestKind {
		return fmt.Errorf("unsupported kind %q (expected %s)", m.Kind, ManifestKind)
	}

	if m.Metadata.Name == "" {
		return errors.New("metadata.name must not be empty")
	}

	if m.Spec.Type == "" {
		return errors.New("spec.type must not be empty")
	}

	if m.Spec.DisplayName == "" {
		return errors.New("spec.displayName must not be empty")
	}

	if m.Spec.Requires != "" {
		if _, err := semver.ParseRange(m.Spec.Requires); err != nil {
			return fmt.Errorf("invalid spec.requires %q: %w", m.Spec.Requires, err)
		}
	}

	if m.Spec.AppliesTo != "" {
		if _, err := jq.Compile(m.Spec.AppliesTo); err != nil {
			return fmt.Errorf("invalid spec.appliesTo: %w", err)
		}
	}

	return nil
}

// Supports reports whether the host version satisfies spec.requires.
func (m *Manifest) Supports(host semver.Version) (bool, error) {
	if m.Spec.Requires == "" {
		return true, nil
	}

	r, err := semver.ParseRange(m.Spec.Requires)
	if err != nil {
		return false, fmt.Errorf("invalid spec.requires %q: %w", m.Spec.Requires, err)
	}

	return r(host), nil
}

// ManifestFactory is a scan factory described by a plugin manifest.
type ManifestFactory struct {
	manifest  Manifest
	source    string
	appliesTo *gojq.Code
	defaults  []byte
}

// NewManifestFactory validates m and builds its factory. source records where
// the manifest came from.
func NewManifestFactory(m Manifest, source string) (*ManifestFactory, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	f := &ManifestFactory{
		manifest: m,
		source:   source,
	}

	if m.Spec.AppliesTo != "" {
		code, err := jq.Compile(m.Spec.AppliesTo)
		if err != nil {
			return nil, fmt.Errorf("invalid spec.appliesTo: %w", err)
		}

		f.appliesTo = code
	}

	defaults, err := yaml.Marshal(m.Spec.Defaults)
	if err != nil {
		return nil, fmt.Errorf("invalid spec.defaults: %w", err)
	}

	f.defaults = defaults

	return f, nil
}

func (f *ManifestFactory) Type() string {
	return f.manifest.Spec.Type
}

func (f *ManifestFactory) Name() string {
	return f.manifest.Spec.DisplayName
}

func (f *ManifestFactory) Description() string {
	return f.manifest.Spec.Description
}

// Plugin returns the plugin name from the manifest metadata.
func (f *ManifestFactory) Plugin() string {
	return f.manifest.Metadata.Name
}

// Source returns where the manifest was loaded from.
func (f *ManifestFactory) Source() string {
	return f.source
}

// CanApply evaluates spec.appliesTo against step. Evaluation errors and
// non-boolean results count as not applicable.
func (f *ManifestFactory) CanApply(step *teststep.TestStep) bool {
	if step == nil {
		return false
	}

	if f.appliesTo == nil {
		return step.IsSampler()
	}

	ok, err := jq.Run[bool](f.appliesTo, step)
	if err != nil {
		return false
	}

	return ok
}

// Settings returns the manifest defaults decoded into a new map. Nested lists
// and maps are never shared between calls.
func (f *ManifestFactory) Settings() any {
	var settings map[string]any

	// f.defaults was encoded from a map in NewManifestFactory, so it decodes.
	_ = yaml.Unmarshal(f.defaults, &settings)

	if settings == nil {
		settings = make(map[string]any)
	}

	return &settings
}
