// Package teststep describes the test steps security scans are attached to.
// Scan factories decide applicability by inspecting a TestStep; the scan
// registry only passes steps through.
package teststep

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"sigs.k8s.io/yaml"
)

// Kind identifies the type of a test step.
type Kind string

const (
	KindSOAPRequest      Kind = "soap-request"
	KindRESTRequest      Kind = "rest-request"
	KindHTTPRequest      Kind = "http-request"
	KindJDBCRequest      Kind = "jdbc-request"
	KindAMFRequest       Kind = "amf-request"
	KindGroovyScript     Kind = "groovy-script"
	KindPropertyTransfer Kind = "property-transfer"
	KindDelay            Kind = "delay"
)

// Validate checks if the kind is known.
func (k Kind) Validate() error {
	switch k {
	case KindSOAPRequest, KindRESTRequest, KindHTTPRequest, KindJDBCRequest, KindAMFRequest,
		KindGroovyScript, KindPropertyTransfer, KindDelay:
		return nil
	default:
		return fmt.Errorf("invalid test step kind: %s", k)
	}
}

// IsSampler returns true for kinds that send a request to a service under test.
func (k Kind) IsSampler() bool {
	switch k {
	case KindSOAPRequest, KindRESTRequest, KindHTTPRequest, KindJDBCRequest, KindAMFRequest:
		return true
	default:
		return false
	}
}

// TestStep is a single step of a functional test case.
type TestStep struct {
	Name       string            `json:"name"`
	Kind       Kind              `json:"kind"`
	Endpoint   string            `json:"endpoint,omitempty"`
	Method     string            `json:"method,omitempty"`
	MediaType  string            `json:"mediaType,omitempty"`
	Parameters []string          `json:"parameters,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// IsSampler reports whether the step sends a request.
func (s *TestStep) IsSampler() bool {
	return s != nil && s.Kind.IsSampler()
}

// HasParameters reports whether the step exposes at least one request parameter.
func (s *TestStep) HasParameters() bool {
	return s != nil && len(s.Parameters) > 0
}

// AsMap returns a jq-compatible view of the step.
func (s *TestStep) AsMap() map[string]any {
	if s == nil {
		return nil
	}

	params := make([]any, 0, len(s.Parameters))
	for _, p := range s.Parameters {
		params = append(params, p)
	}

	props := make(map[string]any, len(s.Properties))
	for k, v := range s.Properties {
		props[k] = v
	}

	return map[string]any{
		"name":       s.Name,
		"kind":       string(s.Kind),
		"sampler":    s.Kind.IsSampler(),
		"endpoint":   s.Endpoint,
		"method":     s.Method,
		"mediaType":  s.MediaType,
		"parameters": params,
		"properties": props,
	}
}

// Validate checks the step has a name and a known kind.
func (s *TestStep) Validate() error {
	if s.Name == "" {
		return errors.New("test step name must not be empty")
	}

	if err := s.Kind.Validate(); err != nil {
		return fmt.Errorf("test step %q: %w", s.Name, err)
	}

	return nil
}

// File is the on-disk format of a test step file.
type File struct {
	Steps []*TestStep `json:"steps"`
}

// LoadFile reads and validates a YAML or JSON test step file.
func LoadFile(path string) ([]*TestStep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading test steps: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates test step file contents. Step names must be unique.
func Parse(data []byte) ([]*TestStep, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("decoding test steps: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Steps))

	for i, s := range f.Steps {
		if s == nil {
			return nil, fmt.Errorf("test step #%d is empty", i)
		}

		if err := s.Validate(); err != nil {
			return nil, err
		}

		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("duplicate test step name %q", s.Name)
		}

		seen[s.Name] = struct{}{}
	}

	return f.Steps, nil
}

// Find returns the step with the given name.
func Find(steps []*TestStep, name string) (*TestStep, bool) {
	for _, s := range steps {
		if s.Name == name {
			return s, true
		}
	}

	return nil, false
}

// Names returns the sorted names of steps.
func Names(steps []*TestStep) []string {
	names := make([]string, 0, len(steps))
	for _, s := range steps {
		names = append(names, s.Name)
	}

	sort.Strings(names)

	return names
}
