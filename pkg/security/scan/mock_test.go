package scan_test

import (
	"github.com/opendatahub-io/secscan/pkg/teststep"
)

// MockFactory is a configurable Factory for registry tests.
type MockFactory struct {
	typ      string
	name     string
	kinds    []teststep.Kind
	settings func() any
}

func (m *MockFactory) Type() string        { return m.typ }
func (m *MockFactory) Name() string        { return m.name }
func (m *MockFactory) Description() string { return "mock scan " + m.typ }

func (m *MockFactory) CanApply(step *teststep.TestStep) bool {
	if step == nil {
		return false
	}

	for _, k := range m.kinds {
		if k == step.Kind {
			return true
		}
	}

	return false
}

func (m *MockFactory) Settings() any {
	if m.settings == nil {
		return nil
	}

	return m.settings()
}

type mockSettings struct {
	Retries int    `json:"retries"`
	Pattern string `json:"pattern"`
}
