package base

import (
	"slices"

	"github.com/opendatahub-io/secscan/pkg/teststep"
)

// Factory provides the metadata and applicability rules shared by the built-in
// scan factories. Concrete factories embed it and add Settings.
type Factory struct {
	ScanType        string
	ScanName        string
	ScanDescription string

	// Kinds lists the test step kinds the scan can be attached to.
	Kinds []teststep.Kind

	// RequiresParameters restricts the scan to steps exposing request parameters.
	RequiresParameters bool
}

func (f *Factory) Type() string {
	return f.ScanType
}

func (f *Factory) Name() string {
	return f.ScanName
}

func (f *Factory) Description() string {
	return f.ScanDescription
}

// CanApply returns true if the step kind is supported and, when required,
// the step has parameters to mutate.
func (f *Factory) CanApply(step *teststep.TestStep) bool {
	if step == nil {
		return false
	}

	if !slices.Contains(f.Kinds, step.Kind) {
		return false
	}

	if f.RequiresParameters && !step.HasParameters() {
		return false
	}

	return true
}

// Sampler kinds that carry an XML, JSON or form payload.
var (
	MessageKinds = []teststep.Kind{
		teststep.KindSOAPRequest,
		teststep.KindRESTRequest,
		teststep.KindHTTPRequest,
	}

	XMLKinds = []teststep.Kind{
		teststep.KindSOAPRequest,
	}

	AllSamplerKinds = []teststep.Kind{
		teststep.KindSOAPRequest,
		teststep.KindRESTRequest,
		teststep.KindHTTPRequest,
		teststep.KindJDBCRequest,
		teststep.KindAMFRequest,
	}
)
