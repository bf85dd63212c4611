package builtin

import (
	"github.com/opendatahub-io/secscan/pkg/security/scans/base"
)

const BoundaryType = "BoundarySecurityScan"

// BoundarySettings configures the boundary scan.
type BoundarySettings struct {
	RequestsPerValue int  `json:"requestsPerValue" description:"Requests sent for each restricted value"`
	IncludeLength    bool `json:"includeLength"    description:"Probe length and min/max length facets"`
	IncludeRange     bool `json:"includeRange"     description:"Probe min/max inclusive and exclusive facets"`
}

type BoundaryFactory struct {
	base.Factory
}

func NewBoundaryFactory() *BoundaryFactory {
	return &BoundaryFactory{
		Factory: base.Factory{
			ScanType:        BoundaryType,
			ScanName:        "Boundary Scan",
			ScanDescription: "Sends values just outside the restrictions declared in the schema",
			Kinds:           base.XMLKinds,
		},
	}
}

func (f *BoundaryFactory) Settings() any {
	return &BoundarySettings{
		RequestsPerValue: 5,
		IncludeLength:    true,
		IncludeRange:     true,
	}
}
