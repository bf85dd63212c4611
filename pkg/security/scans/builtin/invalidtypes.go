package builtin

import (
	"github.com/opendatahub-io/secscan/pkg/security/scans/base"
)

const InvalidTypesType = "InvalidTypesSecurityScan"

// InvalidTypesSettings configures the invalid types scan.
type InvalidTypesSettings struct {
	Types        map[string]string `json:"types"        description:"Value sent for each schema type"`
	SkipOptional bool              `json:"skipOptional" description:"Leave optional elements untouched"`
}

type InvalidTypesFactory struct {
	base.Factory
}

func NewInvalidTypesFactory() *InvalidTypesFactory {
	return &InvalidTypesFactory{
		Factory: base.Factory{
			ScanType:        InvalidTypesType,
			ScanName:        "Invalid Types",
			ScanDescription: "Replaces values with ones that violate their schema type",
			Kinds:           base.XMLKinds,
		},
	}
}

func (f *InvalidTypesFactory) Settings() any {
	return &InvalidTypesSettings{
		Types: map[string]string{
			"xs:int":      "not-a-number",
			"xs:boolean":  "maybe",
			"xs:dateTime": "yesterday",
			"xs:decimal":  "1,0",
		},
	}
}
