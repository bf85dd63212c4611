package builtin

import (
	"github.com/opendatahub-io/secscan/pkg/security/scans/base"
)

const MalformedXMLType = "MalformedXmlSecurityScan"

// MalformedXMLSettings configures the malformed XML scan.
type MalformedXMLSettings struct {
	InsertInvalidChars bool `json:"insertInvalidChars" description:"Insert characters not allowed in XML"`
	MutateEndTags      bool `json:"mutateEndTags"      description:"Drop or rename closing tags"`
	MutateAttributes   bool `json:"mutateAttributes"   description:"Break attribute quoting"`
	MaxMutations       int  `json:"maxMutations"       description:"Maximum number of mutated requests"`
}

type MalformedXMLFactory struct {
	base.Factory
}

func NewMalformedXMLFactory() *MalformedXMLFactory {
	return &MalformedXMLFactory{
		Factory: base.Factory{
			ScanType:        MalformedXMLType,
			ScanName:        "Malformed XML",
			ScanDescription: "Sends requests that are not well-formed XML",
			Kinds:           base.XMLKinds,
		},
	}
}

func (f *MalformedXMLFactory) Settings() any {
	return &MalformedXMLSettings{
		InsertInvalidChars: true,
		MutateEndTags:      true,
		MutateAttributes:   true,
		MaxMutations:       20,
	}
}
