package builtin

import (
	"github.com/opendatahub-io/secscan/pkg/security/scans/base"
)

const XPathInjectionType = "XPathInjectionSecurityScan"

// XPathInjectionSettings configures the XPath injection scan.
type XPathInjectionSettings struct {
	Payloads    []string `json:"payloads"    description:"Expressions injected into each parameter"`
	MaxPayloads int      `json:"maxPayloads" description:"Maximum number of payloads per parameter"`
}

type XPathInjectionFactory struct {
	base.Factory
}

func NewXPathInjectionFactory() *XPathInjectionFactory {
	return &XPathInjectionFactory{
		Factory: base.Factory{
			ScanType:           XPathInjectionType,
			ScanName:           "XPath Injection",
			ScanDescription:    "Injects XPath expressions into parameters used in server side queries",
			Kinds:              base.MessageKinds,
			RequiresParameters: true,
		},
	}
}

func (f *XPathInjectionFactory) Settings() any {
	return &XPathInjectionSettings{
		Payloads: []string{
			"' or '1'='1",
			"' or ''='",
			"x' or name()='username' or 'x'='y",
		},
		MaxPayloads: 10,
	}
}
