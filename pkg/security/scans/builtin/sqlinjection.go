package builtin

import (
	"github.com/opendatahub-io/secscan/pkg/security/scans/base"
	"github.com/opendatahub-io/secscan/pkg/teststep"
)

const SQLInjectionType = "SQLInjectionSecurityScan"

// SQLInjectionSettings configures the SQL injection scan.
type SQLInjectionSettings struct {
	Payloads    []string `json:"payloads"    description:"SQL fragments injected into each parameter"`
	MaxPayloads int      `json:"maxPayloads" description:"Maximum number of payloads per parameter"`
}

type SQLInjectionFactory struct {
	base.Factory
}

func NewSQLInjectionFactory() *SQLInjectionFactory {
	return &SQLInjectionFactory{
		Factory: base.Factory{
			ScanType:        SQLInjectionType,
			ScanName:        "SQL Injection",
			ScanDescription: "Injects SQL fragments into parameters passed to a database",
			Kinds: []teststep.Kind{
				teststep.KindSOAPRequest,
				teststep.KindRESTRequest,
				teststep.KindHTTPRequest,
				teststep.KindJDBCRequest,
			},
			RequiresParameters: true,
		},
	}
}

func (f *SQLInjectionFactory) Settings() any {
	return &SQLInjectionSettings{
		Payloads: []string{
			"' or 1=1 --",
			"'; drop table users; --",
			"1 union select null, null --",
		},
		MaxPayloads: 10,
	}
}
