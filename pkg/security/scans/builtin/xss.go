package builtin

import (
	"github.com/opendatahub-io/secscan/pkg/security/scans/base"
)

const XSSType = "XSSSecurityScan"

// XSSSettings configures the cross site scripting scan.
type XSSSettings struct {
	Payloads    []string `json:"payloads"    description:"Script fragments injected into each parameter"`
	CheckEchoed bool     `json:"checkEchoed" description:"Flag payloads echoed back unescaped in the response"`
	FollowSteps bool     `json:"followSteps" description:"Also inspect the responses of subsequent test steps"`
	MaxPayloads int      `json:"maxPayloads" description:"Maximum number of payloads per parameter"`
}

type XSSFactory struct {
	base.Factory
}

func NewXSSFactory() *XSSFactory {
	return &XSSFactory{
		Factory: base.Factory{
			ScanType:           XSSType,
			ScanName:           "Cross Site Scripting",
			ScanDescription:    "Injects script fragments into parameters and looks for them in responses",
			Kinds:              base.MessageKinds,
			RequiresParameters: true,
		},
	}
}

func (f *XSSFactory) Settings() any {
	return &XSSSettings{
		Payloads: []string{
			"<script>alert('xss')</script>",
			"<img src=x onerror=alert(1)>",
			"\"><svg/onload=alert(1)>",
		},
		CheckEchoed: true,
		MaxPayloads: 10,
	}
}
