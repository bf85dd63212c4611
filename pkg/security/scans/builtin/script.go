package builtin

import (
	"github.com/opendatahub-io/secscan/pkg/security/scans/base"
)

const ScriptType = "GroovySecurityScan"

// ScriptSettings configures a user supplied script that generates the
// mutated requests.
type ScriptSettings struct {
	Script     string `json:"script"     description:"Script producing parameter values for each request"`
	Language   string `json:"language"   description:"Script language"`
	MaxRequest int    `json:"maxRequest" description:"Maximum number of requests to send"`
}

type ScriptFactory struct {
	base.Factory
}

func NewScriptFactory() *ScriptFactory {
	return &ScriptFactory{
		Factory: base.Factory{
			ScanType:        ScriptType,
			ScanName:        "Custom Script",
			ScanDescription: "Sends requests with parameter values produced by a custom script",
			Kinds:           base.AllSamplerKinds,
		},
	}
}

func (f *ScriptFactory) Settings() any {
	return &ScriptSettings{
		Language:   "groovy",
		MaxRequest: 100,
	}
}
