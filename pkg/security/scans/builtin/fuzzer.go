package builtin

import (
	"github.com/opendatahub-io/secscan/pkg/security/scans/base"
)

const FuzzerType = "FuzzerSecurityScan"

// FuzzerSettings configures the fuzzing scan.
type FuzzerSettings struct {
	MinLength  int    `json:"minLength"  description:"Minimum length of generated values"`
	MaxLength  int    `json:"maxLength"  description:"Maximum length of generated values"`
	Requests   int    `json:"requests"   description:"Number of fuzzed requests to send"`
	Characters string `json:"characters" description:"Alphabet generated values are drawn from"`
}

type FuzzerFactory struct {
	base.Factory
}

func NewFuzzerFactory() *FuzzerFactory {
	return &FuzzerFactory{
		Factory: base.Factory{
			ScanType:           FuzzerType,
			ScanName:           "Fuzzing Scan",
			ScanDescription:    "Sends random values to each parameter",
			Kinds:              base.MessageKinds,
			RequiresParameters: true,
		},
	}
}

func (f *FuzzerFactory) Settings() any {
	return &FuzzerSettings{
		MinLength:  5,
		MaxLength:  15,
		Requests:   100,
		Characters: "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789<>&'\"%;",
	}
}
