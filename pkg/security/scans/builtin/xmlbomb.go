package builtin

import (
	"github.com/opendatahub-io/secscan/pkg/security/scans/base"
)

const XMLBombType = "XmlBombSecurityScan"

// XMLBombSettings configures the XML bomb scan.
type XMLBombSettings struct {
	Bombs        []string `json:"bombs"        description:"Entity expansion documents sent as the request body"`
	AttachAsFile bool     `json:"attachAsFile" description:"Send the bomb as an attachment instead of the body"`
	ExpandEntity string   `json:"expandEntity" description:"Entity name referenced from the request"`
}

type XMLBombFactory struct {
	base.Factory
}

func NewXMLBombFactory() *XMLBombFactory {
	return &XMLBombFactory{
		Factory: base.Factory{
			ScanType:        XMLBombType,
			ScanName:        "XML Bomb",
			ScanDescription: "Sends recursively expanding entity declarations to exhaust the XML parser",
			Kinds:           base.XMLKinds,
		},
	}
}

func (f *XMLBombFactory) Settings() any {
	return &XMLBombSettings{
		Bombs: []string{
			`<!DOCTYPE lolz [<!ENTITY lol "lol"><!ENTITY lol2 "&lol;&lol;&lol;&lol;&lol;">]><lolz>&lol2;</lolz>`,
		},
		ExpandEntity: "lol2",
	}
}
