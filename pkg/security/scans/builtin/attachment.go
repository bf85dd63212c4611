package builtin

import (
	"github.com/opendatahub-io/secscan/pkg/security/scans/base"
)

const MaliciousAttachmentType = "MaliciousAttachmentSecurityScan"

// MaliciousAttachmentSettings configures the malicious attachment scan.
type MaliciousAttachmentSettings struct {
	Files          []string `json:"files"          description:"Files attached to the request"`
	GenerateSize   int64    `json:"generateSize"   description:"Size in bytes of generated random attachments"`
	ContentType    string   `json:"contentType"    description:"Content type declared for the attachment"`
	RemoveExisting bool     `json:"removeExisting" description:"Remove the attachments the step already has"`
}

type MaliciousAttachmentFactory struct {
	base.Factory
}

func NewMaliciousAttachmentFactory() *MaliciousAttachmentFactory {
	return &MaliciousAttachmentFactory{
		Factory: base.Factory{
			ScanType:        MaliciousAttachmentType,
			ScanName:        "Malicious Attachment",
			ScanDescription: "Attaches oversized, mistyped or crafted files to requests",
			Kinds:           base.MessageKinds,
		},
	}
}

func (f *MaliciousAttachmentFactory) Settings() any {
	return &MaliciousAttachmentSettings{
		GenerateSize: 1 << 20,
		ContentType:  "application/octet-stream",
	}
}
