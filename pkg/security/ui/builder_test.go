package ui_test

import (
	"testing"
	"time"

	"github.com/opendatahub-io/secscan/pkg/security/ui"

	. "github.com/onsi/gomega"
)

type boundarySettings struct {
	RequestsPerValue int               `json:"requestsPerValue" description:"Requests sent for each value"`
	IncludeLength    bool              `json:"includeLength,omitempty"`
	Payloads         []string          `json:"payloads"`
	Types            map[string]string `json:"types"`
	Timeout          time.Duration     `json:"timeout"`
	Endpoint         string
	Ignored          string `json:"-"`
	internal         string
}

func TestDialogBuilder_Struct(t *testing.T) {
	g := NewWithT(t)

	settings := &boundarySettings{
		RequestsPerValue: 3,
		Payloads:         []string{"a"},
		Endpoint:         "http://localhost",
		internal:         "x",
	}

	form, err := ui.NewDialogBuilder().Build("Boundary Scan", settings)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(form.Title).To(Equal("Boundary Scan"))

	names := make([]string, 0, len(form.Fields))
	for _, f := range form.Fields {
		names = append(names, f.Name)
	}

	g.Expect(names).To(Equal([]string{"requestsPerValue", "includeLength", "payloads", "types", "timeout", "Endpoint"}))

	f, ok := form.Field("requestsPerValue")
	g.Expect(ok).To(BeTrue())
	g.Expect(f).To(Equal(ui.Field{
		Name:        "requestsPerValue",
		Label:       "Requests Per Value",
		Kind:        ui.FieldNumber,
		Default:     3,
		Description: "Requests sent for each value",
	}))

	kinds := map[string]ui.FieldKind{}
	for _, f := range form.Fields {
		kinds[f.Name] = f.Kind
	}

	g.Expect(kinds).To(Equal(map[string]ui.FieldKind{
		"requestsPerValue": ui.FieldNumber,
		"includeLength":    ui.FieldBoolean,
		"payloads":         ui.FieldList,
		"types":            ui.FieldMap,
		"timeout":          ui.FieldNumber,
		"Endpoint":         ui.FieldText,
	}))

	_, ok = form.Field("internal")
	g.Expect(ok).To(BeFalse())
}

func TestDialogBuilder_Map(t *testing.T) {
	g := NewWithT(t)

	settings := &map[string]any{
		"max_depth": 2,
		"mode":      "fast",
		"paths":     []any{"/a"},
		"unset":     nil,
	}

	form, err := ui.NewDialogBuilder().Build("LDAP Injection", settings)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(form.Fields).To(Equal([]ui.Field{
		{Name: "max_depth", Label: "Max depth", Kind: ui.FieldNumber, Default: 2},
		{Name: "mode", Label: "Mode", Kind: ui.FieldText, Default: "fast"},
		{Name: "paths", Label: "Paths", Kind: ui.FieldList, Default: []any{"/a"}},
		{Name: "unset", Label: "Unset", Kind: ui.FieldText},
	}))
}

func TestDialogBuilder_Empty(t *testing.T) {
	g := NewWithT(t)

	builder := ui.NewDialogBuilder()

	form, err := builder.Build("Custom Script", nil)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(form.Fields).To(BeEmpty())

	var nilSettings *boundarySettings

	form, err = builder.Build("Custom Script", nilSettings)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(form.Fields).To(BeEmpty())
}

func TestDialogBuilder_Errors(t *testing.T) {
	g := NewWithT(t)

	builder := ui.NewDialogBuilder()

	_, err := builder.Build("", &boundarySettings{})
	g.Expect(err).To(MatchError(ContainSubstring("title")))

	_, err = builder.Build("Fuzzing Scan", 42)
	g.Expect(err).To(MatchError(ContainSubstring("unsupported settings type")))

	_, err = builder.Build("Fuzzing Scan", map[int]string{1: "a"})
	g.Expect(err).To(MatchError(ContainSubstring("key type")))
}
