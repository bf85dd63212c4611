package scan_test

import (
	"testing"

	"github.com/opendatahub-io/secscan/pkg/security/scan"

	. "github.com/onsi/gomega"
)

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		pattern string
		want    bool
	}{
		{name: "wildcard", typ: "XSSSecurityScan", pattern: "*", want: true},
		{name: "exact type", typ: "XSSSecurityScan", pattern: "XSSSecurityScan", want: true},
		{name: "exact type ignores case", typ: "XmlBombSecurityScan", pattern: "xmlbombsecurityscan", want: true},
		{name: "prefix glob", typ: "XmlBombSecurityScan", pattern: "Xml*", want: true},
		{name: "infix glob", typ: "SQLInjectionSecurityScan", pattern: "*Injection*", want: true},
		{name: "single character glob", typ: "XSSSecurityScan", pattern: "X?SSecurityScan", want: true},
		{name: "character class", typ: "XSSSecurityScan", pattern: "[xy]*", want: true},
		{name: "glob does not match", typ: "FuzzerSecurityScan", pattern: "*Injection*", want: false},
		{name: "partial name without glob", typ: "FuzzerSecurityScan", pattern: "Fuzzer", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			// matchesPattern is not exported, so we test through ListByPattern
			registry := scan.NewRegistry(scan.WithFactories(&MockFactory{typ: tt.typ, name: tt.typ}))

			results, err := registry.ListByPattern(tt.pattern)
			g.Expect(err).ToNot(HaveOccurred())

			if tt.want {
				g.Expect(results).To(HaveLen(1))
				g.Expect(results[0].Type()).To(Equal(tt.typ))
			} else {
				g.Expect(results).To(BeEmpty())
			}
		})
	}
}

func TestRegistry_ListByPattern(t *testing.T) {
	g := NewWithT(t)

	registry := scan.NewRegistry(scan.WithFactories(
		&MockFactory{typ: "XSSSecurityScan", name: "Cross Site Scripting"},
		&MockFactory{typ: "SQLInjectionSecurityScan", name: "SQL Injection"},
		&MockFactory{typ: "XPathInjectionSecurityScan", name: "XPath Injection"},
		&MockFactory{typ: "FuzzerSecurityScan", name: "Fuzzing Scan"},
	))

	tests := []struct {
		name      string
		pattern   string
		wantNames []string
	}{
		{
			name:      "wildcard sorted by name",
			pattern:   "*",
			wantNames: []string{"Cross Site Scripting", "Fuzzing Scan", "SQL Injection", "XPath Injection"},
		},
		{
			name:      "injection scans",
			pattern:   "*Injection*",
			wantNames: []string{"SQL Injection", "XPath Injection"},
		},
		{
			name:      "prefix",
			pattern:   "x*",
			wantNames: []string{"Cross Site Scripting", "XPath Injection"},
		},
		{
			name:      "no match",
			pattern:   "Boundary*",
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			results, err := registry.ListByPattern(tt.pattern)
			g.Expect(err).ToNot(HaveOccurred())

			names := make([]string, 0, len(results))
			for _, f := range results {
				names = append(names, f.Name())
			}

			g.Expect(names).To(Equal(tt.wantNames))
		})
	}

	_, err := registry.ListByPattern("[")
	g.Expect(err).To(MatchError(ContainSubstring("pattern matching")))
}

func TestValidateSelector(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		wantErr  bool
	}{
		{name: "wildcard", selector: "*"},
		{name: "exact", selector: "XSSSecurityScan"},
		{name: "glob", selector: "*Injection*"},
		{name: "empty", selector: "", wantErr: true},
		{name: "unterminated class", selector: "[abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			err := scan.ValidateSelector(tt.selector)
			if tt.wantErr {
				g.Expect(err).To(HaveOccurred())
			} else {
				g.Expect(err).ToNot(HaveOccurred())
			}
		})
	}
}
