package teststep_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opendatahub-io/secscan/pkg/teststep"

	. "github.com/onsi/gomega"
)

const stepsFile = `
steps:
  - name: Get Order
    kind: soap-request
    endpoint: http://shop.example.com/ws
    parameters: [orderId]
  - name: Search
    kind: rest-request
    method: GET
    endpoint: http://shop.example.com/api/search
    parameters: [q, page]
    properties:
      auth: basic
  - name: Wait
    kind: delay
`

func TestParse(t *testing.T) {
	g := NewWithT(t)

	steps, err := teststep.Parse([]byte(stepsFile))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(steps).To(HaveLen(3))
	g.Expect(teststep.Names(steps)).To(Equal([]string{"Get Order", "Search", "Wait"}))

	search, ok := teststep.Find(steps, "Search")
	g.Expect(ok).To(BeTrue())
	g.Expect(search.Kind).To(Equal(teststep.KindRESTRequest))
	g.Expect(search.Parameters).To(Equal([]string{"q", "page"}))
	g.Expect(search.Properties).To(HaveKeyWithValue("auth", "basic"))

	_, ok = teststep.Find(steps, "Missing")
	g.Expect(ok).To(BeFalse())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "unknown kind",
			data:    "steps:\n  - name: a\n    kind: ftp-request\n",
			wantErr: "invalid test step kind",
		},
		{
			name:    "missing name",
			data:    "steps:\n  - kind: delay\n",
			wantErr: "name must not be empty",
		},
		{
			name:    "duplicate name",
			data:    "steps:\n  - name: a\n    kind: delay\n  - name: a\n    kind: delay\n",
			wantErr: "duplicate test step name",
		},
		{
			name:    "unknown field",
			data:    "steps:\n  - name: a\n    kind: delay\n    timeout: 5\n",
			wantErr: "decoding test steps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			_, err := teststep.Parse([]byte(tt.data))
			g.Expect(err).To(MatchError(ContainSubstring(tt.wantErr)))
		})
	}
}

func TestLoadFile(t *testing.T) {
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "steps.yaml")
	g.Expect(os.WriteFile(path, []byte(stepsFile), 0o600)).To(Succeed())

	steps, err := teststep.LoadFile(path)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(steps).To(HaveLen(3))

	_, err = teststep.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	g.Expect(err).To(MatchError(ContainSubstring("reading test steps")))
}

func TestTestStep_Predicates(t *testing.T) {
	g := NewWithT(t)

	var nilStep *teststep.TestStep
	g.Expect(nilStep.IsSampler()).To(BeFalse())
	g.Expect(nilStep.HasParameters()).To(BeFalse())
	g.Expect(nilStep.AsMap()).To(BeNil())

	for _, k := range []teststep.Kind{
		teststep.KindSOAPRequest, teststep.KindRESTRequest, teststep.KindHTTPRequest,
		teststep.KindJDBCRequest, teststep.KindAMFRequest,
	} {
		g.Expect(k.IsSampler()).To(BeTrue(), "kind %s", k)
	}

	for _, k := range []teststep.Kind{teststep.KindGroovyScript, teststep.KindPropertyTransfer, teststep.KindDelay} {
		g.Expect(k.IsSampler()).To(BeFalse(), "kind %s", k)
	}
}

func TestTestStep_AsMap(t *testing.T) {
	g := NewWithT(t)

	step := &teststep.TestStep{
		Name:       "Search",
		Kind:       teststep.KindRESTRequest,
		Parameters: []string{"q"},
		Properties: map[string]string{"auth": "basic"},
	}

	m := step.AsMap()
	g.Expect(m).To(HaveKeyWithValue("kind", "rest-request"))
	g.Expect(m).To(HaveKeyWithValue("sampler", true))
	g.Expect(m).To(HaveKeyWithValue("parameters", []any{"q"}))
	g.Expect(m).To(HaveKeyWithValue("properties", map[string]any{"auth": "basic"}))
}
