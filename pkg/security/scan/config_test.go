package scan_test

import (
	"testing"
	"time"

	"github.com/opendatahub-io/secscan/pkg/security/scan"

	. "github.com/onsi/gomega"
)

type decodeTarget struct {
	Timeout  time.Duration `json:"timeout"`
	Payloads []string      `json:"payloads"`
	Enabled  bool          `json:"enabled"`
	Limit    int           `json:"limit"`
}

func TestScanConfig_Decode(t *testing.T) {
	g := NewWithT(t)

	cfg := &scan.ScanConfig{
		Type: "typed",
		Settings: map[string]any{
			"timeout":  "1500ms",
			"payloads": "a,b",
			"enabled":  "true",
			"limit":    float64(7),
		},
	}

	target := &decodeTarget{Limit: 1}
	g.Expect(cfg.Decode(target)).To(Succeed())
	g.Expect(target).To(Equal(&decodeTarget{
		Timeout:  1500 * time.Millisecond,
		Payloads: []string{"a", "b"},
		Enabled:  true,
		Limit:    7,
	}))
}

func TestScanConfig_DecodeKeepsDefaults(t *testing.T) {
	g := NewWithT(t)

	cfg := &scan.ScanConfig{Type: "typed", Settings: map[string]any{"limit": 3}}

	target := &decodeTarget{Payloads: []string{"default"}}
	g.Expect(cfg.Decode(target)).To(Succeed())
	g.Expect(target.Payloads).To(Equal([]string{"default"}))
	g.Expect(target.Limit).To(Equal(3))
}

func TestScanConfig_DecodeErrors(t *testing.T) {
	g := NewWithT(t)

	cfg := &scan.ScanConfig{Type: "typed", Settings: map[string]any{"limmit": 3}}

	err := cfg.Decode(&decodeTarget{})
	g.Expect(err).To(MatchError(And(ContainSubstring(`"typed"`), ContainSubstring("limmit"))))

	g.Expect(cfg.Decode(nil)).ToNot(Succeed())
}

func TestScanConfig_DecodeMap(t *testing.T) {
	g := NewWithT(t)

	cfg := &scan.ScanConfig{Type: "plugin", Settings: map[string]any{"depth": 2}}

	target := map[string]any{"depth": 1, "mode": "fast"}
	g.Expect(cfg.Decode(&target)).To(Succeed())
	g.Expect(target).To(Equal(map[string]any{"depth": 2, "mode": "fast"}))

	var empty map[string]any
	g.Expect(cfg.Decode(&empty)).To(Succeed())
	g.Expect(empty).To(HaveKeyWithValue("depth", 2))
}
