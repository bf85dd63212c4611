package plugin_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/blang/semver/v4"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/stretchr/testify/require"

	"github.com/opendatahub-io/secscan/pkg/plugin"

	. "github.com/onsi/gomega"
)

func manifest(name string, typ string, displayName string, requires string) string {
	return `apiVersion: secscan.io/v1
kind: ScanPlugin
metadata:
  name: ` + name + `
spec:
  type: ` + typ + `
  displayName: ` + displayName + `
  requires: "` + requires + `"
`
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	return dir
}

func TestLoadDir(t *testing.T) {
	g := NewWithT(t)

	dir := writeFiles(t, map[string]string{
		"b-ldap.yaml":   manifest("ldap", "LDAPInjectionSecurityScan", "LDAP Injection", ">=1.0.0"),
		"a-csrf.yml":    manifest("csrf", "CSRFSecurityScan", "CSRF", ""),
		"c-future.yaml": manifest("future", "FutureSecurityScan", "Future", ">=3.0.0"),
		"README.md":     "not a manifest",
	})

	g.Expect(os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o700)).To(Succeed())

	factories, err := plugin.LoadDir(context.Background(), dir,
		plugin.WithHostVersion(semver.MustParse("1.5.0")),
		plugin.WithConcurrency(2),
	)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(factories).To(HaveLen(2))
	g.Expect(factories[0].Type()).To(Equal("CSRFSecurityScan"))
	g.Expect(factories[1].Type()).To(Equal("LDAPInjectionSecurityScan"))
	g.Expect(factories[1].Source()).To(Equal(filepath.Join(dir, "b-ldap.yaml")))
}

func TestLoadDir_InvalidManifests(t *testing.T) {
	g := NewWithT(t)

	dir := writeFiles(t, map[string]string{
		"good.yaml":      manifest("ldap", "LDAPInjectionSecurityScan", "LDAP Injection", ""),
		"bad-kind.yaml":  "apiVersion: secscan.io/v1\nkind: Other\nmetadata:\n  name: x\nspec:\n  type: X\n  displayName: X\n",
		"bad-yaml.json":  "{not json",
		"bad-field.yaml": "apiVersion: secscan.io/v1\nkind: ScanPlugin\nextra: 1\n",
	})

	factories, err := plugin.LoadDir(context.Background(), dir)
	g.Expect(factories).To(HaveLen(1))
	g.Expect(factories[0].Plugin()).To(Equal("ldap"))

	g.Expect(err).To(HaveOccurred())

	var agg utilerrors.Aggregate
	g.Expect(errors.As(err, &agg)).To(BeTrue())
	g.Expect(agg.Errors()).To(HaveLen(3))
	g.Expect(err.Error()).To(ContainSubstring("bad-kind.yaml"))
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	g := NewWithT(t)

	_, err := plugin.LoadDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	g.Expect(err).To(MatchError(ContainSubstring("reading plugin directory")))
}

func TestLoadDir_Cancelled(t *testing.T) {
	g := NewWithT(t)

	dir := writeFiles(t, map[string]string{
		"ldap.yaml": manifest("ldap", "LDAPInjectionSecurityScan", "LDAP Injection", ""),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := plugin.LoadDir(ctx, dir)
	g.Expect(err).To(MatchError(context.Canceled))
}

func TestLoadDirs(t *testing.T) {
	g := NewWithT(t)

	first := writeFiles(t, map[string]string{
		"ldap.yaml": manifest("ldap", "LDAPInjectionSecurityScan", "LDAP Injection", ""),
		"bad.yaml":  "kind: [",
	})
	second := writeFiles(t, map[string]string{
		"csrf.yaml": manifest("csrf", "CSRFSecurityScan", "CSRF", ""),
	})

	registry := plugin.NewFactoryRegistry(testLogger(t))

	err := plugin.LoadDirs(context.Background(), registry, []string{first, second})
	g.Expect(err).To(MatchError(ContainSubstring("bad.yaml")))

	factories, err := registry.ScanFactories(context.Background())
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(factories).To(HaveLen(2))
	g.Expect(factories[0].Name()).To(Equal("LDAP Injection"))
	g.Expect(factories[1].Name()).To(Equal("CSRF"))

	err = plugin.LoadDirs(context.Background(), registry, []string{filepath.Join(first, "missing")})
	g.Expect(err).To(MatchError(ContainSubstring("reading plugin directory")))
}
