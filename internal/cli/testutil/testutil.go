// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/delivery/internal/cli/output"
)

// SeedYAML is a small catalog used by CLI tests in place of the baseline.
const SeedYAML = `restaurants:
  - Cantina
dishes:
  - restaurant: Cantina
    name: Lasanha
    price: 32.5
  - restaurant: Cantina
    name: Nhoque
    price: 28
  - restaurant: Fantasma
    name: Sopa
    price: 10
`

// SetupTestProject creates a temporary project with a delivery.yaml pointing
// at a local database and a seed file. Returns the project directory.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(tmpDir, "seeds"), 0o755); err != nil {
		t.Fatalf("failed to create seeds directory: %v", err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "seeds", "catalog.yaml"), []byte(SeedYAML), 0o644); err != nil {
		t.Fatalf("failed to create catalog.yaml: %v", err)
	}

	cfg := `database: data/entrega.db
seed_file: seeds/catalog.yaml
`
	if err := os.WriteFile(filepath.Join(tmpDir, "delivery.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("failed to create delivery.yaml: %v", err)
	}

	return tmpDir
}

// TestRenderer wraps a non-terminal Renderer whose output is captured in Out.
type TestRenderer struct {
	*output.Renderer
	Out *bytes.Buffer
}

// NewTestRenderer creates a plain-text test renderer with the given mode.
func NewTestRenderer(mode output.Mode) *TestRenderer {
	out := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, false, mode),
		Out:      out,
	}
}

// Output returns everything rendered so far.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}
