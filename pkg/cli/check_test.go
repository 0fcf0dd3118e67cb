package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/platinummonkey/pkgcycle/pkg/analyzer"
	"github.com/platinummonkey/pkgcycle/pkg/exclusion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProject creates files under <base>/src/main/java and returns base
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	base := t.TempDir()
	writeSources(t, base, files)
	return base
}

func writeSources(t *testing.T, base string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(base, "src", "main", "java", filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func cyclicProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"p1/A.java": "package p1;\nimport p2.B;\n",
		"p2/B.java": "package p2;\nimport p3.C;\n",
		"p3/C.java": "package p3;\nimport p1.A;\n",
	})
}

func TestCheck_CyclesFail(t *testing.T) {
	base := cyclicProject(t)
	root, out, _ := newTestRoot()

	err := root.ExecuteArgs([]string{"check", "-dir", base})
	require.Error(t, err)
	assert.Equal(t, ExitViolations, ExitCode(err))

	assert.Contains(t, out.String(), "Cyclic dependencies found:\nCycle 1: p1 → p2 → p3 → p1\n")
	assert.Contains(t, out.String(), "FAILED: 1 cycle(s)")
}

func TestCheck_CyclesWarn(t *testing.T) {
	base := cyclicProject(t)
	root, out, errOut := newTestRoot()

	err := root.ExecuteArgs([]string{"check", "-dir", base, "-fail-on-error=false"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "WARNING: 1 cycle(s)")
	assert.Contains(t, errOut.String(), "level=warning")
	assert.Contains(t, errOut.String(), "p1 → p2 → p3 → p1")
}

func TestCheck_Clean(t *testing.T) {
	base := writeProject(t, map[string]string{
		"p1/A.java": "package p1;\nimport java.util.List;\n",
	})
	root, out, _ := newTestRoot()

	require.NoError(t, root.ExecuteArgs([]string{"check", "-dir", base}))
	assert.Equal(t, "No cyclic dependencies found (1 files, 1 packages)\n", out.String())
}

func TestCheck_NoSourceDirectory(t *testing.T) {
	base := t.TempDir()
	root, out, errOut := newTestRoot()

	require.NoError(t, root.ExecuteArgs([]string{"check", "-dir", base}))
	assert.Contains(t, out.String(), "does not exist, nothing to check")
	assert.Contains(t, errOut.String(), "Source directory not found")
}

func TestCheck_ExcludeBreaksCycle(t *testing.T) {
	base := cyclicProject(t)
	root, out, _ := newTestRoot()

	require.NoError(t, root.ExecuteArgs([]string{"check", "-dir", base, "-exclude", `p\d`, "-exclude", "unused"}))
	assert.Contains(t, out.String(), "No cyclic dependencies found")
}

func TestCheck_MaxDepthFromConfigAndFlag(t *testing.T) {
	base := cyclicProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(base, "pkgcycle.yaml"), []byte("maxDepth: 2\n"), 0644))

	root, out, _ := newTestRoot()
	require.NoError(t, root.ExecuteArgs([]string{"check", "-dir", base}))
	assert.Contains(t, out.String(), "No cyclic dependencies found")

	root, _, _ = newTestRoot()
	err := root.ExecuteArgs([]string{"check", "-dir", base, "-max-depth", "3"})
	assert.Equal(t, ExitViolations, ExitCode(err))
}

func TestCheck_EnvOverride(t *testing.T) {
	base := cyclicProject(t)
	t.Setenv("PKGCYCLE_FAIL_ON_ERROR", "false")

	root, _, _ := newTestRoot()
	assert.NoError(t, root.ExecuteArgs([]string{"check", "-dir", base}))

	// flags win over the environment
	root, _, _ = newTestRoot()
	err := root.ExecuteArgs([]string{"check", "-dir", base, "-fail-on-error=true"})
	assert.Equal(t, ExitViolations, ExitCode(err))
}

func TestCheck_JSON(t *testing.T) {
	base := cyclicProject(t)
	root, out, _ := newTestRoot()

	err := root.ExecuteArgs([]string{"check", "-dir", base, "-format", "json"})
	assert.Equal(t, ExitViolations, ExitCode(err))

	var doc struct {
		Passed bool `json:"passed"`
		Report struct {
			Status string     `json:"status"`
			Cycles [][]string `json:"cycles"`
		} `json:"report"`
		Summary struct {
			Errors int `json:"errors"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.False(t, doc.Passed)
	assert.Equal(t, string(analyzer.StatusCycles), doc.Report.Status)
	assert.Equal(t, [][]string{{"p1", "p2", "p3", "p1"}}, doc.Report.Cycles)
	assert.Equal(t, 1, doc.Summary.Errors)
}

func TestCheck_GitHub(t *testing.T) {
	base := cyclicProject(t)

	root, out, _ := newTestRoot()
	_ = root.ExecuteArgs([]string{"check", "-dir", base, "-format", "github"})
	assert.Equal(t, "::error title=Cyclic package dependency::Cycle 1: p1 → p2 → p3 → p1\n", out.String())

	root, out, _ = newTestRoot()
	require.NoError(t, root.ExecuteArgs([]string{"check", "-dir", base, "-format", "github", "-fail-on-error=false"}))
	assert.True(t, strings.HasPrefix(out.String(), "::warning "))
}

func TestCheck_MetricsFile(t *testing.T) {
	base := cyclicProject(t)
	metricsPath := filepath.Join(t.TempDir(), "pkgcycle.prom")

	root, _, _ := newTestRoot()
	_ = root.ExecuteArgs([]string{"check", "-dir", base, "-metrics-file", metricsPath})

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pkgcycle_cycles_found 1")
	assert.Contains(t, string(data), "pkgcycle_files_scanned_total 3")
}

func TestCheck_ConfigErrors(t *testing.T) {
	base := cyclicProject(t)

	tests := []struct {
		name string
		args []string
	}{
		{"malformed pattern", []string{"-exclude", "(oops"}},
		{"zero depth", []string{"-max-depth", "0"}},
		{"unknown traversal", []string{"-traversal", "random"}},
		{"unknown format", []string{"-format", "xml"}},
		{"unknown flag", []string{"-nope"}},
		{"missing config file", []string{"-config", filepath.Join(base, "missing.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _, _ := newTestRoot()
			err := root.ExecuteArgs(append([]string{"check", "-dir", base}, tt.args...))
			require.Error(t, err)
			assert.Equal(t, ExitFailure, ExitCode(err))
		})
	}
}

func TestCheck_PatternErrorIsReachable(t *testing.T) {
	base := cyclicProject(t)
	root, _, _ := newTestRoot()

	err := root.ExecuteArgs([]string{"check", "-dir", base, "-exclude", "[bad"})

	var cfgErr *analyzer.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
	var patErr *exclusion.PatternError
	require.True(t, errors.As(err, &patErr))
	assert.Equal(t, "[bad", patErr.Pattern)
}

func TestCheck_PerRootTraversal(t *testing.T) {
	// a -> b -> c -> a and c -> a -> c
	base := writeProject(t, map[string]string{
		"a/A.java": "package a;\nimport b.B;\nimport c.C;\n",
		"b/B.java": "package b;\nimport c.C;\n",
		"c/C.java": "package c;\nimport a.A;\n",
	})

	root, out, _ := newTestRoot()
	_ = root.ExecuteArgs([]string{"check", "-dir", base, "-traversal", "per-root"})
	assert.Contains(t, out.String(), "Cycle 1: a → b → c → a")
	assert.Contains(t, out.String(), "Cycle 2: c → a → c")
}
