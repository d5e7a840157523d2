// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"golang.org/x/perfherder/perfherder"
)

// execute runs the command line args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), err
}

// writeManifest writes a manifest naming the browsertime test data
// and returns its path.
func writeManifest(t *testing.T) string {
	t.Helper()
	results, err := filepath.Abs(filepath.Join("testdata", "browsertime.json"))
	require.NoError(t, err)
	manifest := fmt.Sprintf(`[
	// Page load.
	{"results": %q, "name": "browsertime"},
]`, results)
	file := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(file, []byte(manifest), 0666))
	return file
}

func TestRun(t *testing.T) {
	out := t.TempDir()
	stdout, err := execute(t, "run", "--output", out, "--perfherder-metrics", "name:firstPaint,extraOptions:['cold']", "--summary", writeManifest(t))
	require.NoError(t, err)

	path := filepath.Join(out, perfherder.ArtifactName)
	lines := strings.Split(stdout, "\n")
	require.Equal(t, path, lines[0])
	require.Contains(t, stdout, "firstPaint")
	require.Contains(t, stdout, "cold")

	a, err := perfherder.ReadArtifact(path)
	require.NoError(t, err)
	require.Len(t, a.Suites, 1)
	require.Equal(t, []string{"cold"}, a.Suites[0].ExtraOptions)
	require.Equal(t, "browserScripts.timings.firstPaint", a.Suites[0].Subtests[0].Name)
}

func TestRunNoMatch(t *testing.T) {
	out := t.TempDir()
	stdout, err := execute(t, "run", "--output", out, "--perfherder-metrics", "notAMetric", writeManifest(t))
	require.NoError(t, err)
	require.Equal(t, "no artifact written\n", stdout)
	_, err = os.Stat(filepath.Join(out, perfherder.ArtifactName))
	require.True(t, os.IsNotExist(err))
}

func TestRunConfigFile(t *testing.T) {
	out := t.TempDir()
	config := filepath.Join(t.TempDir(), "perfherder.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`
app: fenix
app-version: 79.0a1
metrics: name:firstPaint,shouldAlert:True
`), 0666))

	_, err := execute(t, "run", "--config", config, "--output", out, writeManifest(t))
	require.NoError(t, err)

	a, err := perfherder.ReadArtifact(filepath.Join(out, perfherder.ArtifactName))
	require.NoError(t, err)
	require.Equal(t, perfherder.Application{Name: "fenix", Version: "79.0a1"}, a.Application)
	require.Len(t, a.Suites, 1)
	require.Len(t, a.Suites[0].Subtests, 1)
	require.True(t, a.Suites[0].Subtests[0].ShouldAlert)
}

func TestRunFlagOverridesConfig(t *testing.T) {
	out := t.TempDir()
	config := filepath.Join(t.TempDir(), "perfherder.yaml")
	require.NoError(t, os.WriteFile(config, []byte("app: fenix\n"), 0666))

	_, err := execute(t, "run", "--config", config, "--perfherder-app", "chrome", "--perfherder-metrics", "firstPaint", "--output", out, writeManifest(t))
	require.NoError(t, err)

	a, err := perfherder.ReadArtifact(filepath.Join(out, perfherder.ArtifactName))
	require.NoError(t, err)
	require.Equal(t, "chrome", a.Application.Name)
}

func TestRunBadApp(t *testing.T) {
	_, err := execute(t, "run", "--perfherder-app", "netscape", "--output", t.TempDir(), writeManifest(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "netscape")
}

func TestRunBadManifest(t *testing.T) {
	file := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"name": "browsertime"}]`), 0666))
	_, err := execute(t, "run", "--output", t.TempDir(), file)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no results")
}

func TestCheckMetrics(t *testing.T) {
	stdout, err := execute(t, "check-metrics", "firstPaint", "name:x,extraOptions:['b', 'a']")
	require.NoError(t, err)
	require.Equal(t, "name:firstPaint\nname:x,extraOptions:[\"a\", \"b\"]\n", stdout)

	_, err = execute(t, "check-metrics", "name:x,bogus:1")
	require.Error(t, err)
}

func TestHistory(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "archive.db")
	manifest := writeManifest(t)
	for i := 0; i < 2; i++ {
		_, err := execute(t, "run", "--output", t.TempDir(), "--perfherder-metrics", "firstPaint", "--archive", archive, manifest)
		require.NoError(t, err)
	}

	// Subtests are selected by substring, like metric specs.
	stdout, err := execute(t, "history", "--archive", archive, "firstPaint")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4, "header, two runs and the median:\n%s", stdout)
	for _, line := range lines[1:3] {
		require.Contains(t, line, "browserScripts.timings.firstPaint")
	}
	require.True(t, strings.HasPrefix(lines[3], "browserScripts.timings.firstPaint: median "), lines[3])
	require.True(t, strings.HasSuffix(lines[3], " over 2 runs"), lines[3])

	full, err := execute(t, "history", "--archive", archive, "browserScripts.timings.firstPaint")
	require.NoError(t, err)
	require.Equal(t, stdout, full)

	_, err = execute(t, "history", "--archive", archive, "FirstPaint")
	require.Error(t, err)

	_, err = execute(t, "history", "--archive", archive, "noSuchMetric")
	require.Error(t, err)

	_, err = execute(t, "history", "firstPaint")
	require.Error(t, err)
}
