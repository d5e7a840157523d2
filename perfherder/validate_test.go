// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfherder

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testArtifact() *Artifact {
	return &Artifact{
		Framework:   Framework{FrameworkName},
		Application: Application{Name: "firefox"},
		Suites: []*Suite{{
			Name:         "browsertime",
			Value:        939,
			Unit:         "ms",
			ExtraOptions: []string{},
			Subtests: []*Subtest{{
				Name:       "browserScripts.timings.firstPaint",
				Value:      939,
				Unit:       "ms",
				Replicates: []float64{1016, 862},
			}},
		}},
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(testArtifact()); err != nil {
		t.Fatalf("valid artifact: %v", err)
	}

	check := func(what string, mutate func(a *Artifact), wantSubstr string) {
		t.Helper()
		a := testArtifact()
		mutate(a)
		err := Validate(a)
		var sve *SchemaViolationError
		if !errors.As(err, &sve) {
			t.Errorf("%s: want *SchemaViolationError, got %v", what, err)
			return
		}
		if !strings.Contains(err.Error(), wantSubstr) {
			t.Errorf("%s: error %q does not mention %q", what, err, wantSubstr)
		}
	}
	check("bad app", func(a *Artifact) { a.Application.Name = "this is not an app" }, "application.name")
	check("bad framework", func(a *Artifact) { a.Framework.Name = "talos" }, "framework.name")
	check("replicate too large", func(a *Artifact) {
		a.Suites[0].Subtests[0].Replicates = append(a.Suites[0].Subtests[0].Replicates, 1589869273219)
	}, "replicates")
	check("value too small", func(a *Artifact) { a.Suites[0].Subtests[0].Value = -2e12 }, "value")
	check("no suites", func(a *Artifact) { a.Suites = []*Suite{} }, "suites")
	check("empty unit", func(a *Artifact) { a.Suites[0].Unit = "" }, "unit")
	check("duplicate subtest", func(a *Artifact) {
		st := *a.Suites[0].Subtests[0]
		a.Suites[0].Subtests = append(a.Suites[0].Subtests, &st)
	}, "duplicate subtest name")
}

func TestSchemaViolationErrorList(t *testing.T) {
	a := testArtifact()
	a.Application.Name = "netscape"
	a.Suites[0].Subtests[0].Value = 2e12
	err := Validate(a)
	var sve *SchemaViolationError
	if !errors.As(err, &sve) {
		t.Fatalf("want *SchemaViolationError, got %v", err)
	}
	if len(sve.Errors) != 2 {
		t.Errorf("got %d errors, want 2:\n%s", len(sve.Errors), err)
	}
	if !strings.Contains(err.Error(), "2 errors") {
		t.Errorf("error %q does not count its problems", err)
	}
}

func TestEmit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := Emit(dir, &Artifact{Suites: []*Suite{{Name: "empty"}}})
	if err != nil || path != "" {
		t.Fatalf("Emit of empty artifact = %q, %v; want \"\", nil", path, err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Emit of empty artifact created %s", dir)
	}

	want := testArtifact()
	path, err = Emit(dir, want)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, ArtifactName) {
		t.Errorf("path = %s, want %s", path, filepath.Join(dir, ArtifactName))
	}
	got, err := ReadArtifact(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}

	// Only the artifact remains.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("output directory has %d entries, want 1", len(entries))
	}
}
