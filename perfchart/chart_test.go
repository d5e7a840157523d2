// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfchart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/perfherder/perfherder"
)

func TestChart(t *testing.T) {
	a := &perfherder.Artifact{
		Suites: []*perfherder.Suite{
			{
				Name: "browsertime",
				Unit: "ms",
				Subtests: []*perfherder.Subtest{
					{Name: "firstPaint", Replicates: []float64{1016, 862, 940}, ShouldAlert: true},
					{Name: "firstPaint.median", Replicates: []float64{940}},
					{Name: "loadEventEnd", Replicates: []float64{1514, 2210}},
				},
			},
			{
				Name:     "Log Cat",
				Unit:     "ms",
				Subtests: []*perfherder.Subtest{{Name: "TimeToDisplayed", Replicates: []float64{2164}}},
			},
			{Name: "empty", Unit: "ms"},
		},
	}
	dir := filepath.Join(t.TempDir(), "png")
	paths, err := Chart(a, dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "browsertime.png"), filepath.Join(dir, "Log-Cat.png")}
	if len(paths) != len(want) {
		t.Fatalf("Chart wrote %v, want %v", paths, want)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("path %d = %s, want %s", i, p, want[i])
		}
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Errorf("%s is not a PNG", p)
		}
	}
}

func TestBoxed(t *testing.T) {
	s := &perfherder.Suite{Subtests: []*perfherder.Subtest{
		{Name: "a", Replicates: []float64{1, 2}},
		{Name: "a.mean", Replicates: []float64{1.5}},
	}}
	if got := boxed(s); len(got) != 1 || got[0].Name != "a" {
		t.Errorf("boxed = %v, want [a]", got)
	}
}
