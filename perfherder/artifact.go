// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package perfherder builds Perfherder performance artifacts from the
// raw results of browser-automation test runs.
//
// A Session consumes a batch of RawResults. Each result is converted
// to measurements by its transformer, filtered and annotated by the
// configured metric specs, optionally split into several series, and
// aggregated into suites of subtests. The finished Artifact is
// validated against the Perfherder schema and written to
// perfherder-data.json in the output directory. Either a validated
// artifact is written or nothing is.
package perfherder

// FrameworkName is the name of the framework that produces artifacts.
const FrameworkName = "browsertime"

// ArtifactName is the file name of an emitted artifact.
const ArtifactName = "perfherder-data.json"

// An Artifact is a complete Perfherder performance report.
type Artifact struct {
	Framework   Framework   `json:"framework"`
	Application Application `json:"application"`
	Suites      []*Suite    `json:"suites"`
}

type Framework struct {
	Name string `json:"name"`
}

type Application struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// A Suite is a named group of related subtests.
type Suite struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`

	// ExtraOptions is the union of the extra options of the
	// subtests and of any metric spec naming this suite, sorted.
	ExtraOptions []string `json:"extraOptions"`

	Subtests []*Subtest `json:"subtests"`
}

// A Subtest is one measurement series within a suite.
type Subtest struct {
	Name           string   `json:"name"`
	Value          float64  `json:"value"`
	Unit           string   `json:"unit"`
	ShouldAlert    bool     `json:"shouldAlert"`
	LowerIsBetter  *bool    `json:"lowerIsBetter,omitempty"`
	AlertThreshold *float64 `json:"alertThreshold,omitempty"`
	ExtraOptions   []string `json:"extraOptions,omitempty"`

	// Replicates are the raw samples in extraction order.
	Replicates []float64 `json:"replicates"`
}

// Empty reports whether a has no subtests to report.
func (a *Artifact) Empty() bool {
	for _, s := range a.Suites {
		if len(s.Subtests) > 0 {
			return false
		}
	}
	return true
}

// Subtest returns the subtest named name in s, or nil.
func (s *Suite) Subtest(name string) *Subtest {
	for _, st := range s.Subtests {
		if st.Name == name {
			return st
		}
	}
	return nil
}
