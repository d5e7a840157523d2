// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package perfproc selects and partitions measurements extracted from
// raw results.
//
// A Matcher selects measurements by name using metric specs and
// attaches the policy of the spec that selected each one. A Splitter
// partitions the samples of a matched measurement into separate
// series keyed by a value found in each sample's document.
package perfproc

import (
	"golang.org/x/perfherder/metricspec"
	"golang.org/x/perfherder/transform"
)

// A Policy is the reporting policy attached to a matched measurement.
// The zero Policy is the default: no alerting, the suite's default
// unit, and no extra options.
type Policy struct {
	ShouldAlert    bool
	Unit           string // "" means the suite default
	ExtraOptions   []string
	LowerIsBetter  *bool
	AlertThreshold *float64
}

// PolicyOf returns the policy described by spec. A nil spec yields
// the default policy.
func PolicyOf(spec *metricspec.Spec) Policy {
	if spec == nil {
		return Policy{}
	}
	return Policy{
		ShouldAlert:    spec.ShouldAlert,
		Unit:           spec.Unit,
		ExtraOptions:   spec.ExtraOptions,
		LowerIsBetter:  spec.LowerIsBetter,
		AlertThreshold: spec.AlertThreshold,
	}
}

// A Matcher selects measurements using an ordered list of metric
// specs. A measurement is selected by the first spec whose name
// pattern it contains. If there are no specs, every measurement is
// selected with the default policy.
type Matcher struct {
	specs []*metricspec.Spec
}

// NewMatcher returns a Matcher for specs. The order of specs is
// significant.
func NewMatcher(specs []*metricspec.Spec) *Matcher {
	return &Matcher{specs}
}

// MatchesAll reports whether m selects every measurement.
func (m *Matcher) MatchesAll() bool {
	return len(m.specs) == 0
}

// Match returns the spec that selects name. If m selects everything,
// it returns nil, true.
func (m *Matcher) Match(name string) (*metricspec.Spec, bool) {
	if m.MatchesAll() {
		return nil, true
	}
	for _, s := range m.specs {
		if s.Match(name) {
			return s, true
		}
	}
	return nil, false
}

// A Match is a selected measurement and the spec that selected it.
type Match struct {
	Name    string
	Spec    *metricspec.Spec // nil if selected by default
	Samples []transform.Sample
}

// Policy returns the reporting policy of x.
func (x Match) Policy() Policy {
	return PolicyOf(x.Spec)
}

// Apply returns the measurements in ms selected by m, in the order
// of ms.Names.
func (m *Matcher) Apply(ms *transform.Measurements) []Match {
	var out []Match
	for _, name := range ms.Names() {
		spec, ok := m.Match(name)
		if !ok {
			continue
		}
		out = append(out, Match{name, spec, ms.Samples(name)})
	}
	return out
}
