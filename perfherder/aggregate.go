// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfherder

import (
	"sort"

	"golang.org/x/perfherder/metricspec"
	"golang.org/x/perfherder/perfmath"
	"golang.org/x/perfherder/perfproc"
	"golang.org/x/perfherder/perfunit"
)

// An Aggregator groups measurement series into suites of subtests.
//
// Suites are kept in the order their names are first added, and
// subtests within a suite in the order their names are first added.
// All series added under one subtest name share the policy of the
// first.
type Aggregator struct {
	prefix       string
	includeStats bool
	suiteSpecs   map[string]*metricspec.Spec

	suites []*suiteAcc
	index  map[string]*suiteAcc
}

type suiteAcc struct {
	name     string
	subtests []*subtestAcc
	index    map[subtestKey]*subtestAcc
}

type subtestAcc struct {
	measurement string
	split       perfproc.SplitValue
	policy      perfproc.Policy
	replicates  []float64
}

type subtestKey struct {
	measurement string
	split       perfproc.SplitValue
}

// NewAggregator returns an empty Aggregator.
//
// prefix is prepended to every subtest name. If includeStats is set,
// every subtest is followed by one derived subtest per statistic in
// perfmath.StatNames. suiteSpecs are metric specs that name a suite;
// they set the suite's unit and extra options.
func NewAggregator(prefix string, includeStats bool, suiteSpecs []*metricspec.Spec) *Aggregator {
	a := &Aggregator{
		prefix:       prefix,
		includeStats: includeStats,
		suiteSpecs:   make(map[string]*metricspec.Spec),
		index:        make(map[string]*suiteAcc),
	}
	for _, s := range suiteSpecs {
		if _, ok := a.suiteSpecs[s.Name]; !ok {
			a.suiteSpecs[s.Name] = s
		}
	}
	return a
}

// Add appends values to the subtest of suite for measurement and
// split value split, which is the zero SplitValue for an unsplit
// measurement.
func (a *Aggregator) Add(suite, measurement string, split perfproc.SplitValue, values []float64, p perfproc.Policy) {
	if len(values) == 0 {
		return
	}
	sa := a.index[suite]
	if sa == nil {
		sa = &suiteAcc{name: suite, index: make(map[subtestKey]*subtestAcc)}
		a.index[suite] = sa
		a.suites = append(a.suites, sa)
	}
	key := subtestKey{measurement, split}
	st := sa.index[key]
	if st == nil {
		st = &subtestAcc{measurement: measurement, split: split, policy: p}
		sa.index[key] = st
		sa.subtests = append(sa.subtests, st)
	}
	st.replicates = append(st.replicates, values...)
}

// Suites returns the aggregated suites. It returns nil if nothing has
// been added.
func (a *Aggregator) Suites() []*Suite {
	var out []*Suite
	for _, sa := range a.suites {
		out = append(out, a.suite(sa))
	}
	return out
}

func (a *Aggregator) suite(sa *suiteAcc) *Suite {
	var suiteUnit string
	opts := make(map[string]bool)
	if spec := a.suiteSpecs[sa.name]; spec != nil {
		suiteUnit = spec.Unit
		for _, o := range spec.ExtraOptions {
			opts[o] = true
		}
	}

	s := &Suite{Name: sa.name, Unit: perfunit.Resolve("", suiteUnit)}
	for _, st := range sa.subtests {
		unit := perfunit.Resolve(st.policy.Unit, suiteUnit)
		replicates := append([]float64(nil), st.replicates...)
		s.Subtests = append(s.Subtests, a.subtest(a.prefix+st.measurement+st.split.Suffix(), perfmath.Mean(replicates), unit, st.policy, replicates))
		for _, o := range st.policy.ExtraOptions {
			opts[o] = true
		}
		if !a.includeStats {
			continue
		}
		for _, stat := range perfmath.NewSample(replicates).Stats() {
			name := a.prefix + st.measurement + "." + stat.Name + st.split.Suffix()
			s.Subtests = append(s.Subtests, a.subtest(name, stat.Value, unit, st.policy, []float64{stat.Value}))
		}
	}

	vals := make([]float64, len(s.Subtests))
	for i, st := range s.Subtests {
		vals[i] = st.Value
	}
	s.Value = perfmath.Mean(vals)

	s.ExtraOptions = make([]string, 0, len(opts))
	for o := range opts {
		s.ExtraOptions = append(s.ExtraOptions, o)
	}
	sort.Strings(s.ExtraOptions)
	return s
}

func (a *Aggregator) subtest(name string, value float64, unit string, p perfproc.Policy, replicates []float64) *Subtest {
	return &Subtest{
		Name:           name,
		Value:          value,
		Unit:           unit,
		ShouldAlert:    p.ShouldAlert,
		LowerIsBetter:  p.LowerIsBetter,
		AlertThreshold: p.AlertThreshold,
		ExtraOptions:   p.ExtraOptions,
		Replicates:     replicates,
	}
}
