// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfherder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/perfherder/metricspec"
	"golang.org/x/perfherder/perfproc"
)

func TestAggregator(t *testing.T) {
	suiteSpec, err := metricspec.Parse("name:pageload,unit:s,extraOptions:['cold']")
	if err != nil {
		t.Fatal(err)
	}
	a := NewAggregator("", false, []*metricspec.Spec{suiteSpec})
	alert := perfproc.Policy{ShouldAlert: true, Unit: "KB", ExtraOptions: []string{"warm"}}

	a.Add("pageload", "fcp", perfproc.SplitValue{}, []float64{1, 2}, perfproc.Policy{})
	a.Add("pageload", "size", perfproc.SplitValue{}, []float64{10}, alert)
	a.Add("other", "fcp", perfproc.SplitValue{}, []float64{5}, perfproc.Policy{})
	a.Add("pageload", "fcp", perfproc.SplitValue{}, []float64{3}, alert) // policy of the first add wins
	a.Add("pageload", "empty", perfproc.SplitValue{}, nil, alert)

	want := []*Suite{
		{
			Name:         "pageload",
			Value:        6,
			Unit:         "s",
			ExtraOptions: []string{"cold", "warm"},
			Subtests: []*Subtest{
				{Name: "fcp", Value: 2, Unit: "s", Replicates: []float64{1, 2, 3}},
				{Name: "size", Value: 10, Unit: "KB", ShouldAlert: true, ExtraOptions: []string{"warm"}, Replicates: []float64{10}},
			},
		},
		{
			Name:         "other",
			Value:        5,
			Unit:         "ms",
			ExtraOptions: []string{},
			Subtests: []*Subtest{
				{Name: "fcp", Value: 5, Unit: "ms", Replicates: []float64{5}},
			},
		},
	}
	if diff := cmp.Diff(want, a.Suites()); diff != "" {
		t.Errorf("suites mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregatorStats(t *testing.T) {
	a := NewAggregator("p-", true, nil)
	a.Add("s", "fcp", perfproc.SplitValue{Value: "https://a/", Present: true}, []float64{4, 2}, perfproc.Policy{ShouldAlert: true})

	suites := a.Suites()
	if len(suites) != 1 {
		t.Fatalf("got %d suites, want 1", len(suites))
	}
	got := make(map[string]*Subtest)
	var names []string
	for _, st := range suites[0].Subtests {
		got[st.Name] = st
		names = append(names, st.Name)
	}
	want := []string{
		"p-fcp https://a/",
		"p-fcp.median https://a/",
		"p-fcp.mean https://a/",
		"p-fcp.mdev https://a/",
		"p-fcp.stddev https://a/",
		"p-fcp.min https://a/",
		"p-fcp.p10 https://a/",
		"p-fcp.p90 https://a/",
		"p-fcp.p99 https://a/",
		"p-fcp.max https://a/",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	check := func(name string, value float64) {
		t.Helper()
		st := got[name]
		if st.Value != value {
			t.Errorf("%s = %v, want %v", name, st.Value, value)
		}
		if diff := cmp.Diff([]float64{value}, st.Replicates); diff != "" {
			t.Errorf("%s replicates mismatch (-want +got):\n%s", name, diff)
		}
		if !st.ShouldAlert {
			t.Errorf("%s does not inherit shouldAlert", name)
		}
	}
	check("p-fcp.mean https://a/", 3)
	check("p-fcp.min https://a/", 2)
	check("p-fcp.max https://a/", 4)
	check("p-fcp.mdev https://a/", 1)

	// Raw replicates keep their order.
	if diff := cmp.Diff([]float64{4, 2}, got["p-fcp https://a/"].Replicates); diff != "" {
		t.Errorf("replicates mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregatorSplitValues(t *testing.T) {
	a := NewAggregator("", true, nil)
	a.Add("s", "fcp", perfproc.SplitValue{Value: "", Present: true}, []float64{10}, perfproc.Policy{})
	a.Add("s", "fcp", perfproc.SplitValue{Value: "a", Present: true}, []float64{20}, perfproc.Policy{})
	a.Add("s", "fcp", perfproc.SplitValue{}, []float64{30}, perfproc.Policy{})

	var names []string
	values := make(map[string]float64)
	for _, st := range a.Suites()[0].Subtests {
		names = append(names, st.Name)
		values[st.Name] = st.Value
	}
	if len(names) != 30 {
		t.Fatalf("got %d subtests, want 30: %q", len(names), names)
	}
	for name, want := range map[string]float64{
		"fcp ":        10,
		"fcp a":       20,
		"fcp":         30,
		"fcp.median ": 10,
		"fcp.median":  30,
	} {
		if got, ok := values[name]; !ok || got != want {
			t.Errorf("%q = %v, %v; want %v", name, got, ok, want)
		}
	}
}

func TestAggregatorEmpty(t *testing.T) {
	if s := NewAggregator("", true, nil).Suites(); s != nil {
		t.Errorf("Suites of empty aggregator = %v, want nil", s)
	}
}
