// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package perfmath computes summary statistics over the replicates of
// a performance measurement.
package perfmath

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	mstats "github.com/montanaflynn/stats"
)

// A Sample is a set of replicates of one measurement.
type Sample struct {
	// Values are the replicates in ascending order.
	Values []float64
}

// NewSample returns a Sample of values. It does not modify values.
func NewSample(values []float64) *Sample {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return &Sample{sorted}
}

func (s *Sample) sample() stats.Sample {
	return stats.Sample{Xs: s.Values, Sorted: true}
}

// Mean returns the arithmetic mean of s, or NaN if s is empty.
func (s *Sample) Mean() float64 {
	return s.sample().Mean()
}

// StdDev returns the sample standard deviation of s. A Sample with
// fewer than two values has a standard deviation of 0.
func (s *Sample) StdDev() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return s.sample().StdDev()
}

// MedianAbsDev returns the median absolute deviation of s from its
// median.
func (s *Sample) MedianAbsDev() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	mad, err := mstats.MedianAbsoluteDeviation(mstats.Float64Data(s.Values))
	if err != nil {
		return math.NaN()
	}
	return mad
}

// Percentile returns the pctile'th value of s, where pctile is in
// [0, 1]. Values between replicates are interpolated (Hyndman and Fan
// method R8).
func (s *Sample) Percentile(pctile float64) float64 {
	return s.sample().Quantile(pctile)
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) float64 {
	return stats.Mean(values)
}

// A Stat is a named summary statistic.
type Stat struct {
	Name  string
	Value float64
}

// StatNames lists the statistics computed by Stats, in order.
var StatNames = []string{"median", "mean", "mdev", "stddev", "min", "p10", "p90", "p99", "max"}

// Stats returns the summary statistics of s in the order of
// StatNames. s must not be empty.
func (s *Sample) Stats() []Stat {
	min, max := s.sample().Bounds()
	vals := []float64{
		s.Percentile(0.5),
		s.Mean(),
		s.MedianAbsDev(),
		s.StdDev(),
		min,
		s.Percentile(0.10),
		s.Percentile(0.90),
		s.Percentile(0.99),
		max,
	}
	out := make([]Stat, len(vals))
	for i, v := range vals {
		out[i] = Stat{StatNames[i], v}
	}
	return out
}
