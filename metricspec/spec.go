// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metricspec parses metric specifications, which select the
// measurements a Perfherder artifact reports and the policy attached
// to each of them.
//
// A metric spec is either a bare name pattern, such as "firstPaint",
// or a comma-separated list of key:value pairs:
//
//	name:firstPaint,extraOptions:['option'],shouldAlert:True,unit:ms
//
// The recognized keys are:
//
//   - name: a substring pattern matched against measurement names.
//     This key is required.
//   - extraOptions: a list literal of tags, such as ['cold', "fission"].
//   - shouldAlert: True or False.
//   - unit: the unit reported for matching measurements.
//   - split-by (or splitBy): a dotted path into the raw result whose
//     value partitions matching measurements into separate series.
//   - lowerIsBetter: True or False.
//   - alertThreshold: a number, the percentage change that alerts.
//
// Values may be quoted with single or double quotes, which is
// necessary if they contain commas.
package metricspec

import (
	"strconv"
	"strings"
)

// A Spec is a parsed metric specification. A Spec is immutable once
// parsed.
type Spec struct {
	// Name is the pattern matched against measurement names. It
	// matches any measurement name that contains it.
	Name string

	// ExtraOptions are tags attached to matching measurements,
	// sorted and deduplicated.
	ExtraOptions []string

	// ShouldAlert indicates the tracking system should alert on
	// changes in matching measurements.
	ShouldAlert bool

	// Unit overrides the unit of matching measurements. If "", the
	// suite default applies.
	Unit string

	// SplitBy is a dotted path into the raw result. If not "", each
	// distinct value at this path produces a separate series.
	SplitBy string

	// LowerIsBetter and AlertThreshold are passed through to
	// matching measurements when set.
	LowerIsBetter  *bool
	AlertThreshold *float64
}

// Match reports whether name is selected by s.
func (s *Spec) Match(name string) bool {
	return strings.Contains(name, s.Name)
}

// String returns s in canonical key:value form. The result parses
// back into an equivalent Spec.
func (s *Spec) String() string {
	var buf strings.Builder
	buf.WriteString("name:")
	buf.WriteString(quoteWord(s.Name))
	if len(s.ExtraOptions) > 0 {
		buf.WriteString(",extraOptions:[")
		for i, opt := range s.ExtraOptions {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(strconv.Quote(opt))
		}
		buf.WriteByte(']')
	}
	if s.ShouldAlert {
		buf.WriteString(",shouldAlert:True")
	}
	if s.Unit != "" {
		buf.WriteString(",unit:")
		buf.WriteString(quoteWord(s.Unit))
	}
	if s.SplitBy != "" {
		buf.WriteString(",split-by:")
		buf.WriteString(quoteWord(s.SplitBy))
	}
	if s.LowerIsBetter != nil {
		buf.WriteString(",lowerIsBetter:")
		buf.WriteString(formatBool(*s.LowerIsBetter))
	}
	if s.AlertThreshold != nil {
		buf.WriteString(",alertThreshold:")
		buf.WriteString(strconv.FormatFloat(*s.AlertThreshold, 'g', -1, 64))
	}
	return buf.String()
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
