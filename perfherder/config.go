// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfherder

// A RawResult describes one raw result file produced by a test run.
type RawResult struct {
	// Results is the path of the raw result file.
	Results string `json:"results"`

	// Name names the suite the result's measurements belong to.
	Name string `json:"name"`

	// Transformer is the registry key of the transformer for this
	// result. If "", the default browsertime transformer is used.
	Transformer string `json:"transformer,omitempty"`

	TransformerOptions map[string]string `json:"transformer-options,omitempty"`
}

// Config configures a Session.
type Config struct {
	// Enabled turns artifact generation on. A disabled Session
	// consumes results without producing anything.
	Enabled bool `mapstructure:"enabled"`

	// IncludeStats adds derived statistic subtests for every
	// subtest.
	IncludeStats bool `mapstructure:"stats"`

	// NamePrefix is prepended to every subtest name.
	NamePrefix string `mapstructure:"prefix"`

	// Metrics are metric specs in their textual form. If empty,
	// every measurement is reported.
	Metrics []string `mapstructure:"metrics"`

	// ApplicationName is one of Applications. If "", it is
	// DefaultApplication.
	ApplicationName string `mapstructure:"app"`

	// ApplicationVersion is reported only when set.
	ApplicationVersion string `mapstructure:"app-version"`

	// SplitBy is the default split path for all metrics.
	SplitBy string `mapstructure:"split-by"`

	// Output is the directory the artifact is written to.
	Output string `mapstructure:"output"`
}
