// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform converts raw result payloads into named
// sequences of numeric measurements.
//
// Transformers are selected by a registry key carried on each raw
// result. The built-in keys are "browsertime" (the default), "json",
// and "logcat".
package transform

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// A Sample is one numeric reading extracted from a raw result.
type Sample struct {
	Value float64

	// Doc is the decoded document that describes the context this
	// sample was measured in, such as the browsertime iteration
	// it came from. Split paths are resolved against Doc. It may
	// be nil if the transformer has no such context.
	Doc interface{}
}

// Measurements is an ordered mapping from measurement name to the
// samples recorded under that name. Names are kept in the order
// they were first added and samples in the order they were added.
type Measurements struct {
	names   []string
	samples map[string][]Sample
}

// NewMeasurements returns an empty Measurements.
func NewMeasurements() *Measurements {
	return &Measurements{samples: make(map[string][]Sample)}
}

// Add appends s to the samples of name.
func (m *Measurements) Add(name string, s Sample) {
	if _, ok := m.samples[name]; !ok {
		m.names = append(m.names, name)
	}
	m.samples[name] = append(m.samples[name], s)
}

// Names returns the measurement names in first-added order.
func (m *Measurements) Names() []string {
	return m.names
}

// Samples returns the samples recorded under name.
func (m *Measurements) Samples(name string) []Sample {
	return m.samples[name]
}

// Values returns the sample values recorded under name.
func (m *Measurements) Values(name string) []float64 {
	ss := m.samples[name]
	if len(ss) == 0 {
		return nil
	}
	vals := make([]float64, len(ss))
	for i, s := range ss {
		vals[i] = s.Value
	}
	return vals
}

// Len returns the number of distinct measurement names.
func (m *Measurements) Len() int {
	return len(m.names)
}

// Options are transformer-specific settings carried on a raw result.
type Options map[string]string

// A Transformer converts a raw result payload into measurements.
//
// If the payload lacks the structure the transformer requires,
// Convert returns a *DataError. Other errors indicate a configuration
// problem, such as a missing or malformed option.
type Transformer interface {
	Convert(data []byte, opts Options) (*Measurements, error)
}

// A DataError reports that a raw result does not contain the data
// its transformer needs to extract measurements.
type DataError struct {
	Transformer string // Registry key of the transformer
	Msg         string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: %s", e.Transformer, e.Msg)
}

func dataErrorf(transformer, format string, args ...interface{}) error {
	return &DataError{transformer, fmt.Sprintf(format, args...)}
}

// DefaultKey is the registry key used when a raw result does not name
// a transformer.
const DefaultKey = "browsertime"

// A Registry maps registry keys to transformers.
type Registry struct {
	transformers map[string]Transformer
}

// NewRegistry returns a Registry holding the built-in transformers.
func NewRegistry() *Registry {
	return &Registry{map[string]Transformer{
		"browsertime": Browsertime,
		"json":        JSON,
		"logcat":      NewLogcat(nil),
	}}
}

// Register adds t under key. It is an error to replace an existing
// key.
func (r *Registry) Register(key string, t Transformer) error {
	if key == "" {
		return errors.New("transformer key must not be empty")
	}
	if _, ok := r.transformers[key]; ok {
		return errors.Errorf("transformer %q already registered", key)
	}
	r.transformers[key] = t
	return nil
}

// Get returns the transformer registered under key. The empty key
// selects DefaultKey.
func (r *Registry) Get(key string) (Transformer, error) {
	if key == "" {
		key = DefaultKey
	}
	t, ok := r.transformers[key]
	if !ok {
		return nil, errors.Errorf("unknown transformer %q (known: %v)", key, r.Keys())
	}
	return t, nil
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.transformers))
	for k := range r.transformers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
