// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfproc

import (
	"context"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/pkg/errors"
)

// A Series is a named sequence of sample values.
type Series struct {
	Name   string // "<measurement>" or "<measurement> <split>"
	Split  SplitValue
	Values []float64
}

// A SplitValue is the value a series was split on. The zero
// SplitValue marks an unsplit series. A present empty value is
// distinct from an absent one.
type SplitValue struct {
	Value   string
	Present bool
}

// Suffix returns the suffix v adds to a subtest name: "" if v is
// absent, and " <value>" otherwise.
func (v SplitValue) Suffix() string {
	if !v.Present {
		return ""
	}
	return " " + v.Value
}

// A Splitter partitions matched measurements into series.
//
// The split path of a measurement is its spec's SplitBy if set, and
// otherwise the Splitter's default path. Samples whose document holds
// a scalar value at the split path go to the series named
// "<measurement> <value>"; all other samples go to the series named
// by the measurement alone. Without a split path, all samples form a
// single series.
type Splitter struct {
	defaultPath string
	paths       map[string]func(context.Context, interface{}) (interface{}, error)
}

// NewSplitter returns a Splitter whose default split path is
// defaultPath, which may be "".
func NewSplitter(defaultPath string) *Splitter {
	return &Splitter{
		defaultPath: defaultPath,
		paths:       make(map[string]func(context.Context, interface{}) (interface{}, error)),
	}
}

// Split partitions the samples of x. Series are returned in the order
// their first sample appears.
func (s *Splitter) Split(x Match) ([]Series, error) {
	path := s.defaultPath
	if x.Spec != nil && x.Spec.SplitBy != "" {
		path = x.Spec.SplitBy
	}
	if path == "" {
		vals := make([]float64, len(x.Samples))
		for i, sample := range x.Samples {
			vals[i] = sample.Value
		}
		return []Series{{x.Name, SplitValue{}, vals}}, nil
	}

	eval, err := s.compile(path)
	if err != nil {
		return nil, err
	}
	var out []Series
	index := make(map[SplitValue]int)
	for _, sample := range x.Samples {
		var split SplitValue
		split.Value, split.Present = lookup(eval, sample.Doc)
		i, ok := index[split]
		if !ok {
			i = len(out)
			index[split] = i
			out = append(out, Series{Name: x.Name + split.Suffix(), Split: split})
		}
		out[i].Values = append(out[i].Values, sample.Value)
	}
	return out, nil
}

// compile returns the JSONPath evaluator for a dotted path, such as
// "browserScripts.pageinfo.url".
func (s *Splitter) compile(path string) (func(context.Context, interface{}) (interface{}, error), error) {
	if eval, ok := s.paths[path]; ok {
		return eval, nil
	}
	var expr strings.Builder
	expr.WriteByte('$')
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, errors.Errorf("bad split path %q", path)
		}
		expr.WriteByte('[')
		expr.WriteString(strconv.Quote(part))
		expr.WriteByte(']')
	}
	eval, err := jsonpath.New(expr.String())
	if err != nil {
		return nil, errors.Wrapf(err, "bad split path %q", path)
	}
	s.paths[path] = eval
	return eval, nil
}

// lookup evaluates eval against doc and formats a scalar result.
func lookup(eval func(context.Context, interface{}) (interface{}, error), doc interface{}) (string, bool) {
	if doc == nil {
		return "", false
	}
	v, err := eval(context.Background(), doc)
	if err != nil {
		// The path is absent from this document.
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}
