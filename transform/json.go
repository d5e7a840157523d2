// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"encoding/json"
	"sort"
)

// JSON is a transformer that flattens an arbitrary JSON document into
// dotted measurement names. For example, {"a": {"b": [1, 2]}} yields
// the measurement "a.b" with samples 1 and 2. Only numeric leaves are
// kept. The split document of every sample is the whole payload.
var JSON Transformer = jsonFlattener{}

type jsonFlattener struct{}

func (jsonFlattener) Convert(data []byte, opts Options) (*Measurements, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, dataErrorf("json", "malformed JSON: %v", err)
	}
	switch doc.(type) {
	case map[string]interface{}, []interface{}:
	default:
		return nil, dataErrorf("json", "expected a JSON object or array")
	}
	m := NewMeasurements()
	flatten("", doc, func(name string, val float64) {
		m.Add(name, Sample{val, doc})
	})
	return m, nil
}

// flatten calls emit for every numeric leaf of v, naming each leaf by
// the dotted path of object keys leading to it from prefix. Array
// elements share the name of their array. Object keys are visited in
// sorted order.
func flatten(prefix string, v interface{}, emit func(name string, val float64)) {
	switch v := v.(type) {
	case float64:
		emit(prefix, v)
	case []interface{}:
		for _, elem := range v {
			flatten(prefix, elem, emit)
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			name := k
			if prefix != "" {
				name = prefix + "." + k
			}
			flatten(name, v[k], emit)
		}
	}
}
