// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"encoding/json"
	"sort"
)

// Browsertime is a transformer for browsertime's native JSON output.
//
// The payload is either a list of page entries or a single entry.
// Every entry must hold a "browserScripts" list with one element per
// iteration. For iteration i, element i of every top-level list of
// objects in the entry ("browserScripts", "visualMetrics", and so on)
// is flattened into dotted measurement names such as
// "browserScripts.timings.firstPaint".
//
// Each sample's document holds element i of each of those lists plus
// the entry's "info" object, so a split path such as
// "browserScripts.pageinfo.url" resolves per iteration.
//
// An empty object or list is well-formed and yields no measurements.
var Browsertime Transformer = browsertime{}

type browsertime struct{}

func (browsertime) Convert(data []byte, opts Options) (*Measurements, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, dataErrorf("browsertime", "malformed JSON: %v", err)
	}

	var entries []interface{}
	switch doc := doc.(type) {
	case []interface{}:
		entries = doc
	case map[string]interface{}:
		if len(doc) > 0 {
			entries = []interface{}{doc}
		}
	default:
		return nil, dataErrorf("browsertime", "expected a JSON object or array")
	}

	m := NewMeasurements()
	for i, e := range entries {
		entry, ok := e.(map[string]interface{})
		if !ok {
			return nil, dataErrorf("browsertime", "entry %d is not an object", i)
		}
		scripts, ok := entry["browserScripts"].([]interface{})
		if !ok {
			return nil, dataErrorf("browsertime", "entry %d has no browserScripts list", i)
		}

		keys := iterationKeys(entry)
		for it := range scripts {
			doc := make(map[string]interface{}, len(keys)+1)
			if info, ok := entry["info"]; ok {
				doc["info"] = info
			}
			for _, k := range keys {
				if list := entry[k].([]interface{}); it < len(list) {
					doc[k] = list[it]
				}
			}
			for _, k := range keys {
				v, ok := doc[k]
				if !ok {
					continue
				}
				flatten(k, v, func(name string, val float64) {
					m.Add(name, Sample{val, doc})
				})
			}
		}
	}
	return m, nil
}

// iterationKeys returns the sorted keys of entry that hold per-iteration
// lists of objects.
func iterationKeys(entry map[string]interface{}) []string {
	var keys []string
	for k, v := range entry {
		list, ok := v.([]interface{})
		if !ok || len(list) == 0 {
			continue
		}
		perIteration := true
		for _, elem := range list {
			if _, ok := elem.(map[string]interface{}); !ok {
				perIteration = false
				break
			}
		}
		if perIteration {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
