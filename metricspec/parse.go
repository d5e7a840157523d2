// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metricspec

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Parse parses a metric spec. See the package documentation for the
// syntax. Parse reports unknown keys and malformed values as a
// *SyntaxError; it never silently drops part of the spec.
func Parse(q string) (*Spec, error) {
	if strings.TrimSpace(q) == "" {
		return nil, &SyntaxError{q, 0, "empty metric spec"}
	}
	if !strings.ContainsAny(q, ":,") {
		// Bare name pattern.
		return &Spec{Name: strings.TrimSpace(q)}, nil
	}

	toks := newTokenizer(q)
	p := parser{spec: new(Spec), seen: make(map[string]bool)}
	toks = p.pairs(toks)
	toks.end()
	if toks.errt.err != nil {
		return nil, toks.errt.err
	}
	if !p.seen["name"] {
		return nil, &SyntaxError{q, 0, "missing required key \"name\""}
	}
	return p.spec, nil
}

// ParseAll parses each of qs. If any fail to parse, it returns an
// error describing every failure.
func ParseAll(qs []string) ([]*Spec, error) {
	var specs []*Spec
	var errs *multierror.Error
	for _, q := range qs {
		s, err := Parse(q)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		specs = append(specs, s)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return specs, nil
}

type parser struct {
	spec *Spec
	seen map[string]bool
}

func (p *parser) error(toks tokenizer, msg string) tokenizer {
	_, toks = toks.error(msg)
	return toks
}

func (p *parser) pairs(toks tokenizer) tokenizer {
	for {
		toks = p.pair(toks)
		op, toks2 := toks.keyOrOp()
		if op.Kind != ',' {
			return toks
		}
		toks = toks2
	}
}

func (p *parser) pair(start tokenizer) tokenizer {
	key, rest := start.keyOrOp()
	if key.Kind != 'w' || key.Tok == "" {
		return p.error(start, "expected key:value")
	}
	op, rest := rest.keyOrOp()
	if op.Kind != ':' {
		return p.error(start, "expected key:value")
	}
	val, next := rest.value()
	switch val.Kind {
	case 'w', 'q', 'l':
	case 0:
		if rest.errt.err != nil {
			return next
		}
		return p.error(start, "expected key:value")
	default:
		return p.error(start, "expected key:value")
	}
	if val.Kind == 'w' && val.Tok == "" {
		return p.error(start, "expected key:value")
	}

	name := canonicalKey(key.Tok)
	if name == "" {
		return p.error(start, "unknown key "+strconv.Quote(key.Tok))
	}
	if p.seen[name] {
		return p.error(start, "duplicate key "+strconv.Quote(key.Tok))
	}
	p.seen[name] = true

	if msg := p.set(name, val); msg != "" {
		return p.error(rest, msg)
	}
	return next
}

// canonicalKey maps a spec key to its canonical name, or "" if the
// key is unknown.
func canonicalKey(key string) string {
	switch key {
	case "name", "extraOptions", "shouldAlert", "unit", "lowerIsBetter", "alertThreshold":
		return key
	case "split-by", "splitBy", "split_by":
		return "split-by"
	}
	return ""
}

// set stores val under key in p.spec. It returns an error message if
// val is not valid for key.
func (p *parser) set(key string, val tok) string {
	s := p.spec
	if key == "extraOptions" {
		if val.Kind != 'l' {
			return "extraOptions must be a list"
		}
		s.ExtraOptions = sortedSet(val.List)
		return ""
	}
	if val.Kind == 'l' {
		return key + " must not be a list"
	}
	switch key {
	case "name":
		s.Name = val.Tok
	case "unit":
		s.Unit = val.Tok
	case "split-by":
		s.SplitBy = val.Tok
	case "shouldAlert":
		b, ok := parseBool(val.Tok)
		if !ok {
			return "shouldAlert must be True or False"
		}
		s.ShouldAlert = b
	case "lowerIsBetter":
		b, ok := parseBool(val.Tok)
		if !ok {
			return "lowerIsBetter must be True or False"
		}
		s.LowerIsBetter = &b
	case "alertThreshold":
		f, err := strconv.ParseFloat(val.Tok, 64)
		if err != nil {
			return "alertThreshold must be a number"
		}
		s.AlertThreshold = &f
	}
	return ""
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "True", "true":
		return true, true
	case "False", "false":
		return false, true
	}
	return false, false
}

func sortedSet(xs []string) []string {
	if len(xs) == 0 {
		return nil
	}
	out := append([]string(nil), xs...)
	sort.Strings(out)
	j := 0
	for i, x := range out {
		if i == 0 || x != out[j-1] {
			out[j] = x
			j++
		}
	}
	return out[:j]
}
