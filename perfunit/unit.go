// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package perfunit resolves the units of performance measurements and
// formats numbers in those units.
package perfunit

import (
	"fmt"
	"strings"
)

// Default is the unit of a measurement when neither the measurement
// nor its suite specifies one.
const Default = "ms"

// Resolve returns the unit of a measurement. A per-metric unit takes
// precedence over the unit of the enclosing suite, which takes
// precedence over Default.
func Resolve(metricUnit, suiteUnit string) string {
	if metricUnit != "" {
		return metricUnit
	}
	if suiteUnit != "" {
		return suiteUnit
	}
	return Default
}

// A Class specifies what class of unit prefixes are in use.
type Class int

const (
	// Decimal indicates values of a given unit should be scaled
	// by powers of 1000, using SI prefixes such as "k".
	Decimal Class = iota
	// Binary indicates values of a given unit should be scaled by
	// powers of 1024, using IEC prefixes such as "Ki".
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Binary:
		return "Binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ClassOf returns the Class of unit. Byte units are Binary.
// Everything else is Decimal.
func ClassOf(unit string) Class {
	num := unit
	if i := strings.IndexByte(num, '/'); i >= 0 {
		num = num[:i]
	}
	switch strings.TrimSpace(num) {
	case "B", "KB", "MB", "GB", "bytes", "byte":
		return Binary
	}
	return Decimal
}

// Tidy normalizes a value in a pre-scaled time or byte unit to base
// units. For example, a value in "ms" is re-scaled to "s" and a value
// in "KB" to "B". Byte prefixes are powers of 1024, matching the Binary
// class of "B". Other units are returned unchanged.
func Tidy(value float64, unit string) (float64, string) {
	switch unit {
	case "ns":
		return value * 1e-9, "s"
	case "us", "µs":
		return value * 1e-6, "s"
	case "ms":
		return value * 1e-3, "s"
	case "KB":
		return value * (1 << 10), "B"
	case "MB":
		return value * (1 << 20), "B"
	case "GB":
		return value * (1 << 30), "B"
	case "bytes", "byte":
		return value, "B"
	}
	return value, unit
}
