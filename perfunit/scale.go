// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfunit

import (
	"fmt"
	"math"
	"strconv"
)

// A Scaler represents a scaling factor for a number and its unit
// prefix.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Unit prefix ("k", "M", "Ki", etc)
}

// Format formats val in unit, scaled by s. For example, with a scale
// chosen for 1.234 in "s", Format returns "1.234 s", and with one
// chosen for 2048 in "B" it returns "2.000 KiB".
//
// Tidy values with units first, or values in "ms" may be rendered in
// nonsense units such as "kms".
func (s Scaler) Format(val float64, unit string) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	if unit == "" && s.Prefix == "" {
		return string(buf)
	}
	buf = append(buf, ' ')
	buf = append(buf, s.Prefix...)
	buf = append(buf, unit...)
	return string(buf)
}

type factor struct {
	factor float64
	prefix string
	// Thresholds for 100.0, 10.00, 1.000.
	t100, t10, t1 float64
}

var siFactors = mkFactors(10, 3, 12, []string{"T", "G", "M", "k", "", "m", "µ", "n"})
var iecFactors = mkFactors(2, 10, 40, []string{"Ti", "Gi", "Mi", "Ki", ""})

// mkFactors returns factors base^exp, base^(exp-step), ... for each
// prefix. The thresholds are the rounding points of the printed
// representation at each precision.
func mkFactors(base, step, exp int, prefixes []string) []factor {
	var factors []factor
	for _, p := range prefixes {
		f := math.Pow(float64(base), float64(exp))
		factors = append(factors, factor{f, p, 99.995 * f, 9.9995 * f, .99995 * f})
		exp -= step
	}
	return factors
}

// CommonScale returns a common Scaler to apply to all values in vals.
// This scale shows at least three significant digits for every value.
func CommonScale(vals []float64, cls Class) Scaler {
	// The common scale is determined by the non-zero value
	// closest to zero.
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, ""}
	}

	var factors []factor
	switch cls {
	default:
		panic(fmt.Sprintf("bad Class %v", cls))
	case Decimal:
		factors = siFactors
	case Binary:
		factors = iecFactors
	}

	for _, f := range factors {
		switch {
		case min >= f.t100:
			return Scaler{1, f.factor, f.prefix}
		case min >= f.t10:
			return Scaler{2, f.factor, f.prefix}
		case min >= f.t1:
			return Scaler{3, f.factor, f.prefix}
		}
	}
	// Smaller than the smallest factor.
	f := factors[len(factors)-1]
	return Scaler{6, f.factor, f.prefix}
}

// FormatValue formats val in unit for display, tidying the unit and
// choosing a prefix. For example, FormatValue(862, "ms") returns
// "862.0 ms".
func FormatValue(val float64, unit string) string {
	return FormatValues([]float64{val}, unit)[0]
}

// FormatValues is like FormatValue, but formats every value in vals
// with the same prefix so they line up in a column.
func FormatValues(vals []float64, unit string) []string {
	tidy := make([]float64, len(vals))
	var u string
	for i, v := range vals {
		tidy[i], u = Tidy(v, unit)
	}
	if len(vals) == 0 {
		return nil
	}
	s := CommonScale(tidy, ClassOf(u))
	out := make([]string, len(vals))
	for i, v := range tidy {
		out[i] = s.Format(v, u)
	}
	return out
}
