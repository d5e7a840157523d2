// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/perfherder/perfherder"
	"golang.org/x/perfherder/perfmath"
	"golang.org/x/perfherder/perfunit"
)

// writeSummary prints one table per suite of a, with the value and
// spread of every subtest.
func writeSummary(w io.Writer, a *perfherder.Artifact) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i, s := range a.Suites {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\tn\t\n", s.Name, "value", "±")
		for _, st := range s.Subtests {
			sample := perfmath.NewSample(st.Replicates)
			spread := "~"
			if len(st.Replicates) > 1 && st.Value != 0 {
				spread = fmt.Sprintf("%.0f%%", 100*sample.StdDev()/st.Value)
			}
			name := st.Name
			if st.ShouldAlert {
				name += " *"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t\n", name, perfunit.FormatValue(st.Value, st.Unit), spread, len(st.Replicates))
		}
		fmt.Fprintf(tw, "%s\t%s\t\t\t\n", "suite", perfunit.FormatValue(s.Value, s.Unit))
		if len(s.ExtraOptions) > 0 {
			fmt.Fprintf(tw, "%s\t%s\t\t\t\n", "options", strings.Join(s.ExtraOptions, ","))
		}
	}
	return tw.Flush()
}
