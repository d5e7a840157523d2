// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"golang.org/x/perfherder/perfmath"
	"golang.org/x/perfherder/perfunit"
	"golang.org/x/perfherder/storage/db"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history --archive dsn substring",
		Short: "Print the archived values of every subtest whose name contains substring.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, _ := cmd.Flags().GetString("archive")
			if archive == "" {
				return errors.New("--archive is required")
			}
			driver, _ := cmd.Flags().GetString("archive-driver")
			d, err := db.OpenSQL(driver, archive)
			if err != nil {
				return errors.Wrapf(err, "opening archive %s", archive)
			}
			defer d.Close()

			points, err := d.History(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(points) == 0 {
				return errors.Errorf("no archived values for %q", args[0])
			}
			return writeHistory(cmd, points)
		},
	}
	cmd.Flags().String("archive", "", "read the database at `dsn`")
	cmd.Flags().String("archive-driver", "sqlite3", "database `driver` (sqlite3 or mysql)")
	return cmd
}

// writeHistory prints points in archive order, then the median of
// each subtest. Values of one subtest share a unit prefix.
func writeHistory(cmd *cobra.Command, points []db.Point) error {
	var names []string
	values := make(map[string][]float64)
	for _, p := range points {
		if _, ok := values[p.Subtest]; !ok {
			names = append(names, p.Subtest)
		}
		values[p.Subtest] = append(values[p.Subtest], p.Value)
	}
	units := make(map[string]string)
	for _, p := range points {
		units[p.Subtest] = p.Unit
	}
	formatted := make(map[string][]string)
	for _, name := range names {
		formatted[name] = perfunit.FormatValues(values[name], units[name])
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "run\tdate\tsuite\tsubtest\tvalue\tn\n")
	next := make(map[string]int)
	for _, p := range points {
		i := next[p.Subtest]
		next[p.Subtest]++
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", p.RunID, p.Created.UTC().Format("2006-01-02 15:04"), p.Suite, p.Subtest, formatted[p.Subtest][i], len(p.Replicates))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, name := range names {
		median := perfmath.NewSample(values[name]).Percentile(0.5)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: median %s over %d runs\n", name, perfunit.FormatValue(median, units[name]), len(values[name]))
	}
	return nil
}
