// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"golang.org/x/perfherder/metricspec"
)

func checkMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-metrics spec...",
		Short: "Parse metric specs and print them in canonical form.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := metricspec.ParseAll(args)
			if err != nil {
				return err
			}
			for _, s := range specs {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}
