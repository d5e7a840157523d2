// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tailscale/hujson"

	"golang.org/x/perfherder/perfchart"
	"golang.org/x/perfherder/perfherder"
	"golang.org/x/perfherder/storage/db"

	_ "github.com/go-sql-driver/mysql"
	_ "golang.org/x/perfherder/storage/db/sqlite3"
)

// configFlags maps configuration keys to the flags that set them.
var configFlags = map[string]string{
	"config":      "config",
	"enabled":     "perfherder",
	"stats":       "perfherder-stats",
	"prefix":      "perfherder-prefix",
	"metrics":     "perfherder-metrics",
	"app":         "perfherder-app",
	"app-version": "perfherder-app-version",
	"split-by":    "perfherder-split-by",
	"output":      "output",
}

func runCmd(v *viper.Viper, logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] manifest",
		Short: "Build a Perfherder artifact from the raw results listed in manifest.",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for key, flag := range configFlags {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return errors.Wrap(err, "loading configuration")
			}
			results, err := readManifest(args[0])
			if err != nil {
				return err
			}

			opts := []perfherder.Option{perfherder.WithLogger(logger)}
			var archiveDB *db.DB
			if archive, _ := cmd.Flags().GetString("archive"); archive != "" {
				driver, _ := cmd.Flags().GetString("archive-driver")
				archiveDB, err = db.OpenSQL(driver, archive)
				if err != nil {
					return errors.Wrapf(err, "opening archive %s", archive)
				}
				opts = append(opts, perfherder.WithArchive(archiveDB))
			}

			s, err := perfherder.NewSession(cfg, opts...)
			if err != nil {
				if archiveDB != nil {
					archiveDB.Close()
				}
				return err
			}
			defer s.Close()
			path, err := s.Apply(results)
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no artifact written")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)

			png, _ := cmd.Flags().GetString("png")
			summary, _ := cmd.Flags().GetBool("summary")
			if png == "" && !summary {
				return nil
			}
			a, err := perfherder.ReadArtifact(path)
			if err != nil {
				return err
			}
			if png != "" {
				files, err := perfchart.Chart(a, png)
				if err != nil {
					return err
				}
				for _, f := range files {
					logger.WithField("path", f).Info("wrote chart")
				}
			}
			if summary {
				return writeSummary(cmd.OutOrStdout(), a)
			}
			return nil
		},
	}

	addConfigFlags(cmd.Flags())
	f := cmd.Flags()
	f.String("archive", "", "also record the artifact in the database at `dsn`")
	f.String("archive-driver", "sqlite3", "database `driver` for --archive (sqlite3 or mysql)")
	f.String("png", "", "write replicate charts to `dir`")
	f.Bool("summary", false, "print a summary table of the artifact")
	return cmd
}

// addConfigFlags defines the flags named in configFlags.
func addConfigFlags(f *pflag.FlagSet) {
	f.String("config", "", "read settings from the YAML `file`")
	f.Bool("perfherder", true, "produce a Perfherder artifact")
	f.Bool("perfherder-stats", false, "add derived statistic subtests")
	f.String("perfherder-prefix", "", "`prefix` for subtest names")
	f.StringArray("perfherder-metrics", nil, "metric `spec` to report (may be repeated)")
	f.String("perfherder-app", perfherder.DefaultApplication, "application `name`")
	f.String("perfherder-app-version", "", "application `version`")
	f.String("perfherder-split-by", "", "split every metric by the value at this dotted `path`")
	f.String("output", ".", "write the artifact to `dir`")
}

// readManifest reads the list of raw results in a JSON manifest,
// which may contain comments and trailing commas.
func readManifest(file string) ([]perfherder.RawResult, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	data, err = hujson.Standardize(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", file)
	}
	var results []perfherder.RawResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", file)
	}
	dir := filepath.Dir(file)
	for i, r := range results {
		if r.Results == "" {
			return nil, errors.Errorf("%s: entry %d has no results", file, i)
		}
		if r.Name == "" {
			return nil, errors.Errorf("%s: entry %d has no name", file, i)
		}
		if !filepath.IsAbs(r.Results) {
			results[i].Results = filepath.Join(dir, r.Results)
		}
	}
	return results, nil
}
