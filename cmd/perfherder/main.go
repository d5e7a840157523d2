// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Perfherder converts the raw results of browser-automation test runs
// into a Perfherder performance artifact.
//
// Usage:
//
//	perfherder run [flags] manifest.json
//	perfherder check-metrics spec...
//	perfherder history --archive file subtest
//
// The manifest lists the raw results of one test run, as a JSON array
// that may contain comments and trailing commas:
//
//	[
//		// The browsertime result of the page load.
//		{"results": "browsertime.json", "name": "browsertime"},
//		{
//			"results": "logcat.txt",
//			"name": "LogCat",
//			"transformer": "logcat",
//			"transformer-options": {
//				"first-timestamp": ".*Displayed.*\\+([\\d]+)s([\\d]+)ms.*",
//				"transform-subtest-name": "TimeToDisplayed",
//			},
//		},
//	]
//
// Relative result paths are relative to the manifest.
//
// Run writes perfherder-data.json to the output directory, unless the
// configured metrics match nothing. Settings may also be given in a
// YAML configuration file named by --config:
//
//	stats: true
//	prefix: ""
//	app: fenix
//	split-by: browserScripts.pageinfo.url
//	metrics:
//	  - name:firstPaint,extraOptions:['option']
//	  - name:resource,shouldAlert:True,unit:a-unit
//
// Flags override the configuration file.
//
// Check-metrics parses metric specs and prints them in canonical form.
//
// History prints the archived values of a subtest.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
