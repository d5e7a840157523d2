// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfherder

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/perfherder/transform"
)

//go:embed schema.json
var schemaJSON []byte

// Applications lists the application names an artifact may report.
var Applications = []string{
	"firefox",
	"chrome",
	"chrome-m",
	"chromium",
	"fennec",
	"geckoview",
	"refbrow",
	"fenix",
	"safari",
}

// DefaultApplication is the application reported when none is
// configured.
const DefaultApplication = "firefox"

func knownApplication(name string) bool {
	for _, a := range Applications {
		if a == name {
			return true
		}
	}
	return false
}

// A DataInsufficiencyError reports that a raw result lacks the
// structure its transformer needs.
type DataInsufficiencyError = transform.DataError

// A SchemaViolationError reports that a finished artifact does not
// conform to the Perfherder schema.
type SchemaViolationError struct {
	Errors []string
}

func (e *SchemaViolationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "perfherder artifact violates schema"
	case 1:
		return "perfherder artifact violates schema: " + e.Errors[0]
	}
	return fmt.Sprintf("perfherder artifact violates schema (%d errors):\n\t%s", len(e.Errors), strings.Join(e.Errors, "\n\t"))
}

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
		if schemaErr != nil {
			schemaErr = errors.Wrap(schemaErr, "loading perfherder schema")
		}
	})
	return schema, schemaErr
}

// Validate checks a against the Perfherder schema. If a does not
// conform, it returns a *SchemaViolationError listing every problem.
func Validate(a *Artifact) error {
	s, err := loadSchema()
	if err != nil {
		return err
	}
	res, err := s.Validate(gojsonschema.NewGoLoader(a))
	if err != nil {
		return errors.Wrap(err, "validating perfherder artifact")
	}
	var problems []string
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	// Unique names are not expressible in the schema.
	for i, suite := range a.Suites {
		seen := make(map[string]bool)
		for _, st := range suite.Subtests {
			if seen[st.Name] {
				problems = append(problems, fmt.Sprintf("suites.%d.subtests: duplicate subtest name %q", i, st.Name))
			}
			seen[st.Name] = true
		}
	}
	if len(problems) > 0 {
		return &SchemaViolationError{problems}
	}
	return nil
}
