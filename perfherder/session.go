// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfherder

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/perfherder/metricspec"
	"golang.org/x/perfherder/perfproc"
	"golang.org/x/perfherder/transform"
)

// An Archive records emitted artifacts.
type Archive interface {
	// Store records artifact a emitted by run.
	Store(run string, a *Artifact) error
	Close() error
}

// A Session turns batches of raw results into Perfherder artifacts.
type Session struct {
	cfg      Config
	specs    []*metricspec.Spec
	registry *transform.Registry
	log      logrus.FieldLogger
	archive  Archive
}

// An Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger of a Session. By default, a Session
// does not log.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) { s.log = l }
}

// WithRegistry sets the transformer registry of a Session. By
// default, a Session uses transform.NewRegistry.
func WithRegistry(r *transform.Registry) Option {
	return func(s *Session) { s.registry = r }
}

// WithArchive records every emitted artifact in a. The Session
// closes a when it is closed.
func WithArchive(a Archive) Option {
	return func(s *Session) { s.archive = a }
}

// NewSession returns a Session for cfg. It reports malformed metric
// specs and unknown applications immediately.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if cfg.ApplicationName == "" {
		cfg.ApplicationName = DefaultApplication
	}
	if !knownApplication(cfg.ApplicationName) {
		return nil, errors.Errorf("unknown application %q (known: %v)", cfg.ApplicationName, Applications)
	}
	specs, err := metricspec.ParseAll(cfg.Metrics)
	if err != nil {
		return nil, errors.Wrap(err, "parsing metrics")
	}
	if cfg.Enabled && cfg.Output == "" {
		return nil, errors.New("no output directory")
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)
	s := &Session{
		cfg:      cfg,
		specs:    specs,
		registry: transform.NewRegistry(),
		log:      discard,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Close releases the Session's archive, if any.
func (s *Session) Close() error {
	if s.archive == nil {
		return nil
	}
	return s.archive.Close()
}

// Apply processes one batch of raw results and returns the path of
// the artifact it wrote.
//
// If the configured metric specs match no measurement, Apply writes
// nothing and returns "", nil. If a raw result lacks the structure its
// transformer requires, Apply returns an error wrapping a
// *DataInsufficiencyError. If the finished artifact does not conform
// to the Perfherder schema, Apply returns a *SchemaViolationError. In
// every error case, nothing is written.
func (s *Session) Apply(results []RawResult) (path string, err error) {
	if !s.cfg.Enabled {
		return "", nil
	}
	run := uuid.New().String()
	log := s.log.WithField("run", run)

	defer func() {
		// Leave either a validated artifact or nothing.
		if err != nil && path != "" {
			os.Remove(path)
			path = ""
		}
	}()

	a, err := s.build(log, results)
	if err != nil {
		return "", err
	}
	if a.Empty() {
		log.Info("no metrics matched; not writing an artifact")
		return "", nil
	}
	if err := Validate(a); err != nil {
		log.WithError(err).Error("artifact failed validation")
		return "", err
	}
	path, err = Emit(s.cfg.Output, a)
	if err != nil {
		return path, err
	}
	log.WithField("path", path).Info("wrote perfherder artifact")

	if s.archive != nil {
		if err = s.archive.Store(run, a); err != nil {
			return path, errors.Wrap(err, "archiving artifact")
		}
	}
	return path, nil
}

// build constructs the artifact for results.
func (s *Session) build(log logrus.FieldLogger, results []RawResult) (*Artifact, error) {
	names := make(map[string]bool)
	for _, r := range results {
		names[r.Name] = true
	}
	// Specs that name a suite configure the suite and do not select
	// measurements.
	var suiteSpecs, metricSpecs []*metricspec.Spec
	for _, spec := range s.specs {
		if names[spec.Name] {
			suiteSpecs = append(suiteSpecs, spec)
		} else {
			metricSpecs = append(metricSpecs, spec)
		}
	}
	matcher := perfproc.NewMatcher(metricSpecs)
	splitter := perfproc.NewSplitter(s.cfg.SplitBy)
	agg := NewAggregator(s.cfg.NamePrefix, s.cfg.IncludeStats, suiteSpecs)

	total := 0
	for _, r := range results {
		tr, err := s.registry.Get(r.Transformer)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(r.Results)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		ms, err := tr.Convert(data, transform.Options(r.TransformerOptions))
		if err != nil {
			return nil, errors.Wrapf(err, "converting %s", r.Results)
		}
		total += ms.Len()

		matches := matcher.Apply(ms)
		log.WithFields(logrus.Fields{
			"results":      r.Results,
			"measurements": ms.Len(),
			"matched":      len(matches),
		}).Debug("converted raw result")
		for _, m := range matches {
			series, err := splitter.Split(m)
			if err != nil {
				return nil, err
			}
			for _, sr := range series {
				agg.Add(r.Name, m.Name, sr.Split, sr.Values, m.Policy())
			}
		}
	}
	if matcher.MatchesAll() && len(results) > 0 && total == 0 {
		key := transform.DefaultKey
		if results[0].Transformer != "" {
			key = results[0].Transformer
		}
		return nil, &DataInsufficiencyError{Transformer: key, Msg: "no numeric measurements in any raw result"}
	}

	a := &Artifact{
		Framework: Framework{FrameworkName},
		Application: Application{
			Name:    s.cfg.ApplicationName,
			Version: s.cfg.ApplicationVersion,
		},
		Suites: agg.Suites(),
	}
	for _, suite := range a.Suites {
		log.WithFields(logrus.Fields{
			"suite":    suite.Name,
			"subtests": len(suite.Subtests),
		}).Info("built suite")
	}
	return a, nil
}
