// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// A Processor converts the submatches of a log line pattern into a
// duration in milliseconds.
type Processor func(groups []string) (float64, error)

// Processors are the built-in Processor strategies, selectable with
// the "processor" logcat option.
var Processors = map[string]Processor{
	// One group holding milliseconds.
	"milliseconds": func(g []string) (float64, error) {
		return sumGroups(g, 1)
	},
	// Two groups holding seconds and milliseconds, as in
	// "Displayed ...: +2s164ms".
	"seconds-milliseconds": func(g []string) (float64, error) {
		return sumGroups(g, 1000, 1)
	},
	// Three groups holding minutes, seconds, and milliseconds.
	"minutes-seconds-milliseconds": func(g []string) (float64, error) {
		return sumGroups(g, 60000, 1000, 1)
	},
}

// DefaultProcessor is the processor used when none is given.
const DefaultProcessor = "seconds-milliseconds"

func sumGroups(groups []string, scales ...float64) (float64, error) {
	if len(groups) < len(scales) {
		return 0, errors.Errorf("want %d groups, got %d", len(scales), len(groups))
	}
	var total float64
	for i, scale := range scales {
		v, err := strconv.ParseFloat(groups[i], 64)
		if err != nil {
			return 0, err
		}
		total += v * scale
	}
	return total, nil
}

// logcatTimeLayout is the layout of the timestamp that begins every
// "threadtime" logcat line, e.g. "06-09 11:43:20.127".
const logcatTimeLayout = "01-02 15:04:05.000"

type logcat struct {
	proc Processor
}

// NewLogcat returns a transformer for Android logcat text.
//
// The "first-timestamp" option is a regexp selecting the lines of
// interest. If the "second-timestamp" option is also given, each
// sample is the time in milliseconds between a line matching
// first-timestamp and the next line matching second-timestamp,
// measured with the logcat line timestamps. Otherwise, each matching
// line yields one sample computed from its submatches by proc. If
// proc is nil, the "processor" option names one of Processors.
//
// Samples are recorded under the "transform-subtest-name" option, or
// "logcat" if that is not set.
func NewLogcat(proc Processor) Transformer {
	return &logcat{proc}
}

func (t *logcat) Convert(data []byte, opts Options) (*Measurements, error) {
	first, err := compileOption(opts, "first-timestamp")
	if err != nil {
		return nil, err
	} else if first == nil {
		return nil, errors.New("logcat: first-timestamp option is required")
	}
	second, err := compileOption(opts, "second-timestamp")
	if err != nil {
		return nil, err
	}
	name := opts["transform-subtest-name"]
	if name == "" {
		name = "logcat"
	}
	proc := t.proc
	if proc == nil {
		key := opts["processor"]
		if key == "" {
			key = DefaultProcessor
		}
		if proc = Processors[key]; proc == nil {
			return nil, errors.Errorf("logcat: unknown processor %q", key)
		}
	}

	if !utf8.Valid(data) {
		return nil, dataErrorf("logcat", "payload is not a text log")
	}

	m := NewMeasurements()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	// The payload is in memory, so any line of it fits.
	maxLine := bufio.MaxScanTokenSize
	if len(data)+1 > maxLine {
		maxLine = len(data) + 1
	}
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	lineNo := 0
	var start time.Time
	haveStart := false
	for scanner.Scan() {
		line := scanner.Text()
		lineNo++
		if second == nil {
			groups := first.FindStringSubmatch(line)
			if groups == nil {
				continue
			}
			v, err := proc(groups[1:])
			if err != nil {
				return nil, dataErrorf("logcat", "line %d: %v", lineNo, err)
			}
			m.Add(name, Sample{Value: v})
			continue
		}

		// Two-timestamp mode.
		if !haveStart && first.MatchString(line) {
			if start, err = lineTime(line); err != nil {
				return nil, dataErrorf("logcat", "line %d: %v", lineNo, err)
			}
			haveStart = true
		} else if haveStart && second.MatchString(line) {
			end, err := lineTime(line)
			if err != nil {
				return nil, dataErrorf("logcat", "line %d: %v", lineNo, err)
			}
			d, err := lineDuration(start, end)
			if err != nil {
				return nil, dataErrorf("logcat", "line %d: %v", lineNo, err)
			}
			m.Add(name, Sample{Value: float64(d) / float64(time.Millisecond)})
			haveStart = false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, dataErrorf("logcat", "%v", err)
	}
	return m, nil
}

func compileOption(opts Options, key string) (*regexp.Regexp, error) {
	expr := opts[key]
	if expr == "" {
		return nil, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "logcat: bad %s pattern", key)
	}
	return re, nil
}

func lineTime(line string) (time.Time, error) {
	if len(line) < len(logcatTimeLayout) {
		return time.Time{}, errors.New("missing logcat timestamp")
	}
	return time.Parse(logcatTimeLayout, line[:len(logcatTimeLayout)])
}

// lineDuration returns the time from start to end. Logcat timestamps
// carry no year, so an end in January after a start in December is
// taken to be in the following year. Any other end before start is an
// error.
func lineDuration(start, end time.Time) (time.Duration, error) {
	if end.Before(start) {
		if start.Month() != time.December || end.Month() != time.January {
			return 0, errors.Errorf("timestamp %s is before %s", end.Format(logcatTimeLayout), start.Format(logcatTimeLayout))
		}
		end = end.AddDate(1, 0, 0)
	}
	return end.Sub(start), nil
}
