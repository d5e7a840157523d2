// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perfherder

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Emit writes a to ArtifactName in dir and returns the path written.
// If a has no subtests, Emit writes nothing and returns "".
//
// The file is written to a temporary name and renamed into place, so
// a reader never observes a partial artifact.
func Emit(dir string, a *Artifact) (path string, err error) {
	if a.Empty() {
		return "", nil
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encoding perfherder artifact")
	}
	data = append(data, '\n')

	if err := os.MkdirAll(dir, 0777); err != nil {
		return "", errors.WithStack(err)
	}
	f, err := os.CreateTemp(dir, ".perfherder-data-*.json")
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()
	if err = f.Chmod(0644); err != nil {
		return "", errors.WithStack(err)
	}
	if _, err = f.Write(data); err != nil {
		return "", errors.WithStack(err)
	}
	if err = f.Close(); err != nil {
		return "", errors.WithStack(err)
	}
	path = filepath.Join(dir, ArtifactName)
	if err = os.Rename(f.Name(), path); err != nil {
		return "", errors.WithStack(err)
	}
	return path, nil
}

// ReadArtifact reads an artifact written by Emit.
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	a := new(Artifact)
	if err := json.Unmarshal(data, a); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return a, nil
}
