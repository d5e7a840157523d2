// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package perfchart draws the replicates of a Perfherder artifact as
// box plots.
package perfchart

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"golang.org/x/perfherder/perfherder"
)

const pointRad = 3

// Chart writes one PNG per suite of a to pngDir, with one box per
// subtest that has more than one replicate. If no subtest of a suite
// has more than one replicate, every subtest is drawn. It returns the
// paths of the files written.
func Chart(a *perfherder.Artifact, pngDir string) ([]string, error) {
	if err := os.MkdirAll(pngDir, 0777); err != nil {
		return nil, errors.WithStack(err)
	}
	var paths []string
	for _, s := range a.Suites {
		subtests := boxed(s)
		if len(subtests) == 0 {
			continue
		}
		pl := plot.New()
		pl.Title.Text = s.Name + " (" + s.Unit + ")"
		pl.Title.TextStyle.Font.Size = 20
		pl.Y.Label.Text = s.Unit
		pl.Y.Tick.Label.Font.Size = 12

		grid := plotter.NewGrid()
		grid.Vertical.Color = nil
		pl.Add(grid)

		w := vg.Points(20)
		var nominalX []string
		for i, st := range subtests {
			b, err := plotter.NewBoxPlot(w, float64(i), plotter.Values(st.Replicates))
			if err != nil {
				return paths, errors.Wrapf(err, "plotting %s", st.Name)
			}
			b.BoxStyle.Color = color.Black
			b.GlyphStyle.Radius = pointRad
			if st.ShouldAlert {
				b.FillColor = color.NRGBA{0xFF, 0, 0, 0x50}
			}
			pl.Add(b)
			nominalX = append(nominalX, st.Name)
		}
		pl.NominalX(nominalX...)
		pl.X.Tick.Label.Rotation = -math.Pi / 8
		pl.X.Tick.Label.YAlign = draw.YTop
		pl.X.Tick.Label.XAlign = draw.XLeft
		pl.X.Tick.Label.Font.Size = 10

		// Heuristic width and height, in centimeters.
		width := 3 * float64(2+len(subtests))
		height := math.Max(width/3, 10)
		can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter),
			vgimg.UseDPI(96),
			vgimg.UseBackgroundColor(color.White))}
		pl.Draw(draw.New(can))

		path := filepath.Join(pngDir, fileName(s.Name)+".png")
		if err := writeCanvas(path, can); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func boxed(s *perfherder.Suite) []*perfherder.Subtest {
	var multi, all []*perfherder.Subtest
	for _, st := range s.Subtests {
		if len(st.Replicates) > 1 {
			multi = append(multi, st)
		}
		if len(st.Replicates) > 0 {
			all = append(all, st)
		}
	}
	if len(multi) > 0 {
		return multi
	}
	return all
}

func fileName(suite string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '-'
		}
		return r
	}, suite)
}

func writeCanvas(path string, can vgimg.PngCanvas) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.WithStack(f.Close())
}
