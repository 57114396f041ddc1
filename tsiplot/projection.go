/*
 * projection.go, part of tsi.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package tsiplot draws quick 2D views of tsi meshes, to check by eye what
// a file contains. It uses gonum/plot.
package tsiplot

import (
	"fmt"
	"image/color"

	"github.com/rmera/tsi"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Plane is the plane on which the mesh is projected.
type Plane int

const (
	XY Plane = iota
	XZ
	YZ
)

// axes returns the indexes of the coordinates shown in the horizontal and
// vertical axes, and their names.
func (P Plane) axes() (int, int, string, string, error) {
	switch P {
	case XY:
		return 0, 1, "x", "y", nil
	case XZ:
		return 0, 2, "x", "z", nil
	case YZ:
		return 1, 2, "y", "z", nil
	}
	return 0, 0, "", "", fmt.Errorf("tsiplot: unknown plane %d", int(P))
}

var (
	vertexColor    = color.RGBA{R: 60, G: 90, B: 200, A: 255}
	inclusionColor = color.RGBA{R: 220, G: 30, B: 30, A: 255}
)

// Projection plots the vertices of M projected on the given plane, with the
// vertices that carry inclusions marked on top. The axes span the box, or more
// if some vertices lie outside it. The image format is taken from the
// extension of filename (png, svg, pdf...).
func Projection(M *tsi.Mesh, plane Plane, title, filename string) error {
	p, err := projectionPlot(M, plane, title)
	if err != nil {
		return err
	}
	//here I intentionally shadow err.
	if err := p.Save(5*vg.Inch, 5*vg.Inch, filename); err != nil {
		return fmt.Errorf("tsiplot: can't save %s: %w", filename, err)
	}
	return nil
}

func projectionPlot(M *tsi.Mesh, plane Plane, title string) (*plot.Plot, error) {
	h, v, hname, vname, err := plane.axes()
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = hname + " (nm)"
	p.Y.Label.Text = vname + " (nm)"
	p.X.Min = 0
	p.X.Max = M.Box[h]
	p.Y.Min = 0
	p.Y.Max = M.Box[v]
	p.Add(plotter.NewGrid())

	if len(M.Vertices) > 0 {
		pts := make(plotter.XYs, len(M.Vertices))
		for i, vert := range M.Vertices {
			pts[i].X = vert.Pos[h]
			pts[i].Y = vert.Pos[v]
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("tsiplot: vertices: %w", err)
		}
		s.GlyphStyle.Color = vertexColor
		s.GlyphStyle.Radius = vg.Points(1)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add("vertices", s)
	}

	pts := make(plotter.XYs, 0, len(M.Inclusions))
	for _, inc := range M.Inclusions {
		//dangling references are just not drawn.
		if int(inc.Vertex) >= len(M.Vertices) {
			continue
		}
		pos := M.Vertices[inc.Vertex].Pos
		pts = append(pts, plotter.XY{X: pos[h], Y: pos[v]})
	}
	if len(pts) > 0 {
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("tsiplot: inclusions: %w", err)
		}
		s.GlyphStyle.Color = inclusionColor
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Shape = draw.CrossGlyph{}
		p.Add(s)
		p.Legend.Add("inclusions", s)
	}
	return p, nil
}
