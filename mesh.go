/*
 * mesh.go, part of tsi.
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

package tsi

import (
	"fmt"
	"math"

	v3 "github.com/rmera/tsi/v3"
)

// VertexIndex is the position of a vertex in Mesh.Vertices. TS2CG stores
// it as an int; negative values never appear in valid files.
// References of 2^32 or more can't be represented, and Read rejects them.
type VertexIndex uint32

// Vertex is a point of the mesh, in nm, with its domain tag.
type Vertex struct {
	Pos    [3]float64
	Domain int
}

// Triangle holds the positions, in Mesh.Vertices, of the 3 vertices of a facet.
// The "type" column of the file is not kept.
type Triangle [3]VertexIndex

// Inclusion is an oriented marker attached to a vertex.
// Orientation is expected to be a unit vector, but it is
// stored as read.
type Inclusion struct {
	Type        int
	Vertex      VertexIndex
	Orientation [2]float64
}

// Normalized returns the orientation of the inclusion scaled to unit length.
// A zero orientation is returned as zero.
func (I Inclusion) Normalized() [2]float64 {
	x, y := I.Orientation[0], I.Orientation[1]
	norm := math.Hypot(x, y)
	if norm == 0 || math.IsNaN(norm) {
		return [2]float64{0, 0}
	}
	return [2]float64{x / norm, y / norm}
}

// Exclusion marks a vertex around which, within Radius nm, nothing
// is to be placed.
type Exclusion struct {
	Vertex VertexIndex
	Radius float64
}

// Mesh is the whole content of a tsi file.
// Elements are addressed by their position in each slice. The library
// never modifies a Mesh after returning it, nor one it is given.
type Mesh struct {
	Version    Version
	Box        [3]float64 //box size in nm
	Vertices   []Vertex
	Triangles  []Triangle
	Inclusions []Inclusion
	Exclusions []Exclusion
}

// Coords returns the positions of all vertices as a Nx3 matrix.
// The matrix is a copy, changes to it do not affect the mesh.
func (M *Mesh) Coords() *v3.Matrix {
	c := v3.Zeros(len(M.Vertices))
	for i, v := range M.Vertices {
		c.Set(i, 0, v.Pos[0])
		c.Set(i, 1, v.Pos[1])
		c.Set(i, 2, v.Pos[2])
	}
	return c
}

// WithCoords returns a copy of the mesh where the vertex positions are
// taken from coords, which must have one row per vertex.
// Triangles, inclusions and exclusions are shared with the receiver.
func (M *Mesh) WithCoords(coords *v3.Matrix) (*Mesh, error) {
	if coords == nil {
		return nil, &Error{Kind: RangeError, message: "nil coordinates given", deco: []string{"WithCoords"}}
	}
	if n := coords.NVecs(); n != len(M.Vertices) {
		return nil, &Error{Kind: RangeError, Section: SectionVertex,
			message: fmt.Sprintf("%d coordinates given, but the mesh has %d vertices", n, len(M.Vertices)),
			deco:    []string{"WithCoords"}}
	}
	ret := *M
	ret.Vertices = make([]Vertex, len(M.Vertices))
	for i, v := range M.Vertices {
		ret.Vertices[i] = Vertex{
			Pos:    [3]float64{coords.At(i, 0), coords.At(i, 1), coords.At(i, 2)},
			Domain: v.Domain,
		}
	}
	return &ret, nil
}

// Validate checks that every vertex reference in the mesh points to an
// existing vertex and that the version is a known one. It is never called
// by Read: files with dangling references still parse.
func (M *Mesh) Validate() error {
	if M.Version != 0 && !M.Version.Valid() {
		return &Error{Kind: RangeError, Section: SectionVersion, message: fmt.Sprintf("unknown version tag %d", M.Version), deco: []string{"Validate"}}
	}
	n := VertexIndex(len(M.Vertices))
	if uint64(len(M.Vertices)) > math.MaxUint32 {
		n = math.MaxUint32
	}
	outOfRange := func(s Section, item int, ref VertexIndex) error {
		return &Error{Kind: RangeError, Section: s, Item: item,
			message: fmt.Sprintf("vertex reference %d out of range (%d vertices)", ref, len(M.Vertices)),
			deco:    []string{"Validate"}}
	}
	for i, t := range M.Triangles {
		for _, ref := range t {
			if ref >= n {
				return outOfRange(SectionTriangle, i+1, ref)
			}
		}
	}
	for i, inc := range M.Inclusions {
		if inc.Vertex >= n {
			return outOfRange(SectionInclusion, i+1, inc.Vertex)
		}
	}
	for i, exc := range M.Exclusions {
		if exc.Vertex >= n {
			return outOfRange(SectionExclusion, i+1, exc.Vertex)
		}
	}
	return nil
}
