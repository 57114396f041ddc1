/*
 * doc.go, part of tsi.
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

/*
Package tsi reads and writes tsi files, the plain-text format in which
TS2CG and FreeDTS store triangulated membrane surfaces.

A tsi file contains a version tag, the box size (nm), the vertices of the
mesh, its triangles, and, optionally, inclusions (oriented markers on
vertices) and exclusions:

	version 1.1
	box 50.0 50.0 50.0
	vertex 2
	0 1.0 2.0 3.0 0
	1 4.0 5.0 6.0 0
	triangle 1
	0 0 1 1 1
	inclusion 1
	0 1 0 0.0 1.0

The reader is tolerant where real files tend to be sloppy: the counts in the
section headers are only used as hints, the leading index of each line is
checked but otherwise ignored (elements are numbered by their position), any
amount of whitespace separates fields, and content after the last known
section is ignored. A line with the wrong shape inside a section, on the
other hand, stops the parse with an *Error that tells the section and the line.

The writer always produces consistent counts, sequential indexes, and
numbers that read back to the same values. The triangle "type" column is
not kept when reading, and it is written as TrianglePlaceholderType.

    Reads/writes plain, gzip and zstd-compressed tsi files (FileRead, FileWrite).

    Optional range check of vertex references (Mesh.Validate).

    Vertex coordinates as gonum-backed matrices (Mesh.Coords, package v3).

    Projection plots of a mesh (package tsiplot).
*/
package tsi
