/*
 * decode.go, part of tsi.
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
	"strconv"
)

//The decode functions take the fields of one line and return the
//element it describes. They know nothing about line numbers or sections,
//the reader adds that when wrapping their errors.

const (
	boxFields       = 4 //box x y z
	vertexFields    = 5 //idx x y z domain
	triangleFields  = 5 //idx v0 v1 v2 type
	inclusionFields = 5 //idx type vertex x y
	exclusionFields = 3 //idx vertex radius
)

func checkArity(f []string, want int) error {
	if len(f) != want {
		return fmt.Errorf("%d fields found, %d expected", len(f), want)
	}
	return nil
}

func decodeBox(f []string) (box [3]float64, err error) {
	if err = checkArity(f, boxFields); err != nil {
		return
	}
	for i := range box {
		if box[i], err = parseFloat(f[i+1], "box size"); err != nil {
			return
		}
	}
	return
}

func decodeVertex(f []string) (Vertex, error) {
	var v Vertex
	if err := checkArity(f, vertexFields); err != nil {
		return v, err
	}
	if _, err := parseUint(f[0], "vertex index"); err != nil {
		return v, err
	}
	var err error
	for i := range v.Pos {
		if v.Pos[i], err = parseFloat(f[i+1], "vertex position"); err != nil {
			return v, err
		}
	}
	v.Domain, err = parseInt(f[4], "vertex domain")
	return v, err
}

func decodeTriangle(f []string) (Triangle, error) {
	var t Triangle
	if err := checkArity(f, triangleFields); err != nil {
		return t, err
	}
	if _, err := parseUint(f[0], "triangle index"); err != nil {
		return t, err
	}
	var err error
	for i := range t {
		if t[i], err = parseRef(f[i+1], "triangle vertex"); err != nil {
			return t, err
		}
	}
	//the type is checked, but not kept.
	_, err = parseInt(f[4], "triangle type")
	return t, err
}

func decodeInclusion(f []string) (Inclusion, error) {
	var inc Inclusion
	if err := checkArity(f, inclusionFields); err != nil {
		return inc, err
	}
	if _, err := parseUint(f[0], "inclusion index"); err != nil {
		return inc, err
	}
	var err error
	if inc.Type, err = parseInt(f[1], "inclusion type"); err != nil {
		return inc, err
	}
	if inc.Vertex, err = parseRef(f[2], "inclusion vertex"); err != nil {
		return inc, err
	}
	for i := range inc.Orientation {
		if inc.Orientation[i], err = parseFloat(f[i+3], "inclusion orientation"); err != nil {
			return inc, err
		}
	}
	return inc, nil
}

func decodeExclusion(f []string) (Exclusion, error) {
	var exc Exclusion
	if err := checkArity(f, exclusionFields); err != nil {
		return exc, err
	}
	if _, err := parseUint(f[0], "exclusion index"); err != nil {
		return exc, err
	}
	var err error
	if exc.Vertex, err = parseRef(f[1], "exclusion vertex"); err != nil {
		return exc, err
	}
	exc.Radius, err = parseFloat(f[2], "exclusion radius")
	return exc, err
}

func parseUint(tok, what string) (uint64, error) {
	n, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an unsigned integer", what, tok)
	}
	return n, nil
}

func parseRef(tok, what string) (VertexIndex, error) {
	n, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a valid vertex index", what, tok)
	}
	return VertexIndex(n), nil
}

func parseInt(tok, what string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer", what, tok)
	}
	return n, nil
}

func parseFloat(tok, what string) (float64, error) {
	x, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number", what, tok)
	}
	return x, nil
}
