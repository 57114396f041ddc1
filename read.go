/*
 * read.go, part of tsi.
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
	"bufio"
	"errors"
	"io"

	"go.uber.org/zap"
)

const (
	maxLineSize = 1 << 20
	//declared counts are only a hint, we don't trust them with more than this.
	maxCapHint = 1 << 22
)

// keywords maps the words that open a line outside of data sections.
var keywords = map[string]Section{
	"version":   SectionVersion,
	"box":       SectionBox,
	"vertex":    SectionVertex,
	"triangle":  SectionTriangle,
	"inclusion": SectionInclusion,
	"exclusion": SectionExclusion,
}

// Reader parses tsi files. The zero value is ready to use.
type Reader struct {
	// Log gets a warning when a section's declared count doesn't match
	// the number of lines actually found, and a debug message when trailing
	// content is ignored. nil means no logging.
	Log *zap.Logger
}

func (R *Reader) logger() *zap.Logger {
	if R == nil || R.Log == nil {
		return zap.NewNop()
	}
	return R.Log
}

// Read parses a tsi file from in, using a zero Reader.
func Read(in io.Reader) (*Mesh, error) {
	var R Reader
	return R.Read(in)
}

// Read parses a whole tsi file from in, and returns the mesh or the first
// problem found. No partial mesh is ever returned.
//
// The counts in the section headers are only taken as hints: a section
// lasts until a line that doesn't start with a number (digit, sign or '.').
// A line that starts with a number belongs to the current section, and if
// its shape is wrong it is an error, even if it comes after the last section
// of the file. Whatever follows the triangle section, other than the first
// inclusion and the first exclusion section, is ignored.
func (R *Reader) Read(in io.Reader) (*Mesh, error) {
	L := newLineScanner(in)
	M := new(Mesh)
	var err error
	if M.Version, err = readVersion(L); err != nil {
		return nil, errDecorate(err, "Read")
	}
	if M.Box, err = readBox(L); err != nil {
		return nil, errDecorate(err, "Read")
	}

	declared, err := header(L, SectionVertex)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	M.Vertices = make([]Vertex, 0, capHint(declared))
	err = R.section(L, SectionVertex, declared, func(f []string) error {
		v, err := decodeVertex(f)
		if err == nil {
			M.Vertices = append(M.Vertices, v)
		}
		return err
	})
	if err != nil {
		return nil, errDecorate(err, "Read")
	}

	declared, err = header(L, SectionTriangle)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	M.Triangles = make([]Triangle, 0, capHint(declared))
	err = R.section(L, SectionTriangle, declared, func(f []string) error {
		t, err := decodeTriangle(f)
		if err == nil {
			M.Triangles = append(M.Triangles, t)
		}
		return err
	})
	if err != nil {
		return nil, errDecorate(err, "Read")
	}

	if err = R.optionalSections(L, M); err != nil {
		return nil, errDecorate(err, "Read")
	}
	return M, nil
}

// optionalSections reads the inclusion and exclusion sections, in any order,
// until the end of the input or until something that is not one of them.
func (R *Reader) optionalSections(L *lineScanner, M *Mesh) error {
	seen := make(map[Section]bool, 2)
	for {
		f, err := L.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		s, ok := keywords[f[0]]
		if !ok || seen[s] || (s != SectionInclusion && s != SectionExclusion) {
			R.logger().Debug("ignoring trailing content", zap.Int("line", L.line), zap.String("start", f[0]))
			return nil
		}
		seen[s] = true
		declared, err := headerCount(L, s, f)
		if err != nil {
			return err
		}
		switch s {
		case SectionInclusion:
			M.Inclusions = make([]Inclusion, 0, capHint(declared))
			err = R.section(L, s, declared, func(f []string) error {
				inc, err := decodeInclusion(f)
				if err == nil {
					M.Inclusions = append(M.Inclusions, inc)
				}
				return err
			})
		case SectionExclusion:
			M.Exclusions = make([]Exclusion, 0, capHint(declared))
			err = R.section(L, s, declared, func(f []string) error {
				exc, err := decodeExclusion(f)
				if err == nil {
					M.Exclusions = append(M.Exclusions, exc)
				}
				return err
			})
		}
		if err != nil {
			return err
		}
	}
}

// section feeds data lines to fold until the end of the input or a line that
// doesn't look like data, which is left for the next read.
func (R *Reader) section(L *lineScanner, s Section, declared uint64, fold func([]string) error) error {
	n := 0
	for {
		f, err := L.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if !isData(f) {
			L.unread()
			break
		}
		n++
		if err := fold(f); err != nil {
			return &Error{Kind: FormatError, Section: s, Line: L.line, Item: n, message: "malformed line", err: err}
		}
	}
	if uint64(n) != declared {
		R.logger().Warn("declared count doesn't match the section content",
			zap.Stringer("section", s), zap.Uint64("declared", declared), zap.Int("found", n))
	}
	return nil
}

func readVersion(L *lineScanner) (Version, error) {
	f, err := L.next()
	if err == io.EOF {
		return 0, formatErr(SectionVersion, 0, 0, "empty input")
	}
	if err != nil {
		return 0, err
	}
	if len(f) != 2 || f[0] != "version" {
		return 0, formatErr(SectionVersion, L.line, 0, "the first line must be \"version <tag>\"")
	}
	v, err := ParseVersion(f[1])
	if err != nil {
		return 0, &Error{Kind: FormatError, Section: SectionVersion, Line: L.line, message: "bad version line", err: err}
	}
	return v, nil
}

func readBox(L *lineScanner) ([3]float64, error) {
	var box [3]float64
	f, err := L.next()
	if err == io.EOF {
		return box, formatErr(SectionBox, L.line, 0, "unexpected end of input, \"box\" line expected")
	}
	if err != nil {
		return box, err
	}
	if f[0] != "box" {
		return box, formatErr(SectionBox, L.line, 0, "\"box\" line expected, found %q", f[0])
	}
	box, err = decodeBox(f)
	if err != nil {
		return box, &Error{Kind: FormatError, Section: SectionBox, Line: L.line, message: "malformed line", err: err}
	}
	return box, nil
}

// header reads the "<keyword> <count>" line that must open section s.
func header(L *lineScanner, s Section) (uint64, error) {
	f, err := L.next()
	if err == io.EOF {
		return 0, formatErr(s, L.line, 0, "unexpected end of input, %q header expected", s)
	}
	if err != nil {
		return 0, err
	}
	if f[0] != s.String() {
		return 0, formatErr(s, L.line, 0, "%q header expected, found %q", s, f[0])
	}
	return headerCount(L, s, f)
}

func headerCount(L *lineScanner, s Section, f []string) (uint64, error) {
	if len(f) != 2 {
		return 0, formatErr(s, L.line, 0, "header must be %q followed by a count, got %d fields", s, len(f))
	}
	n, err := parseUint(f[1], "count")
	if err != nil {
		return 0, &Error{Kind: FormatError, Section: s, Line: L.line, message: "bad header", err: err}
	}
	return n, nil
}

func capHint(declared uint64) int {
	if declared > maxCapHint {
		return maxCapHint
	}
	return int(declared)
}

//isData tells lines that belong to the current section from those that don't.
//Data lines start with a number, headers, comments and metadata never do.
func isData(f []string) bool {
	c := f[0][0]
	return c >= '0' && c <= '9' || c == '-' || c == '+' || c == '.'
}

// lineScanner gives the whitespace-separated fields of each non-blank line,
// and allows to push back one line.
type lineScanner struct {
	sc     *bufio.Scanner
	line   int //1-based number of the last line read
	fields []string
	pushed bool
}

func newLineScanner(in io.Reader) *lineScanner {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineScanner{sc: sc, fields: make([]string, 0, 8)}
}

// next returns the fields of the next non-blank line, or io.EOF at the
// end of the input. The returned slice is only valid until the next call.
func (L *lineScanner) next() ([]string, error) {
	if L.pushed {
		L.pushed = false
		return L.fields, nil
	}
	for L.sc.Scan() {
		L.line++
		L.fields = splitFields(L.fields[:0], L.sc.Text())
		if len(L.fields) > 0 {
			return L.fields, nil
		}
	}
	if err := L.sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, formatErr(SectionNone, L.line+1, 0, "line longer than %d bytes", maxLineSize)
		}
		return nil, &Error{Kind: IOError, Line: L.line, message: "reading input", err: err}
	}
	return nil, io.EOF
}

// unread makes the next call to next return the last line again.
func (L *lineScanner) unread() {
	L.pushed = true
}

// splitFields appends to dst the fields of s separated by runs of
// ASCII whitespace.
func splitFields(dst []string, s string) []string {
	start := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			if start >= 0 {
				dst = append(dst, s[start:i])
				start = -1
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		dst = append(dst, s[start:])
	}
	return dst
}
