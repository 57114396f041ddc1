/*
 * errors.go, part of tsi.
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
	"errors"
	"fmt"
	"strings"
)

// Kind classifies errors.
type Kind int

const (
	// FormatError means the input is not a valid tsi file.
	FormatError Kind = iota + 1
	// IOError means the underlying stream or file failed.
	IOError
	// RangeError is only returned by Mesh.Validate and Mesh.WithCoords.
	RangeError
)

func (K Kind) String() string {
	switch K {
	case FormatError:
		return "format error"
	case IOError:
		return "I/O error"
	case RangeError:
		return "range error"
	}
	return "error"
}

// Section identifies the part of a tsi file an error refers to.
type Section int

const (
	SectionNone Section = iota
	SectionVersion
	SectionBox
	SectionVertex
	SectionTriangle
	SectionInclusion
	SectionExclusion
)

var sectionNames = [...]string{
	SectionNone:      "",
	SectionVersion:   "version",
	SectionBox:       "box",
	SectionVertex:    "vertex",
	SectionTriangle:  "triangle",
	SectionInclusion: "inclusion",
	SectionExclusion: "exclusion",
}

// String returns the keyword that opens the section in a file.
func (S Section) String() string {
	if S < 0 || int(S) >= len(sectionNames) {
		return fmt.Sprintf("Section(%d)", int(S))
	}
	return sectionNames[S]
}

// Error is the error type returned by this package (except for write errors
// of the underlying stream, which are returned as they come).
// It keeps the names of the functions it went through (see Decorate),
// and wraps its cause, if any, for the errors package.
// Line is the 1-based line in the file, and Item the 1-based position of the
// offending element inside its section. Either is 0 when it doesn't apply.
type Error struct {
	Kind    Kind
	Section Section
	Line    int
	Item    int
	message string
	fname   string
	deco    []string
	err     error
}

func (E *Error) Error() string {
	var b strings.Builder
	b.WriteString("tsi ")
	b.WriteString(E.Kind.String())
	if E.fname != "" {
		fmt.Fprintf(&b, " in %s", E.fname)
	}
	if E.Line > 0 {
		fmt.Fprintf(&b, " at line %d", E.Line)
	}
	if E.Section != SectionNone {
		fmt.Fprintf(&b, " (%s section", E.Section)
		if E.Item > 0 {
			fmt.Fprintf(&b, ", element %d", E.Item)
		}
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(E.message)
	if E.err != nil {
		b.WriteString(": ")
		b.WriteString(E.err.Error())
	}
	return b.String()
}

// Unwrap returns the error that caused E, if any.
func (E *Error) Unwrap() error { return E.err }

// Decorate adds the name of a caller (optionally followed by ": extra info") to
// the error, and returns all the decorations so far. An empty string adds nothing.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// FileName returns the file the error is associated with, or an empty string.
func (E *Error) FileName() string { return E.fname }

// Format always returns "tsi".
func (E *Error) Format() string { return "tsi" }

// Critical is always true: no error from this package is recoverable.
func (E *Error) Critical() bool { return true }

// IsFormat returns true if err, or an error it wraps, is a tsi format error.
func IsFormat(err error) bool { return isKind(err, FormatError) }

// IsIO returns true if err, or an error it wraps, is a tsi I/O error.
func IsIO(err error) bool { return isKind(err, IOError) }

func isKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

//errDecorate decorates err with caller if it is an *Error, and returns it.
//Other errors are returned untouched.
func errDecorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

func formatErr(s Section, line, item int, format string, a ...any) *Error {
	return &Error{Kind: FormatError, Section: s, Line: line, Item: item, message: fmt.Sprintf(format, a...)}
}
