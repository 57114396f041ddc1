/*
 * version.go, part of tsi.
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

import "fmt"

// Version is the format version declared in the first line of a tsi file.
// The zero value means "not set", and is written as DefaultVersion.
type Version uint8

const (
	Version11 Version = iota + 1
	Version12
)

// DefaultVersion is written for meshes without a version.
const DefaultVersion = Version11

// The only place where the accepted version literals live.
var versionNames = [...]string{
	Version11: "1.1",
	Version12: "1.2",
}

// Valid returns true if V is one of the supported versions.
func (V Version) Valid() bool {
	return V > 0 && int(V) < len(versionNames)
}

// String returns the canonical spelling of the version, as written in files.
func (V Version) String() string {
	if !V.Valid() {
		return fmt.Sprintf("Version(%d)", uint8(V))
	}
	return versionNames[V]
}

// canonical is the version to be written for V.
func (V Version) canonical() Version {
	if !V.Valid() {
		return DefaultVersion
	}
	return V
}

// ParseVersion returns the Version for the literal s, or an error
// if s is not a supported version.
func ParseVersion(s string) (Version, error) {
	for v := Version11; int(v) < len(versionNames); v++ {
		if versionNames[v] == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unsupported version %q", s)
}
