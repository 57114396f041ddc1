/*
 * read_test.go, part of tsi.
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
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const smallTSI = `version 1.1
box 50.0 50.0 50.0
vertex 2
0 1.0 2.0 3.0 0
1 4.0 5.0 6.0 0
triangle 1
0 0 1 1 1
`

const membraneTSI = `version 1.1
box 50.0 50.0 50.0
vertex 3
0 21.4 33.8 32.7 0
1 38.1 26.1 32.3 0
2 40.9 24.2 19.9 0
triangle 1
0 1 0 2 1
inclusion 1
0 1 2 0 1`

// requireFormatErr checks that err is a format error in the given section and line.
func requireFormatErr(Te *testing.T, err error, s Section, line int) *Error {
	Te.Helper()
	require.Error(Te, err)
	var e *Error
	require.True(Te, errors.As(err, &e), "error %v is not a *tsi.Error", err)
	assert.Equal(Te, FormatError, e.Kind, err.Error())
	assert.Equal(Te, s, e.Section, err.Error())
	assert.Equal(Te, line, e.Line, err.Error())
	assert.True(Te, IsFormat(err))
	assert.False(Te, IsIO(err))
	return e
}

func TestReadSmall(Te *testing.T) {
	M, err := Read(strings.NewReader(smallTSI))
	require.NoError(Te, err)
	assert.Equal(Te, Version11, M.Version)
	assert.Equal(Te, [3]float64{50, 50, 50}, M.Box)
	require.Len(Te, M.Vertices, 2)
	assert.Equal(Te, Vertex{Pos: [3]float64{1, 2, 3}, Domain: 0}, M.Vertices[0])
	assert.Equal(Te, Vertex{Pos: [3]float64{4, 5, 6}, Domain: 0}, M.Vertices[1])
	require.Len(Te, M.Triangles, 1)
	assert.Equal(Te, Triangle{0, 1, 1}, M.Triangles[0])
	assert.Empty(Te, M.Inclusions)
	assert.Empty(Te, M.Exclusions)
}

func TestReadMembrane(Te *testing.T) {
	M, err := Read(strings.NewReader(membraneTSI))
	require.NoError(Te, err)
	assert.Len(Te, M.Vertices, 3)
	assert.Equal(Te, Triangle{1, 0, 2}, M.Triangles[0])
	require.Len(Te, M.Inclusions, 1)
	assert.Equal(Te, Inclusion{Type: 1, Vertex: 2, Orientation: [2]float64{0, 1}}, M.Inclusions[0])
}

func TestReadVersion12(Te *testing.T) {
	M, err := Read(strings.NewReader(strings.Replace(smallTSI, "version 1.1", "version 1.2", 1)))
	require.NoError(Te, err)
	assert.Equal(Te, Version12, M.Version)
}

func TestDeclaredCountTolerance(Te *testing.T) {
	more := strings.Replace(smallTSI, "vertex 2", "vertex 5", 1)
	M, err := Read(strings.NewReader(more))
	require.NoError(Te, err)
	assert.Len(Te, M.Vertices, 2)

	fewer := strings.Replace(smallTSI, "vertex 2", "vertex 1", 1)
	fewer = strings.Replace(fewer, "triangle 1", "triangle 0", 1)
	M, err = Read(strings.NewReader(fewer))
	require.NoError(Te, err)
	assert.Len(Te, M.Vertices, 2)
	assert.Len(Te, M.Triangles, 1)

	//absurd counts are only hints, too.
	huge := strings.Replace(smallTSI, "triangle 1", "triangle 18446744073709551615", 1)
	M, err = Read(strings.NewReader(huge))
	require.NoError(Te, err)
	assert.Len(Te, M.Triangles, 1)
}

func TestCountMismatchIsLogged(Te *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	R := &Reader{Log: zap.New(core)}
	in := strings.Replace(smallTSI, "vertex 2", "vertex 3", 1) + "# written by some tool\n"
	_, err := R.Read(strings.NewReader(in))
	require.NoError(Te, err)

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(Te, warns, 1)
	fields := warns[0].ContextMap()
	assert.Equal(Te, "vertex", fields["section"])
	assert.Equal(Te, uint64(3), fields["declared"])
	assert.Equal(Te, int64(2), fields["found"])

	assert.Equal(Te, 1, logs.FilterMessage("ignoring trailing content").Len())
}

func TestMalformedVertexLine(Te *testing.T) {
	in := strings.Replace(smallTSI, "0 1.0 2.0 3.0 0", "0 1.0 2.0 3.0", 1)
	_, err := Read(strings.NewReader(in))
	e := requireFormatErr(Te, err, SectionVertex, 4)
	assert.Equal(Te, 1, e.Item)
	assert.Contains(Te, err.Error(), "vertex section")
	assert.Contains(Te, err.Error(), "line 4")

	in = strings.Replace(smallTSI, "1 4.0 5.0 6.0 0", "1 4.0 5.0 6.0 0 7", 1)
	_, err = Read(strings.NewReader(in))
	e = requireFormatErr(Te, err, SectionVertex, 5)
	assert.Equal(Te, 2, e.Item)
}

func TestNonNumericTokens(Te *testing.T) {
	cases := []struct {
		name    string
		old     string
		new     string
		section Section
		line    int
	}{
		{"box", "box 50.0 50.0 50.0", "box 50.0 fifty 50.0", SectionBox, 2},
		{"vertex position", "1 4.0 5.0 6.0 0", "1 4.0 5,0 6.0 0", SectionVertex, 5},
		{"vertex domain", "1 4.0 5.0 6.0 0", "1 4.0 5.0 6.0 0.5", SectionVertex, 5},
		{"vertex index", "1 4.0 5.0 6.0 0", "-1 4.0 5.0 6.0 0", SectionVertex, 5},
		{"triangle vertex", "0 0 1 1 1", "0 0 -1 1 1", SectionTriangle, 7},
		{"triangle type", "0 0 1 1 1", "0 0 1 1 x1", SectionTriangle, 7},
		{"vertex count", "vertex 2", "vertex two", SectionVertex, 3},
		{"negative count", "triangle 1", "triangle -1", SectionTriangle, 6},
	}
	for _, c := range cases {
		Te.Run(c.name, func(Te *testing.T) {
			in := strings.Replace(smallTSI, c.old, c.new, 1)
			require.NotEqual(Te, smallTSI, in)
			_, err := Read(strings.NewReader(in))
			requireFormatErr(Te, err, c.section, c.line)
		})
	}
}

func TestVersionGate(Te *testing.T) {
	for _, first := range []string{"version 2.0", "version 1.10", "version", "version 1.1 extra", "versio 1.1", "box 1 1 1"} {
		in := strings.Replace(smallTSI, "version 1.1", first, 1)
		_, err := Read(strings.NewReader(in))
		requireFormatErr(Te, err, SectionVersion, 1)
	}
	_, err := Read(strings.NewReader(""))
	requireFormatErr(Te, err, SectionVersion, 0)
}

// failAfter returns its data, and then fails. A version error must come
// before the failure is ever seen.
type failAfter struct {
	data string
	err  error
}

func (f *failAfter) Read(p []byte) (int, error) {
	if f.data == "" {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestVersionBeforeContent(Te *testing.T) {
	boom := errors.New("boom")
	_, err := Read(&failAfter{data: "version 2.0\n", err: boom})
	requireFormatErr(Te, err, SectionVersion, 1)
	assert.False(Te, errors.Is(err, boom))
}

func TestReadIOError(Te *testing.T) {
	boom := errors.New("disk on fire")
	_, err := Read(&failAfter{data: "version 1.1\nbox 1 1 1\nvertex 2\n0 1 2 3 0\n", err: boom})
	require.Error(Te, err)
	assert.True(Te, IsIO(err))
	assert.True(Te, errors.Is(err, boom))
}

func TestMissingSections(Te *testing.T) {
	cases := []struct {
		name    string
		in      string
		section Section
		line    int
	}{
		{"no box", "version 1.1\nvertex 0\ntriangle 0\n", SectionBox, 2},
		{"only version", "version 1.1\n", SectionBox, 1},
		{"no vertex header", "version 1.1\nbox 1 1 1\ntriangle 0\n", SectionVertex, 3},
		{"end after vertices", "version 1.1\nbox 1 1 1\nvertex 1\n0 1 2 3 0\n", SectionTriangle, 4},
		{"inclusion before triangles", "version 1.1\nbox 1 1 1\nvertex 0\ninclusion 0\n", SectionTriangle, 4},
		{"header without count", "version 1.1\nbox 1 1 1\nvertex\n", SectionVertex, 3},
		{"box with 2 values", "version 1.1\nbox 1 1\n", SectionBox, 2},
	}
	for _, c := range cases {
		Te.Run(c.name, func(Te *testing.T) {
			_, err := Read(strings.NewReader(c.in))
			requireFormatErr(Te, err, c.section, c.line)
		})
	}
}

func TestOptionalSections(Te *testing.T) {
	in := smallTSI + "exclusion 1\n0 1 2.5\ninclusion 2\n0 3 0 1.0 0.0\n1 -2 1 0.6 0.8\n"
	M, err := Read(strings.NewReader(in))
	require.NoError(Te, err)
	require.Len(Te, M.Exclusions, 1)
	assert.Equal(Te, Exclusion{Vertex: 1, Radius: 2.5}, M.Exclusions[0])
	require.Len(Te, M.Inclusions, 2)
	assert.Equal(Te, -2, M.Inclusions[1].Type)
	assert.Equal(Te, [2]float64{0.6, 0.8}, M.Inclusions[1].Orientation)

	//empty sections are fine.
	M, err = Read(strings.NewReader(smallTSI + "inclusion 0\nexclusion 0\n"))
	require.NoError(Te, err)
	assert.Empty(Te, M.Inclusions)
	assert.Empty(Te, M.Exclusions)

	//a second inclusion section is trailing content.
	M, err = Read(strings.NewReader(smallTSI + "inclusion 0\ninclusion 1\n0 1 0 1 0\n"))
	require.NoError(Te, err)
	assert.Empty(Te, M.Inclusions)

	_, err = Read(strings.NewReader(smallTSI + "inclusion 1\n0 1 0 1.0\n"))
	requireFormatErr(Te, err, SectionInclusion, 9)

	_, err = Read(strings.NewReader(smallTSI + "exclusion 1\n0 1\n"))
	requireFormatErr(Te, err, SectionExclusion, 9)
}

func TestTrailingContentIgnored(Te *testing.T) {
	in := membraneTSI + "\nmetadata generated-by TS2CG\n1 2 3\nwhatever\n"
	M, err := Read(strings.NewReader(in))
	require.NoError(Te, err)
	assert.Len(Te, M.Inclusions, 1)

	M, err = Read(strings.NewReader(smallTSI + "END\nvertex 4\n"))
	require.NoError(Te, err)
	assert.Len(Te, M.Vertices, 2)

	//headers of the mandatory sections, or repeated optional ones, don't
	//start anything after the triangles.
	for _, tail := range []string{
		"vertex 4\n0 1 1 1 0\n",
		"triangle 1\n0 0 1 1 1\n",
		"box 1 1 1\n",
		"version 1.2\n",
		"exclusion 1\n0 1 2.5\nexclusion 1\n0 0 1.0\n",
		"inclusion 0\ninclusion 1\n0 1 0 1 0\nexclusion 1\n0 0 1\n",
	} {
		core, logs := observer.New(zapcore.DebugLevel)
		R := &Reader{Log: zap.New(core)}
		M, err := R.Read(strings.NewReader(smallTSI + tail))
		require.NoError(Te, err, tail)
		assert.Len(Te, M.Vertices, 2, tail)
		assert.Len(Te, M.Triangles, 1, tail)
		assert.Len(Te, M.Inclusions, 0, tail)
		assert.LessOrEqual(Te, len(M.Exclusions), 1, tail)
		assert.Equal(Te, 1, logs.FilterMessage("ignoring trailing content").Len(), tail)
	}
}

// Lines that start with a number are data of the current section, even
// after the last one, so a wrong shape there is still an error.
func TestNumericTrailingLine(Te *testing.T) {
	_, err := Read(strings.NewReader(smallTSI + "2024 generated by TS2CG\n"))
	e := requireFormatErr(Te, err, SectionTriangle, 8)
	assert.Equal(Te, 2, e.Item)

	_, err = Read(strings.NewReader(membraneTSI + "\n1 2 3\n"))
	e = requireFormatErr(Te, err, SectionInclusion, 11)
	assert.Equal(Te, 2, e.Item)
}

func TestWhitespaceAndNumbers(Te *testing.T) {
	in := "\n  version\t1.1  \r\n" +
		"box   5.0e1 50 \t 0.5E+2\r\n" +
		"\n" +
		"vertex\t2\n" +
		"   0    1.5e-3   -2.0   +3   -7\n" +
		"\n" +
		"1\t4\t5\t6\t+2\r\n" +
		"triangle 1\n" +
		"0 0 1 1 -1   \n"
	M, err := Read(strings.NewReader(in))
	require.NoError(Te, err)
	assert.Equal(Te, [3]float64{50, 50, 50}, M.Box)
	assert.Equal(Te, Vertex{Pos: [3]float64{1.5e-3, -2, 3}, Domain: -7}, M.Vertices[0])
	assert.Equal(Te, Vertex{Pos: [3]float64{4, 5, 6}, Domain: 2}, M.Vertices[1])
	assert.Equal(Te, Triangle{0, 1, 1}, M.Triangles[0])
}

func TestOnDiskIndexesIgnored(Te *testing.T) {
	in := "version 1.1\nbox 1 1 1\nvertex 3\n7 0 0 0 0\n7 1 1 1 1\n0 2 2 2 2\ntriangle 1\n42 0 1 2 0\n"
	M, err := Read(strings.NewReader(in))
	require.NoError(Te, err)
	require.Len(Te, M.Vertices, 3)
	for i, v := range M.Vertices {
		assert.Equal(Te, i, v.Domain)
	}
	assert.Equal(Te, Triangle{0, 1, 2}, M.Triangles[0])
}

func TestDanglingReferencesPassThrough(Te *testing.T) {
	in := strings.Replace(smallTSI, "0 0 1 1 1", "0 0 1 99 1", 1)
	M, err := Read(strings.NewReader(in))
	require.NoError(Te, err)
	assert.Equal(Te, VertexIndex(99), M.Triangles[0][2])
	assert.Error(Te, M.Validate())
}

func TestLongLine(Te *testing.T) {
	in := "version 1.1\nbox 1 1 1\n" + strings.Repeat("x", maxLineSize+10) + "\n"
	_, err := Read(strings.NewReader(in))
	require.Error(Te, err)
	assert.True(Te, IsFormat(err))
}

func TestErrorDecoration(Te *testing.T) {
	_, err := Read(strings.NewReader("version 9\n"))
	var e *Error
	require.True(Te, errors.As(err, &e))
	assert.Equal(Te, []string{"Read"}, e.Decorate(""))
	assert.Equal(Te, []string{"Read", "caller"}, e.Decorate("caller"))
	assert.Equal(Te, "tsi", e.Format())
	assert.True(Te, e.Critical())
	assert.NotNil(Te, errors.Unwrap(err))
}

func TestDecodeLines(Te *testing.T) {
	v, err := decodeVertex([]string{"0", "21.4", "33.8", "32.7", "3"})
	require.NoError(Te, err)
	assert.Equal(Te, Vertex{Pos: [3]float64{21.4, 33.8, 32.7}, Domain: 3}, v)

	_, err = decodeVertex([]string{"+0", "1", "2", "3", "0"})
	assert.Error(Te, err, "indexes are unsigned, without sign")

	t, err := decodeTriangle([]string{"5", "1", "0", "2", "-4"})
	require.NoError(Te, err)
	assert.Equal(Te, Triangle{1, 0, 2}, t)

	_, err = decodeTriangle([]string{"0", "1", "0", "4294967296", "1"})
	assert.Error(Te, err, "references must fit a VertexIndex")

	inc, err := decodeInclusion([]string{"0", "1", "2", "0.0", "0.0"})
	require.NoError(Te, err)
	assert.Equal(Te, [2]float64{0, 0}, inc.Normalized())

	exc, err := decodeExclusion([]string{"0", "4", "1e-1"})
	require.NoError(Te, err)
	assert.Equal(Te, Exclusion{Vertex: 4, Radius: 0.1}, exc)

	_, err = decodeBox([]string{"box", "1", "2"})
	assert.Error(Te, err)
}

func TestSplitFields(Te *testing.T) {
	assert.Equal(Te, []string{"a", "bb", "c"}, splitFields(nil, "  a\tbb \r\n c  "))
	assert.Empty(Te, splitFields(nil, " \t\r"))
	assert.Equal(Te, []string{"x"}, splitFields(make([]string, 0, 2), "x"))
}

func TestLineScannerPushback(Te *testing.T) {
	L := newLineScanner(strings.NewReader("a 1\n\nb 2\n"))
	f, err := L.next()
	require.NoError(Te, err)
	assert.Equal(Te, []string{"a", "1"}, f)
	f, err = L.next()
	require.NoError(Te, err)
	assert.Equal(Te, 3, L.line)
	L.unread()
	f2, err := L.next()
	require.NoError(Te, err)
	assert.Equal(Te, f, f2)
	assert.Equal(Te, 3, L.line)
	_, err = L.next()
	assert.Equal(Te, io.EOF, err)
}
