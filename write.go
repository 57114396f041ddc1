/*
 * write.go, part of tsi.
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
	"io"
	"strconv"
)

// TrianglePlaceholderType is written in the type column of every triangle,
// since that information is not kept when reading.
const TrianglePlaceholderType = 1

const writeBufferSize = 64 * 1024

// Writer writes meshes in tsi format. The zero value is ready to use.
type Writer struct {
	// Prec is the number of decimals used for all floating-point values.
	// 0 (the default) writes the shortest representation that reads back
	// to exactly the same value. TS2CG itself keeps 3 decimals (1e-3 nm).
	Prec int
}

// Write writes M to out in tsi format, using a zero Writer.
func Write(out io.Writer, M *Mesh) error {
	var W Writer
	return W.Write(out, M)
}

// Write writes M to out in tsi format. Section counts always match the
// written lines, the version is written in its canonical form, and the
// inclusion and exclusion sections are omitted if empty.
// The only errors returned are those of out itself.
func (W *Writer) Write(out io.Writer, M *Mesh) error {
	w := &lineWriter{bw: bufio.NewWriterSize(out, writeBufferSize), buf: make([]byte, 0, 128), prec: -1}
	if W != nil && W.Prec > 0 {
		w.prec = W.Prec
	}

	w.word("version")
	w.word(M.Version.canonical().String())
	w.end()
	w.word("box")
	w.float(M.Box[0])
	w.float(M.Box[1])
	w.float(M.Box[2])
	w.end()

	w.header("vertex", len(M.Vertices))
	for i, v := range M.Vertices {
		w.index(i)
		w.float(v.Pos[0])
		w.float(v.Pos[1])
		w.float(v.Pos[2])
		w.integer(v.Domain)
		if w.end() != nil {
			return w.err
		}
	}

	w.header("triangle", len(M.Triangles))
	for i, t := range M.Triangles {
		w.index(i)
		w.ref(t[0])
		w.ref(t[1])
		w.ref(t[2])
		w.integer(TrianglePlaceholderType)
		if w.end() != nil {
			return w.err
		}
	}

	if len(M.Inclusions) > 0 {
		w.header("inclusion", len(M.Inclusions))
		for i, inc := range M.Inclusions {
			w.index(i)
			w.integer(inc.Type)
			w.ref(inc.Vertex)
			w.float(inc.Orientation[0])
			w.float(inc.Orientation[1])
			if w.end() != nil {
				return w.err
			}
		}
	}

	if len(M.Exclusions) > 0 {
		w.header("exclusion", len(M.Exclusions))
		for i, exc := range M.Exclusions {
			w.index(i)
			w.ref(exc.Vertex)
			w.float(exc.Radius)
			if w.end() != nil {
				return w.err
			}
		}
	}
	if w.err != nil {
		return w.err
	}
	return w.bw.Flush()
}

// lineWriter builds one line at a time in buf, and hands it to bw.
// Fields are separated by single spaces.
type lineWriter struct {
	bw   *bufio.Writer
	buf  []byte
	prec int
	err  error
}

func (w *lineWriter) sep() {
	if len(w.buf) > 0 {
		w.buf = append(w.buf, ' ')
	}
}

func (w *lineWriter) word(s string) {
	w.sep()
	w.buf = append(w.buf, s...)
}

func (w *lineWriter) index(i int) {
	w.sep()
	w.buf = strconv.AppendInt(w.buf, int64(i), 10)
}

func (w *lineWriter) integer(i int) { w.index(i) }

func (w *lineWriter) ref(r VertexIndex) {
	w.sep()
	w.buf = strconv.AppendUint(w.buf, uint64(r), 10)
}

func (w *lineWriter) float(x float64) {
	w.sep()
	w.buf = strconv.AppendFloat(w.buf, x, 'f', w.prec, 64)
}

func (w *lineWriter) header(keyword string, n int) {
	w.word(keyword)
	w.index(n)
	w.end()
}

// end terminates the current line and returns the first write error, if any.
func (w *lineWriter) end() error {
	if w.err != nil {
		w.buf = w.buf[:0]
		return w.err
	}
	w.buf = append(w.buf, '\n')
	_, w.err = w.bw.Write(w.buf)
	w.buf = w.buf[:0]
	return w.err
}
