/*
 * matrix.go, part of tsi.
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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const cols int = 3

// Matrix is a set of vectors in 3D space. It embeds a gonum Dense, so it
// can be used wherever gonum expects a mat.Matrix.
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	if vecs == 0 {
		//gonum doesn't allow empty matrices.
		return &Matrix{new(mat.Dense)}
	}
	return &Matrix{mat.NewDense(vecs, cols, nil)}
}

// NewMatrix returns a Matrix with 3 columns and the data in data, which
// is used, not copied. The length of data must be divisible by 3.
func NewMatrix(data []float64) (*Matrix, error) {
	l := len(data)
	if l%cols != 0 {
		return nil, &Error{fmt.Sprintf("input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	if l == 0 {
		return Zeros(0), nil
	}
	return &Matrix{mat.NewDense(l/cols, cols, data)}, nil
}

// Dense2Matrix wraps a gonum Dense with 3 columns.
func Dense2Matrix(A *mat.Dense) (*Matrix, error) {
	if _, c := A.Dims(); c != cols && !A.IsEmpty() {
		return nil, &Error{fmt.Sprintf("matrix has %d columns, %d expected", c, cols), []string{"Dense2Matrix"}, true}
	}
	return &Matrix{A}, nil
}

// NVecs returns the number of vectors (rows) in F.
func (F *Matrix) NVecs() int {
	if F.Dense == nil || F.IsEmpty() {
		return 0
	}
	r, c := F.Dims()
	if c != cols {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// VecView returns a view of the ith vector of F. Changes to the view
// are reflected in F and vice versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, cols).(*mat.Dense)
	return &Matrix{r}
}

// String returns the matrix formatted one vector per line.
func (F *Matrix) String() string {
	n := F.NVecs()
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString("\n ")
		}
		fmt.Fprintf(&b, "%6.2f %6.2f %6.2f", F.At(i, 0), F.At(i, 1), F.At(i, 2))
	}
	b.WriteString(" ]")
	return b.String()
}

// Error is the error type of the package. It can be decorated with
// the names of its callers.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return "v3: " + err.message
}

// Decorate adds dec to the decoration slice and returns the result.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical returns whether the error is critical or can be ignored.
func (err *Error) Critical() bool { return err.critical }

// PanicMsg is a message used for panics.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const ErrNotXx3Matrix = PanicMsg("v3: a Matrix should have 3 columns")
