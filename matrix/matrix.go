// Package matrix implements dense matrix primitives over fixed-capacity,
// caller-owned buffers. Matrices are views: a flat row-major slice plus
// row and column counts fixed at construction. No operation allocates;
// every result is written into a caller-supplied output matrix.
package matrix

import "fmt"

// Data is the numeric type used uniformly across all matrix buffers.
type Data = float64

// Matrix is a dense matrix view over a caller-owned row-major buffer.
type Matrix struct {
	// rows is the number of rows
	rows int
	// cols is the number of columns
	cols int
	// data is the backing buffer; only the first rows*cols elements are used
	data []Data
}

// New creates a matrix view with the given dimensions over buf.
// The buffer is borrowed, not copied: the caller retains ownership and the
// matrix reads and writes through it for its whole lifetime.
// It returns error if either dimension is negative or if buf holds fewer
// than rows*cols elements.
func New(rows, cols int, buf []Data) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid dimensions [%d x %d]: %w", rows, cols, ErrDimensionMismatch)
	}

	if len(buf) < rows*cols {
		return nil, fmt.Errorf("buffer of %d elements for [%d x %d] matrix: %w", len(buf), rows, cols, ErrDimensionMismatch)
	}

	return &Matrix{
		rows: rows,
		cols: cols,
		data: buf[:rows*cols],
	}, nil
}

// Dims returns the matrix dimensions.
func (m *Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// At returns the element at row i, column j.
// Indices are not range checked.
func (m *Matrix) At(i, j int) Data {
	return m.data[i*m.cols+j]
}

// Set sets the element at row i, column j to v.
// Indices are not range checked.
func (m *Matrix) Set(i, j int, v Data) {
	m.data[i*m.cols+j] = v
}

// Raw returns the backing buffer truncated to the matrix's logical size.
// Mutating it mutates the matrix.
func (m *Matrix) Raw() []Data {
	return m.data
}

// sameDims reports whether a and b have identical dimensions.
func sameDims(a, b *Matrix) bool {
	return a.rows == b.rows && a.cols == b.cols
}

// aliased reports whether two matrices share backing storage. The check
// catches the realistic violation of reusing one buffer for both an input
// and the streamed output; it compares first-element addresses.
func aliased(a, b *Matrix) bool {
	if len(a.data) == 0 || len(b.data) == 0 {
		return false
	}
	return &a.data[0] == &b.data[0]
}

// Copy copies src into dst. The dimensions must match exactly.
func Copy(dst, src *Matrix) error {
	if !sameDims(dst, src) {
		return fmt.Errorf("copy [%d x %d] into [%d x %d]: %w", src.rows, src.cols, dst.rows, dst.cols, ErrDimensionMismatch)
	}

	copy(dst.data, src.data)

	return nil
}

// Symmetrize overwrites the square matrix a with (a + aᵗ)/2. It counters
// the asymmetry that accumulates in covariance matrices under repeated
// floating-point updates.
func Symmetrize(a *Matrix) error {
	if a.rows != a.cols {
		return fmt.Errorf("symmetrize [%d x %d]: %w", a.rows, a.cols, ErrDimensionMismatch)
	}

	for i := 0; i < a.rows; i++ {
		for j := i + 1; j < a.cols; j++ {
			v := (a.data[i*a.cols+j] + a.data[j*a.cols+i]) / 2
			a.data[i*a.cols+j] = v
			a.data[j*a.cols+i] = v
		}
	}

	return nil
}
