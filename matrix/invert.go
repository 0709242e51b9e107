package matrix

import (
	"fmt"
	"math"
)

// InvertSymmetric inverts the square matrix a in place using Gauss-Jordan
// elimination with pivoting restricted to the diagonal. The input is assumed
// symmetric positive-definite, which is what covariance and innovation
// matrices are; for such inputs the diagonal pivots are the stable choice
// and no row exchange is needed.
//
// It returns ErrSingular when a pivot magnitude falls below eps. On failure
// a is left partially transformed, so callers that need atomicity must
// invert a scratch copy.
func InvertSymmetric(a *Matrix, eps Data) error {
	if a.rows != a.cols {
		return fmt.Errorf("invert [%d x %d]: %w", a.rows, a.cols, ErrDimensionMismatch)
	}

	n := a.rows
	for k := 0; k < n; k++ {
		pivot := a.data[k*n+k]
		if math.Abs(pivot) < eps {
			return fmt.Errorf("pivot %d magnitude %g below %g: %w", k, math.Abs(pivot), eps, ErrSingular)
		}

		inv := 1 / pivot

		for j := 0; j < n; j++ {
			if j != k {
				a.data[k*n+j] *= inv
			}
		}
		a.data[k*n+k] = inv

		for i := 0; i < n; i++ {
			if i == k {
				continue
			}

			f := a.data[i*n+k]
			for j := 0; j < n; j++ {
				if j != k {
					a.data[i*n+j] -= f * a.data[k*n+j]
				}
			}
			a.data[i*n+k] = -f * inv
		}
	}

	return nil
}
