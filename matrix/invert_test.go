package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestInvertSymmetric(t *testing.T) {
	assert := assert.New(t)

	a, _ := New(2, 2, []Data{4, 1, 1, 3})
	assert.NoError(InvertSymmetric(a, 1e-12))

	// det = 11, inverse is [[3, -1], [-1, 4]]/11
	assert.InDeltaSlice([]Data{3.0 / 11, -1.0 / 11, -1.0 / 11, 4.0 / 11}, a.Raw(), delta)

	// inverting twice recovers the original
	assert.NoError(InvertSymmetric(a, 1e-12))
	assert.InDeltaSlice([]Data{4, 1, 1, 3}, a.Raw(), delta)

	rect, _ := New(2, 3, make([]Data, 6))
	assert.ErrorIs(InvertSymmetric(rect, 1e-12), ErrDimensionMismatch)
}

func TestInvertSymmetricSingular(t *testing.T) {
	assert := assert.New(t)

	// rank one matrix: the second pivot collapses to zero
	a, _ := New(2, 2, []Data{1, 2, 2, 4})
	assert.ErrorIs(InvertSymmetric(a, 1e-12), ErrSingular)

	// zero diagonal fails on the first pivot
	z, _ := New(2, 2, []Data{0, 1, 1, 0})
	assert.ErrorIs(InvertSymmetric(z, 1e-12), ErrSingular)

	// a well conditioned matrix fails when eps is set absurdly high,
	// which is how callers tighten the conditioning policy
	w, _ := New(2, 2, []Data{4, 1, 1, 3})
	assert.ErrorIs(InvertSymmetric(w, 10), ErrSingular)
}

// TestInvertAgainstGonum cross-checks the in-place Gauss-Jordan inverse
// against gonum's general inverse on a symmetric positive-definite matrix.
func TestInvertAgainstGonum(t *testing.T) {
	assert := assert.New(t)

	data := []Data{
		6.2, 1.1, 0.4,
		1.1, 4.9, -0.7,
		0.4, -0.7, 3.8,
	}

	a, _ := New(3, 3, append([]Data(nil), data...))
	assert.NoError(InvertSymmetric(a, 1e-12))

	var want mat.Dense
	assert.NoError(want.Inverse(mat.NewDense(3, 3, data)))
	assert.InDeltaSlice(want.RawMatrix().Data, a.Raw(), 1e-10)
}
