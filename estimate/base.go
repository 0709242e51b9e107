// Package estimate provides filter estimate snapshots. A snapshot copies the
// state and covariance out of a running filter into gonum types, so it stays
// valid when the filter's fixed buffers are mutated by later cycles and can
// be fed to plotting or statistics without touching the engine.
package estimate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	filter "github.com/minicore2/kalman-clib"
)

// Base is base estimate
type Base struct {
	// val is estimated value
	val *mat.VecDense
	// cov is estimated covariance
	cov *mat.SymDense
}

// NewBase returns base estimate given val, with zero covariance
func NewBase(val mat.Vector) (*Base, error) {
	v := &mat.VecDense{}
	if val != nil {
		v.CloneFromVec(val)
	}

	c := mat.NewSymDense(v.Len(), nil)

	return &Base{
		val: v,
		cov: c,
	}, nil
}

// NewBaseWithCov returns base estimate given value and covariance
func NewBaseWithCov(val mat.Vector, cov mat.Symmetric) (*Base, error) {
	rv, _ := val.Dims()
	rc, _ := cov.Dims()

	if rv != rc {
		return nil, fmt.Errorf("invalid dimensions. Val: %d, Cov: %d x %d", rv, rc, rc)
	}

	v := &mat.VecDense{}
	v.CloneFromVec(val)

	c := mat.NewSymDense(rc, nil)
	c.CopySym(cov)

	return &Base{
		val: v,
		cov: c,
	}, nil
}

// NewBaseFromFilter snapshots the current state and covariance of f.
// It returns error if the filter covariance is not square or does not match
// the state dimension.
func NewBaseFromFilter(f filter.Filter) (*Base, error) {
	x := f.State()
	p := f.Cov()

	n, _ := x.Dims()
	pr, pc := p.Dims()
	if pr != pc || pr != n {
		return nil, fmt.Errorf("invalid dimensions. Val: %d, Cov: %d x %d", n, pr, pc)
	}

	v := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v.SetVec(i, x.At(i, 0))
	}

	c := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c.SetSym(i, j, p.At(i, j))
		}
	}

	return &Base{
		val: v,
		cov: c,
	}, nil
}

// Val returns estimated value
func (b *Base) Val() mat.Vector {
	v := &mat.VecDense{}
	v.CloneFromVec(b.val)

	return v
}

// Cov returns covariance estimate
func (b *Base) Cov() mat.Symmetric {
	cov := mat.NewSymDense(b.cov.SymmetricDim(), nil)
	cov.CopySym(b.cov)

	return cov
}
