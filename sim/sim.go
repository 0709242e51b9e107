package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// InitCond implements filter.InitCond
type InitCond struct {
	state *mat.VecDense
	cov   *mat.SymDense
}

// NewInitCond creates new InitCond and returns it
func NewInitCond(state mat.Vector, cov mat.Symmetric) *InitCond {
	s := &mat.VecDense{}
	s.CloneFromVec(state)

	n, _ := cov.Dims()
	c := mat.NewSymDense(n, nil)
	c.CopySym(cov)

	return &InitCond{
		state: s,
		cov:   c,
	}
}

// State returns initial state
func (c *InitCond) State() mat.Vector {
	state := mat.NewVecDense(c.state.Len(), nil)
	state.CloneFromVec(c.state)

	return state
}

// Cov returns initial covariance
func (c *InitCond) Cov() mat.Symmetric {
	cov := mat.NewSymDense(c.cov.SymmetricDim(), nil)
	cov.CopySym(c.cov)

	return cov
}

// Series collects the 2D points of one simulated data source, step by step,
// and hands them over as a dense matrix suitable for New2DPlot.
type Series struct {
	xy []float64
}

// Add appends one (x, y) point to the series.
func (s *Series) Add(x, y float64) {
	s.xy = append(s.xy, x, y)
}

// Len returns the number of collected points.
func (s *Series) Len() int {
	return len(s.xy) / 2
}

// Dense returns the collected points as a [n x 2] matrix.
// It returns error if the series is empty.
func (s *Series) Dense() (*mat.Dense, error) {
	if len(s.xy) == 0 {
		return nil, fmt.Errorf("empty series")
	}

	return mat.NewDense(len(s.xy)/2, 2, append([]float64(nil), s.xy...)), nil
}
