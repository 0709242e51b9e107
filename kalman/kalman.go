// Package kalman implements a fixed-memory Kalman filter over caller-owned
// matrix buffers. A Filter is created once with every buffer it will ever
// touch; Predict and Update then run the filter recursion without allocating.
package kalman

import (
	"fmt"

	"github.com/minicore2/kalman-clib/matrix"
)

// DefaultEpsilon is the default pivot magnitude threshold below which the
// innovation covariance is treated as singular.
const DefaultEpsilon = 1e-12

// PropagateFunc propagates the state vector x to the next time step and
// writes the result into xNext. It is used when the process model is
// nonlinear: the filter still propagates covariance through the state
// matrix, which then acts as the model Jacobian re-linearized by the caller.
// u is the control input vector, or nil when the filter has no inputs.
type PropagateFunc func(xNext, x, u *matrix.Matrix) error

// Filter is a fixed-memory Kalman filter.
//
// A Filter with nx states and nu control inputs is backed entirely by the
// buffers handed to New plus scratch carved once at construction. It is not
// safe for concurrent use; independent Filter instances share no state and
// may run concurrently.
type Filter struct {
	// nx is the number of states
	nx int
	// nu is the number of control inputs
	nu int
	// eps is the singularity threshold used when inverting the
	// innovation covariance
	eps matrix.Data
	// propagate overrides the linear state propagation when set
	propagate PropagateFunc

	// x is the state estimate vector
	x *matrix.Matrix
	// a is the state transition matrix
	a *matrix.Matrix
	// p is the state covariance
	p *matrix.Matrix
	// b is the control matrix, nil when nu is 0
	b *matrix.Matrix
	// u is the control input vector, nil when nu is 0
	u *matrix.Matrix
	// q is the process noise covariance, nil when nu is 0
	q *matrix.Matrix

	// xnext holds the propagated state until it is committed to x
	xnext *matrix.Matrix
	// tmp holds the largest square intermediate product
	tmp *matrix.Matrix
	// bq holds the B*Q intermediate product
	bq *matrix.Matrix
	// aux streams one matrix column during multiplication
	aux []matrix.Data
}

// New creates a fixed-memory Kalman filter with nx states and nu control
// inputs over the caller-supplied buffers:
//   - a: state transition matrix, nx*nx elements
//   - x: state vector, nx elements
//   - b: control matrix, nx*nu elements
//   - u: control input vector, nu elements
//   - p: state covariance, nx*nx elements
//   - q: process noise covariance, nu*nu elements
//
// The buffers are borrowed for the filter's lifetime; the caller seeds them
// with the model and initial condition and may rewrite a (and the
// measurement observation matrices) between steps for linearized models.
// When nu is 0 the b, u and q buffers are ignored and may be nil.
// It returns error if either of the following conditions is met:
//   - invalid dimensions are given: nx must be positive, nu non-negative
//   - any supplied buffer holds fewer elements than its dimensions require
func New(nx, nu int, a, x, b, u, p, q []matrix.Data, opts ...Option) (*Filter, error) {
	if nx <= 0 || nu < 0 {
		return nil, fmt.Errorf("invalid filter dimensions [%d states, %d inputs]: %w", nx, nu, matrix.ErrDimensionMismatch)
	}

	f := &Filter{
		nx:  nx,
		nu:  nu,
		eps: DefaultEpsilon,
	}

	var err error
	if f.a, err = matrix.New(nx, nx, a); err != nil {
		return nil, fmt.Errorf("state matrix: %w", err)
	}
	if f.x, err = matrix.New(nx, 1, x); err != nil {
		return nil, fmt.Errorf("state vector: %w", err)
	}
	if f.p, err = matrix.New(nx, nx, p); err != nil {
		return nil, fmt.Errorf("state covariance: %w", err)
	}

	if nu > 0 {
		if f.b, err = matrix.New(nx, nu, b); err != nil {
			return nil, fmt.Errorf("control matrix: %w", err)
		}
		if f.u, err = matrix.New(nu, 1, u); err != nil {
			return nil, fmt.Errorf("control input vector: %w", err)
		}
		if f.q, err = matrix.New(nu, nu, q); err != nil {
			return nil, fmt.Errorf("process noise covariance: %w", err)
		}
	}

	// scratch sized to the largest intermediate product; carved here so
	// the predict/update path never allocates
	f.xnext, _ = matrix.New(nx, 1, make([]matrix.Data, nx))
	f.tmp, _ = matrix.New(nx, nx, make([]matrix.Data, nx*nx))
	if nu > 0 {
		f.bq, _ = matrix.New(nx, nu, make([]matrix.Data, nx*nu))
	}
	auxLen := nx
	if nu > auxLen {
		auxLen = nu
	}
	f.aux = make([]matrix.Data, auxLen)

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Predict propagates the state estimate and its covariance one time step:
//
//	x = A*x + B*u
//	P = A*P*A' + B*Q*B'
//
// The B and Q terms are skipped for a filter without control inputs.
// Predict is atomic: if the propagation hook fails, x and P are left
// unmodified.
func (f *Filter) Predict() error {
	if f.propagate != nil {
		if err := f.propagate(f.xnext, f.x, f.u); err != nil {
			return fmt.Errorf("state propagation failed: %w", err)
		}
	} else {
		if err := matrix.MulVec(f.xnext, f.a, f.x); err != nil {
			return err
		}
		if f.nu > 0 {
			if err := matrix.MulAddVec(f.xnext, f.b, f.u); err != nil {
				return err
			}
		}
	}

	// P is fully consumed into tmp before being overwritten
	if err := matrix.Mul(f.tmp, f.a, f.p, f.aux); err != nil {
		return err
	}
	if err := matrix.MulTransB(f.p, f.tmp, f.a); err != nil {
		return err
	}

	if f.nu > 0 {
		if err := matrix.Mul(f.bq, f.b, f.q, f.aux); err != nil {
			return err
		}
		if err := matrix.MulAddTransB(f.p, f.bq, f.b); err != nil {
			return err
		}
	}

	return matrix.Copy(f.x, f.xnext)
}

// Update corrects the state estimate with the measurement held in m:
//
//	S = H*P*H' + R
//	K = P*H'*S^-1
//	x = x + K*(z - H*x)
//	P = P - K*H*P, re-symmetrized
//
// Update is atomic: when the innovation covariance is numerically singular
// it returns an error wrapping matrix.ErrSingular and leaves x and P
// unmodified, so the filter remains usable for the next cycle. The caller
// decides how to recover, typically by skipping the measurement, inflating
// R, or reinitializing P.
func (f *Filter) Update(m *Measurement) error {
	if m.nx != f.nx {
		return fmt.Errorf("measurement built for %d states, filter has %d: %w", m.nx, f.nx, matrix.ErrDimensionMismatch)
	}

	// S = H*P*H' + R
	if err := matrix.Mul(m.hp, m.h, f.p, m.aux); err != nil {
		return err
	}
	if err := matrix.MulTransB(m.s, m.hp, m.h); err != nil {
		return err
	}
	if err := matrix.AddInPlace(m.s, m.r); err != nil {
		return err
	}

	// invert S in place; x and P are untouched so far, so a singular
	// innovation covariance aborts the whole update cleanly
	if err := matrix.InvertSymmetric(m.s, f.eps); err != nil {
		return fmt.Errorf("innovation covariance: %w", err)
	}

	// K = P*H'*S^-1
	if err := matrix.MulTransB(m.ph, f.p, m.h); err != nil {
		return err
	}
	if err := matrix.Mul(m.k, m.ph, m.s, m.aux); err != nil {
		return err
	}

	// y = z - H*x
	if err := matrix.MulVec(m.y, m.h, f.x); err != nil {
		return err
	}
	if err := matrix.Sub(m.y, m.z, m.y); err != nil {
		return err
	}

	// x = x + K*y
	if err := matrix.MulAddVec(f.x, m.k, m.y); err != nil {
		return err
	}

	// P = P - K*(H*P); hp still holds H*P from the innovation step
	if err := matrix.Mul(f.tmp, m.k, m.hp, m.aux); err != nil {
		return err
	}
	if err := matrix.SubInPlace(f.p, f.tmp); err != nil {
		return err
	}

	// downstream inversions assume symmetry, so restore it explicitly
	return matrix.Symmetrize(f.p)
}

// State returns the state estimate vector x.
func (f *Filter) State() *matrix.Matrix {
	return f.x
}

// Cov returns the state covariance P.
func (f *Filter) Cov() *matrix.Matrix {
	return f.p
}

// StateMatrix returns the state transition matrix A. Callers running a
// linearized model rewrite it between steps.
func (f *Filter) StateMatrix() *matrix.Matrix {
	return f.a
}

// ControlMatrix returns the control matrix B, or nil for a filter without
// control inputs.
func (f *Filter) ControlMatrix() *matrix.Matrix {
	return f.b
}

// ControlInput returns the control input vector u, or nil for a filter
// without control inputs.
func (f *Filter) ControlInput() *matrix.Matrix {
	return f.u
}

// ProcessNoiseCov returns the process noise covariance Q, or nil for a
// filter without control inputs.
func (f *Filter) ProcessNoiseCov() *matrix.Matrix {
	return f.q
}

// Epsilon returns the singularity threshold used by Update.
func (f *Filter) Epsilon() matrix.Data {
	return f.eps
}
