package sim

import (
	"fmt"

	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// Continuous is a model of a linear, continuous-time, dynamical system
type Continuous struct {
	System
}

// NewContinuous creates a linear continuous-time model based on the control
// theory equations:
//
//	dx/dt = A*x + B*u
//	y = C*x + D*u
func NewContinuous(A, B, C, D *mat.Dense) (*Continuous, error) {
	if A == nil {
		return nil, fmt.Errorf("system matrix must be defined for a model")
	}
	return &Continuous{System: newSystem(A, B, C, D)}, nil
}

// ToDiscrete creates a discrete-time model from the continuous-time model
// using Ts as the sampling time.
//
// The state matrix is discretized exactly via the matrix exponential
// Ad = exp(A*Ts); see Ogata, Discrete-Time Control Systems, Eq. (5-73).
func (ct *Continuous) ToDiscrete(Ts float64) (*Discrete, error) {
	nx, _, _ := ct.SystemDims()
	dsys := newSystem(ct.A, ct.B, ct.C, ct.D)

	dsys.A.Scale(Ts, dsys.A)
	dsys.A.Exp(dsys.A)

	if dsys.B == nil {
		return &Discrete{System: dsys}, nil
	}

	// Bd(Ts) = (exp(A*Ts) - I)*inv(A)*B holds whenever A is invertible;
	// Ogata Eq. (5-74)
	eye, err := matrix.NewDenseValIdentity(nx, 1.0)
	if err != nil {
		return nil, err
	}

	aux := mat.NewDense(nx, nx, nil)
	aux.Sub(dsys.A, eye)

	aInv := mat.NewDense(nx, nx, nil)
	if err := aInv.Inverse(ct.A); err == nil {
		aux.Mul(aux, aInv)
		dsys.B.Mul(aux, ct.B)
		return &Discrete{System: dsys}, nil
	}

	// a singular A falls back to numerically integrating
	// Bd = integrate(exp(A*t)dt, 0, Ts)*B; Ogata Eq. (5-74)
	const steps = 100
	dt := Ts / float64(steps-1)

	sum := mat.NewDense(nx, nx, nil)
	for i := 0; i < steps; i++ {
		aux.Scale(dt*float64(i), ct.A)
		aux.Exp(aux)
		aux.Scale(dt, aux)
		sum.Add(sum, aux)
	}
	dsys.B.Mul(sum, ct.B)

	return &Discrete{System: dsys}, nil
}

// Propagate advances the internal state x by one timestep dt given an input
// vector u, integrating dx/dt = A*x + B*u + wd with Euler's method.
// wd is a process noise vector.
func (ct *Continuous) Propagate(x, u, wd mat.Vector, dt float64) (mat.Vector, error) {
	nx, nu, _ := ct.SystemDims()
	if u != nil && u.Len() != nu {
		return nil, fmt.Errorf("invalid input vector")
	}

	if x.Len() != nx {
		return nil, fmt.Errorf("invalid state vector")
	}

	out := new(mat.Dense)
	out.Mul(ct.A, x)

	if u != nil && ct.B != nil {
		outU := new(mat.Dense)
		outU.Mul(ct.B, u)

		out.Add(out, outU)
	}

	if wd != nil && wd.Len() == nx {
		out.Add(out, wd)
	}

	out.Scale(dt, out)
	out.Add(x, out)

	return out.ColView(0), nil
}
