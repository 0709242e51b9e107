package filter

import (
	"gonum.org/v1/gonum/mat"

	"github.com/minicore2/kalman-clib/matrix"
)

// Filter is a fixed-memory dynamical system filter.
// Implementations own pre-sized buffers and never allocate while filtering.
type Filter interface {
	// Predict propagates the state estimate one time step
	Predict() error
	// State returns the current state estimate vector
	State() *matrix.Matrix
	// Cov returns the current state covariance
	Cov() *matrix.Matrix
}

// Measurement is a measurement source feeding a filter update.
type Measurement interface {
	// ObservationMatrix returns the matrix mapping state to measurement space
	ObservationMatrix() *matrix.Matrix
	// NoiseCov returns the measurement noise covariance
	NoiseCov() *matrix.Matrix
	// Measured returns the observed measurement vector
	Measured() *matrix.Matrix
}

// Propagator propagates internal state of a system to the next step
type Propagator interface {
	// Propagate propagates internal state of the system to the next step
	Propagate(x, u, wd mat.Vector) (mat.Vector, error)
}

// Observer observes external state (output) of a system
type Observer interface {
	// Observe observes external state of the system
	Observe(x, u, wn mat.Vector) (mat.Vector, error)
}

// Model is a model of a dynamical system used to simulate the trajectories
// a filter is then run against.
type Model interface {
	// Propagator is system propagator
	Propagator
	// Observer is system observer
	Observer
	// SystemDims returns state, input and output dimensions
	SystemDims() (nx, nu, ny int)
}

// InitCond is an initial state condition of a filter
type InitCond interface {
	// State returns initial filter state
	State() mat.Vector
	// Cov returns initial state covariance
	Cov() mat.Symmetric
}

// Estimate is a dynamical system filter estimate
type Estimate interface {
	// Val returns estimate value
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
}

// Noise is dynamical system noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
	// Reset resets the noise
	Reset()
}
