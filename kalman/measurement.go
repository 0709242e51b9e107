package kalman

import (
	"fmt"

	"github.com/minicore2/kalman-clib/matrix"
)

// Measurement is a fixed-memory measurement adapter.
//
// One adapter describes one measurement source observing ny quantities of an
// nx-state filter. It owns the observation matrix, the measurement noise
// covariance, the measurement vector and the scratch buffers the update
// phase needs. A filter may be updated by any number of adapters sharing its
// state dimension; their measurement dimensions are independent.
type Measurement struct {
	// nx is the state dimension of the filter this adapter observes
	nx int
	// ny is the number of measured quantities
	ny int

	// h is the observation matrix
	h *matrix.Matrix
	// r is the measurement noise covariance
	r *matrix.Matrix
	// z is the measurement vector
	z *matrix.Matrix
	// s is the innovation covariance; it holds S^-1 after an update
	s *matrix.Matrix
	// k is the Kalman gain
	k *matrix.Matrix

	// y is the innovation vector
	y *matrix.Matrix
	// hp holds the H*P intermediate product
	hp *matrix.Matrix
	// ph holds the P*H' intermediate product
	ph *matrix.Matrix
	// aux streams one matrix column during multiplication
	aux []matrix.Data
}

// NewMeasurement creates a measurement adapter for ny measured quantities
// against nx states over the caller-supplied buffers:
//   - h: observation matrix, ny*nx elements
//   - r: measurement noise covariance, ny*ny elements
//   - s: innovation covariance scratch, ny*ny elements
//   - k: Kalman gain scratch, nx*ny elements
//   - z: measurement vector, ny elements
//
// The buffers are borrowed for the adapter's lifetime. Before each update
// the caller writes the observed values into z, either through Measured or
// with SetMeasured.
// It returns error if nx or ny is not positive, or if any buffer holds
// fewer elements than its dimensions require.
func NewMeasurement(nx, ny int, h, r, s, k, z []matrix.Data) (*Measurement, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("invalid measurement dimensions [%d states, %d measurements]: %w", nx, ny, matrix.ErrDimensionMismatch)
	}

	m := &Measurement{
		nx: nx,
		ny: ny,
	}

	var err error
	if m.h, err = matrix.New(ny, nx, h); err != nil {
		return nil, fmt.Errorf("observation matrix: %w", err)
	}
	if m.r, err = matrix.New(ny, ny, r); err != nil {
		return nil, fmt.Errorf("measurement noise covariance: %w", err)
	}
	if m.s, err = matrix.New(ny, ny, s); err != nil {
		return nil, fmt.Errorf("innovation covariance scratch: %w", err)
	}
	if m.k, err = matrix.New(nx, ny, k); err != nil {
		return nil, fmt.Errorf("gain scratch: %w", err)
	}
	if m.z, err = matrix.New(ny, 1, z); err != nil {
		return nil, fmt.Errorf("measurement vector: %w", err)
	}

	m.y, _ = matrix.New(ny, 1, make([]matrix.Data, ny))
	m.hp, _ = matrix.New(ny, nx, make([]matrix.Data, ny*nx))
	m.ph, _ = matrix.New(nx, ny, make([]matrix.Data, nx*ny))

	auxLen := nx
	if ny > auxLen {
		auxLen = ny
	}
	m.aux = make([]matrix.Data, auxLen)

	return m, nil
}

// Measured returns the measurement vector z. The caller writes observed
// values into it before each update.
func (m *Measurement) Measured() *matrix.Matrix {
	return m.z
}

// SetMeasured copies vals into the measurement vector z.
// It returns error if vals does not hold exactly ny values.
func (m *Measurement) SetMeasured(vals []matrix.Data) error {
	if len(vals) != m.ny {
		return fmt.Errorf("measurement of %d values, want %d: %w", len(vals), m.ny, matrix.ErrDimensionMismatch)
	}

	copy(m.z.Raw(), vals)

	return nil
}

// ObservationMatrix returns the observation matrix H. Callers running a
// linearized model rewrite it between steps.
func (m *Measurement) ObservationMatrix() *matrix.Matrix {
	return m.h
}

// NoiseCov returns the measurement noise covariance R.
func (m *Measurement) NoiseCov() *matrix.Matrix {
	return m.r
}

// Gain returns the Kalman gain computed by the most recent update.
func (m *Measurement) Gain() *matrix.Matrix {
	return m.k
}

// Innovation returns the innovation vector computed by the most recent
// update.
func (m *Measurement) Innovation() *matrix.Matrix {
	return m.y
}
