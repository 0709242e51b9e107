package kalman

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minicore2/kalman-clib/matrix"
)

func TestNewMeasurement(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMeasurement(3, 2,
		make([]matrix.Data, 6), // H
		make([]matrix.Data, 4), // R
		make([]matrix.Data, 4), // S scratch
		make([]matrix.Data, 6), // K scratch
		make([]matrix.Data, 2), // z
	)
	assert.NoError(err)
	assert.NotNil(m)

	rows, cols := m.ObservationMatrix().Dims()
	assert.Equal(2, rows)
	assert.Equal(3, cols)

	rows, cols = m.Gain().Dims()
	assert.Equal(3, rows)
	assert.Equal(2, cols)

	// a zero-sized measurement is a contract violation, not a no-op
	m, err = NewMeasurement(3, 0, nil, nil, nil, nil, nil)
	assert.Nil(m)
	assert.ErrorIs(err, matrix.ErrDimensionMismatch)

	m, err = NewMeasurement(0, 2, nil, nil, nil, nil, nil)
	assert.Nil(m)
	assert.ErrorIs(err, matrix.ErrDimensionMismatch)

	// undersized observation matrix buffer
	m, err = NewMeasurement(3, 2,
		make([]matrix.Data, 5),
		make([]matrix.Data, 4),
		make([]matrix.Data, 4),
		make([]matrix.Data, 6),
		make([]matrix.Data, 2),
	)
	assert.Nil(m)
	assert.ErrorIs(err, matrix.ErrDimensionMismatch)

	// undersized gain scratch
	m, err = NewMeasurement(3, 2,
		make([]matrix.Data, 6),
		make([]matrix.Data, 4),
		make([]matrix.Data, 4),
		make([]matrix.Data, 5),
		make([]matrix.Data, 2),
	)
	assert.Nil(m)
	assert.ErrorIs(err, matrix.ErrDimensionMismatch)
}

func TestSetMeasured(t *testing.T) {
	assert := assert.New(t)

	m, err := NewMeasurement(2, 2,
		make([]matrix.Data, 4),
		make([]matrix.Data, 4),
		make([]matrix.Data, 4),
		make([]matrix.Data, 4),
		make([]matrix.Data, 2),
	)
	assert.NoError(err)

	assert.NoError(m.SetMeasured([]matrix.Data{1.5, -0.5}))
	assert.Equal(matrix.Data(1.5), m.Measured().At(0, 0))
	assert.Equal(matrix.Data(-0.5), m.Measured().At(1, 0))

	// writing through the Measured view is equivalent
	m.Measured().Set(0, 0, 2.5)
	assert.Equal(matrix.Data(2.5), m.Measured().At(0, 0))

	assert.ErrorIs(m.SetMeasured([]matrix.Data{1}), matrix.ErrDimensionMismatch)
	assert.ErrorIs(m.SetMeasured([]matrix.Data{1, 2, 3}), matrix.ErrDimensionMismatch)
}
