package matrix

import "errors"

var (
	// ErrDimensionMismatch is returned when operand or output dimensions
	// are incompatible with the requested operation. It always indicates
	// a construction or programming error; no output is written.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrSingular is returned by InvertSymmetric when a pivot magnitude
	// falls below the configured epsilon. It signals numerical degeneracy
	// to the caller; it is never resolved internally.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrAliasedBuffers is returned when an output matrix shares backing
	// storage with an operand of an operation that streams its result.
	ErrAliasedBuffers = errors.New("matrix: aliased buffers")
)
