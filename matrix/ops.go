package matrix

import "fmt"

// Mul computes dst = a*b. The aux buffer must hold at least one column of b;
// it is used to stream b column by column so the inner loops run over
// contiguous memory. dst must not share backing storage with a or b.
func Mul(dst, a, b *Matrix, aux []Data) error {
	if a.cols != b.rows {
		return fmt.Errorf("mul [%d x %d] by [%d x %d]: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}

	if dst.rows != a.rows || dst.cols != b.cols {
		return fmt.Errorf("mul result [%d x %d], want [%d x %d]: %w", dst.rows, dst.cols, a.rows, b.cols, ErrDimensionMismatch)
	}

	if len(aux) < b.rows {
		return fmt.Errorf("mul aux of %d elements, want %d: %w", len(aux), b.rows, ErrDimensionMismatch)
	}

	if aliased(dst, a) || aliased(dst, b) {
		return fmt.Errorf("mul: %w", ErrAliasedBuffers)
	}

	for j := 0; j < b.cols; j++ {
		// stream column j of b through aux
		for i := 0; i < b.rows; i++ {
			aux[i] = b.data[i*b.cols+j]
		}

		for i := 0; i < a.rows; i++ {
			row := a.data[i*a.cols : (i+1)*a.cols]
			var sum Data
			for k := range row {
				sum += row[k] * aux[k]
			}
			dst.data[i*dst.cols+j] = sum
		}
	}

	return nil
}

// MulTransB computes dst = a*bᵗ without materializing the transpose: rows of
// b act as columns, so both inner operands are contiguous. dst must not share
// backing storage with a or b.
func MulTransB(dst, a, b *Matrix) error {
	return mulTransB(dst, a, b, 1, false)
}

// MulAddTransB computes dst = dst + a*bᵗ. Same contract as MulTransB.
func MulAddTransB(dst, a, b *Matrix) error {
	return mulTransB(dst, a, b, 1, true)
}

// MulScaleTransB computes dst = a*bᵗ*scale. Same contract as MulTransB.
func MulScaleTransB(dst, a, b *Matrix, scale Data) error {
	return mulTransB(dst, a, b, scale, false)
}

func mulTransB(dst, a, b *Matrix, scale Data, accumulate bool) error {
	if a.cols != b.cols {
		return fmt.Errorf("mul [%d x %d] by transposed [%d x %d]: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}

	if dst.rows != a.rows || dst.cols != b.rows {
		return fmt.Errorf("mul result [%d x %d], want [%d x %d]: %w", dst.rows, dst.cols, a.rows, b.rows, ErrDimensionMismatch)
	}

	if aliased(dst, a) || aliased(dst, b) {
		return fmt.Errorf("mul: %w", ErrAliasedBuffers)
	}

	for i := 0; i < a.rows; i++ {
		arow := a.data[i*a.cols : (i+1)*a.cols]
		for j := 0; j < b.rows; j++ {
			brow := b.data[j*b.cols : (j+1)*b.cols]
			var sum Data
			for k := range arow {
				sum += arow[k] * brow[k]
			}

			if accumulate {
				dst.data[i*dst.cols+j] += sum * scale
			} else {
				dst.data[i*dst.cols+j] = sum * scale
			}
		}
	}

	return nil
}

// MulVec computes the column vector dst = a*x for x of dimension [cols x 1].
// dst must not share backing storage with a or x.
func MulVec(dst, a, x *Matrix) error {
	return mulVec(dst, a, x, false)
}

// MulAddVec computes dst = dst + a*x. Same contract as MulVec.
func MulAddVec(dst, a, x *Matrix) error {
	return mulVec(dst, a, x, true)
}

func mulVec(dst, a, x *Matrix, accumulate bool) error {
	if x.cols != 1 || a.cols != x.rows {
		return fmt.Errorf("mul [%d x %d] by vector [%d x %d]: %w", a.rows, a.cols, x.rows, x.cols, ErrDimensionMismatch)
	}

	if dst.rows != a.rows || dst.cols != 1 {
		return fmt.Errorf("mul result [%d x %d], want [%d x 1]: %w", dst.rows, dst.cols, a.rows, ErrDimensionMismatch)
	}

	if aliased(dst, a) || aliased(dst, x) {
		return fmt.Errorf("mul: %w", ErrAliasedBuffers)
	}

	for i := 0; i < a.rows; i++ {
		row := a.data[i*a.cols : (i+1)*a.cols]
		var sum Data
		for k := range row {
			sum += row[k] * x.data[k]
		}

		if accumulate {
			dst.data[i] += sum
		} else {
			dst.data[i] = sum
		}
	}

	return nil
}

// Add computes dst = a + b elementwise. dst may alias a or b.
func Add(dst, a, b *Matrix) error {
	if !sameDims(a, b) || !sameDims(dst, a) {
		return fmt.Errorf("add [%d x %d] and [%d x %d] into [%d x %d]: %w",
			a.rows, a.cols, b.rows, b.cols, dst.rows, dst.cols, ErrDimensionMismatch)
	}

	for i := range dst.data {
		dst.data[i] = a.data[i] + b.data[i]
	}

	return nil
}

// Sub computes dst = a - b elementwise. dst may alias a or b.
func Sub(dst, a, b *Matrix) error {
	if !sameDims(a, b) || !sameDims(dst, a) {
		return fmt.Errorf("sub [%d x %d] and [%d x %d] into [%d x %d]: %w",
			a.rows, a.cols, b.rows, b.cols, dst.rows, dst.cols, ErrDimensionMismatch)
	}

	for i := range dst.data {
		dst.data[i] = a.data[i] - b.data[i]
	}

	return nil
}

// AddInPlace computes dst = dst + a elementwise.
func AddInPlace(dst, a *Matrix) error {
	if !sameDims(dst, a) {
		return fmt.Errorf("add [%d x %d] into [%d x %d]: %w", a.rows, a.cols, dst.rows, dst.cols, ErrDimensionMismatch)
	}

	for i := range dst.data {
		dst.data[i] += a.data[i]
	}

	return nil
}

// SubInPlace computes dst = dst - a elementwise.
func SubInPlace(dst, a *Matrix) error {
	if !sameDims(dst, a) {
		return fmt.Errorf("sub [%d x %d] from [%d x %d]: %w", a.rows, a.cols, dst.rows, dst.cols, ErrDimensionMismatch)
	}

	for i := range dst.data {
		dst.data[i] -= a.data[i]
	}

	return nil
}

// Scale computes dst = a * k elementwise. dst may alias a.
func Scale(dst, a *Matrix, k Data) error {
	if !sameDims(dst, a) {
		return fmt.Errorf("scale [%d x %d] into [%d x %d]: %w", a.rows, a.cols, dst.rows, dst.cols, ErrDimensionMismatch)
	}

	for i := range dst.data {
		dst.data[i] = a.data[i] * k
	}

	return nil
}
