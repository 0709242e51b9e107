package kalman

// Option configures a Filter.
type Option func(*Filter)

// WithEpsilon sets the pivot magnitude threshold below which the innovation
// covariance inversion fails as singular. The right value depends on the
// scale of the model's noise covariances; the default is DefaultEpsilon.
func WithEpsilon(eps float64) Option {
	return func(f *Filter) {
		f.eps = eps
	}
}

// WithPropagation sets a nonlinear state propagation function. The filter
// then runs as an extended filter: fn propagates x while covariance is still
// propagated through the state matrix, which the caller keeps re-linearized.
func WithPropagation(fn PropagateFunc) Option {
	return func(f *Filter) {
		f.propagate = fn
	}
}
