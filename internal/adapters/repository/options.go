package repository

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithPrecision sets the number of decimal places at which two ratings are
// considered tied.
func WithPrecision(decimals int) Option {
	return func(s *TreapStore) {
		if decimals >= 0 && decimals <= maxPrecision {
			s.scale = pow10(decimals)
		}
	}
}

// WithCapacity pre-sizes the id index.
func WithCapacity(n int) Option {
	return func(s *TreapStore) {
		if n > 0 {
			s.byID = make(map[string]record, n)
		}
	}
}
