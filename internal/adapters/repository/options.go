package repository

// Option configures a MemStore.
type Option func(*MemStore)

// WithListLimit sets the default listing size used when callers pass a
// zero limit.
func WithListLimit(limit int) Option {
	return func(s *MemStore) {
		if limit > 0 {
			s.listLimit = limit
		}
	}
}
