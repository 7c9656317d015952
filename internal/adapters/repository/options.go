// Package repository defines the move log store interface and errors.
package repository

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithPath sets the move log file location.
func WithPath(path string) Option {
	return func(s *FileStore) {
		if path != "" {
			s.path = path
		}
	}
}
