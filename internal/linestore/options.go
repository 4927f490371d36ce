package linestore

// Option is a functional option for configuring a Store.
type Option func(*Store)

// WithTabWidth sets the store's tab width. Non-positive widths are ignored.
func WithTabWidth(width int) Option {
	return func(s *Store) {
		if width > 0 {
			s.tabWidth = width
		}
	}
}
