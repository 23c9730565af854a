package confloader

import "errors"

// ErrReadBytesNotSupported is returned when ReadBytes is called on the
// in-memory provider; koanf falls back to Read for map-backed sources.
var ErrReadBytesNotSupported = errors.New("confloader: ReadBytes not supported, use Read")

// mapProvider adapts a plain map to koanf's Provider interface so
// LoadMap can feed pre-parsed values (flag overrides, tests) through
// the same merge path as files and environment variables.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the configuration map.
func (m mapProvider) Read() (map[string]any, error) {
	return m, nil
}
