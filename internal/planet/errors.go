package planet

import "errors"

var (
	// ErrInvalidConfig reports a configuration that cannot produce a map.
	ErrInvalidConfig = errors.New("planet: invalid config")
	// ErrNoCandidates reports classification without terrain descriptors.
	ErrNoCandidates = errors.New("planet: no terrain candidates")
	// ErrDegenerateGeometry reports a surface radius that makes depth undefined.
	ErrDegenerateGeometry = errors.New("planet: degenerate geometry")
)
