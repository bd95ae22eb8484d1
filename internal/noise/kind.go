package noise

import "fmt"

// Kind selects one of the coherent-noise primitives.
type Kind uint8

const (
	Perlin Kind = iota
	Cellular
	Simplex
)

var kindNames = [...]string{
	Perlin:   "perlin",
	Cellular: "cellular",
	Simplex:  "simplex",
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k names a known primitive.
func (k Kind) Valid() bool { return int(k) < len(kindNames) }

// ParseKind resolves a configuration name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown noise kind %q", ErrInvalidLayer, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: unknown noise kind %d", ErrInvalidLayer, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Layer is one noise source applied on top of the running field.
type Layer struct {
	Kind  Kind    `json:"kind"`
	Scale float64 `json:"scale"`
	Op    MergeOp `json:"op"`
}

// String renders the layer the way it appears in parameter listings.
func (l Layer) String() string {
	return fmt.Sprintf("%s/%g/%s", l.Kind, l.Scale, l.Op)
}
