package noise

import (
	"fmt"
	"math"
)

// MergeOp fuses the running field value with a freshly sampled one.
type MergeOp uint8

const (
	// Replace ignores the prior value; usually the first layer's operation.
	Replace MergeOp = iota
	Intersect
	Union
	Multiply
	Mix
)

var opNames = [...]string{
	Replace:   "replace",
	Intersect: "intersect",
	Union:     "union",
	Multiply:  "multiply",
	Mix:       "mix",
}

// String returns the configuration name of the operation.
func (op MergeOp) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("MergeOp(%d)", uint8(op))
}

// Valid reports whether op is a known operation.
func (op MergeOp) Valid() bool { return int(op) < len(opNames) }

// ParseMergeOp resolves a configuration name. "mult" and "none" are accepted
// as aliases for multiply and replace.
func ParseMergeOp(s string) (MergeOp, error) {
	switch s {
	case "mult":
		return Multiply, nil
	case "none":
		return Replace, nil
	}
	for i, name := range opNames {
		if name == s {
			return MergeOp(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown merge op %q", ErrInvalidLayer, s)
}

// MarshalText implements encoding.TextMarshaler.
func (op MergeOp) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: unknown merge op %d", ErrInvalidLayer, uint8(op))
	}
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *MergeOp) UnmarshalText(b []byte) error {
	parsed, err := ParseMergeOp(string(b))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// Merge combines the running value v1 with the new sample v2.
func Merge(op MergeOp, v1, v2 float64) float64 {
	switch op {
	case Intersect:
		return math.Min(v1, v2)
	case Union:
		return math.Max(v1, v2)
	case Multiply:
		return v1 * v2
	case Mix:
		return (v1 + v2) / 2
	default:
		return v2
	}
}
