package planet

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Tag identifies a terrain category stored in the planet map.
type Tag uint8

const (
	// TagEmpty marks cells outside the planet.
	TagEmpty Tag = iota
	// TagBackground marks hollow cave interior.
	TagBackground
	TagGrass
	TagGrass2
	TagDirt
	TagRock
	TagGold
	TagWater
	TagMagmaRock
	TagLava

	// TagCount is the number of defined tags.
	TagCount
)

var tagNames = [...]string{
	TagEmpty:      "empty",
	TagBackground: "background",
	TagGrass:      "grass",
	TagGrass2:     "grass2",
	TagDirt:       "dirt",
	TagRock:       "rock",
	TagGold:       "gold",
	TagWater:      "water",
	TagMagmaRock:  "magma_rock",
	TagLava:       "lava",
}

// String returns the configuration name of the tag.
func (t Tag) String() string {
	if t < TagCount {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// ParseTag resolves a configuration name; "none" is accepted for empty.
func ParseTag(s string) (Tag, error) {
	switch s {
	case "none":
		return TagEmpty, nil
	case "magmaRock":
		return TagMagmaRock, nil
	}
	for i, name := range tagNames {
		if name == s {
			return Tag(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown terrain tag %q", ErrInvalidConfig, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	if t >= TagCount {
		return nil, fmt.Errorf("%w: unknown terrain tag %d", ErrInvalidConfig, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(b []byte) error {
	parsed, err := ParseTag(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Color is an RGBA colour written as "#rrggbb" or "#rrggbbaa" in config files.
type Color color.RGBA

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	if c.A == 255 {
		return []byte(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), nil
	}
	return []byte(fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	s := strings.TrimPrefix(string(b), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("%w: colour %q", ErrInvalidConfig, string(b))
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("%w: colour %q: %v", ErrInvalidConfig, string(b), err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	*c = Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return nil
}

// Descriptor is a terrain candidate: the depth interval it prefers and the
// rescaled noise value it matches best. Color is only used by renderers.
type Descriptor struct {
	Tag         Tag
	DepthMin    float64
	DepthMax    float64
	TargetNoise float64
	Color       Color
}

type descriptorJSON struct {
	Tag         Tag        `json:"tag"`
	Depth       [2]float64 `json:"depth"`
	TargetNoise float64    `json:"noise"`
	Color       Color      `json:"color"`
}

// MarshalJSON implements json.Marshaler.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(descriptorJSON{
		Tag:         d.Tag,
		Depth:       [2]float64{d.DepthMin, d.DepthMax},
		TargetNoise: d.TargetNoise,
		Color:       d.Color,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Descriptor) UnmarshalJSON(b []byte) error {
	var raw descriptorJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = Descriptor{
		Tag:         raw.Tag,
		DepthMin:    raw.Depth[0],
		DepthMax:    raw.Depth[1],
		TargetNoise: raw.TargetNoise,
		Color:       raw.Color,
	}
	return nil
}

const (
	depthWeight = 1.0
	noiseWeight = 0.5
)

// Score rates how well the descriptor fits a cell; lower is better.
func (d Descriptor) Score(depth, noise float64) float64 {
	depthPenalty := 0.0
	if depth < d.DepthMin || depth > d.DepthMax {
		depthPenalty = math.Min(math.Abs(depth-d.DepthMin), math.Abs(depth-d.DepthMax))
	}
	noisePenalty := math.Abs(d.TargetNoise - noise)
	return depthWeight*depthPenalty + noiseWeight*noisePenalty
}

// SelectBest returns the tag of the lowest scoring descriptor. Ties keep the
// earliest descriptor.
func SelectBest(descs []Descriptor, depth, noise float64) (Tag, error) {
	if len(descs) == 0 {
		return 0, ErrNoCandidates
	}
	best := 0
	bestScore := math.Inf(1)
	for i, d := range descs {
		if score := d.Score(depth, noise); score < bestScore {
			bestScore = score
			best = i
		}
	}
	return descs[best].Tag, nil
}
