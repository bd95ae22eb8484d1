package ui

import (
	"image"
	"math"
	"strconv"

	"planetgen/internal/core"
)

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// refresh reads the control's current value from a parameter snapshot.
func (s *controlState) refresh(params map[string]core.Parameter) {
	param, ok := params[s.control.Key]
	if !ok {
		s.hasValue = false
		s.value = "--"
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			s.hasValue = false
			s.value = "--"
			return
		}
		s.intValue = parsed
		s.floatValue = float64(parsed)
		s.value = strconv.Itoa(parsed)
		s.hasValue = true
	case core.ParamTypeFloat:
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			s.hasValue = false
			s.value = "--"
			return
		}
		s.floatValue = parsed
		s.value = formatFloat(s.control, parsed)
		s.hasValue = true
	default:
		s.hasValue = false
		s.value = "--"
	}
}

// target computes the value one step in direction, clamped to the control's
// bounds. ok is false when the step would not change the value.
func (s *controlState) target(direction int) (float64, bool) {
	if direction == 0 || !s.hasValue {
		return 0, false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		step := int(math.Round(s.control.Step))
		if step <= 0 {
			step = 1
		}
		next := float64(s.intValue + direction*step)
		next = math.Round(s.control.Clamp(next))
		return next, int(next) != s.intValue
	case core.ParamTypeFloat:
		step := s.control.Step
		if step <= 0 {
			step = 0.05
		}
		next := s.control.Clamp(s.floatValue + float64(direction)*step)
		// Snap to the step grid so repeated presses land on round ratios.
		next = math.Round(next/step) * step
		next = s.control.Clamp(next)
		return next, math.Abs(next-s.floatValue) >= 1e-9
	}
	return 0, false
}

// apply pushes one step to the setters and reports whether the value changed.
func (s *controlState) apply(direction int, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	next, ok := s.target(direction)
	if !ok {
		return false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		if ints == nil || !ints.SetIntParameter(s.control.Key, int(next)) {
			return false
		}
		s.intValue = int(next)
		s.floatValue = next
		s.value = strconv.Itoa(s.intValue)
		return true
	case core.ParamTypeFloat:
		if floats == nil || !floats.SetFloatParameter(s.control.Key, next) {
			return false
		}
		s.floatValue = next
		s.value = formatFloat(s.control, next)
		return true
	}
	return false
}

func newControlStates(controls []core.ParameterControl) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
	}
	return states
}

func paramIndex(snapshot core.ParameterSnapshot) map[string]core.Parameter {
	out := map[string]core.Parameter{}
	for _, group := range snapshot.Groups {
		for _, param := range group.Params {
			out[param.Key] = param
		}
	}
	return out
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 2
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	default:
		precision = 1
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
