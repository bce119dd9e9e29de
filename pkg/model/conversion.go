package model

// NamedValue pairs a raw signal value with a display name.
type NamedValue struct {
	Value int64
	Name  string
}

// Conversion transforms between raw wire values and physical values.
// A zero Conversion is not valid; use NewConversion, which applies the
// identity defaults (scale 1, offset 0).
type Conversion struct {
	Scale   float64
	Offset  float64
	Choices []NamedValue
	IsFloat bool
}

// NewConversion builds a conversion from raw format attributes. A zero
// scale is replaced with the identity scale so the factory is total.
func NewConversion(scale, offset float64, choices []NamedValue, isFloat bool) Conversion {
	if scale == 0 {
		scale = 1
	}
	return Conversion{
		Scale:   scale,
		Offset:  offset,
		Choices: choices,
		IsFloat: isFloat,
	}
}

// IsIdentity reports whether the conversion leaves raw values unchanged
// and carries no choices.
func (c Conversion) IsIdentity() bool {
	return c.Scale == 1 && c.Offset == 0 && len(c.Choices) == 0 && !c.IsFloat
}

// RawToPhysical converts a raw value to its physical representation.
func (c Conversion) RawToPhysical(raw float64) float64 {
	return raw*c.Scale + c.Offset
}

// PhysicalToRaw converts a physical value back to raw. Rounding policy is
// left to the caller.
func (c Conversion) PhysicalToRaw(physical float64) float64 {
	return (physical - c.Offset) / c.Scale
}

// ChoiceName returns the display name mapped to a raw value, if any.
// Names take precedence over the numeric transform for display purposes.
func (c Conversion) ChoiceName(raw int64) (string, bool) {
	for _, nv := range c.Choices {
		if nv.Value == raw {
			return nv.Name, true
		}
	}
	return "", false
}

// ChoiceValue returns the raw value mapped to a display name, if any.
func (c Conversion) ChoiceValue(name string) (int64, bool) {
	for _, nv := range c.Choices {
		if nv.Name == name {
			return nv.Value, true
		}
	}
	return 0, false
}
