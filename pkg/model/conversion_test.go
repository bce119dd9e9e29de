package model

import "testing"

func TestNewConversion_Defaults(t *testing.T) {
	c := NewConversion(0, 0, nil, false)

	if c.Scale != 1 {
		t.Errorf("expected identity scale, got %v", c.Scale)
	}
	if !c.IsIdentity() {
		t.Error("default conversion should be the identity")
	}
	if got := c.RawToPhysical(42); got != 42 {
		t.Errorf("identity RawToPhysical(42) = %v", got)
	}
}

func TestConversion_RawPhysical(t *testing.T) {
	c := NewConversion(0.5, -10, nil, false)

	if got := c.RawToPhysical(100); got != 40 {
		t.Errorf("RawToPhysical(100) = %v, want 40", got)
	}
	if got := c.PhysicalToRaw(40); got != 100 {
		t.Errorf("PhysicalToRaw(40) = %v, want 100", got)
	}
}

func TestConversion_Choices(t *testing.T) {
	choices := []NamedValue{
		{Value: 0, Name: "off"},
		{Value: 1, Name: "on"},
		{Value: 5, Name: "fault"},
	}
	c := NewConversion(1, 0, choices, false)

	if c.IsIdentity() {
		t.Error("conversion with choices is not the identity")
	}

	name, ok := c.ChoiceName(5)
	if !ok || name != "fault" {
		t.Errorf("ChoiceName(5) = %q, %v", name, ok)
	}
	if _, ok := c.ChoiceName(2); ok {
		t.Error("ChoiceName(2) should miss")
	}

	value, ok := c.ChoiceValue("on")
	if !ok || value != 1 {
		t.Errorf("ChoiceValue(on) = %d, %v", value, ok)
	}
	if _, ok := c.ChoiceValue("missing"); ok {
		t.Error("ChoiceValue(missing) should miss")
	}
}
