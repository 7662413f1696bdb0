package models

import (
	"encoding/json"
)

// RedactedFloat is a numeric field that is either a visible number or an
// explicit hidden marker. Zero and hidden are distinct states; there is no
// third state. It marshals as {"visible":true,"value":N} or
// {"visible":false} so consumers can never coerce the hidden marker into
// a number by accident.
type RedactedFloat struct {
	value   float64
	visible bool
}

// VisibleFloat returns a visible RedactedFloat carrying v.
func VisibleFloat(v float64) RedactedFloat {
	return RedactedFloat{value: v, visible: true}
}

// HiddenFloat returns the hidden marker.
func HiddenFloat() RedactedFloat {
	return RedactedFloat{}
}

// RedactFloat returns a visible value when show is true, hidden otherwise.
func RedactFloat(v float64, show bool) RedactedFloat {
	if show {
		return VisibleFloat(v)
	}
	return HiddenFloat()
}

// Visible reports whether the value is disclosed.
func (r RedactedFloat) Visible() bool { return r.visible }

// Value returns the number and whether it is visible.
func (r RedactedFloat) Value() (float64, bool) { return r.value, r.visible }

type redactedFloatJSON struct {
	Visible bool     `json:"visible"`
	Value   *float64 `json:"value,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r RedactedFloat) MarshalJSON() ([]byte, error) {
	if !r.visible {
		return json.Marshal(redactedFloatJSON{Visible: false})
	}
	v := r.value
	return json.Marshal(redactedFloatJSON{Visible: true, Value: &v})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RedactedFloat) UnmarshalJSON(data []byte) error {
	var raw redactedFloatJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Visible || raw.Value == nil {
		*r = HiddenFloat()
		return nil
	}
	*r = VisibleFloat(*raw.Value)
	return nil
}

// RedactedInt is the integer counterpart of RedactedFloat.
type RedactedInt struct {
	value   int
	visible bool
}

// VisibleInt returns a visible RedactedInt carrying v.
func VisibleInt(v int) RedactedInt {
	return RedactedInt{value: v, visible: true}
}

// HiddenInt returns the hidden marker.
func HiddenInt() RedactedInt {
	return RedactedInt{}
}

// RedactInt returns a visible value when show is true, hidden otherwise.
func RedactInt(v int, show bool) RedactedInt {
	if show {
		return VisibleInt(v)
	}
	return HiddenInt()
}

// Visible reports whether the value is disclosed.
func (r RedactedInt) Visible() bool { return r.visible }

// Value returns the number and whether it is visible.
func (r RedactedInt) Value() (int, bool) { return r.value, r.visible }

type redactedIntJSON struct {
	Visible bool `json:"visible"`
	Value   *int `json:"value,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r RedactedInt) MarshalJSON() ([]byte, error) {
	if !r.visible {
		return json.Marshal(redactedIntJSON{Visible: false})
	}
	v := r.value
	return json.Marshal(redactedIntJSON{Visible: true, Value: &v})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RedactedInt) UnmarshalJSON(data []byte) error {
	var raw redactedIntJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Visible || raw.Value == nil {
		*r = HiddenInt()
		return nil
	}
	*r = VisibleInt(*raw.Value)
	return nil
}
