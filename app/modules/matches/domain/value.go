package matchtypes

import (
	"encoding/json"
	"math"
	"strconv"
)

// Unavailable is printed wherever a value cannot be computed.
const Unavailable = "unavailable"

// Value is a derived number that may be unavailable, e.g. a ratio with a
// zero denominator. Unavailable values encode as JSON null.
type Value struct {
	Number    float64
	Available bool
}

// Of wraps an available number.
func Of(v float64) Value { return Value{Number: v, Available: true} }

// None is the unavailable value.
func None() Value { return Value{} }

// Ratio returns 100*num/den, or None when den is zero.
func Ratio(num, den int) Value {
	if den == 0 {
		return None()
	}
	return Of(100 * float64(num) / float64(den))
}

// Format renders the value rounded to prec decimals.
func (v Value) Format(prec int) string {
	if !v.Available || math.IsNaN(v.Number) {
		return Unavailable
	}
	return strconv.FormatFloat(v.Number, 'f', prec, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Available {
		return []byte("null"), nil
	}
	return json.Marshal(v.Number)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = None()
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Of(f)
	return nil
}

// Text is a string that may be unavailable.
type Text struct {
	String    string
	Available bool
}

func (t Text) Or(fallback string) string {
	if !t.Available {
		return fallback
	}
	return t.String
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Available {
		return []byte("null"), nil
	}
	return json.Marshal(t.String)
}
