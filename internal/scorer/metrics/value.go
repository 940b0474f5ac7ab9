package metrics

import (
	"encoding/json"
	"math"
	"strconv"
)

// Value is a metric that may be undefined. The zero Value is empty.
type Value struct {
	V     float64
	Valid bool
}

func Of(v float64) Value {
	return Value{V: v, Valid: true}
}

func Count(n int) Value {
	return Value{V: float64(n), Valid: true}
}

var Empty = Value{}

// Round rounds to the given number of decimals using the shortest decimal
// representation of the stored float. Empty and non-finite values are
// returned unchanged.
func (v Value) Round(decimals int) Value {
	if !v.Valid || math.IsNaN(v.V) || math.IsInf(v.V, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v.V, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return Value{V: r, Valid: true}
}

// String renders an empty value as "" and numbers without trailing zeros.
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.V, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid || math.IsNaN(v.V) || math.IsInf(v.V, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Empty
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Of(f)
	return nil
}

// Ptr returns nil for an empty value, used when persisting to nullable columns.
func (v Value) Ptr() *float64 {
	if !v.Valid {
		return nil
	}
	f := v.V
	return &f
}

func FromPtr(f *float64) Value {
	if f == nil {
		return Empty
	}
	return Of(*f)
}
