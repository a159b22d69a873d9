package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a lenient JSON number. It accepts numbers, numeric strings,
// booleans, null and "" and never fails to decode: anything unparsable is 0.
type Number struct {
	Value float64
	Set   bool // the key was present in the payload
	Blank bool // null or ""
}

func (n *Number) UnmarshalJSON(b []byte) error {
	n.Set = true
	n.Value = 0
	n.Blank = false

	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case nil:
		n.Blank = true
	case float64:
		n.Value = v
	case bool:
		if v {
			n.Value = 1
		}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			n.Blank = true
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			n.Value = f
		}
	}
	if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
		n.Value = 0
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.Blank {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Int rounds half up to an integer.
func (n Number) Int() int64 {
	return int64(math.Floor(n.Value + 0.5))
}

// NonNegative clamps to >= 0.
func (n Number) NonNegative() int64 {
	if v := n.Int(); v > 0 {
		return v
	}
	return 0
}

// Num builds a set Number, mostly for tests and internal callers.
func Num(v float64) Number {
	return Number{Value: v, Set: true}
}
