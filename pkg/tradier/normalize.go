package tradier

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// The broker has three encodings for "a collection": a JSON array, a bare
// object when there is exactly one element, and the literal string "null"
// when there are none. List accepts all three and always yields a slice.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isNullToken(data) {
		*l = nil
		return nil
	}

	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = List[T]{single}
	return nil
}

// Object is an envelope member that is usually a JSON object but may be
// the literal string "null" (or JSON null) when empty. OK reports whether
// a value was present.
type Object[T any] struct {
	Value T
	OK    bool
}

func (o *Object[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isNullToken(data) {
		o.OK = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.OK = true
	return nil
}

// FlexFloat handles numbers that arrive as numbers, quoted numbers, or
// null. Mirrors how inconsistently the gain/loss and balance endpoints
// encode monetary fields.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isNullToken(data) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = FlexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) Float64() float64 {
	return float64(f)
}

// FlexInt is FlexFloat's integer sibling, for count fields that show up
// quoted ("term": "3").
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = FlexInt(f)
	return nil
}

func (i FlexInt) Int() int {
	return int(i)
}

func isNullToken(data []byte) bool {
	switch string(data) {
	case "", "null", `"null"`:
		return true
	}
	return false
}
