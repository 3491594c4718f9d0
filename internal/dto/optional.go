package dto

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Optional is a patch field for a nullable column.  It tells apart a field
// that was left out (Set false), one sent as JSON null (Set true, Null true)
// and one carrying a value.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: v} }

// Null returns an Optional that clears the column.
func Null[T any]() Optional[T] { return Optional[T]{Set: true, Null: true} }

// UnmarshalJSON is only reached when the key is present, so any call marks
// the field as set.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		o.Null, o.Value = true, zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// Ptr is the stored form: nil for null, a pointer to the value otherwise.
// Callers check Set first.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// applyTo overwrites *dst when the field was supplied.
func (o Optional[T]) applyTo(dst **T) {
	if o.Set {
		*dst = o.Ptr()
	}
}

// optionalValue lets validator rules such as max=255 run against the
// carried value; absent and null fields validate as empty.
func optionalValue(v reflect.Value) any {
	switch o := v.Interface().(type) {
	case Optional[string]:
		if o.Set && !o.Null {
			return o.Value
		}
	case Optional[float64]:
		if o.Set && !o.Null {
			return o.Value
		}
	}
	return nil
}
