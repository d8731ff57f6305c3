package repo

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"cloud.google.com/go/spanner"
	sppb "cloud.google.com/go/spanner/apiv1/spannerpb"
)

// toSpannerValue normalizes a property value into a type the Spanner client can
// encode: named kinds become their base kind, integers become int64, slices of
// scalars become typed arrays and every other composite is stored as JSON.
func toSpannerValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch x := v.(type) {
	case time.Time, []byte, spanner.NullJSON:
		return x, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return toSpannerValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		if arr, ok, err := scalarArray(rv); ok || err != nil {
			return arr, err
		}
		return spanner.NullJSON{Value: v, Valid: true}, nil
	case reflect.Map, reflect.Struct:
		return spanner.NullJSON{Value: v, Valid: true}, nil
	}
	return scalar(rv)
}

func scalar(rv reflect.Value) (any, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows INT64", ErrUnsupportedValue, u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, rv.Type())
}

// scalarArray converts a slice of scalar kinds into the matching Spanner array.
// ok is false when the element kind is not scalar.
func scalarArray(rv reflect.Value) (any, bool, error) {
	n := rv.Len()
	switch rv.Type().Elem().Kind() {
	case reflect.String:
		out := make([]string, n)
		for i := range out {
			out[i] = rv.Index(i).String()
		}
		return out, true, nil
	case reflect.Bool:
		out := make([]bool, n)
		for i := range out {
			out[i] = rv.Index(i).Bool()
		}
		return out, true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out := make([]int64, n)
		for i := range out {
			v, err := scalar(rv.Index(i))
			if err != nil {
				return nil, true, err
			}
			out[i] = v.(int64)
		}
		return out, true, nil
	case reflect.Float32, reflect.Float64:
		out := make([]float64, n)
		for i := range out {
			out[i] = rv.Index(i).Float()
		}
		return out, true, nil
	}
	return nil, false, nil
}

// fromColumn decodes one column into a plain Go value. NULL decodes to nil and
// array elements that are NULL decode to their zero value.
func fromColumn(col spanner.GenericColumnValue) (any, error) {
	switch col.Type.GetCode() {
	case sppb.TypeCode_STRING:
		var v spanner.NullString
		if err := col.Decode(&v); err != nil {
			return nil, err
		}
		return nullable(v.Valid, v.StringVal), nil
	case sppb.TypeCode_INT64:
		var v spanner.NullInt64
		if err := col.Decode(&v); err != nil {
			return nil, err
		}
		return nullable(v.Valid, v.Int64), nil
	case sppb.TypeCode_FLOAT64:
		var v spanner.NullFloat64
		if err := col.Decode(&v); err != nil {
			return nil, err
		}
		return nullable(v.Valid, v.Float64), nil
	case sppb.TypeCode_BOOL:
		var v spanner.NullBool
		if err := col.Decode(&v); err != nil {
			return nil, err
		}
		return nullable(v.Valid, v.Bool), nil
	case sppb.TypeCode_TIMESTAMP:
		var v spanner.NullTime
		if err := col.Decode(&v); err != nil {
			return nil, err
		}
		return nullable(v.Valid, v.Time), nil
	case sppb.TypeCode_BYTES:
		var v []byte
		if err := col.Decode(&v); err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		return v, nil
	case sppb.TypeCode_JSON:
		var v spanner.NullJSON
		if err := col.Decode(&v); err != nil {
			return nil, err
		}
		return nullable(v.Valid, v.Value), nil
	case sppb.TypeCode_ARRAY:
		return fromArrayColumn(col)
	}
	return nil, fmt.Errorf("%w: column type %s", ErrUnsupportedValue, col.Type.GetCode())
}

func fromArrayColumn(col spanner.GenericColumnValue) (any, error) {
	switch col.Type.GetArrayElementType().GetCode() {
	case sppb.TypeCode_STRING:
		var v []spanner.NullString
		if err := col.Decode(&v); err != nil {
			return nil, err
		}
		return unwrapArray(v, func(e spanner.NullString) string { return e.StringVal }), nil
	case sppb.TypeCode_INT64:
		var v []spanner.NullInt64
		if err := col.Decode(&v); err != nil {
			return nil, err
		}
		return unwrapArray(v, func(e spanner.NullInt64) int64 { return e.Int64 }), nil
	case sppb.TypeCode_FLOAT64:
		var v []spanner.NullFloat64
		if err := col.Decode(&v); err != nil {
			return nil, err
		}
		return unwrapArray(v, func(e spanner.NullFloat64) float64 { return e.Float64 }), nil
	case sppb.TypeCode_BOOL:
		var v []spanner.NullBool
		if err := col.Decode(&v); err != nil {
			return nil, err
		}
		return unwrapArray(v, func(e spanner.NullBool) bool { return e.Bool }), nil
	}
	return nil, fmt.Errorf("%w: array of %s", ErrUnsupportedValue, col.Type.GetArrayElementType().GetCode())
}

func nullable[T any](valid bool, v T) any {
	if !valid {
		return nil
	}
	return v
}

// unwrapArray keeps a NULL array as nil.
func unwrapArray[E, T any](in []E, get func(E) T) any {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, e := range in {
		out[i] = get(e)
	}
	return out
}
