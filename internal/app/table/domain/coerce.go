package domain

import (
	"fmt"
	"reflect"
)

// Coerce converts a boxed value into F. Values that already are an F pass through
// untouched. Otherwise only lossless conversions are performed: numeric kinds
// (so 10.0 decoded from JSON becomes int 10, but 10.5 is rejected), named string
// and bool types, slices, string-keyed maps and pointers to any of those.
func Coerce[F any](x any) (F, error) {
	if f, ok := x.(F); ok {
		return f, nil
	}

	var zero F
	target := reflect.TypeOf((*F)(nil)).Elem()
	out, err := convert(reflect.ValueOf(x), target)
	if err != nil {
		return zero, err
	}
	f, _ := out.Interface().(F)
	return f, nil
}

func convert(rv reflect.Value, target reflect.Type) (reflect.Value, error) {
	if !rv.IsValid() {
		switch target.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
			return reflect.Zero(target), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil is not a %s", ErrPropertyType, target)
	}

	if rv.Type().AssignableTo(target) {
		out := reflect.New(target).Elem()
		out.Set(rv)
		return out, nil
	}

	src, dst := rv.Kind(), target.Kind()
	switch {
	case src == reflect.Interface:
		return convert(rv.Elem(), target)

	case src == reflect.Pointer:
		if rv.IsNil() {
			return convert(reflect.Value{}, target)
		}
		return convert(rv.Elem(), target)

	case dst == reflect.Pointer:
		elem, err := convert(rv, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(target.Elem())
		p.Elem().Set(elem)
		return p, nil

	case isNumber(src) && isNumber(dst):
		return convertNumber(rv, target)

	case src == reflect.String && dst == reflect.String,
		src == reflect.Bool && dst == reflect.Bool:
		return rv.Convert(target), nil

	case (src == reflect.Slice || src == reflect.Array) && dst == reflect.Slice:
		out := reflect.MakeSlice(target, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := convert(rv.Index(i), target.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			out.Index(i).Set(elem)
		}
		return out, nil

	case src == reflect.Map && dst == reflect.Map:
		out := reflect.MakeMapWithSize(target, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, err := convert(iter.Key(), target.Key())
			if err != nil {
				return reflect.Value{}, err
			}
			v, err := convert(iter.Value(), target.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
			}
			out.SetMapIndex(k, v)
		}
		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("%w: cannot use %s as %s", ErrPropertyType, rv.Type(), target)
}

func convertNumber(rv reflect.Value, target reflect.Type) (reflect.Value, error) {
	if isUnsigned(target.Kind()) && isNegative(rv) {
		return reflect.Value{}, fmt.Errorf("%w: %v does not fit in %s", ErrPropertyType, rv, target)
	}
	out := rv.Convert(target)
	if !out.Convert(rv.Type()).Equal(rv) {
		return reflect.Value{}, fmt.Errorf("%w: %v does not fit in %s", ErrPropertyType, rv, target)
	}
	return out, nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return isUnsigned(k)
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isNegative(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() < 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() < 0
	}
	return false
}
