// Package structural provides deep clone and structural equality for entity values.
//
// Values may opt into their own semantics by implementing Cloner or Equaler.
// Protocol buffer messages use proto.Clone and proto.Equal. Scalars are copied by
// value and compared with ==. Every other value graph is deep-copied and compared
// field by field.
//
// Neither operation ever fails the caller: a value that cannot be cloned is
// returned by reference, and a comparison that cannot be completed falls back to
// reference equality. Both cases are logged and counted.
package structural

import (
	"fmt"
	"math"
	"reflect"

	"github.com/brunoga/deep"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"

	"github.com/penspanic/Datra-sub005/internal/pkg/metrics"
)

// Cloner is implemented by values that know how to deep-copy themselves.
type Cloner interface {
	CloneValue() any
}

// Equaler is implemented by values that define their own structural equality.
type Equaler interface {
	EqualValue(other any) bool
}

// Service clones and compares values.
type Service struct {
	log *zap.Logger
}

// New creates a Service. A nil logger discards diagnostics.
func New(log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{log: log.Named("structural")}
}

// Clone returns an independent deep copy of v.
func (s *Service) Clone(v any) (out any) {
	if v == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			s.degrade("clone", v, fmt.Errorf("panic: %v", r))
			out = v
		}
	}()

	switch x := v.(type) {
	case Cloner:
		return x.CloneValue()
	case proto.Message:
		return proto.Clone(x)
	}

	if isScalar(reflect.TypeOf(v).Kind()) {
		return v
	}

	c, err := deep.Copy(v)
	if err != nil {
		s.degrade("clone", v, err)
		return v
	}
	return c
}

// Equal reports whether a and b are structurally indistinguishable.
func (s *Service) Equal(a, b any) (eq bool) {
	defer func() {
		if r := recover(); r != nil {
			s.degrade("equal", a, fmt.Errorf("panic: %v", r))
			eq = sameReference(a, b)
		}
	}()

	if isNil(a) || isNil(b) {
		if isNil(a) && isNil(b) {
			return true
		}
		// nil and empty collections of the same type are interchangeable
		return reflect.TypeOf(a) == reflect.TypeOf(b) && isEmptyCollection(a) && isEmptyCollection(b)
	}

	if x, ok := a.(Equaler); ok {
		return x.EqualValue(b)
	}

	if pa, ok := a.(proto.Message); ok {
		pb, ok := b.(proto.Message)
		return ok && proto.Equal(pa, pb)
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	switch k := ta.Kind(); {
	case k == reflect.Float32 || k == reflect.Float64:
		// NaN equals NaN so a NaN property can return to clean.
		fa, fb := reflect.ValueOf(a).Float(), reflect.ValueOf(b).Float()
		return fa == fb || (math.IsNaN(fa) && math.IsNaN(fb))
	case isScalar(k):
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// CloneOf is the typed form of Service.Clone.
func CloneOf[T any](s *Service, v T) T {
	c, ok := s.Clone(v).(T)
	if !ok {
		s.degrade("clone", v, fmt.Errorf("clone of %T changed its type", v))
		return v
	}
	return c
}

func (s *Service) degrade(op string, v any, err error) {
	metrics.StructuralFallbacks.WithLabelValues(op).Inc()
	s.log.Warn("structural operation fell back to reference semantics",
		zap.String("operation", op),
		zap.String("type", fmt.Sprintf("%T", v)),
		zap.Error(err),
	)
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func isEmptyCollection(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

func sameReference(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() {
		return !ra.IsValid() && !rb.IsValid()
	}
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	}
	return false
}
