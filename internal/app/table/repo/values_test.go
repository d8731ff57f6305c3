package repo

import (
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	sppb "cloud.google.com/go/spanner/apiv1/spannerpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

type grade string

func TestToSpannerValue(t *testing.T) {
	when := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	n := 7

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"string", "Sword", "Sword"},
		{"named string", grade("rare"), "rare"},
		{"int", 10, int64(10)},
		{"int32", int32(-3), int64(-3)},
		{"uint16", uint16(9), int64(9)},
		{"float32", float32(1.5), float64(1.5)},
		{"bool", true, true},
		{"time", when, when},
		{"bytes", []byte("ab"), []byte("ab")},
		{"pointer", &n, int64(7)},
		{"nil pointer", (*int)(nil), nil},
		{"nil slice", []string(nil), nil},
		{"string slice", []string{"a", "b"}, []string{"a", "b"}},
		{"named string slice", []grade{"rare"}, []string{"rare"}},
		{"int slice", []int{1, 2}, []int64{1, 2}},
		{"float slice", []float64{0.5}, []float64{0.5}},
		{"map", map[string]int{"a": 1}, spanner.NullJSON{Value: map[string]int{"a": 1}, Valid: true}},
		{"struct", struct{ A int }{1}, spanner.NullJSON{Value: struct{ A int }{1}, Valid: true}},
		{"slice of maps", []map[string]int{{"a": 1}}, spanner.NullJSON{Value: []map[string]int{{"a": 1}}, Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toSpannerValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToSpannerValue_Unsupported(t *testing.T) {
	_, err := toSpannerValue(uint64(1 << 63))
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = toSpannerValue(make(chan int))
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestFromColumn(t *testing.T) {
	when := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"string", "Sword", "Sword"},
		{"null string", spanner.NullString{}, nil},
		{"int64", int64(10), int64(10)},
		{"null int64", spanner.NullInt64{}, nil},
		{"float64", 2.5, 2.5},
		{"bool", true, true},
		{"timestamp", when, when},
		{"string array", []string{"a", "b"}, []string{"a", "b"}},
		{"string array with null", []spanner.NullString{{StringVal: "a", Valid: true}, {}}, []string{"a", ""}},
		{"int64 array", []int64{1, 2}, []int64{1, 2}},
		{"null array", []string(nil), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := spanner.NewRow([]string{"col"}, []interface{}{tt.in})
			require.NoError(t, err)

			var col spanner.GenericColumnValue
			require.NoError(t, row.Column(0, &col))

			got, err := fromColumn(col)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromColumn_HandBuilt(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		got, err := fromColumn(spanner.GenericColumnValue{
			Type:  &sppb.Type{Code: sppb.TypeCode_JSON},
			Value: structpb.NewStringValue(`{"armor":12}`),
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"armor": float64(12)}, got)
	})

	t.Run("null json", func(t *testing.T) {
		got, err := fromColumn(spanner.GenericColumnValue{
			Type:  &sppb.Type{Code: sppb.TypeCode_JSON},
			Value: structpb.NewNullValue(),
		})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("int64 encoded as string", func(t *testing.T) {
		got, err := fromColumn(spanner.GenericColumnValue{
			Type:  &sppb.Type{Code: sppb.TypeCode_INT64},
			Value: structpb.NewStringValue("42"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), got)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := fromColumn(spanner.GenericColumnValue{
			Type:  &sppb.Type{Code: sppb.TypeCode_NUMERIC},
			Value: structpb.NewStringValue("1.5"),
		})
		assert.ErrorIs(t, err, ErrUnsupportedValue)
	})
}
