package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rarity string

type gear struct {
	Name   string
	Level  int
	Rarity rarity
	Stats  map[string]float64
	Parent *int
}

func gearDescriptor() *Descriptor[*gear] {
	return NewDescriptor("Gear", func() *gear { return &gear{} },
		PtrField("Name", func(g *gear) string { return g.Name }, func(g *gear, v string) { g.Name = v }),
		PtrField("Level", func(g *gear) int { return g.Level }, func(g *gear, v int) { g.Level = v }),
		PtrField("Rarity", func(g *gear) rarity { return g.Rarity }, func(g *gear, v rarity) { g.Rarity = v }),
		PtrField("Stats", func(g *gear) map[string]float64 { return g.Stats }, func(g *gear, v map[string]float64) { g.Stats = v }),
	)
}

func TestDescriptor_Declaration(t *testing.T) {
	d := gearDescriptor()

	assert.Equal(t, "Gear", d.Name())
	assert.False(t, d.IsScalar())
	assert.Equal(t, []string{"Name", "Level", "Rarity", "Stats"}, d.PropertyNames())

	_, ok := d.Lookup("Level")
	assert.True(t, ok)
	_, ok = d.Lookup("level")
	assert.False(t, ok)

	assert.Panics(t, func() {
		NewDescriptor("Bad", nil,
			Field("A", func(g gear) string { return g.Name }, func(g *gear, v string) { g.Name = v }),
			Field("A", func(g gear) int { return g.Level }, func(g *gear, v int) { g.Level = v }),
		)
	})
	assert.Panics(t, func() {
		NewDescriptor("Bad", nil,
			Field("", func(g gear) string { return g.Name }, func(g *gear, v string) { g.Name = v }),
		)
	})
}

func TestDescriptor_EncodeDecode(t *testing.T) {
	d := gearDescriptor()

	t.Run("decode converts json shaped values", func(t *testing.T) {
		g, err := d.Decode(map[string]any{
			"Name":   "Helm",
			"Level":  float64(3),
			"Rarity": "epic",
			"Stats":  map[string]any{"armor": float64(12)},
		})
		require.NoError(t, err)
		assert.Equal(t, &gear{
			Name:   "Helm",
			Level:  3,
			Rarity: "epic",
			Stats:  map[string]float64{"armor": 12},
		}, g)
	})

	t.Run("missing properties stay empty", func(t *testing.T) {
		g, err := d.Decode(map[string]any{"Name": "Helm"})
		require.NoError(t, err)
		assert.Equal(t, &gear{Name: "Helm"}, g)
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := d.Decode(map[string]any{"Weight": 1})
		assert.ErrorIs(t, err, ErrUnknownProperty)
	})

	t.Run("wrong value type", func(t *testing.T) {
		_, err := d.Decode(map[string]any{"Level": 3.5})
		assert.ErrorIs(t, err, ErrValueType)
		assert.ErrorIs(t, err, ErrPropertyType)
	})

	t.Run("encode", func(t *testing.T) {
		record := d.Encode(&gear{Name: "Helm", Level: 2, Rarity: "rare"})
		assert.Equal(t, "Helm", record["Name"])
		assert.Equal(t, 2, record["Level"])
		assert.Equal(t, rarity("rare"), record["Rarity"])
		assert.Len(t, record, 4)
	})

	t.Run("decode onto keeps missing properties", func(t *testing.T) {
		base := &gear{Name: "Helm", Level: 2, Rarity: "rare"}
		g, err := d.DecodeOnto(base, map[string]any{"Level": float64(5)})
		require.NoError(t, err)
		assert.Equal(t, &gear{Name: "Helm", Level: 5, Rarity: "rare"}, g)
	})

	t.Run("nil pointer entity reads as empty", func(t *testing.T) {
		p, _ := d.Lookup("Name")
		assert.Equal(t, "", p.Get(nil))

		g, err := p.Set(nil, "Cap")
		require.NoError(t, err)
		assert.Equal(t, "Cap", g.Name)
	})
}

func TestScalarDescriptor(t *testing.T) {
	d := ScalarDescriptor[int]("Counter")

	assert.True(t, d.IsScalar())
	assert.Equal(t, []string{ValueProperty}, d.PropertyNames())

	p, ok := d.Lookup(ValueProperty)
	require.True(t, ok)
	next, err := p.Set(1, float64(5))
	require.NoError(t, err)
	assert.Equal(t, 5, next)
	assert.Equal(t, 5, p.Get(next))

	_, err = p.Set(1, "five")
	assert.ErrorIs(t, err, ErrPropertyType)

	assert.NoError(t, p.Check(float64(2)))
	assert.ErrorIs(t, p.Check("five"), ErrPropertyType)
}

func TestCoerce(t *testing.T) {
	t.Run("passthrough", func(t *testing.T) {
		v, err := Coerce[string]("x")
		require.NoError(t, err)
		assert.Equal(t, "x", v)
	})

	t.Run("numbers", func(t *testing.T) {
		i, err := Coerce[int](float64(10))
		require.NoError(t, err)
		assert.Equal(t, 10, i)

		u, err := Coerce[uint8](int64(255))
		require.NoError(t, err)
		assert.Equal(t, uint8(255), u)

		f, err := Coerce[float32](2)
		require.NoError(t, err)
		assert.Equal(t, float32(2), f)

		_, err = Coerce[int](10.5)
		assert.ErrorIs(t, err, ErrPropertyType)

		_, err = Coerce[uint8](300)
		assert.ErrorIs(t, err, ErrPropertyType)

		_, err = Coerce[uint](-1)
		assert.ErrorIs(t, err, ErrPropertyType)
	})

	t.Run("named kinds", func(t *testing.T) {
		r, err := Coerce[rarity]("legendary")
		require.NoError(t, err)
		assert.Equal(t, rarity("legendary"), r)
	})

	t.Run("slices", func(t *testing.T) {
		s, err := Coerce[[]int]([]any{float64(1), float64(2)})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, s)

		_, err = Coerce[[]int]([]any{"a"})
		assert.ErrorIs(t, err, ErrPropertyType)
	})

	t.Run("pointers", func(t *testing.T) {
		p, err := Coerce[*int](float64(4))
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, 4, *p)

		n, err := Coerce[*int](nil)
		require.NoError(t, err)
		assert.Nil(t, n)

		_, err = Coerce[int](nil)
		assert.ErrorIs(t, err, ErrPropertyType)
	})

	t.Run("mismatched kinds", func(t *testing.T) {
		_, err := Coerce[bool]("true")
		assert.ErrorIs(t, err, ErrPropertyType)
	})
}
