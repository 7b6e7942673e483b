package convert_test

import (
	"math"
	"math/big"
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unbound-force/assay/internal/convert"
)

func TestWidens(t *testing.T) {
	tests := []struct {
		from, to reflect.Kind
		want     bool
	}{
		{reflect.Int8, reflect.Int16, true},
		{reflect.Int16, reflect.Int, true},
		{reflect.Int32, reflect.Int, true},
		{reflect.Int, reflect.Int64, true},
		{reflect.Int64, reflect.Int, false},
		{reflect.Int, reflect.Int32, false},
		{reflect.Int16, reflect.Int8, false},
		{reflect.Uint8, reflect.Uint16, true},
		{reflect.Uint8, reflect.Int16, true},
		{reflect.Uint16, reflect.Int16, false},
		{reflect.Uint32, reflect.Int, false},
		{reflect.Uint32, reflect.Int64, true},
		{reflect.Int8, reflect.Uint8, false},
		{reflect.Int16, reflect.Float32, true},
		{reflect.Int32, reflect.Float32, false},
		{reflect.Int32, reflect.Float64, true},
		{reflect.Int64, reflect.Float64, false},
		{reflect.Float32, reflect.Float64, true},
		{reflect.Float64, reflect.Float32, false},
		{reflect.Complex64, reflect.Complex128, true},
		{reflect.Int, reflect.Int, false},
		{reflect.String, reflect.Int, false},
		{reflect.Bool, reflect.Int, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, convert.Widens(tt.from, tt.to), "%v -> %v", tt.from, tt.to)
	}
}

func TestNarrowingPrimitives(t *testing.T) {
	n16, err := convert.ToInt16(int(-32768))
	require.NoError(t, err)
	assert.Equal(t, int16(-32768), n16)

	_, err = convert.ToInt16(32768)
	assert.ErrorIs(t, err, convert.ErrOverflow)

	n8, err := convert.ToInt8(int8(-5))
	require.NoError(t, err)
	assert.Equal(t, int8(-5), n8)

	_, err = convert.ToUint8(256)
	assert.ErrorIs(t, err, convert.ErrOverflow)

	b, err := convert.ToUint8(uint64(200))
	require.NoError(t, err)
	assert.Equal(t, uint8(200), b)

	_, err = convert.ToInt64(uint64(math.MaxUint64))
	assert.ErrorIs(t, err, convert.ErrOverflow)

	f, err := convert.ToFloat64(7)
	require.NoError(t, err)
	assert.Equal(t, 7.0, f)

	_, err = convert.ToInt16("5")
	assert.ErrorIs(t, err, convert.ErrInvalidCast)
}

func TestNarrowingPrimitives_NilIsZero(t *testing.T) {
	n16, err := convert.ToInt16(nil)
	require.NoError(t, err)
	assert.Zero(t, n16)

	f, err := convert.ToFloat64(nil)
	require.NoError(t, err)
	assert.Zero(t, f)

	d, err := convert.ToDecimal(nil)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	tm, err := convert.ToDateTime(nil)
	require.NoError(t, err)
	assert.True(t, tm.IsZero())
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    string
		wantErr error
	}{
		{"string", "12.5", "12.5", nil},
		{"padded string", " 3 ", "3", nil},
		{"float64", 0.25, "0.25", nil},
		{"float32", float32(0.5), "0.5", nil},
		{"int", 42, "42", nil},
		{"int8", int8(-1), "-1", nil},
		{"max", "79228162514264337593543950335", "79228162514264337593543950335", nil},
		{"beyond max", "-79228162514264337593543950336", "", convert.ErrOverflow},
		{"malformed", "not-a-number", "", convert.ErrFormat},
		{"nan text", "NaN", "", convert.ErrFormat},
		{"NaN", math.NaN(), "", convert.ErrOverflow},
		{"infinity", math.Inf(-1), "", convert.ErrOverflow},
		{"bool", true, "", convert.ErrInvalidCast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := convert.ToDecimal(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			want, _, err := apd.NewFromString(tt.want)
			require.NoError(t, err)
			assert.Zero(t, d.Cmp(want), "got %s", d)
		})
	}
}

func TestToDateTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01 13:45", time.Date(2024, 3, 1, 13, 45, 0, 0, time.UTC)},
		{"2024-03-01T13:45:10", time.Date(2024, 3, 1, 13, 45, 10, 0, time.UTC)},
		{"2024-03-01T13:45:10.5Z", time.Date(2024, 3, 1, 13, 45, 10, 5e8, time.UTC)},
		{"03/01/2024", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := convert.ToDateTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %v", tt.in, got)
	}

	_, err := convert.ToDateTime("tomorrow")
	assert.ErrorIs(t, err, convert.ErrFormat)

	_, err = convert.ToDateTime(20240301)
	assert.ErrorIs(t, err, convert.ErrInvalidCast)
}

func TestRegistry_Builtins(t *testing.T) {
	r := convert.Default()
	str := reflect.TypeFor[string]()

	v, err := r.Convert(reflect.TypeFor[time.Duration](), "90s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, v)

	v, err = r.Convert(reflect.TypeFor[uuid.UUID](), "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), v)

	v, err = r.Convert(reflect.TypeFor[netip.Addr](), "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("10.0.0.1"), v)

	v, err = r.Convert(reflect.TypeFor[big.Int](), "123456789012345678901234567890")
	require.NoError(t, err)
	n := v.(big.Int)
	assert.Equal(t, "123456789012345678901234567890", n.String())

	dec := r.Lookup(reflect.TypeFor[apd.Decimal]())
	require.NotNil(t, dec)
	assert.True(t, dec.CanConvertFrom(reflect.TypeFor[int32]()))
	assert.True(t, dec.CanConvertFrom(str))
	assert.False(t, dec.CanConvertFrom(reflect.TypeFor[bool]()))
	_, err = dec.ConvertFrom(nil)
	assert.ErrorIs(t, err, convert.ErrInvalidCast)

	_, err = r.Convert(reflect.TypeFor[uuid.UUID](), "zzz")
	assert.ErrorIs(t, err, convert.ErrFormat)

	_, err = r.Convert(reflect.TypeFor[uuid.UUID](), 12)
	assert.ErrorIs(t, err, convert.ErrInvalidCast)
}

type level int

func (l *level) UnmarshalText(b []byte) error {
	switch string(b) {
	case "low":
		*l = 1
	case "high":
		*l = 2
	default:
		return assert.AnError
	}
	return nil
}

func TestRegistry_TextUnmarshalerFallback(t *testing.T) {
	r := convert.NewRegistry(nil)

	c := r.Lookup(reflect.TypeFor[level]())
	require.NotNil(t, c)
	assert.True(t, c.CanConvertFrom(reflect.TypeFor[string]()))
	assert.False(t, c.CanConvertFrom(reflect.TypeFor[int]()))

	v, err := c.ConvertFrom("high")
	require.NoError(t, err)
	assert.Equal(t, level(2), v)

	_, err = c.ConvertFrom("medium")
	assert.ErrorIs(t, err, convert.ErrFormat)

	assert.Nil(t, r.Lookup(reflect.TypeFor[int]()))
	assert.Nil(t, r.Lookup(reflect.TypeFor[*level]()))
	assert.Nil(t, r.Lookup(nil))
}

func TestStringConverter_AcceptsDefinedStringTypes(t *testing.T) {
	type host string
	c := convert.StringConverter(netip.ParseAddr)

	v, err := c.ConvertFrom(host("::1"))
	require.NoError(t, err)
	assert.Equal(t, netip.IPv6Loopback(), v)
}
