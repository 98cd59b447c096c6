package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandialabs/elucidator-go/endian"
	"github.com/sandialabs/elucidator-go/errs"
	"github.com/sandialabs/elucidator-go/spec"
)

func mustParse(t *testing.T, src string) *spec.Specification {
	t.Helper()

	s, err := spec.Parse(src)
	require.NoError(t, err)

	return s
}

func TestEncodeDecode_Scalars(t *testing.T) {
	s := mustParse(t, "imu_sample(ts:u64,temp:i16,accel:f32,label:string)")
	engine := endian.GetLittleEndianEngine()

	values := map[string]Value{
		"ts":    uint64(1700000000),
		"temp":  int16(-42),
		"accel": float32(9.81),
		"label": "front-left",
	}

	blob, err := Encode(s, values, engine)
	require.NoError(t, err)
	require.Equal(t, s.MinSize()+len("front-left"), len(blob))

	rec, err := Decode(s, blob, engine)
	require.NoError(t, err)

	ts, ok := rec.Get("ts")
	require.True(t, ok)
	u, ok := ts.AsU64()
	require.True(t, ok)
	require.Equal(t, uint64(1700000000), u)

	temp, ok := rec.Get("temp")
	require.True(t, ok)
	i, ok := temp.AsI64()
	require.True(t, ok)
	require.Equal(t, int64(-42), i)

	accel, ok := rec.Get("accel")
	require.True(t, ok)
	f, ok := accel.AsF64()
	require.True(t, ok)
	require.InDelta(t, 9.81, f, 1e-5)

	label, ok := rec.Get("label")
	require.True(t, ok)
	str, ok := label.AsString()
	require.True(t, ok)
	require.Equal(t, "front-left", str)
}

func TestEncodeDecode_FixedArray(t *testing.T) {
	s := mustParse(t, "matrix(cell:f64[4])")
	engine := endian.GetLittleEndianEngine()

	blob, err := Encode(s, map[string]Value{"cell": []float64{1, 2, 3, 4}}, engine)
	require.NoError(t, err)
	require.Len(t, blob, 32)

	rec, err := Decode(s, blob, engine)
	require.NoError(t, err)

	cell, ok := rec.Get("cell")
	require.True(t, ok)
	require.Equal(t, []float64{1, 2, 3, 4}, cell.Value)
}

func TestEncodeDecode_DynamicArray(t *testing.T) {
	s := mustParse(t, "frame(payload:u8[])")
	engine := endian.GetLittleEndianEngine()

	blob, err := Encode(s, map[string]Value{"payload": []byte{1, 2, 3}}, engine)
	require.NoError(t, err)
	require.Len(t, blob, 8+3)

	rec, err := Decode(s, blob, engine)
	require.NoError(t, err)

	payload, ok := rec.Get("payload")
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, payload.Value)
}

func TestEncode_MissingMember(t *testing.T) {
	s := mustParse(t, "point(x:f64,y:f64)")
	_, err := Encode(s, map[string]Value{"x": 1.0}, endian.GetLittleEndianEngine())
	require.Error(t, err)
}

func TestEncode_FixedArrayLengthMismatch(t *testing.T) {
	s := mustParse(t, "matrix(cell:f64[4])")
	_, err := Encode(s, map[string]Value{"cell": []float64{1, 2}}, endian.GetLittleEndianEngine())
	require.Error(t, err)
}

func TestDecode_TruncatedBlob(t *testing.T) {
	s := mustParse(t, "point(x:f64,y:f64)")
	_, err := Decode(s, make([]byte, 8), endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrTruncatedBlob)
}

func TestDecode_TrailingBytes(t *testing.T) {
	s := mustParse(t, "point(x:f64,y:f64)")
	_, err := Decode(s, make([]byte, 17), endian.GetLittleEndianEngine())
	require.ErrorIs(t, err, errs.ErrTrailingBytes)
}

func TestDecode_DynamicArrayLengthPrefixOverflow(t *testing.T) {
	s := mustParse(t, "frame(payload:u8[])")
	engine := endian.GetLittleEndianEngine()

	blob := make([]byte, 8)
	engine.PutUint64(blob, 1<<63)

	_, err := Decode(s, blob, engine)
	require.ErrorIs(t, err, errs.ErrTruncatedBlob)
}

func TestDecode_DynamicArrayLengthPrefixExceedsRemaining(t *testing.T) {
	s := mustParse(t, "samples(v:f64[])")
	engine := endian.GetLittleEndianEngine()

	blob := make([]byte, 8+16)
	engine.PutUint64(blob, 3)

	_, err := Decode(s, blob, engine)
	require.ErrorIs(t, err, errs.ErrTruncatedBlob)
}
