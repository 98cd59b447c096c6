package codec

import (
	"fmt"
	"math"

	"github.com/sandialabs/elucidator-go/endian"
	"github.com/sandialabs/elucidator-go/errs"
	"github.com/sandialabs/elucidator-go/internal/pool"
	"github.com/sandialabs/elucidator-go/spec"
)

// Encode serializes values, keyed by member name, into a new byte blob
// matching s's wire layout. Every member in s must have a matching entry in
// values; Encode does not tolerate partial records, since the index relies
// on every stored blob being fully decodable against its designation.
func Encode(s *spec.Specification, values map[string]Value, engine endian.EndianEngine) ([]byte, error) {
	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	for _, m := range s.Members {
		v, ok := values[m.Name]
		if !ok {
			return nil, fmt.Errorf("codec: missing value for member %q", m.Name)
		}

		if err := appendMember(buf, m, v, engine); err != nil {
			return nil, err
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func appendMember(buf *pool.ByteBuffer, m spec.MemberSpec, v Value, engine endian.EndianEngine) error {
	switch m.Array.Kind {
	case spec.Scalar:
		if m.Type == spec.String {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("codec: member %q expects string, got %T", m.Name, v)
			}

			appendString(buf, s, engine)

			return nil
		}

		return appendScalar(buf, m, v, engine)
	case spec.Fixed, spec.Dynamic:
		return appendArray(buf, m, v, engine)
	default:
		return fmt.Errorf("codec: member %q has unknown array kind", m.Name)
	}
}

func appendScalar(buf *pool.ByteBuffer, m spec.MemberSpec, v Value, engine endian.EndianEngine) error {
	switch m.Type {
	case spec.U8:
		u, err := toU64(m.Name, v)
		if err != nil {
			return err
		}

		buf.MustWrite([]byte{byte(u)})
	case spec.U16:
		u, err := toU64(m.Name, v)
		if err != nil {
			return err
		}

		buf.B = engine.AppendUint16(buf.B, uint16(u))
	case spec.U32:
		u, err := toU64(m.Name, v)
		if err != nil {
			return err
		}

		buf.B = engine.AppendUint32(buf.B, uint32(u))
	case spec.U64:
		u, err := toU64(m.Name, v)
		if err != nil {
			return err
		}

		buf.B = engine.AppendUint64(buf.B, u)
	case spec.I8:
		i, err := toI64(m.Name, v)
		if err != nil {
			return err
		}

		buf.MustWrite([]byte{byte(int8(i))})
	case spec.I16:
		i, err := toI64(m.Name, v)
		if err != nil {
			return err
		}

		buf.B = engine.AppendUint16(buf.B, uint16(int16(i)))
	case spec.I32:
		i, err := toI64(m.Name, v)
		if err != nil {
			return err
		}

		buf.B = engine.AppendUint32(buf.B, uint32(int32(i)))
	case spec.I64:
		i, err := toI64(m.Name, v)
		if err != nil {
			return err
		}

		buf.B = engine.AppendUint64(buf.B, uint64(i))
	case spec.F32:
		f, err := toF64(m.Name, v)
		if err != nil {
			return err
		}

		buf.B = engine.AppendUint32(buf.B, math.Float32bits(float32(f)))
	case spec.F64:
		f, err := toF64(m.Name, v)
		if err != nil {
			return err
		}

		buf.B = engine.AppendUint64(buf.B, math.Float64bits(f))
	default:
		return fmt.Errorf("codec: member %q has unsupported scalar type %s", m.Name, m.Type)
	}

	return nil
}

func appendString(buf *pool.ByteBuffer, s string, engine endian.EndianEngine) {
	buf.B = engine.AppendUint64(buf.B, uint64(len(s)))
	buf.MustWrite([]byte(s))
}

func appendArray(buf *pool.ByteBuffer, m spec.MemberSpec, v Value, engine endian.EndianEngine) error {
	n, elemAt, err := arrayAccessor(m, v)
	if err != nil {
		return err
	}

	if m.Array.Kind == spec.Fixed && n != m.Array.Len {
		return fmt.Errorf("codec: member %q expects %d elements, got %d", m.Name, m.Array.Len, n)
	}

	if m.Array.Kind == spec.Dynamic {
		buf.B = engine.AppendUint64(buf.B, uint64(n))
	}

	scalar := spec.MemberSpec{Name: m.Name, Type: m.Type, Array: spec.ArrayForm{Kind: spec.Scalar}}
	for i := 0; i < n; i++ {
		if err := appendScalar(buf, scalar, elemAt(i), engine); err != nil {
			return err
		}
	}

	return nil
}

// arrayAccessor type-switches v into one of the concrete slice types and
// returns its length plus an indexer, so appendArray can iterate without a
// reflect-based fast path.
func arrayAccessor(m spec.MemberSpec, v Value) (int, func(int) Value, error) {
	switch s := v.(type) {
	case []uint64:
		return len(s), func(i int) Value { return s[i] }, nil
	case []int64:
		return len(s), func(i int) Value { return s[i] }, nil
	case []float64:
		return len(s), func(i int) Value { return s[i] }, nil
	case []byte:
		return len(s), func(i int) Value { return uint64(s[i]) }, nil
	default:
		return 0, nil, fmt.Errorf("codec: member %q has unsupported array value type %T", m.Name, v)
	}
}

func toU64(name string, v Value) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint32:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("codec: member %q cannot encode negative value %d as unsigned", name, n)
		}

		return uint64(n), nil
	default:
		return 0, fmt.Errorf("codec: member %q expects an unsigned integer, got %T", name, v)
	}
}

func toI64(name string, v Value) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("codec: member %q expects a signed integer, got %T", name, v)
	}
}

func toF64(name string, v Value) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("codec: member %q expects a float, got %T", name, v)
	}
}

// Decode parses blob against s's layout, returning one MemberValue per
// member in declaration order. It requires blob to be exactly s's encoded
// length: any short read returns ErrTruncatedBlob, any leftover bytes
// return ErrTrailingBytes.
func Decode(s *spec.Specification, blob []byte, engine endian.EndianEngine) (Record, error) {
	r := Record{Designation: s.Designation, Members: make([]MemberValue, 0, len(s.Members))}

	off := 0
	for _, m := range s.Members {
		v, n, err := decodeMember(blob[off:], m, engine)
		if err != nil {
			return Record{}, fmt.Errorf("%w: member %q: %v", errs.ErrTruncatedBlob, m.Name, err)
		}

		r.Members = append(r.Members, MemberValue{Spec: m, Value: v})
		off += n
	}

	if off != len(blob) {
		return Record{}, fmt.Errorf("%w: %d bytes unconsumed", errs.ErrTrailingBytes, len(blob)-off)
	}

	return r, nil
}

// ExpectedLength walks s's members against blob, reading only the length
// prefixes of dynamic/string components (never decoding element values),
// and returns the exact byte length a well-formed blob for s must have. It
// is the "cheap prefix-based check" a caller can run before storing a blob,
// catching both too-short and too-long blobs, as well as a length prefix
// that doesn't match the blob's actual size, without a full Decode.
func ExpectedLength(s *spec.Specification, blob []byte, engine endian.EndianEngine) (int, error) {
	off := 0
	for _, m := range s.Members {
		n, err := memberExpectedLength(blob[off:], m, engine)
		if err != nil {
			return 0, fmt.Errorf("%w: member %q: %v", errs.ErrTruncatedBlob, m.Name, err)
		}

		off += n
	}

	return off, nil
}

func memberExpectedLength(b []byte, m spec.MemberSpec, engine endian.EndianEngine) (int, error) {
	scalarSize := m.Type.StaticSize()

	switch m.Array.Kind {
	case spec.Scalar:
		if m.Type != spec.String {
			if len(b) < scalarSize {
				return 0, fmt.Errorf("need %d bytes, have %d", scalarSize, len(b))
			}

			return scalarSize, nil
		}

		fallthrough
	case spec.Dynamic:
		if len(b) < 8 {
			return 0, fmt.Errorf("need 8 bytes for length prefix, have %d", len(b))
		}

		rawLen := engine.Uint64(b)
		remaining := uint64(len(b) - 8)

		elemSize := uint64(1)
		if m.Array.Kind == spec.Dynamic && scalarSize > 0 {
			elemSize = uint64(scalarSize)
		}

		if rawLen > remaining/elemSize {
			return 0, fmt.Errorf("length prefix %d exceeds remaining capacity in %d bytes", rawLen, remaining)
		}

		return 8 + int(rawLen*elemSize), nil
	case spec.Fixed:
		need := m.Array.Len * scalarSize
		if len(b) < need {
			return 0, fmt.Errorf("need %d bytes, have %d", need, len(b))
		}

		return need, nil
	default:
		return 0, fmt.Errorf("member %q has unknown array kind", m.Name)
	}
}

func decodeMember(b []byte, m spec.MemberSpec, engine endian.EndianEngine) (Value, int, error) {
	switch m.Array.Kind {
	case spec.Scalar:
		if m.Type == spec.String {
			return decodeString(b, engine)
		}

		return decodeScalar(b, m.Type, engine)
	case spec.Fixed:
		return decodeArray(b, m, m.Array.Len, engine, false)
	case spec.Dynamic:
		return decodeArray(b, m, 0, engine, true)
	default:
		return nil, 0, fmt.Errorf("unknown array kind")
	}
}

func decodeScalar(b []byte, dt spec.DataType, engine endian.EndianEngine) (Value, int, error) {
	size := dt.StaticSize()
	if len(b) < size {
		return nil, 0, fmt.Errorf("need %d bytes, have %d", size, len(b))
	}

	switch dt {
	case spec.U8:
		return uint64(b[0]), 1, nil
	case spec.U16:
		return uint64(engine.Uint16(b)), 2, nil
	case spec.U32:
		return uint64(engine.Uint32(b)), 4, nil
	case spec.U64:
		return engine.Uint64(b), 8, nil
	case spec.I8:
		return int64(int8(b[0])), 1, nil
	case spec.I16:
		return int64(int16(engine.Uint16(b))), 2, nil
	case spec.I32:
		return int64(int32(engine.Uint32(b))), 4, nil
	case spec.I64:
		return int64(engine.Uint64(b)), 8, nil
	case spec.F32:
		return float64(math.Float32frombits(engine.Uint32(b))), 4, nil
	case spec.F64:
		return math.Float64frombits(engine.Uint64(b)), 8, nil
	default:
		return nil, 0, fmt.Errorf("unsupported scalar type %s", dt)
	}
}

func decodeString(b []byte, engine endian.EndianEngine) (Value, int, error) {
	if len(b) < 8 {
		return nil, 0, fmt.Errorf("need 8 bytes for string length prefix, have %d", len(b))
	}

	n := engine.Uint64(b)
	if n > uint64(len(b)-8) {
		return nil, 0, fmt.Errorf("string length %d exceeds remaining %d bytes", n, len(b)-8)
	}

	s := string(b[8 : 8+n])

	return s, 8 + int(n), nil
}

func decodeArray(b []byte, m spec.MemberSpec, fixedLen int, engine endian.EndianEngine, dynamic bool) (Value, int, error) {
	consumed := 0

	n := fixedLen
	if dynamic {
		if len(b) < 8 {
			return nil, 0, fmt.Errorf("need 8 bytes for array length prefix, have %d", len(b))
		}

		rawLen := engine.Uint64(b)
		consumed = 8

		elemSize := uint64(m.Type.StaticSize())
		remaining := uint64(len(b) - consumed)
		if elemSize == 0 || rawLen > remaining/elemSize {
			return nil, 0, fmt.Errorf("array length %d exceeds remaining capacity for %d-byte elements in %d bytes", rawLen, elemSize, remaining)
		}

		n = int(rawLen)
	}

	switch m.Type {
	case spec.F64, spec.F32:
		out, cleanup := pool.GetFloat64Slice(n)
		defer cleanup()

		for i := 0; i < n; i++ {
			v, sz, err := decodeScalar(b[consumed:], m.Type, engine)
			if err != nil {
				return nil, 0, err
			}

			out[i] = v.(float64)
			consumed += sz
		}

		owned := make([]float64, n)
		copy(owned, out)

		return owned, consumed, nil
	case spec.I64, spec.I8, spec.I16, spec.I32:
		out, cleanup := pool.GetInt64Slice(n)
		defer cleanup()

		for i := 0; i < n; i++ {
			v, sz, err := decodeScalar(b[consumed:], m.Type, engine)
			if err != nil {
				return nil, 0, err
			}

			out[i] = v.(int64)
			consumed += sz
		}

		owned := make([]int64, n)
		copy(owned, out)

		return owned, consumed, nil
	case spec.U8:
		out := make([]byte, n)
		if len(b[consumed:]) < n {
			return nil, 0, fmt.Errorf("need %d bytes for u8 array, have %d", n, len(b[consumed:]))
		}

		copy(out, b[consumed:consumed+n])
		consumed += n

		return out, consumed, nil
	default:
		out := make([]uint64, n)
		for i := 0; i < n; i++ {
			v, sz, err := decodeScalar(b[consumed:], m.Type, engine)
			if err != nil {
				return nil, 0, err
			}

			out[i] = v.(uint64)
			consumed += sz
		}

		return out, consumed, nil
	}
}
