// Package codec encodes and decodes the members of a spec.Specification to
// and from a flat, little-endian byte blob. The wire layout is the
// concatenation of each member's bytes in declaration order: scalars as
// fixed-width little-endian values, fixed arrays as N consecutive elements,
// and dynamic arrays/strings as a u64 element (or byte) count followed by
// that many elements.
package codec

import "github.com/sandialabs/elucidator-go/spec"

// Value is the decoded payload for one MemberSpec: a scalar numeric type,
// a string, or a slice of one of those, depending on the member's DataType
// and ArrayForm. Callers type-switch or type-assert on the concrete dynamic
// type; MemberValue.As* helpers do this for the common cases.
type Value = any

// MemberValue pairs a decoded Value with the MemberSpec it was decoded
// against, so callers can inspect the type without re-consulting the
// Specification.
type MemberValue struct {
	Spec  spec.MemberSpec
	Value Value
}

// AsU64 returns v's value as a uint64, for scalar unsigned members.
func (m MemberValue) AsU64() (uint64, bool) {
	u, ok := m.Value.(uint64)
	return u, ok
}

// AsI64 returns v's value as an int64, for scalar signed members.
func (m MemberValue) AsI64() (int64, bool) {
	i, ok := m.Value.(int64)
	return i, ok
}

// AsF64 returns v's value as a float64, for scalar f32/f64 members.
func (m MemberValue) AsF64() (float64, bool) {
	f, ok := m.Value.(float64)
	return f, ok
}

// AsString returns v's value as a string, for String members.
func (m MemberValue) AsString() (string, bool) {
	s, ok := m.Value.(string)
	return s, ok
}

// Record is an ordered, named decode result: one MemberValue per member of
// the Specification that produced it, in declaration order.
type Record struct {
	Designation string
	Members     []MemberValue
}

// Get returns the decoded value for the named member, or false if no such
// member was present in the record.
func (r Record) Get(name string) (MemberValue, bool) {
	for _, m := range r.Members {
		if m.Spec.Name == name {
			return m, true
		}
	}

	return MemberValue{}, false
}
