package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandialabs/elucidator-go/errs"
	"github.com/sandialabs/elucidator-go/spec"
)

func mustParse(t *testing.T, src string) *spec.Specification {
	t.Helper()

	s, err := spec.Parse(src)
	require.NoError(t, err)

	return s
}

func TestRegistry_AddGet(t *testing.T) {
	r := New()
	s := mustParse(t, "point(x:f64,y:f64)")

	require.NoError(t, r.Add("point", s))

	got, err := r.Get("point")
	require.NoError(t, err)
	require.Same(t, s, got)
}

func TestRegistry_DuplicateDesignation(t *testing.T) {
	r := New()
	s := mustParse(t, "point(x:f64,y:f64)")

	require.NoError(t, r.Add("point", s))
	err := r.Add("point", s)
	require.ErrorIs(t, err, errs.ErrDuplicateDesignation)
}

func TestRegistry_DesignationMismatch(t *testing.T) {
	r := New()
	s := mustParse(t, "point(x:f64,y:f64)")

	err := r.Add("other", s)
	require.ErrorIs(t, err, errs.ErrDesignationMismatch)
}

func TestRegistry_UnknownDesignation(t *testing.T) {
	r := New()
	_, err := r.Get("missing")
	require.ErrorIs(t, err, errs.ErrUnknownDesignation)
}

func TestRegistry_Iter_InsertionOrder(t *testing.T) {
	r := New()
	names := []string{"a", "b", "c"}

	for _, n := range names {
		s, err := spec.Parse(n + "(x:u8)")
		require.NoError(t, err)
		require.NoError(t, r.Add(n, s))
	}

	var got []string
	for name := range r.Iter() {
		got = append(got, name)
	}

	require.Equal(t, names, got)
	require.Equal(t, 3, r.Len())
}

func TestRegistry_Iter_EarlyBreak(t *testing.T) {
	r := New()
	for _, n := range []string{"a", "b", "c"} {
		s, err := spec.Parse(n + "(x:u8)")
		require.NoError(t, err)
		require.NoError(t, r.Add(n, s))
	}

	var got []string
	for name := range r.Iter() {
		got = append(got, name)
		if name == "a" {
			break
		}
	}

	require.Equal(t, []string{"a"}, got)
}
