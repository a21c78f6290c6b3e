package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAtPositionalInsertion(t *testing.T) {
	tests := []struct {
		name string
		adds []struct {
			job string
			pos int
		}
		want []string
	}{
		{
			name: "appends in order",
			adds: []struct {
				job string
				pos int
			}{{"a", -1}, {"b", -1}, {"c", -1}},
			want: []string{"a", "b", "c"},
		},
		{
			name: "insert at head shifts right",
			adds: []struct {
				job string
				pos int
			}{{"a", -1}, {"b", -1}, {"c", 0}},
			want: []string{"c", "a", "b"},
		},
		{
			name: "insert mid-list",
			adds: []struct {
				job string
				pos int
			}{{"a", -1}, {"b", -1}, {"c", 1}},
			want: []string{"a", "c", "b"},
		},
		{
			name: "out-of-range position appends",
			adds: []struct {
				job string
				pos int
			}{{"a", -1}, {"b", 99}},
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			for _, a := range tt.adds {
				r.AddAt("w", a.job, a.pos)
			}
			require.Equal(t, len(tt.want), r.Count("w"))
			for i, want := range tt.want {
				got, ok := r.Get("w", i)
				require.True(t, ok, "position %d", i)
				assert.Equal(t, want, got, "position %d", i)
			}
		})
	}
}

func TestGetUnknownWorkerAndOutOfRangeLookAlike(t *testing.T) {
	r := New()
	r.Add("w", "a")

	_, okUnknown := r.Get("nope", 0)
	_, okRange := r.Get("w", 5)
	assert.False(t, okUnknown)
	assert.False(t, okRange)
}

func TestRegisterIsIdempotent(t *testing.T) {
	r := New()
	r.Register("w")
	r.Add("w", "a")
	r.Register("w")

	assert.True(t, r.Registered("w"))
	assert.Equal(t, 1, r.Count("w"))
	assert.False(t, r.Registered("other"))
}

func TestCountAndHasAnyAggregate(t *testing.T) {
	r := New()
	r.Register("empty")
	r.Add("w1", "a")
	r.Add("w1", "b")
	r.Add("w2", "c")

	assert.Equal(t, 2, r.Count("w1"))
	assert.Equal(t, 3, r.Count(""))
	assert.True(t, r.HasAny("w1"))
	assert.False(t, r.HasAny("empty"))
	assert.True(t, r.HasAny(""))
}

func TestHashDeterministicAcrossInstances(t *testing.T) {
	build := func() *Registry {
		r := New()
		r.Add("w", "sync")
		r.Add("w", "prune")
		r.Add("w", "sync") // duplicates allowed
		return r
	}
	assert.Equal(t, build().Hash("w"), build().Hash("w"))
}

func TestHashChangesOnContentAndOrder(t *testing.T) {
	base := New()
	base.Add("w", "a")
	base.Add("w", "b")

	reordered := New()
	reordered.Add("w", "b")
	reordered.Add("w", "a")

	grown := New()
	grown.Add("w", "a")
	grown.Add("w", "b")
	grown.Add("w", "c")

	assert.NotEqual(t, base.Hash("w"), reordered.Hash("w"))
	assert.NotEqual(t, base.Hash("w"), grown.Hash("w"))
}

func TestHashListBoundariesAreUnambiguous(t *testing.T) {
	a := New()
	a.Add("w", "ab")
	a.Add("w", "c")

	b := New()
	b.Add("w", "a")
	b.Add("w", "bc")

	assert.NotEqual(t, a.Hash("w"), b.Hash("w"))
}

func TestAggregateHashGroupsByWorker(t *testing.T) {
	a := New()
	a.Add("w1", "x")
	a.Add("w2", "y")

	b := New()
	b.Add("w1", "x")
	b.Add("w2", "y")

	c := New()
	c.Add("w1", "y")
	c.Add("w2", "x")

	assert.Equal(t, a.Hash(""), b.Hash(""))
	assert.NotEqual(t, a.Hash(""), c.Hash(""))
}

func TestWorkersSorted(t *testing.T) {
	r := New()
	r.Register("zeta")
	r.Register("alpha")
	r.Add("mid", "j")

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Workers())
}
