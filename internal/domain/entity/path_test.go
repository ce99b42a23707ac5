package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want Path
		ok   bool
	}{
		{in: "panels[0]", want: Path{}, ok: true},
		{in: "panels[0].panels[1]", want: Path{1}, ok: true},
		{in: "panels[0].panels[0].panels[1]", want: Path{0, 1}, ok: true},
		{in: "0.1", want: Path{1}, ok: true},
		{in: "0", want: Path{}, ok: true},
		{in: "", want: Path{}, ok: true},
		{in: "undefined", want: Path{}, ok: true},
		{in: "panels[1]", ok: false},
		{in: "panels[0].panels[x]", ok: false},
		{in: "panels[0]..panels[1]", ok: false},
		{in: "panels[0].panels[-1]", ok: false},
		{in: "panels[0].panels[2", ok: false},
		{in: "panels[0].panels[+1]", ok: false},
		{in: "0.+1", ok: false},
		{in: "+0", ok: false},
		{in: "panels[0].panels[]", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePath(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	for _, p := range []Path{{}, {0}, {1, 2}, {0, 0, 3}} {
		got, ok := ParsePath(p.String())
		require.True(t, ok, p.String())
		assert.True(t, p.Equal(got), "round trip of %s gave %v", p, got)
	}
	assert.Equal(t, "panels[0].panels[1].panels[0]", Path{1, 0}.String())
}

func TestPathNavigation(t *testing.T) {
	p := Path{2, 5}
	assert.Equal(t, 5, p.Index())
	assert.True(t, Path{2}.Equal(p.Parent()))
	assert.True(t, Path{2, 5, 1}.Equal(p.Child(1)))
	assert.Equal(t, -1, RootPath.Index())
	assert.True(t, RootPath.Parent().IsRoot())

	// Child must not alias the parent's backing array.
	parent := Path{1}
	a := parent.Child(0)
	b := parent.Child(1)
	assert.Equal(t, 0, a.Index())
	assert.Equal(t, 1, b.Index())
}
