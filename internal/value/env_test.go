package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvDeclareAndLookup(t *testing.T) {
	e := NewEnv()
	e.Declare("x", Int(1), false)
	v, ok := e.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.AsInt())
}

func TestEnvChildShadowsParent(t *testing.T) {
	parent := NewEnv()
	parent.Declare("x", Int(1), false)
	child := parent.Child()
	child.Declare("x", Int(2), false)

	v, _ := child.Lookup("x")
	assert.Equal(t, int64(2), v.AsInt())
	pv, _ := parent.Lookup("x")
	assert.Equal(t, int64(1), pv.AsInt())
}

func TestEnvAssignWalksChain(t *testing.T) {
	parent := NewEnv()
	parent.Declare("x", Int(1), false)
	child := parent.Child()

	ok, isConst := child.Assign("x", Int(5))
	require.True(t, ok)
	assert.False(t, isConst)

	v, _ := parent.Lookup("x")
	assert.Equal(t, int64(5), v.AsInt())
}

func TestEnvAssignUndeclaredFails(t *testing.T) {
	e := NewEnv()
	ok, _ := e.Assign("missing", Int(1))
	assert.False(t, ok)
}

func TestEnvAssignConstReportsConst(t *testing.T) {
	e := NewEnv()
	e.Declare("x", Int(1), true)
	ok, isConst := e.Assign("x", Int(2))
	assert.True(t, ok)
	assert.True(t, isConst)
}

func TestEnvSnapshotIsolatesRebinding(t *testing.T) {
	base := NewEnv()
	base.Declare("x", Int(1), false)

	snap1 := base.Snapshot()
	snap2 := base.Snapshot()

	snap1.Assign("x", Int(100))

	v1, _ := snap1.Lookup("x")
	v2, _ := snap2.Lookup("x")
	vBase, _ := base.Lookup("x")
	assert.Equal(t, int64(100), v1.AsInt())
	assert.Equal(t, int64(1), v2.AsInt())
	assert.Equal(t, int64(1), vBase.AsInt())
}

func TestEnvSnapshotAliasesContainers(t *testing.T) {
	base := NewEnv()
	list := NewList([]Value{Int(1), Int(2)})
	base.Declare("items", list, false)

	snap1 := base.Snapshot()
	snap2 := base.Snapshot()

	v1, _ := snap1.Lookup("items")
	v1.AsList().Items[0] = Int(999)

	v2, _ := snap2.Lookup("items")
	assert.Equal(t, int64(999), v2.AsList().Items[0].AsInt(), "containers stay aliased across snapshots")
}

func TestEnvSnapshotFlattensChain(t *testing.T) {
	root := NewEnv()
	root.Declare("a", Int(1), false)
	mid := root.Child()
	mid.Declare("b", Int(2), false)
	leaf := mid.Child()
	leaf.Declare("c", Int(3), false)

	snap := leaf.Snapshot()
	for name, want := range map[string]int64{"a": 1, "b": 2, "c": 3} {
		v, ok := snap.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, want, v.AsInt())
	}
}
