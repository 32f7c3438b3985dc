package contraction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multilevelgraphs/mlgraph/contraction"
	"github.com/multilevelgraphs/mlgraph/decgraph"
)

func TestUpdateQuadruple_OppositeEventsCancel(t *testing.T) {
	n := leaf("a", 1)
	q := contraction.NewUpdateQuadruple()

	q.AddVPlus(n)
	require.True(t, q.HasUpdates())
	q.AddVMinus(n)
	assert.False(t, q.HasUpdates())
	assert.Empty(t, q.VPlus())
	assert.Empty(t, q.VMinus())
}

func TestUpdateQuadruple_EdgeEventsCancelByKey(t *testing.T) {
	g := decgraph.NewDecGraph()
	g.AddNode(leaf("a", 1))
	g.AddNode(leaf("b", 1))
	e := addEdge(t, g, "a", "b", 1)

	q := contraction.NewUpdateQuadruple()
	q.AddEPlus(e)
	q.AddEMinus(e)
	assert.False(t, q.HasUpdates())

	q.AddEMinus(e)
	q.AddEPlus(e)
	assert.False(t, q.HasUpdates())
}

func TestUpdateQuadruple_SortedAccessors(t *testing.T) {
	q := contraction.NewUpdateQuadruple()
	q.AddVPlus(leaf("b", 1))
	q.AddVPlus(leaf("a", 1))
	q.AddVPlus(leaf("c", 1))

	keys := make([]string, 0, 3)
	for _, n := range q.VPlus() {
		keys = append(keys, n.Key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestUpdateQuadruple_Clear(t *testing.T) {
	q := contraction.NewUpdateQuadruple()
	q.AddVPlus(leaf("a", 1))
	require.True(t, q.HasUpdates())

	q.Clear()
	assert.False(t, q.HasUpdates())
	assert.Empty(t, q.VPlus())
}
