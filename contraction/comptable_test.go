package contraction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multilevelgraphs/mlgraph/contraction"
	"github.com/multilevelgraphs/mlgraph/decgraph"
)

func namedSet(id int64, keys ...string) *decgraph.ComponentSet {
	members := make([]*decgraph.Supernode, 0, len(keys))
	for _, k := range keys {
		members = append(members, leaf(k, 1))
	}
	return decgraph.NewComponentSet(decgraph.SetID(id), nil, members...)
}

func TestCompTable_AddNonMaximalSet(t *testing.T) {
	table := contraction.NewCompTable(false)
	table.AddNonMaximalSet(namedSet(1, "a", "b"))
	table.AddNonMaximalSet(namedSet(2, "b", "c"))

	assert.Equal(t, 3, table.Len())
	assert.Len(t, table.Row("b"), 2)
	assert.Len(t, table.Row("a"), 1)
	assert.Len(t, table.AllSets(), 2)

	modified := make([]string, 0, 3)
	for _, n := range table.ModifiedNodes() {
		modified = append(modified, n.Key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, modified)
}

func TestCompTable_AddMaximalSet_SkipsCovered(t *testing.T) {
	table := contraction.NewCompTable(true)
	table.AddMaximalSet(namedSet(1, "a", "b", "c"), true)
	table.AddMaximalSet(namedSet(2, "a", "b"), true)

	assert.Len(t, table.AllSets(), 1)
	assert.Len(t, table.Row("a"), 1)
	_, tracked := table.AllSets()[decgraph.SetID(1)]
	assert.True(t, tracked)
}

func TestCompTable_AddMaximalSet_RemovesSubsets(t *testing.T) {
	table := contraction.NewCompTable(true)
	table.AddMaximalSet(namedSet(1, "a", "b"), true)
	table.AddMaximalSet(namedSet(2, "c", "d"), true)
	table.AddMaximalSet(namedSet(3, "a", "b", "c"), true)

	all := table.AllSets()
	assert.Len(t, all, 2)
	_, sub := all[decgraph.SetID(1)]
	assert.False(t, sub, "subset {a,b} must be retired")
	_, disjoint := all[decgraph.SetID(2)]
	assert.True(t, disjoint)
}

func TestCompTable_RemoveSetMarksMembersModified(t *testing.T) {
	table := contraction.NewCompTable(false)
	cs := namedSet(1, "a", "b")
	table.AddNonMaximalSet(cs)
	table.ClearModified()

	table.RemoveSet(cs)
	assert.Len(t, table.ModifiedNodes(), 2)
	assert.Empty(t, table.Row("a"))
	assert.True(t, table.Has("a"), "row survives as empty until singleton backfill")
}

func TestCompTable_AddSingletons(t *testing.T) {
	table := contraction.NewCompTable(false)
	cs := namedSet(1, "a", "b")
	table.AddNonMaximalSet(cs)
	table.RemoveSet(cs)

	nextID := int64(10)
	table.AddSingletons(func(n *decgraph.Supernode) *decgraph.ComponentSet {
		nextID++
		return decgraph.NewComponentSet(decgraph.SetID(nextID), nil, n)
	})

	require.Len(t, table.Row("a"), 1)
	require.Len(t, table.Row("b"), 1)
	assert.Len(t, table.AllSets(), 2)
}

func TestCompTable_RowIsSnapshot(t *testing.T) {
	table := contraction.NewCompTable(false)
	cs := namedSet(1, "a")
	table.AddNonMaximalSet(cs)

	row := table.Row("a")
	table.RemoveSet(cs)
	assert.Len(t, row, 1, "snapshot must not see later removals")
	assert.Empty(t, table.Row("a"))
}

func TestCompTable_DeleteRow(t *testing.T) {
	table := contraction.NewCompTable(false)
	table.AddNonMaximalSet(namedSet(1, "a"))
	table.DeleteRow("a")

	assert.False(t, table.Has("a"))
	assert.Empty(t, table.ModifiedNodes())
	assert.Equal(t, 0, table.Len())
}
