package multilevel_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multilevelgraphs/mlgraph/contraction"
	"github.com/multilevelgraphs/mlgraph/decgraph"
	"github.com/multilevelgraphs/mlgraph/digraph"
	"github.com/multilevelgraphs/mlgraph/multilevel"
)

// sccBase is a directed graph with two strongly connected components,
// {1,2,3} and {4,5}, bridged by the edge 1->4.
func sccBase(t *testing.T) *digraph.Digraph {
	t.Helper()
	g := digraph.New()
	weights := map[string]float64{"1": 30, "2": 20, "3": 10, "4": 15, "5": 15}
	for _, key := range []string{"1", "2", "3", "4", "5"} {
		require.NoError(t, g.AddVertex(key, decgraph.Attrs{"weight": weights[key]}))
	}
	for _, e := range [][2]string{{"1", "2"}, {"2", "3"}, {"3", "1"}, {"1", "4"}, {"4", "5"}, {"5", "4"}} {
		require.NoError(t, g.AddEdge(e[0], e[1], nil))
	}
	return g
}

// partition reports the level-below key sets of every supernode, sorted.
func partition(g *decgraph.DecGraph) [][]string {
	var out [][]string
	for _, n := range g.Nodes() {
		keys := n.Dec.NodeKeys()
		sort.Strings(keys)
		out = append(out, keys)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) == 0 || len(out[j]) == 0 {
			return len(out[j]) > 0
		}
		return out[i][0] < out[j][0]
	})
	return out
}

func TestNaturalTransformation(t *testing.T) {
	g := digraph.New()
	require.NoError(t, g.AddVertex("1", decgraph.Attrs{"weight": 1.0}))
	require.NoError(t, g.AddVertex("2", decgraph.Attrs{"weight": 2.0}))
	require.NoError(t, g.AddVertex("3", decgraph.Attrs{"weight": 3.0}))
	require.NoError(t, g.AddEdge("1", "2", decgraph.Attrs{"weight": 3.0}))
	require.NoError(t, g.AddEdge("1", "3", decgraph.Attrs{"weight": 4.0}))

	dec := multilevel.NaturalTransformation(g)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, dec.NodeKeys())
	assert.Equal(t, 2, dec.NumEdges())

	n1, ok := dec.Node("1")
	require.True(t, ok)
	assert.Equal(t, 1.0, n1.Attrs["weight"])
	assert.Equal(t, 0, n1.Dec.Order())

	e12, ok := dec.Edge("1", "2")
	require.True(t, ok)
	assert.Equal(t, 3.0, e12.Attrs["weight"])
	assert.Zero(t, e12.Size())
}

func TestMultilevelGraph_ZeroHeight(t *testing.T) {
	m := multilevel.New(sccBase(t))
	assert.Equal(t, 0, m.Height())

	g0, err := m.GraphAt(0)
	require.NoError(t, err)
	assert.True(t, g0.Equal(multilevel.NaturalTransformation(sccBase(t))))

	g1, err := m.GraphAt(1)
	require.NoError(t, err)
	assert.Nil(t, g1)
}

func TestMultilevelGraph_OutOfRangeLevels(t *testing.T) {
	m := multilevel.New(sccBase(t), contraction.NewSCCsScheme())

	for _, level := range []int{-1, 2} {
		g, err := m.GraphAt(level)
		require.NoError(t, err)
		assert.Nil(t, g)
	}
	sets, err := m.ComponentSetsAt(0)
	require.NoError(t, err)
	assert.Nil(t, sets)
	sets, err = m.ComponentSetsAt(2)
	require.NoError(t, err)
	assert.Nil(t, sets)
}

func TestMultilevelGraph_BuildOneLevel(t *testing.T) {
	m := multilevel.New(sccBase(t), contraction.NewSCCsScheme())
	require.Equal(t, 1, m.Height())

	g1, err := m.GraphAt(1)
	require.NoError(t, err)
	require.NotNil(t, g1)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5"}}, partition(g1))
	assert.Equal(t, 1, g1.NumEdges())

	sets, err := m.ComponentSetsAt(1)
	require.NoError(t, err)
	require.Len(t, sets, 2)
}

func TestMultilevelGraph_TwoLevels(t *testing.T) {
	m := multilevel.New(sccBase(t),
		contraction.NewSCCsScheme(),
		contraction.NewSCCsScheme(),
	)
	require.Equal(t, 2, m.Height())

	g2, err := m.GraphAt(2)
	require.NoError(t, err)
	require.NotNil(t, g2)
	// Level 1 is acyclic, so level 2 contracts nothing further.
	assert.Equal(t, 2, g2.Order())
	assert.Equal(t, 1, g2.NumEdges())
	for _, n := range g2.Nodes() {
		assert.Equal(t, 2, n.Level)
		assert.Equal(t, 1, n.Dec.Order())
	}
}

func TestMultilevelGraph_GraphAtNavigatesUpward(t *testing.T) {
	m := multilevel.New(sccBase(t), contraction.NewSCCsScheme())
	require.NoError(t, m.BuildContractionSchemes(1))

	g0, err := m.GraphAt(0)
	require.NoError(t, err)
	n1, ok := g0.Node("1")
	require.True(t, ok)
	require.NotNil(t, n1.Supernode)
	assert.Equal(t, 1, n1.Supernode.Level)

	n2, ok := g0.Node("2")
	require.True(t, ok)
	assert.Same(t, n1.Supernode, n2.Supernode)

	n4, ok := g0.Node("4")
	require.True(t, ok)
	assert.NotSame(t, n1.Supernode, n4.Supernode)
}

func TestMultilevelGraph_GraphAtReturnsCopy(t *testing.T) {
	m := multilevel.New(sccBase(t), contraction.NewSCCsScheme())

	g1, err := m.GraphAt(1)
	require.NoError(t, err)
	for _, n := range g1.Nodes() {
		require.NoError(t, g1.RemoveNode(n))
	}

	again, err := m.GraphAt(1)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Order())
}

func TestMultilevelGraph_AddEdgeMergesComponents(t *testing.T) {
	m := multilevel.New(sccBase(t), contraction.NewSCCsScheme())
	_, err := m.GraphAt(1)
	require.NoError(t, err)

	// 5->1 closes a cycle through the bridge: one component remains.
	m.AddEdge("5", "1", nil)

	g1, err := m.GraphAt(1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "3", "4", "5"}}, partition(g1))
	assert.Zero(t, g1.NumEdges())
}

func TestMultilevelGraph_RemoveEdgeSplitsComponent(t *testing.T) {
	m := multilevel.New(sccBase(t), contraction.NewSCCsScheme())
	_, err := m.GraphAt(1)
	require.NoError(t, err)

	m.RemoveEdge("3", "1")

	g1, err := m.GraphAt(1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"2"}, {"3"}, {"4", "5"}}, partition(g1))
}

func TestMultilevelGraph_MutationsBeforeFirstBuild(t *testing.T) {
	m := multilevel.New(sccBase(t), contraction.NewSCCsScheme())
	m.AddEdge("5", "1", nil)

	g1, err := m.GraphAt(1)
	require.NoError(t, err)
	assert.Equal(t, 1, g1.Order())
}

func TestMultilevelGraph_AddEdgeCreatesEndpoints(t *testing.T) {
	m := multilevel.New(sccBase(t), contraction.NewSCCsScheme())
	m.AddEdge("5", "6", nil)

	g0, err := m.GraphAt(0)
	require.NoError(t, err)
	assert.True(t, g0.HasNode("6"))

	g1, err := m.GraphAt(1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5"}, {"6"}}, partition(g1))
}

func TestMultilevelGraph_MutationsAreIdempotent(t *testing.T) {
	m := multilevel.New(sccBase(t), contraction.NewSCCsScheme())
	m.AddNode("1", decgraph.Attrs{"weight": 99.0})
	m.AddEdge("1", "2", nil)
	m.RemoveEdge("2", "1")
	m.RemoveNode("99")

	g1, err := m.GraphAt(1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5"}}, partition(g1))
}

func TestMultilevelGraph_RemoveNodeCascades(t *testing.T) {
	m := multilevel.New(sccBase(t), contraction.NewSCCsScheme())
	_, err := m.GraphAt(1)
	require.NoError(t, err)

	m.RemoveNode("4")

	g0, err := m.GraphAt(0)
	require.NoError(t, err)
	assert.False(t, g0.HasNode("4"))
	assert.False(t, g0.HasEdge("1", "4"))

	g1, err := m.GraphAt(1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"5"}}, partition(g1))
}

func TestMultilevelGraph_MergeGraph(t *testing.T) {
	m := multilevel.New(sccBase(t), contraction.NewSCCsScheme())
	_, err := m.GraphAt(1)
	require.NoError(t, err)

	other := digraph.New()
	require.NoError(t, other.AddVertex("5", nil))
	require.NoError(t, other.AddVertex("6", nil))
	require.NoError(t, other.AddVertex("7", nil))
	require.NoError(t, other.AddEdge("6", "7", nil))
	require.NoError(t, other.AddEdge("7", "6", nil))
	require.NoError(t, other.AddEdge("5", "6", nil))
	m.MergeGraph(other)

	g1, err := m.GraphAt(1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5"}, {"6", "7"}}, partition(g1))
}

func TestMultilevelGraph_AppendContractionScheme(t *testing.T) {
	m := multilevel.New(sccBase(t), contraction.NewSCCsScheme())
	_, err := m.GraphAt(1)
	require.NoError(t, err)

	m.AppendContractionScheme(contraction.NewSCCsScheme())
	assert.Equal(t, 2, m.Height())

	g2, err := m.GraphAt(2)
	require.NoError(t, err)
	require.NotNil(t, g2)
	assert.Equal(t, 2, g2.Order())
}

func TestMultilevelGraph_SchemesAreCloned(t *testing.T) {
	scheme := contraction.NewSCCsScheme()
	a := multilevel.New(sccBase(t), scheme)
	b := multilevel.New(sccBase(t), scheme)

	_, err := a.GraphAt(1)
	require.NoError(t, err)
	a.AddEdge("5", "1", nil)
	_, err = a.GraphAt(1)
	require.NoError(t, err)

	g1, err := b.GraphAt(1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5"}}, partition(g1))
}

func TestMultilevelGraph_AttrCallbacksThroughHierarchy(t *testing.T) {
	sumWeights := func(nodes map[string]*decgraph.Supernode) decgraph.Attrs {
		total := 0.0
		for _, n := range nodes {
			if w, ok := n.Attrs["weight"].(float64); ok {
				total += w
			}
		}
		return decgraph.Attrs{"weight": total}
	}
	m := multilevel.New(sccBase(t),
		contraction.NewSCCsScheme(contraction.WithSupernodeAttrs(
			func(n *decgraph.Supernode) decgraph.Attrs {
				return sumWeights(n.Dec.Nodes())
			})),
	)

	g1, err := m.GraphAt(1)
	require.NoError(t, err)
	var weights []float64
	for _, n := range g1.Nodes() {
		weights = append(weights, n.Attrs["weight"].(float64))
	}
	sort.Float64s(weights)
	assert.Equal(t, []float64{30, 60}, weights)
}
