package contraction_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/multilevelgraphs/mlgraph/contraction"
	"github.com/multilevelgraphs/mlgraph/decgraph"
)

// leaf builds a base-level node with a weight attribute.
func leaf(key string, weight int) *decgraph.Supernode {
	return decgraph.NewSupernode(key, 0, decgraph.Attrs{"weight": weight})
}

func addEdge(t *testing.T, g *decgraph.DecGraph, tail, head string, weight int) *decgraph.Superedge {
	t.Helper()
	tn, ok := g.Node(tail)
	require.True(t, ok, "missing tail %s", tail)
	hn, ok := g.Node(head)
	require.True(t, ok, "missing head %s", head)
	e, err := decgraph.NewSuperedge(tn, hn, 0, decgraph.Attrs{"weight": weight})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(e))
	return e
}

func supernodeOf(t *testing.T, g *decgraph.DecGraph, key string) *decgraph.Supernode {
	t.Helper()
	n, ok := g.Node(key)
	require.True(t, ok, "missing node %s", key)
	require.NotNil(t, n.Supernode, "node %s has no supernode", key)
	return n.Supernode
}

// partition returns the supernode membership of the produced graph as sorted
// groups of lower-node keys, independent of minted supernode keys.
func partition(g *decgraph.DecGraph) [][]string {
	groups := make([][]string, 0, g.Order())
	for _, sn := range g.Nodes() {
		groups = append(groups, sn.Dec.NodeKeys())
	}
	sortGroups(groups)
	return groups
}

// setFamilies returns the memberships of the scheme's component sets as
// sorted groups of lower-node keys.
func setFamilies(s contraction.Scheme) [][]string {
	sets := s.ComponentSets()
	groups := make([][]string, 0, len(sets))
	for _, cs := range sets {
		groups = append(groups, cs.MemberKeys())
	}
	sortGroups(groups)
	return groups
}

func sortGroups(groups [][]string) {
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
}

func mustContract(t *testing.T, s contraction.Scheme, lower *decgraph.DecGraph) *decgraph.DecGraph {
	t.Helper()
	s.SetLevel(1)
	g, err := s.Contract(lower)
	require.NoError(t, err)
	return g
}

func mustUpdate(t *testing.T, s contraction.Scheme, q *contraction.UpdateQuadruple) *decgraph.DecGraph {
	t.Helper()
	g, err := s.Update(q)
	require.NoError(t, err)
	return g
}

func mustDecontraction(t *testing.T, g *decgraph.DecGraph) *decgraph.DecGraph {
	t.Helper()
	d, err := g.CompleteDecontraction()
	require.NoError(t, err)
	return d
}
