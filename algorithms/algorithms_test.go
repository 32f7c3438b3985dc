package algorithms_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multilevelgraphs/mlgraph/algorithms"
	"github.com/multilevelgraphs/mlgraph/decgraph"
)

func buildGraph(t *testing.T, keys []string, edges [][2]string) *decgraph.DecGraph {
	t.Helper()
	g := decgraph.NewDecGraph()
	for _, k := range keys {
		g.AddNode(decgraph.NewSupernode(k, 0, nil))
	}
	for _, ek := range edges {
		tail, _ := g.Node(ek[0])
		head, _ := g.Node(ek[1])
		e, err := decgraph.NewSuperedge(tail, head, 0, nil)
		require.NoError(t, err)
		require.NoError(t, g.AddEdge(e))
	}
	return g
}

// normalize sorts each key set and then the collection, so results can be
// compared as sets of sets.
func normalize(sets [][]string) [][]string {
	out := make([][]string, 0, len(sets))
	for _, s := range sets {
		c := append([]string(nil), s...)
		sort.Strings(c)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return out
}

func TestMaximalCliques_AnyDirection(t *testing.T) {
	// Triangle a-b-c (mixed directions), pendant d, isolated e.
	g := buildGraph(t,
		[]string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}},
	)

	got := normalize(algorithms.MaximalCliques(g, false))
	want := [][]string{{"a", "b", "c"}, {"c", "d"}, {"e"}}
	assert.Equal(t, want, got)
}

func TestMaximalCliques_Reciprocal(t *testing.T) {
	// Only a<->b is adjacent under the reciprocal rule.
	g := buildGraph(t,
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"b", "c"}},
	)

	got := normalize(algorithms.MaximalCliques(g, true))
	want := [][]string{{"a", "b"}, {"c"}}
	assert.Equal(t, want, got)
}

func TestSimpleCycles(t *testing.T) {
	// 3-cycle a->b->c->a, 2-cycle c<->d, self-loop on e.
	g := buildGraph(t,
		[]string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}, {"d", "c"}, {"e", "e"}},
	)

	got := normalize(algorithms.SimpleCycles(g))
	want := [][]string{{"a", "b", "c"}, {"c", "d"}, {"e"}}
	assert.Equal(t, want, got)
}

func TestSimpleCycles_Acyclic(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	assert.Empty(t, algorithms.SimpleCycles(g))
}

func TestStronglyConnected(t *testing.T) {
	// Component {a,b,c}, component {d,e}, singleton {f}.
	g := buildGraph(t,
		[]string{"a", "b", "c", "d", "e", "f"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}, {"d", "e"}, {"e", "d"}, {"e", "f"}},
	)

	got := normalize(algorithms.StronglyConnected(g))
	want := [][]string{{"a", "b", "c"}, {"d", "e"}, {"f"}}
	assert.Equal(t, want, got)
}

func TestCycleSearch_EdgePrefix(t *testing.T) {
	// Two cycles through edge a->b: a->b->c->a and a->b->d->a; the cycle
	// c->d->c does not contain the prefix and must not be reported.
	g := buildGraph(t,
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"b", "d"}, {"d", "a"}, {"c", "d"}, {"d", "c"}},
	)

	got := normalize(algorithms.CycleSearch(g, []string{"a", "b"}))
	want := [][]string{{"a", "b", "c"}, {"a", "b", "d"}}
	assert.Equal(t, want, got)
}

func TestCycleSearch_SingleNodePrefix(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"b", "c"}, {"c", "b"}, {"a", "a"}},
	)

	got := normalize(algorithms.CycleSearch(g, []string{"a"}))
	want := [][]string{{"a"}, {"a", "b"}}
	assert.Equal(t, want, got)

	assert.Empty(t, algorithms.CycleSearch(g, []string{"ghost"}))
	assert.Empty(t, algorithms.CycleSearch(g, nil))
}

func TestReachableAndReaching(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"d", "a"}},
	)

	reach := algorithms.Reachable(g, "a")
	assert.Len(t, reach, 3)
	assert.Contains(t, reach, "a")
	assert.Contains(t, reach, "b")
	assert.Contains(t, reach, "c")

	back := algorithms.Reaching(g, "b")
	assert.Len(t, back, 3)
	assert.Contains(t, back, "d")
	assert.NotContains(t, back, "c")

	assert.Empty(t, algorithms.Reachable(g, "ghost"))
}
