package gexf_test

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multilevelgraphs/mlgraph/contraction"
	"github.com/multilevelgraphs/mlgraph/decgraph"
	"github.com/multilevelgraphs/mlgraph/digraph"
	"github.com/multilevelgraphs/mlgraph/gexf"
	"github.com/multilevelgraphs/mlgraph/multilevel"
)

// Parse-back document, namespace-agnostic.
type parsedDoc struct {
	Version string `xml:"version,attr"`
	Meta    struct {
		Creator     string `xml:"creator"`
		Description string `xml:"description"`
	} `xml:"meta"`
	Graph struct {
		Height     int    `xml:"height,attr"`
		Schemes    string `xml:"schemes,attr"`
		Attributes []struct {
			Class string `xml:"class,attr"`
			Decls []struct {
				ID   string `xml:"id,attr"`
				Type string `xml:"type,attr"`
			} `xml:"attribute"`
		} `xml:"attributes"`
		Nodes []parsedNode `xml:"nodes>node"`
		Edges []struct {
			ID     string `xml:"id,attr"`
			Source string `xml:"source,attr"`
			Target string `xml:"target,attr"`
		} `xml:"edges>edge"`
	} `xml:"graph"`
}

type parsedNode struct {
	ID       string       `xml:"id,attr"`
	Label    string       `xml:"label,attr"`
	Children []parsedNode `xml:"nodes>node"`
	Values   []struct {
		For   string `xml:"for,attr"`
		Value string `xml:"value,attr"`
	} `xml:"attvalues>attvalue"`
}

func twoComponentHierarchy(t *testing.T) *multilevel.MultilevelGraph {
	t.Helper()
	g := digraph.New()
	for _, key := range []string{"1", "2", "3", "4", "5"} {
		require.NoError(t, g.AddVertex(key, decgraph.Attrs{"weight": 10.0}))
	}
	for _, e := range [][2]string{{"1", "2"}, {"2", "3"}, {"3", "1"}, {"1", "4"}, {"4", "5"}, {"5", "4"}} {
		require.NoError(t, g.AddEdge(e[0], e[1], nil))
	}
	return multilevel.New(g, contraction.NewSCCsScheme())
}

func parse(t *testing.T, data []byte) *parsedDoc {
	t.Helper()
	var doc parsedDoc
	require.NoError(t, xml.Unmarshal(data, &doc))
	return &doc
}

func TestWrite_Structure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gexf.Write(&buf, twoComponentHierarchy(t)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, xml.Header))

	doc := parse(t, buf.Bytes())
	assert.Equal(t, "1.3", doc.Version)
	assert.Equal(t, 1, doc.Graph.Height)
	assert.Equal(t, "scc", doc.Graph.Schemes)

	// Two top-level supernodes holding the five base nodes between them.
	require.Len(t, doc.Graph.Nodes, 2)
	total := 0
	for _, n := range doc.Graph.Nodes {
		total += len(n.Children)
	}
	assert.Equal(t, 5, total)

	// Six base edges plus one superedge.
	assert.Len(t, doc.Graph.Edges, 7)
}

func TestWrite_NodeAttributes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gexf.Write(&buf, twoComponentHierarchy(t)))
	doc := parse(t, buf.Bytes())

	values := func(n parsedNode) map[string]string {
		out := make(map[string]string)
		for _, v := range n.Values {
			out[v.For] = v.Value
		}
		return out
	}

	for _, top := range doc.Graph.Nodes {
		vals := values(top)
		assert.Equal(t, "1", vals["level"])
		assert.Contains(t, vals, "component_sets")
		for _, child := range top.Children {
			cv := values(child)
			assert.Equal(t, top.ID, cv["supernode"])
			assert.Equal(t, "10", cv["weight"])
			assert.NotContains(t, cv, "level")
		}
	}
}

func TestWrite_AttributeDeclarations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gexf.Write(&buf, twoComponentHierarchy(t)))
	doc := parse(t, buf.Bytes())

	require.Len(t, doc.Graph.Attributes, 2)
	declared := make(map[string]map[string]string)
	for _, decls := range doc.Graph.Attributes {
		byID := make(map[string]string)
		for _, d := range decls.Decls {
			byID[d.ID] = d.Type
		}
		declared[decls.Class] = byID
	}
	assert.Equal(t, "float", declared["node"]["weight"])
	assert.Equal(t, "integer", declared["node"]["level"])
	assert.Equal(t, "string", declared["node"]["supernode"])
	assert.Equal(t, "integer", declared["edge"]["level"])
}

func TestWrite_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, gexf.Write(&a, twoComponentHierarchy(t)))
	require.NoError(t, gexf.Write(&b, twoComponentHierarchy(t)))
	assert.Equal(t, a.String(), b.String())
}

func TestWrite_Description(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gexf.Write(&buf, twoComponentHierarchy(t), gexf.WithDescription("two components")))
	doc := parse(t, buf.Bytes())
	assert.Equal(t, "two components", doc.Meta.Description)
}

func TestWriteViz_HierarchyEdges(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gexf.WriteViz(&buf, twoComponentHierarchy(t)))
	doc := parse(t, buf.Bytes())

	// Seven same-level edges plus one hierarchy edge per base node.
	assert.Len(t, doc.Graph.Edges, 12)

	out := buf.String()
	assert.Contains(t, out, "same_level")
	assert.Contains(t, out, "viz:color")
	assert.Contains(t, out, "viz:size")
	assert.Contains(t, out, "viz:thickness")
}

func TestWriteViz_Labels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gexf.WriteViz(&buf, twoComponentHierarchy(t),
		gexf.WithNodeLabel(func(n *decgraph.Supernode) string { return "node " + n.Key }),
		gexf.WithNodeSize(func(n *decgraph.Supernode) float64 { return 42 }),
	))
	doc := parse(t, buf.Bytes())

	require.NotEmpty(t, doc.Graph.Nodes)
	for _, n := range doc.Graph.Nodes {
		assert.Equal(t, "node "+n.ID, n.Label)
	}
	assert.Contains(t, buf.String(), `value="42"`)
}

func TestWriteViz_DefaultLabelFromAttr(t *testing.T) {
	g := digraph.New()
	require.NoError(t, g.AddVertex("1", decgraph.Attrs{"label": "alpha"}))
	require.NoError(t, g.AddVertex("2", nil))
	require.NoError(t, g.AddEdge("1", "2", nil))
	m := multilevel.New(g)

	var buf bytes.Buffer
	require.NoError(t, gexf.WriteViz(&buf, m))
	doc := parse(t, buf.Bytes())

	byID := make(map[string]string)
	for _, n := range doc.Graph.Nodes {
		byID[n.ID] = n.Label
	}
	assert.Equal(t, "alpha", byID["1"])
	assert.Equal(t, "2", byID["2"])
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gexf")
	require.NoError(t, gexf.WriteFile(path, twoComponentHierarchy(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := parse(t, data)
	assert.Equal(t, 1, doc.Graph.Height)
}

func TestWrite_ZeroHeight(t *testing.T) {
	g := digraph.New()
	require.NoError(t, g.AddVertex("a", nil))
	require.NoError(t, g.AddVertex("b", nil))
	require.NoError(t, g.AddEdge("a", "b", nil))

	var buf bytes.Buffer
	require.NoError(t, gexf.Write(&buf, multilevel.New(g)))
	doc := parse(t, buf.Bytes())
	assert.Zero(t, doc.Graph.Height)
	assert.Len(t, doc.Graph.Nodes, 2)
	assert.Len(t, doc.Graph.Edges, 1)
}
