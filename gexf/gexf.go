// Package gexf - gexf.go
// GEXF 1.3 document model and the export entry points.
package gexf

import (
	"encoding/xml"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/multilevelgraphs/mlgraph/decgraph"
	"github.com/multilevelgraphs/mlgraph/multilevel"
)

const (
	nsGEXF         = "http://gexf.net/1.3"
	nsViz          = "http://www.gexf.net/1.3/viz"
	nsXSI          = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://gexf.net/1.3 http://gexf.net/1.3/gexf.xsd"
	gexfVersion    = "1.3"
	creator        = "mlgraph"

	// hierarchy edges fade against same-level edges
	hierarchyAlpha = 0.3
)

// Color is an RGBA viz color; A is an opacity in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Document model, marshaled by encoding/xml.

type document struct {
	XMLName        xml.Name `xml:"gexf"`
	Xmlns          string   `xml:"xmlns,attr"`
	XmlnsViz       string   `xml:"xmlns:viz,attr"`
	XmlnsXSI       string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`
	Version        string   `xml:"version,attr"`
	Meta           meta     `xml:"meta"`
	Graph          graph    `xml:"graph"`
}

type meta struct {
	LastModified string `xml:"lastmodifieddate,attr"`
	Creator      string `xml:"creator"`
	Description  string `xml:"description,omitempty"`
}

type graph struct {
	Mode            string       `xml:"mode,attr"`
	DefaultEdgeType string       `xml:"defaultedgetype,attr"`
	Height          int          `xml:"height,attr"`
	Schemes         string       `xml:"schemes,attr"`
	Attributes      []*attrDecls `xml:"attributes"`
	Nodes           nodes        `xml:"nodes"`
	Edges           edges        `xml:"edges"`
}

type attrDecls struct {
	Class string     `xml:"class,attr"`
	Decls []attrDecl `xml:"attribute"`
}

type attrDecl struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type nodes struct {
	Nodes []*node `xml:"node"`
}

type node struct {
	ID        string     `xml:"id,attr"`
	Label     string     `xml:"label,attr,omitempty"`
	AttValues *attValues `xml:"attvalues,omitempty"`
	Color     *vizColor  `xml:"viz:color,omitempty"`
	Size      *vizSize   `xml:"viz:size,omitempty"`
	Children  *nodes     `xml:"nodes,omitempty"`
}

type edges struct {
	Edges []*edge `xml:"edge"`
}

type edge struct {
	ID        string        `xml:"id,attr"`
	Source    string        `xml:"source,attr"`
	Target    string        `xml:"target,attr"`
	AttValues *attValues    `xml:"attvalues,omitempty"`
	Color     *vizColor     `xml:"viz:color,omitempty"`
	Thickness *vizThickness `xml:"viz:thickness,omitempty"`
}

type attValues struct {
	Values []attValue `xml:"attvalue"`
}

type attValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type vizColor struct {
	R string `xml:"r,attr"`
	G string `xml:"g,attr"`
	B string `xml:"b,attr"`
	A string `xml:"a,attr"`
}

type vizThickness struct {
	Value string `xml:"value,attr"`
}

type vizSize struct {
	Value string `xml:"value,attr"`
}

// Write serializes the multilevel graph's structure to w, building every
// level first. Nodes nest by hierarchy; edges of all levels are emitted,
// upper-level edges carrying a "level" attribute.
func Write(w io.Writer, m *multilevel.MultilevelGraph, opts ...Option) error {
	return newWriter(false, opts...).write(w, m)
}

// WriteViz serializes the multilevel graph with visualization attributes:
// node labels, colors and sizes, edge colors and thicknesses, and faded
// child-to-parent edges tagged same_level=false.
func WriteViz(w io.Writer, m *multilevel.MultilevelGraph, opts ...Option) error {
	return newWriter(true, opts...).write(w, m)
}

// WriteFile is Write against a file created at path.
func WriteFile(path string, m *multilevel.MultilevelGraph, opts ...Option) error {
	return writeFile(path, m, Write, opts)
}

// WriteVizFile is WriteViz against a file created at path.
func WriteVizFile(path string, m *multilevel.MultilevelGraph, opts ...Option) error {
	return writeFile(path, m, WriteViz, opts)
}

func writeFile(path string, m *multilevel.MultilevelGraph,
	fn func(io.Writer, *multilevel.MultilevelGraph, ...Option) error, opts []Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gexf: %w", err)
	}
	if err := fn(f, m, opts...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("gexf: %w", err)
	}
	return nil
}

// writer accumulates the document and the attribute declarations as values
// are encountered.
type writer struct {
	cfg          config
	viz          bool
	nodeDecls    *attrDecls
	edgeDecls    *attrDecls
	seenNodeAttr map[string]struct{}
	seenEdgeAttr map[string]struct{}
}

func newWriter(viz bool, opts ...Option) *writer {
	return &writer{
		cfg:          newConfig(opts...),
		viz:          viz,
		nodeDecls:    &attrDecls{Class: "node"},
		edgeDecls:    &attrDecls{Class: "edge"},
		seenNodeAttr: make(map[string]struct{}),
		seenEdgeAttr: make(map[string]struct{}),
	}
}

func (w *writer) write(out io.Writer, m *multilevel.MultilevelGraph) error {
	top, err := m.ViewAt(m.Height())
	if err != nil {
		return fmt.Errorf("gexf: building hierarchy: %w", err)
	}

	doc := &document{
		Xmlns:          nsGEXF,
		XmlnsViz:       nsViz,
		XmlnsXSI:       nsXSI,
		SchemaLocation: schemaLocation,
		Version:        gexfVersion,
		Meta: meta{
			LastModified: time.Now().Format("02-01-2006"),
			Creator:      creator,
			Description:  w.cfg.description,
		},
		Graph: graph{
			Mode:            "static",
			DefaultEdgeType: "directed",
			Height:          m.Height(),
			Schemes:         strings.Join(m.SchemeNames(), ","),
			Attributes:      []*attrDecls{w.nodeDecls, w.edgeDecls},
		},
	}

	for _, key := range sortedKeys(top.Nodes()) {
		n, _ := top.Node(key)
		doc.Graph.Nodes.Nodes = append(doc.Graph.Nodes.Nodes, w.buildNode(n, &doc.Graph.Edges))
	}
	for level := 0; level <= m.Height(); level++ {
		g, err := m.ViewAt(level)
		if err != nil {
			return fmt.Errorf("gexf: level %d: %w", level, err)
		}
		for _, ek := range sortedEdgeKeys(g.Edges()) {
			e, _ := g.Edge(ek.Tail, ek.Head)
			doc.Graph.Edges.Edges = append(doc.Graph.Edges.Edges, w.buildEdge(e))
		}
	}

	if _, err := io.WriteString(out, xml.Header); err != nil {
		return fmt.Errorf("gexf: %w", err)
	}
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("gexf: encoding: %w", err)
	}
	return nil
}

// buildNode renders a supernode and, recursively, its decontraction as
// nested nodes. In viz mode it also appends a faded child-to-parent edge
// per child to keep the hierarchy visible when nesting is flattened.
func (w *writer) buildNode(n *decgraph.Supernode, hier *edges) *node {
	el := &node{ID: n.Key}

	var vals []attValue
	for _, k := range sortedAttrKeys(n.Attrs) {
		vals = append(vals, w.nodeValue(k, n.Attrs[k]))
	}
	if n.Level != 0 {
		vals = append(vals, w.nodeValue("level", n.Level))
	}
	if n.Supernode != nil {
		vals = append(vals, w.nodeValue("supernode", n.Supernode.Key))
	}
	if len(n.ComponentSets) > 0 {
		vals = append(vals, w.nodeValue("component_sets", setIDList(n.ComponentSets)))
	}
	if len(vals) > 0 {
		el.AttValues = &attValues{Values: vals}
	}

	if w.viz {
		el.Label = w.cfg.nodeLabel(n)
		el.Color = colorElem(w.cfg.nodeColor(n))
		el.Size = &vizSize{Value: formatFloat(w.cfg.nodeSize(n))}
	}

	for _, key := range sortedKeys(n.Dec.Nodes()) {
		child, _ := n.Dec.Node(key)
		el.addChild(w.buildNode(child, hier))
		if w.viz {
			c := w.cfg.nodeColor(child)
			c.A = hierarchyAlpha
			hier.Edges = append(hier.Edges, &edge{
				ID:        fmt.Sprintf("(%s, %s)", child.Key, n.Key),
				Source:    child.Key,
				Target:    n.Key,
				Color:     colorElem(c),
				AttValues: &attValues{Values: []attValue{w.edgeValue("same_level", false)}},
			})
		}
	}
	return el
}

func (w *writer) buildEdge(e *decgraph.Superedge) *edge {
	el := &edge{
		ID:     fmt.Sprintf("(%s, %s)", e.Tail.Key, e.Head.Key),
		Source: e.Tail.Key,
		Target: e.Head.Key,
	}

	var vals []attValue
	for _, k := range sortedAttrKeys(e.Attrs) {
		vals = append(vals, w.edgeValue(k, e.Attrs[k]))
	}
	if e.Level != 0 {
		vals = append(vals, w.edgeValue("level", e.Level))
	}
	if w.viz {
		vals = append(vals, w.edgeValue("same_level", true))
		el.Color = colorElem(w.cfg.edgeColor(e))
		el.Thickness = &vizThickness{Value: formatFloat(w.cfg.edgeThickness(e))}
	}
	if len(vals) > 0 {
		el.AttValues = &attValues{Values: vals}
	}
	return el
}

func (el *node) addChild(child *node) {
	if el.Children == nil {
		el.Children = &nodes{}
	}
	el.Children.Nodes = append(el.Children.Nodes, child)
}

func (w *writer) nodeValue(name string, v any) attValue {
	if _, ok := w.seenNodeAttr[name]; !ok {
		w.seenNodeAttr[name] = struct{}{}
		w.nodeDecls.Decls = append(w.nodeDecls.Decls, attrDecl{ID: name, Title: name, Type: gexfType(v)})
	}
	return attValue{For: name, Value: gexfValue(v)}
}

func (w *writer) edgeValue(name string, v any) attValue {
	if _, ok := w.seenEdgeAttr[name]; !ok {
		w.seenEdgeAttr[name] = struct{}{}
		w.edgeDecls.Decls = append(w.edgeDecls.Decls, attrDecl{ID: name, Title: name, Type: gexfType(v)})
	}
	return attValue{For: name, Value: gexfValue(v)}
}

func colorElem(c Color) *vizColor {
	return &vizColor{
		R: strconv.Itoa(int(c.R)),
		G: strconv.Itoa(int(c.G)),
		B: strconv.Itoa(int(c.B)),
		A: formatFloat(c.A),
	}
}

// gexfType maps a Go attribute value to a GEXF attribute type.
func gexfType(v any) string {
	switch v.(type) {
	case int, int64:
		return "integer"
	case float32, float64:
		return "float"
	case bool:
		return "boolean"
	default:
		return "string"
	}
}

func gexfValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func setIDList(sets map[decgraph.SetID]*decgraph.ComponentSet) string {
	ids := make([]int64, 0, len(sets))
	for id := range sets {
		ids = append(ids, int64(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func sortedKeys(m map[string]*decgraph.Supernode) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedAttrKeys(m decgraph.Attrs) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedEdgeKeys(m map[decgraph.EdgeKey]*decgraph.Superedge) []decgraph.EdgeKey {
	out := make([]decgraph.EdgeKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tail != out[j].Tail {
			return out[i].Tail < out[j].Tail
		}
		return out[i].Head < out[j].Head
	})
	return out
}

// hashColor derives a stable color from a key, used when no color attribute
// or function overrides it.
func hashColor(key string) Color {
	h := fnv.New32a()
	h.Write([]byte(key))
	sum := h.Sum32()
	return Color{
		R: uint8(sum >> 16),
		G: uint8(sum >> 8),
		B: uint8(sum),
		A: 1.0,
	}
}
