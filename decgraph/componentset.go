// Package decgraph - componentset.go
// ComponentSet: an identified set of supernodes produced by a contraction
// scheme. It lives in this package (rather than with the schemes) because
// supernodes reference the component sets they belong to, and DeepCopy must
// re-link those references while duplicating a hierarchy.
package decgraph

import (
	"sort"
	"strconv"
	"strings"
)

// SetID identifies a ComponentSet. Two component sets with the same ID are
// the same set regardless of membership.
type SetID int64

// ComponentSet is a set of supernodes grouped together by a contraction
// scheme. Identity is carried by ID alone; membership is mutable.
type ComponentSet struct {
	ID      SetID
	Attrs   Attrs
	members map[string]*Supernode
}

// NewComponentSet builds a component set with the given identity and initial
// members. A nil attrs yields an empty attribute map.
func NewComponentSet(id SetID, attrs Attrs, members ...*Supernode) *ComponentSet {
	cs := &ComponentSet{
		ID:      id,
		Attrs:   attrs.Clone(),
		members: make(map[string]*Supernode, len(members)),
	}
	for _, m := range members {
		cs.members[m.Key] = m
	}
	return cs
}

// Add inserts n into the set. Idempotent.
func (c *ComponentSet) Add(n *Supernode) { c.members[n.Key] = n }

// Discard removes n from the set if present.
func (c *ComponentSet) Discard(n *Supernode) { delete(c.members, n.Key) }

// Contains reports whether a supernode with the given key is a member.
func (c *ComponentSet) Contains(key string) bool {
	_, ok := c.members[key]
	return ok
}

// Len returns the number of members.
func (c *ComponentSet) Len() int { return len(c.members) }

// Members exposes the internal member map keyed by supernode key. Callers
// must treat it as read-only; mutations go through Add/Discard.
func (c *ComponentSet) Members() map[string]*Supernode { return c.members }

// MemberKeys returns the member keys in sorted order, for deterministic
// iteration and test assertions.
func (c *ComponentSet) MemberKeys() []string {
	keys := make([]string, 0, len(c.members))
	for k := range c.members {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Copy returns a set with the same ID and attributes whose member map is a
// fresh map over the same supernodes.
func (c *ComponentSet) Copy() *ComponentSet {
	out := &ComponentSet{
		ID:      c.ID,
		Attrs:   c.Attrs.Clone(),
		members: make(map[string]*Supernode, len(c.members)),
	}
	for k, m := range c.members {
		out.members[k] = m
	}
	return out
}

// Remap returns a copy of c whose members are substituted through nodes,
// which maps supernode keys to their counterparts in a copied graph. Members
// missing from nodes are dropped.
func (c *ComponentSet) Remap(nodes map[string]*Supernode) *ComponentSet {
	out := &ComponentSet{
		ID:      c.ID,
		Attrs:   c.Attrs.Clone(),
		members: make(map[string]*Supernode, len(c.members)),
	}
	for k := range c.members {
		if n, ok := nodes[k]; ok {
			out.members[k] = n
		}
	}
	return out
}

// CombinationKey derives a canonical string key from a set of component sets,
// by sorting their IDs. Two supernodes belong to the same contraction target
// exactly when their component-set combinations yield the same key.
func CombinationKey(sets map[SetID]*ComponentSet) string {
	ids := make([]int64, 0, len(sets))
	for id := range sets {
		ids = append(ids, int64(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(strconv.FormatInt(id, 10))
	}
	return sb.String()
}
