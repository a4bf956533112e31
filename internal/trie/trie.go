// Package trie is an arena-backed rune trie used for longest-prefix lookups
// of escape names such as "land" and "leftrightarrow".
//
// Nodes live in a single slice and refer to their children by index, so a
// trie built once at start-up costs one allocation per growth step instead
// of one per node.
package trie

import (
	"sort"
	"strings"
)

// NodeIndex represents the index of a trie node.
type NodeIndex int

const root NodeIndex = 0

// noValue marks a node that does not end a key.
const noValue = -1

type arenaNode struct {
	children map[rune]NodeIndex
	value    int
}

// Trie maps string keys to values of type V.
type Trie[V any] struct {
	nodes  []arenaNode
	values []V
}

// New returns an empty trie.
func New[V any]() *Trie[V] {
	t := &Trie[V]{nodes: make([]arenaNode, 0, 64)}
	t.newNode()
	return t
}

func (t *Trie[V]) newNode() NodeIndex {
	idx := NodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, arenaNode{
		children: make(map[rune]NodeIndex),
		value:    noValue,
	})
	return idx
}

// Insert stores v under key, replacing any previous value.
// The empty key is ignored.
func (t *Trie[V]) Insert(key string, v V) {
	if key == "" {
		return
	}
	current := root
	for _, r := range key {
		child, ok := t.nodes[current].children[r]
		if !ok {
			child = t.newNode()
			t.nodes[current].children[r] = child
		}
		current = child
	}

	if i := t.nodes[current].value; i != noValue {
		t.values[i] = v
		return
	}
	t.nodes[current].value = len(t.values)
	t.values = append(t.values, v)
}

// Len returns the number of keys.
func (t *Trie[V]) Len() int {
	return len(t.values)
}

// Get returns the value stored under key.
func (t *Trie[V]) Get(key string) (V, bool) {
	current := root
	for _, r := range key {
		child, ok := t.nodes[current].children[r]
		if !ok {
			var zero V
			return zero, false
		}
		current = child
	}
	return t.valueAt(current)
}

// LongestPrefix walks the runes yielded by next and returns the value of the
// longest key that prefixes them, together with that key's rune count.
// next reports false once the input is exhausted.
func (t *Trie[V]) LongestPrefix(next func(i int) (rune, bool)) (V, int, bool) {
	var (
		best    V
		bestLen int
		found   bool
	)
	current := root
	for i := 0; ; i++ {
		r, ok := next(i)
		if !ok {
			break
		}
		child, ok := t.nodes[current].children[r]
		if !ok {
			break
		}
		current = child
		if v, ok := t.valueAt(current); ok {
			best, bestLen, found = v, i+1, true
		}
	}
	return best, bestLen, found
}

func (t *Trie[V]) valueAt(idx NodeIndex) (V, bool) {
	if i := t.nodes[idx].value; i != noValue {
		return t.values[i], true
	}
	var zero V
	return zero, false
}

// DebugString returns the structure of the trie with keys in rune order.
// A '*' marks a node that ends a key.
func (t *Trie[V]) DebugString() string {
	var sb strings.Builder
	t.debugStringNode(&sb, root)
	return sb.String()
}

func (t *Trie[V]) debugStringNode(sb *strings.Builder, idx NodeIndex) {
	node := t.nodes[idx]
	if node.value != noValue {
		sb.WriteString("*")
	}

	keys := make([]rune, 0, len(node.children))
	for r := range node.children {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, r := range keys {
		sb.WriteRune(r)
		sb.WriteString("(")
		t.debugStringNode(sb, node.children[r])
		sb.WriteString(")")
	}
}
