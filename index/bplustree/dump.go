package bplustree

import (
	"fmt"
	"strings"
)

// String renders a level-order dump of the key lists at every depth,
// one line per level. Diagnostic only; the format is not stable.
func (t *BPlusTree[K, V]) String() string {
	if t.root == nil {
		return "{}\n"
	}
	var sb strings.Builder
	level := []*node[K, V]{t.root}
	for len(level) > 0 {
		var next []*node[K, V]
		sb.WriteByte('{')
		for i, n := range level {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%v", n.keys)
			next = append(next, n.children...)
		}
		sb.WriteString("}\n")
		level = next
	}
	return sb.String()
}
