package dom

import "strings"

// Matcher reports whether a node is selected.
type Matcher func(*Node) bool

// Select returns the descendants of n that match m in document order. When recursive is false only the children of n are considered.
// The result is collected before it is returned, so callers may delete or modify the matched nodes while iterating over it.
func (n *Node) Select(m Matcher, recursive bool) []*Node {
	var nodes []*Node
	var walk func(*Node)
	walk = func(p *Node) {
		for _, c := range p.Children {
			if m(c) {
				nodes = append(nodes, c)
			}
			if recursive {
				walk(c)
			}
		}
	}
	walk(n)
	return nodes
}

// IsType matches nodes of the given type.
func IsType(nt NodeType) Matcher {
	return func(n *Node) bool {
		return n.Type == nt
	}
}

// IsTag matches elements with one of the given tag names, case-insensitively.
func IsTag(tags ...string) Matcher {
	return func(n *Node) bool {
		if n.Type != ElementNode {
			return false
		}
		for _, tag := range tags {
			if strings.EqualFold(n.Tag, tag) {
				return true
			}
		}
		return false
	}
}

// NonEmpty matches text-like nodes with a non-empty payload and other nodes with children.
func NonEmpty(n *Node) bool {
	switch n.Type {
	case TextNode, CommentNode, RawNode, ProcessingInstructionNode:
		return n.Text != ""
	}
	return len(n.Children) != 0
}

// HasParent matches nodes whose parent matches m.
func HasParent(m Matcher) Matcher {
	return func(n *Node) bool {
		return n.Parent != nil && m(n.Parent)
	}
}

// HasAncestor matches nodes with any ancestor matching m.
func HasAncestor(m Matcher) Matcher {
	return func(n *Node) bool {
		for p := n.Parent; p != nil; p = p.Parent {
			if m(p) {
				return true
			}
		}
		return false
	}
}

// And matches nodes that match all of ms.
func And(ms ...Matcher) Matcher {
	return func(n *Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// Not inverts m.
func Not(m Matcher) Matcher {
	return func(n *Node) bool {
		return !m(n)
	}
}
