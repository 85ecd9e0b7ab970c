// Package dom is a mutable HTML node tree that keeps the source text of its nodes.
package dom // import "github.com/tdewolff/htmlfmt/dom"

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// NodeType is the kind of a node.
type NodeType int

// NodeType values.
const (
	RootNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
	ProcessingInstructionNode
	DoctypeNode
	RawNode
)

// String returns the string representation of a NodeType.
func (nt NodeType) String() string {
	switch nt {
	case RootNode:
		return "Root"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case ProcessingInstructionNode:
		return "ProcessingInstruction"
	case DoctypeNode:
		return "Doctype"
	case RawNode:
		return "Raw"
	}
	return "Invalid(" + strconv.Itoa(int(nt)) + ")"
}

// Attr is an element attribute. HasVal is false for attributes written without a value.
type Attr struct {
	Key    string
	Val    string
	HasVal bool
}

// Node is a node in the tree. Parent is a back-reference only, a node is owned by its parent's Children.
type Node struct {
	Type     NodeType
	Tag      string
	Text     string // payload of text, comment, doctype, processing instruction and raw nodes
	Attrs    []Attr
	Children []*Node
	Parent   *Node

	SelfClose    bool   // rendered without children and end tag
	SelfCloseStr string // written before the closing '>' of a self-closing tag, eg. " /"
	AttrShortTag bool   // render attributes whose value equals their name as bare keys

	Offset int // byte offset in the source, -1 if unknown
	src    []byte
}

// NewRoot returns an empty root node.
func NewRoot() *Node {
	return &Node{Type: RootNode, Offset: -1}
}

// NewElement returns a detached element node.
func NewElement(tag string, attrs ...Attr) *Node {
	return &Node{Type: ElementNode, Tag: tag, Attrs: attrs, Offset: -1}
}

// NewText returns a detached text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text, Offset: -1}
}

// NewComment returns a detached comment node.
func NewComment(text string) *Node {
	return &Node{Type: CommentNode, Text: text, Offset: -1}
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) *Node {
	return n.InsertChild(c, -1)
}

// InsertChild inserts c at position index, or appends when index is negative or past the end.
func (n *Node) InsertChild(c *Node, index int) *Node {
	if c.Parent != nil {
		c.Delete()
	}
	c.Parent = n
	if index < 0 || len(n.Children) <= index {
		n.Children = append(n.Children, c)
		return c
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[index+1:], n.Children[index:])
	n.Children[index] = c
	return c
}

// AddText inserts a new text node at position index and returns it. A negative index appends.
func (n *Node) AddText(text string, index int) *Node {
	return n.InsertChild(NewText(text), index)
}

// Delete removes n from its parent.
func (n *Node) Delete() {
	if n.Parent == nil {
		return
	}
	if i := n.Index(); i != -1 {
		p := n.Parent
		copy(p.Children[i:], p.Children[i+1:])
		p.Children[len(p.Children)-1] = nil
		p.Children = p.Children[:len(p.Children)-1]
	}
	n.Parent = nil
}

// Clear removes all children.
func (n *Node) Clear() {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
}

// SetTag renames the node.
func (n *Node) SetTag(tag string) {
	n.Tag = tag
}

// Index returns the position of n among its siblings, or -1 when n is detached.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// Sibling returns the sibling at the given offset relative to n, eg. -1 for the previous sibling.
func (n *Node) Sibling(offset int) *Node {
	i := n.Index()
	if i == -1 {
		return nil
	}
	i += offset
	if i < 0 || len(n.Parent.Children) <= i {
		return nil
	}
	return n.Parent.Children[i]
}

// Indent returns the nesting depth of n. The root is at -1 so that its children are at 0.
func (n *Node) Indent() int {
	indent := -1
	for p := n.Parent; p != nil; p = p.Parent {
		indent++
	}
	return indent
}

// Attr returns the value of the attribute with the given key.
func (n *Node) Attr(key string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttr sets or adds the attribute with the given key.
func (n *Node) SetAttr(key, val string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			n.Attrs[i].HasVal = true
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{key, val, true})
}

// RemoveAttr removes the attribute with the given key.
func (n *Node) RemoveAttr(key string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// ElementCount returns the number of children that are neither text nor comments.
func (n *Node) ElementCount() int {
	count := 0
	for _, c := range n.Children {
		if c.Type != TextNode && c.Type != CommentNode {
			count++
		}
	}
	return count
}

// PlainText returns the concatenated text of all descendant text nodes.
func (n *Node) PlainText() string {
	if n.Type == TextNode {
		return n.Text
	}
	sb := strings.Builder{}
	for _, c := range n.Children {
		sb.WriteString(c.PlainText())
	}
	return sb.String()
}

// InnerText returns the rendered children of n.
func (n *Node) InnerText() string {
	buf := &bytes.Buffer{}
	for _, c := range n.Children {
		_ = c.Render(buf)
	}
	return buf.String()
}

// Location returns a human-readable position of n, such as "html[0] > body[1] > script[3] (line 7, column 5)".
func (n *Node) Location() string {
	var path []string
	var root *Node
	for p := n; p != nil; p = p.Parent {
		if p.Parent == nil {
			root = p
			if p.Type == RootNode {
				break
			}
		}
		path = append(path, p.name()+"["+strconv.Itoa(p.Index())+"]")
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	loc := strings.Join(path, " > ")
	if root != nil && root.src != nil && 0 <= n.Offset {
		line, col, _ := parse.Position(bytes.NewReader(root.src), n.Offset)
		loc += " (line " + strconv.Itoa(line) + ", column " + strconv.Itoa(col) + ")"
	}
	return loc
}

func (n *Node) name() string {
	switch n.Type {
	case ElementNode, RawNode, ProcessingInstructionNode:
		return n.Tag
	case TextNode:
		return "~text~"
	case CommentNode:
		return "~comment~"
	case DoctypeNode:
		return "!doctype"
	}
	return "~root~"
}
