package htmlfmt

import (
	"strings"

	"github.com/tdewolff/htmlfmt/dom"
)

var isComment = dom.IsType(dom.CommentNode)

func isVerbatimElement(n *dom.Node) bool {
	return n.Type == dom.ElementNode && IsVerbatim(strings.ToLower(n.Tag))
}

var isCompressible = dom.And(dom.IsType(dom.TextNode), dom.NonEmpty, dom.Not(dom.HasAncestor(isVerbatimElement)))

// MinifyHTML removes comments when stripComments is set and collapses whitespace in text outside verbatim elements
// such as pre, script and style. Text around a removed comment is merged into one node.
// When recursive is false only the children of root are considered.
func MinifyHTML(root *dom.Node, stripComments, recursive bool) {
	if stripComments {
		StripComments(root, recursive)
	}
	CompressWhitespace(root, recursive)
}

// StripComments removes comments and merges the text nodes that were separated by them.
func StripComments(root *dom.Node, recursive bool) {
	for _, c := range root.Select(isComment, recursive) {
		prev, next := c.Sibling(-1), c.Sibling(1)
		c.Delete()
		if prev != nil && next != nil && prev.Type == dom.TextNode && next.Type == dom.TextNode {
			prev.Text += next.Text
			next.Delete()
		}
	}
}

// CompressWhitespace replaces runs of whitespace by a single space in all text outside verbatim elements.
func CompressWhitespace(root *dom.Node, recursive bool) {
	for _, c := range root.Select(isCompressible, recursive) {
		c.Text = compressWhitespace(c.Text)
	}
}
