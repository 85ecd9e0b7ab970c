package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// elements whose text is not escaped when rendered
var rawTextTags = map[string]bool{
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"noscript":  true,
	"plaintext": true,
	"script":    true,
	"style":     true,
	"xmp":       true,
}

// ParseHTML5 parses r following the HTML5 tree construction rules, which add implied elements
// and close unclosed ones. Text is re-escaped, so entities may be written differently than in the source.
func ParseHTML5(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	root := NewRoot()
	convertChildren(root, doc, false)
	return root, nil
}

// FromHTML converts a golang.org/x/net/html node and its descendants.
func FromHTML(n *html.Node) *Node {
	if n.Type == html.DocumentNode {
		root := NewRoot()
		convertChildren(root, n, false)
		return root
	}
	return convert(n, false)
}

func convertChildren(dst *Node, src *html.Node, raw bool) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if n := convert(c, raw); n != nil {
			dst.AppendChild(n)
		}
	}
}

func convert(n *html.Node, raw bool) *Node {
	switch n.Type {
	case html.TextNode:
		if raw {
			return NewText(n.Data)
		}
		return NewText(html.EscapeString(n.Data))
	case html.CommentNode:
		return NewComment(n.Data)
	case html.DoctypeNode:
		return &Node{Type: DoctypeNode, Text: " " + n.Data, Offset: -1}
	case html.ElementNode:
		elem := NewElement(n.Data)
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + key
			}
			elem.Attrs = append(elem.Attrs, Attr{Key: key, Val: strings.ReplaceAll(a.Val, "&", "&amp;"), HasVal: a.Val != ""})
		}
		if n.Namespace == "" && voidTags[n.Data] {
			elem.SelfClose = true
			return elem
		}
		convertChildren(elem, n, raw || n.Namespace == "" && rawTextTags[n.Data])
		return elem
	}
	return nil
}
