package dom

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

var attrValReplacer = strings.NewReplacer(`"`, "&#34;")

// Render writes the HTML of n and its descendants to w.
func (n *Node) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	n.render(bw)
	return bw.Flush()
}

// String returns the HTML of n and its descendants.
func (n *Node) String() string {
	buf := &bytes.Buffer{}
	_ = n.Render(buf)
	return buf.String()
}

func (n *Node) render(w *bufio.Writer) {
	switch n.Type {
	case RootNode:
		for _, c := range n.Children {
			c.render(w)
		}
	case ElementNode:
		w.WriteByte('<')
		w.WriteString(n.Tag)
		for _, attr := range n.Attrs {
			w.WriteByte(' ')
			w.WriteString(attr.Key)
			if !attr.HasVal || n.AttrShortTag && strings.EqualFold(attr.Key, attr.Val) {
				continue
			}
			w.WriteString(`="`)
			w.WriteString(attrValReplacer.Replace(attr.Val))
			w.WriteByte('"')
		}
		if n.SelfClose && len(n.Children) == 0 {
			w.WriteString(n.SelfCloseStr)
			w.WriteByte('>')
			return
		}
		w.WriteByte('>')
		for _, c := range n.Children {
			c.render(w)
		}
		w.WriteString("</")
		w.WriteString(n.Tag)
		w.WriteByte('>')
	case TextNode, ProcessingInstructionNode, RawNode:
		w.WriteString(n.Text)
	case CommentNode:
		w.WriteString("<!--")
		w.WriteString(n.Text)
		w.WriteString("-->")
	case DoctypeNode:
		w.WriteString("<!DOCTYPE")
		w.WriteString(n.Text)
		w.WriteByte('>')
	}
}
