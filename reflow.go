package htmlfmt

import (
	"sort"
	"strings"

	"github.com/tdewolff/htmlfmt/dom"
)

// Unlimited descends into all levels of the tree.
const Unlimited = -1

func (f *Formatter) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(f.Indent, depth)
}

// reflow puts the children of root on new lines where needed and indents them. It descends into the children
// while levels is not 1, decrementing it for every level when positive.
// Children are visited by index as synthetic text nodes get inserted along the way.
func (f *Formatter) reflow(root *dom.Node, levels int) bool {
	rootTag := strings.ToLower(root.Tag)
	inBlock := Block(rootTag).AsBlock
	f.normalize(root, rootTag)

	var prev *dom.Node
	asBlock, prevAsBlock := false, false
	for i := 0; i < len(root.Children); i++ {
		n := root.Children[i]
		first := i == 0
		indent := n.Indent()

		if n.Type != dom.TextNode {
			block := Block(strings.ToLower(n.Tag))
			asBlock = block.AsBlock
			if !f.breakTrailing(prev, indent) && (block.NewLine || prevAsBlock || inBlock && first) {
				if prev != nil && prev.Type == dom.TextNode {
					prev.Text += f.LineBreak + f.indent(indent)
				} else {
					root.AddText(f.LineBreak+f.indent(indent), i)
					i++
				}
			}

			if block.FormatInside {
				f.reflowEnd(n, block, inBlock && first, indent)
				if levels != 1 {
					next := levels
					if 1 < next {
						next--
					}
					f.reflow(n, next)
				}
			}
		} else if trimWhitespace(n.Text) != "" {
			if lineBreak, ok := whitespaceKind(n.Text[0]); ok {
				if lineBreak {
					n.Text = f.indent(indent) + n.Text
				} else {
					n.Text = f.LineBreak + f.indent(indent) + n.Text[1:]
				}
			} else if inBlock && first {
				n.Text = f.LineBreak + f.indent(indent) + n.Text
			}
		}

		prev = n
		prevAsBlock = asBlock
	}
	return true
}

// reflowEnd puts the end tag of n on a new line where needed, or empties n when it holds only whitespace.
func (f *Formatter) reflowEnd(n *dom.Node, block BlockElement, firstInBlock bool, indent int) {
	if n.ElementCount() == 0 && trimWhitespace(n.PlainText()) == "" {
		if trimWhitespace(n.InnerText()) == "" {
			n.Clear()
		}
		return
	}

	last := n.Children[len(n.Children)-1]
	if endsWithWhitespace(last) {
		if block.AsBlock || 0 < last.Index() || isWhitespace(last.Text[0]) {
			f.breakTrailing(last, indent)
		}
	} else if block.AsBlock || Block(strings.ToLower(last.Tag)).AsBlock || firstInBlock {
		if last.Type == dom.TextNode {
			last.Text += f.LineBreak + f.indent(indent)
		} else {
			n.AddText(f.LineBreak+f.indent(indent), -1)
		}
	}
}

func endsWithWhitespace(n *dom.Node) bool {
	return n != nil && n.Type == dom.TextNode && n.Text != "" && isWhitespace(n.Text[len(n.Text)-1])
}

// breakTrailing turns the trailing whitespace of a text node into a line break followed by the indentation.
// It returns false if n is not a text node ending in whitespace.
func (f *Formatter) breakTrailing(n *dom.Node, indent int) bool {
	if !endsWithWhitespace(n) {
		return false
	}
	if lineBreak, _ := whitespaceKind(n.Text[len(n.Text)-1]); lineBreak {
		n.Text += f.indent(indent)
	} else {
		n.Text = n.Text[:len(n.Text)-1] + f.LineBreak + f.indent(indent)
	}
	return true
}

// normalize applies the tag and attribute options to n.
func (f *Formatter) normalize(n *dom.Node, tag string) {
	if f.AttrCase != CaseNone && 0 < len(n.Attrs) {
		n.Attrs = changeKeyCase(n.Attrs, f.AttrCase)
	}
	switch f.SortAttrs {
	case SortAscending:
		sort.SliceStable(n.Attrs, func(i, j int) bool { return n.Attrs[i].Key < n.Attrs[j].Key })
	case SortDescending:
		sort.SliceStable(n.Attrs, func(i, j int) bool { return n.Attrs[i].Key > n.Attrs[j].Key })
	}

	if n.Type == dom.ElementNode {
		n.SetTag(tag)
		if f.ImgAlt != nil && tag == "img" && !hasAttrFold(n, "alt") {
			n.SetAttr("alt", *f.ImgAlt)
		}
	}
	if f.SelfCloseStr != nil {
		n.SelfCloseStr = *f.SelfCloseStr
	}
	if f.AttrShortTag != nil {
		n.AttrShortTag = *f.AttrShortTag
	}
}

// changeKeyCase converts attribute names. When names collide the first position is kept with the last value.
func changeKeyCase(attrs []dom.Attr, c AttrCase) []dom.Attr {
	convert := strings.ToLower
	if c == CaseUpper {
		convert = strings.ToUpper
	}

	out := attrs[:0]
	seen := make(map[string]int, len(attrs))
	for _, attr := range attrs {
		attr.Key = convert(attr.Key)
		if i, ok := seen[attr.Key]; ok {
			out[i] = attr
			continue
		}
		seen[attr.Key] = len(out)
		out = append(out, attr)
	}
	return out
}

func hasAttrFold(n *dom.Node, key string) bool {
	for _, attr := range n.Attrs {
		if strings.EqualFold(attr.Key, key) {
			return true
		}
	}
	return false
}
