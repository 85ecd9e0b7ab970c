package dom

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestParseRender(t *testing.T) {
	var tests = []string{
		`<p class="a">x <b>y</b></p>`,
		`<br/>`,
		`<img src="a.png" />`,
		`<input disabled>`,
		`<!DOCTYPE html>`,
		`<!-- comment -->`,
		`<script>if (a<b) {}</script>`,
		`<pre>  a
  b</pre>`,
		`<?php echo 1; ?>`,
		`<svg viewBox="0 0 1 1"><path d="M0"/></svg>`,
		`a &amp; b`,
	}
	for _, tt := range tests {
		t.Run(tt, func(t *testing.T) {
			root, err := ParseString(tt)
			test.Error(t, err)
			test.String(t, root.String(), tt)
		})
	}
}

func TestParseTree(t *testing.T) {
	root, err := ParseString("<ul><li>a<li>b</ul>x</p>")
	test.Error(t, err)
	test.T(t, len(root.Children), 2)

	ul := root.Children[0]
	test.String(t, ul.Tag, "ul")
	test.T(t, len(ul.Children), 1)
	test.String(t, ul.Children[0].Children[1].Tag, "li")
	test.T(t, root.Children[1].Type, TextNode)
	test.String(t, root.Children[1].Text, "x")

	root, err = ParseString(`<a href='x"y' hidden>`)
	test.Error(t, err)
	a := root.Children[0]
	test.T(t, a.Attrs, []Attr{{"href", `x"y`, true}, {"hidden", "", false}})
	test.String(t, a.String(), `<a href="x&#34;y" hidden></a>`)

	root, err = ParseString("<?xml version='1.0'?><x:y/>")
	test.Error(t, err)
	test.T(t, root.Children[0].Type, ProcessingInstructionNode)
	test.String(t, root.Children[0].Tag, "?xml")
}

func TestParseHTML5(t *testing.T) {
	root, err := ParseHTML5(strings.NewReader(`<!doctype html><title>a&amp;b</title><p>x<p>y<script>a<b</script>`))
	test.Error(t, err)
	test.String(t, root.String(), `<!DOCTYPE html><html><head><title>a&amp;b</title></head><body><p>x</p><p>y<script>a<b</script></p></body></html>`)
	test.T(t, root.Children[1].Indent(), 0)
}

func TestMutation(t *testing.T) {
	root, err := ParseString("<p>a<!--x-->b<i>c</i></p>")
	test.Error(t, err)
	p := root.Children[0]
	comment := p.Children[1]
	test.T(t, comment.Type, CommentNode)
	test.T(t, comment.Sibling(-1).Text, "a")
	test.T(t, comment.Sibling(1).Text, "b")
	test.That(t, comment.Sibling(3) == nil)

	i := p.Children[3]
	test.T(t, i.Index(), 3)
	comment.Delete()
	test.T(t, i.Index(), 2, "deleting renumbers following siblings")
	test.That(t, comment.Parent == nil)

	p.AddText(" ", 2)
	test.T(t, i.Index(), 3)
	p.AddText("!", -1)
	test.String(t, p.String(), "<p>ab <i>c</i>!</p>")
	test.T(t, p.ElementCount(), 1)
	test.String(t, p.PlainText(), "ab c!")
	test.String(t, p.InnerText(), "ab <i>c</i>!")

	i.Clear()
	test.String(t, i.String(), "<i></i>")
	i.SetTag("em")
	i.SetAttr("class", "x")
	i.SetAttr("class", "y")
	v, ok := i.Attr("class")
	test.That(t, ok)
	test.String(t, v, "y")
	i.RemoveAttr("class")
	_, ok = i.Attr("class")
	test.That(t, !ok)
	test.String(t, i.String(), "<em></em>")
}

func TestIndentLocation(t *testing.T) {
	root, err := ParseString("<html><body><p>x</p>\n<script>y</script></body></html>")
	test.Error(t, err)
	html := root.Children[0]
	body := html.Children[0]
	script := body.Children[2]
	test.T(t, root.Indent(), -1)
	test.T(t, html.Indent(), 0)
	test.T(t, body.Indent(), 1)
	test.T(t, script.Children[0].Indent(), 3)
	test.String(t, script.Location(), "html[0] > body[0] > script[2] (line 2, column 1)")

	detached := NewElement("div")
	detached.AppendChild(NewText("x"))
	test.String(t, detached.Children[0].Location(), "div[-1] > ~text~[0]")
}

func TestSelect(t *testing.T) {
	root, err := ParseString("<!--a--><div><!--b--><pre>x<!--c--></pre></div><script>y</script><script></script>")
	test.Error(t, err)
	test.T(t, len(root.Select(IsType(CommentNode), false)), 1)
	test.T(t, len(root.Select(IsType(CommentNode), true)), 3)
	test.T(t, len(root.Select(And(IsType(CommentNode), HasAncestor(IsTag("PRE"))), true)), 1)
	test.T(t, len(root.Select(And(IsType(CommentNode), Not(HasParent(IsTag("div")))), true)), 2)

	texts := root.Select(And(IsType(TextNode), NonEmpty, HasParent(IsTag("script"))), true)
	test.T(t, len(texts), 1)
	test.String(t, texts[0].Text, "y")
	test.T(t, len(root.Select(And(IsTag("script"), NonEmpty), true)), 1)
}

func TestNodeTypeString(t *testing.T) {
	for nt := RootNode; nt <= RawNode; nt++ {
		test.That(t, !strings.HasPrefix(nt.String(), "Invalid("), fmt.Sprintf("NodeType(%d) has no name", nt))
	}
	test.String(t, TextNode.String(), "Text")
	test.String(t, RawNode.String(), "Raw")
	test.String(t, (RawNode + 1).String(), "Invalid(7)")
}

func TestParseAttrCase(t *testing.T) {
	root, err := ParseString(`<a HREF="x" DataFoo="y" Checked>z</a>`)
	test.Error(t, err)
	a := root.Children[0]
	test.T(t, len(a.Attrs), 3)
	test.String(t, a.Attrs[0].Key, "HREF")
	test.String(t, a.Attrs[0].Val, "x")
	test.String(t, a.Attrs[1].Key, "DataFoo")
	test.String(t, a.Attrs[1].Val, "y")
	test.String(t, a.Attrs[2].Key, "Checked")
	test.That(t, !a.Attrs[2].HasVal)
	test.String(t, root.String(), `<a HREF="x" DataFoo="y" Checked>z</a>`)
}
