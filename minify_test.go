package htmlfmt

import (
	"testing"

	"github.com/tdewolff/test"

	"github.com/tdewolff/htmlfmt/dom"
)

func TestStripComments(t *testing.T) {
	root, err := dom.ParseString("<p>foo<!--x-->bar</p>")
	test.Error(t, err)
	MinifyHTML(root, true, true)
	p := root.Children[0]
	test.T(t, len(p.Children), 1)
	test.String(t, p.Children[0].Text, "foobar")

	var tests = []struct {
		html      string
		recursive bool
		expected  string
	}{
		{"a<!--x--><!--y-->b", true, "ab"},
		{"<!--x--><i>a</i><!--y-->", true, "<i>a</i>"},
		{"a<!--x--><i>b<!--y-->c</i>", false, "a<i>b<!--y-->c</i>"},
		{"<pre>a<!--x-->b</pre>", true, "<pre>ab</pre>"},
	}
	for _, tt := range tests {
		t.Run(tt.html, func(t *testing.T) {
			root, err := dom.ParseString(tt.html)
			test.Error(t, err)
			StripComments(root, tt.recursive)
			test.String(t, root.String(), tt.expected)
		})
	}
}

func TestCompressText(t *testing.T) {
	var tests = []struct {
		html     string
		expected string
	}{
		{"<div>a\n\n  b</div>", "<div>a b</div>"},
		{"<pre>a\n\n  b</pre>", "<pre>a\n\n  b</pre>"},
		{"<pre><b>a  b</b></pre>", "<pre><b>a  b</b></pre>"},
		{"<title>a  b</title>", "<title>a  b</title>"},
		{"<script>a  =  b</script><style>a  b</style>", "<script>a  =  b</script><style>a  b</style>"},
		{"<xmp>a  b</xmp>x  y", "<xmp>a  b</xmp>x y"},
	}
	for _, tt := range tests {
		t.Run(tt.html, func(t *testing.T) {
			root, err := dom.ParseString(tt.html)
			test.Error(t, err)
			CompressWhitespace(root, true)
			test.String(t, root.String(), tt.expected)
		})
	}
}

func TestMinifyHTMLKeepComments(t *testing.T) {
	root, err := dom.ParseString("<p>a  <!-- x -->  b</p>")
	test.Error(t, err)
	MinifyHTML(root, false, true)
	test.String(t, root.String(), "<p>a <!-- x --> b</p>")

	MinifyHTML(root, true, false)
	test.String(t, root.String(), "<p>a <!-- x --> b</p>", "comments below the children are kept when not recursive")
}
