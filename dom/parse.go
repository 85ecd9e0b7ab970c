package dom

import (
	"bytes"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
)

var voidTags = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"keygen": true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// Parse reads HTML from r and returns the root of its tree. Text, comments and attribute values are kept as written,
// entities are not decoded. The parser does not apply the HTML5 tree construction rules, elements are closed by
// their matching end tag only (or implicitly for void elements); see ParseHTML5 otherwise.
func Parse(r io.Reader) (*Node, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseBytes(b)
}

// ParseString parses HTML from a string, see Parse.
func ParseString(s string) (*Node, error) {
	return parseBytes([]byte(s))
}

// attrKey returns the attribute name as written in src, the lexer lowercases name in place.
func attrKey(src []byte, start int, name []byte) string {
	for start < len(src) && (parse.IsWhitespace(src[start]) || src[start] == '/') {
		start++
	}
	if end := start + len(name); 0 <= start && end <= len(src) && bytes.EqualFold(src[start:end], name) {
		return string(src[start:end])
	}
	return string(name)
}

func parseBytes(b []byte) (*Node, error) {
	root := NewRoot()
	root.src = parse.Copy(b)

	z := parse.NewInputBytes(b)
	l := html.NewLexer(z)

	cur := root
	var elem *Node // element whose start tag is being lexed
	for {
		tt, data := l.Next()
		start := z.Offset() - len(data)
		switch tt {
		case html.ErrorToken:
			if l.Err() != io.EOF {
				return root, l.Err()
			}
			return root, nil
		case html.StartTagToken:
			elem = &Node{Type: ElementNode, Tag: string(l.Text()), Offset: start}
			cur.AppendChild(elem)
		case html.AttributeToken:
			if elem == nil {
				break
			}
			attr := Attr{Key: attrKey(root.src, start, l.Text())}
			if val := l.AttrVal(); 0 < len(val) {
				if 1 < len(val) && (val[0] == '"' || val[0] == '\'') && val[0] == val[len(val)-1] {
					val = val[1 : len(val)-1]
				}
				attr.Val = string(val)
				attr.HasVal = true
			}
			elem.Attrs = append(elem.Attrs, attr)
		case html.StartTagCloseToken:
			if elem == nil {
				break
			}
			if voidTags[strings.ToLower(elem.Tag)] {
				elem.SelfClose = true
			} else {
				cur = elem
			}
			elem = nil
		case html.StartTagVoidToken:
			if elem == nil {
				break
			}
			elem.SelfClose = true
			elem.SelfCloseStr = "/"
			if 0 < start && parse.IsWhitespace(root.src[start-1]) {
				elem.SelfCloseStr = " /"
			}
			elem = nil
		case html.EndTagToken:
			tag := string(l.Text())
			for p := cur; p != root; p = p.Parent {
				if strings.EqualFold(p.Tag, tag) {
					cur = p.Parent
					break
				}
			}
		case html.TextToken:
			cur.AppendChild(&Node{Type: TextNode, Text: string(data), Offset: start})
		case html.CommentToken:
			if bytes.HasPrefix(data, []byte("<!--")) {
				cur.AppendChild(&Node{Type: CommentNode, Text: string(l.Text()), Offset: start})
			} else if bytes.HasPrefix(data, []byte("<?")) {
				cur.AppendChild(&Node{Type: ProcessingInstructionNode, Tag: piTarget(data), Text: string(data), Offset: start})
			} else {
				// bogus comments such as <!x> or </0x>
				cur.AppendChild(&Node{Type: RawNode, Text: string(data), Offset: start})
			}
		case html.DoctypeToken:
			cur.AppendChild(&Node{Type: DoctypeNode, Text: string(l.Text()), Offset: start})
		case html.SvgToken, html.MathToken:
			cur.AppendChild(&Node{Type: RawNode, Tag: strings.ToLower(string(l.Text())), Text: string(data), Offset: start})
		}
	}
}

// piTarget returns the tag of a processing instruction, eg. "?php" for "<?php echo 1; ?>".
func piTarget(data []byte) string {
	end := 2
	for end < len(data) && !parse.IsWhitespace(data[end]) && data[end] != '>' && data[end] != '?' {
		end++
	}
	return "?" + strings.ToLower(string(data[2:end]))
}
