package htmlfmt

import (
	"regexp"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"

	"github.com/tdewolff/htmlfmt/dom"
)

// Minifier minifies the body of a script element.
type Minifier interface {
	Minify(src string) (string, error)
}

// MinifierFunc is an adapter to allow the use of an ordinary function as a Minifier.
type MinifierFunc func(string) (string, error)

// Minify calls f(src).
func (f MinifierFunc) Minify(src string) (string, error) {
	return f(src)
}

var jsMimetype = regexp.MustCompile("^(application|text)/(x-)?(java|ecma|j|live)script(1\\.[0-5])?$|^module$")

// JSMinifier minifies JavaScript using github.com/tdewolff/minify/v2/js.
type JSMinifier struct {
	m *minify.M
}

// NewJSMinifier returns a JavaScript minifier with the given options.
func NewJSMinifier(o js.Minifier) *JSMinifier {
	m := minify.New()
	m.AddRegexp(jsMimetype, &o)
	return &JSMinifier{m}
}

// Minify minifies src. Syntax errors are returned as *parse.Error.
func (j *JSMinifier) Minify(src string) (string, error) {
	return j.m.String("application/javascript", src)
}

// ErrorRecord is a script that could not be minified, Location points to its script element.
type ErrorRecord struct {
	Err      error
	Location string
}

func (e *ErrorRecord) Error() string {
	return e.Err.Error() + " >>> " + e.Location
}

func (e *ErrorRecord) Unwrap() error {
	return e.Err
}

var isScriptText = dom.And(dom.IsType(dom.TextNode), dom.NonEmpty, dom.HasParent(dom.And(dom.IsTag("script"), dom.NonEmpty, isJavaScript)))

// isJavaScript matches script elements without a type or with a JavaScript mimetype, data blocks such as
// application/ld+json and templates are left alone.
func isJavaScript(n *dom.Node) bool {
	for _, attr := range n.Attrs {
		if !strings.EqualFold(attr.Key, "type") {
			continue
		}
		mimetype, _, _ := strings.Cut(attr.Val, ";")
		mimetype = strings.ToLower(trimWhitespace(mimetype))
		return mimetype == "" || jsMimetype.MatchString(mimetype)
	}
	return true
}

// MinifyJavaScript minifies the text of script elements below root. Legacy <!-- --> and <![CDATA[ ]]> wrappers are
// removed first. The minified script is wrapped in <!-- //--> when wrapComment is set, and is put on its own
// lines indented to the depth of the script when indent is not empty and the result spans multiple lines.
// Scripts with a non-JavaScript type attribute are skipped. A script that fails to minify is left untouched and
// reported, the others are still minified.
func MinifyJavaScript(root *dom.Node, m Minifier, indent string, wrapComment, recursive bool) []ErrorRecord {
	var errs []ErrorRecord
	for _, c := range root.Select(isScriptText, recursive) {
		text := stripScriptWrappers(c.Text)
		if text != "" {
			minified, err := m.Minify(text)
			if err != nil {
				errs = append(errs, ErrorRecord{err, c.Parent.Location()})
				continue
			}

			text = minified
			if wrapComment {
				text = "<!--\n" + text + "\n//-->"
			}
			if indent != "" && (wrapComment || strings.Contains(text, "\n")) {
				text = indentText("\n"+text, c.Indent(), indent)
			}
		}
		c.Text = text
	}
	return errs
}

// stripScriptWrappers trims whitespace and removes leading <!-- and <![CDATA[ and trailing --> and ]]> markers
// until none are left.
func stripScriptWrappers(text string) string {
	for text != "" {
		text = trimWhitespace(text)
		if strings.HasPrefix(text, "<!--") {
			text = text[4:]
			continue
		} else if 9 <= len(text) && strings.EqualFold(text[:9], "<![CDATA[") {
			text = text[9:]
			continue
		} else if strings.HasSuffix(text, "-->") || strings.HasSuffix(text, "]]>") {
			text = text[:len(text)-3]
			continue
		}
		break
	}
	return text
}

// indentText indents every line after a newline.
func indentText(text string, indent int, indentStr string) string {
	if indent <= 0 || indentStr == "" {
		return text
	}
	return strings.ReplaceAll(text, "\n", "\n"+strings.Repeat(indentStr, indent))
}
