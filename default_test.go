package htmlfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestString(t *testing.T) {
	s, err := String("<p>a  b</p>")
	test.Error(t, err)
	test.String(t, s, "\n<p>\n a b\n</p>")

	s, err = String("<script>if (</script>")
	test.That(t, err != nil, "script error expected")
	test.That(t, s != "", "output is still returned")
}

func TestBytes(t *testing.T) {
	b, err := Bytes([]byte("<ul><li>a</li><li>b</li></ul>"))
	test.Error(t, err)
	test.Bytes(t, b, []byte("\n<ul>\n <li>a\n </li>\n <li>b</li>\n</ul>"))
}

func TestDefault(t *testing.T) {
	w := &bytes.Buffer{}
	err := Default(w, strings.NewReader("<div><p>a</p></div>"))
	test.Error(t, err)
	test.String(t, w.String(), "<div>\n <p>\n  a\n </p>\n</div>")
}
