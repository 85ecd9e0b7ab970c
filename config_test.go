package htmlfmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/test"
)

func TestAttrCaseText(t *testing.T) {
	var c AttrCase
	test.Error(t, c.UnmarshalText([]byte("Upper")))
	test.T(t, c, CaseUpper)
	test.String(t, c.String(), "upper")

	b, err := CaseNone.MarshalText()
	test.Error(t, err)
	test.String(t, string(b), "none")

	test.That(t, c.UnmarshalText([]byte("camel")) != nil)
	_, err = AttrCase(5).MarshalText()
	test.That(t, err != nil)
	test.String(t, AttrCase(5).String(), "Invalid(5)")
}

func TestSortOrderText(t *testing.T) {
	var tests = []struct {
		text     string
		expected SortOrder
	}{
		{"none", SortNone},
		{"ascending", SortAscending},
		{"asc", SortAscending},
		{"DESC", SortDescending},
		{"reverse", SortDescending},
		{"descending", SortDescending},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var o SortOrder
			test.Error(t, o.UnmarshalText([]byte(tt.text)))
			test.T(t, o, tt.expected)
		})
	}

	var o SortOrder
	test.That(t, o.UnmarshalText([]byte("random")) != nil)
	test.String(t, SortDescending.String(), "descending")
}

func writeConfig(t *testing.T, content string) string {
	filename := filepath.Join(t.TempDir(), "htmlfmt.toml")
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestLoadConfig(t *testing.T) {
	filename := writeConfig(t, `
indent = "\t"
attr_case = "upper"
sort_attrs = "desc"
minify_script = false
img_alt = "image"
self_close_str = " /"
attr_shorttag = true
`)
	c, err := LoadConfig(filename)
	test.Error(t, err)
	test.String(t, c.Indent, "\t")
	test.String(t, c.LineBreak, "\n", "defaults are kept")
	test.T(t, c.AttrCase, CaseUpper)
	test.T(t, c.SortAttrs, SortDescending)
	test.That(t, !c.MinifyScript)
	test.That(t, c.StripComments)
	test.String(t, *c.ImgAlt, "image")
	test.String(t, *c.SelfCloseStr, " /")
	test.That(t, *c.AttrShortTag)
}

func TestLoadConfigErrors(t *testing.T) {
	var tests = []string{
		`indnt = "  "`,
		`attr_case = "camel"`,
		`indent = `,
	}
	for _, tt := range tests {
		t.Run(tt, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt))
			test.That(t, err != nil, "must fail")
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	test.That(t, err != nil)
}
