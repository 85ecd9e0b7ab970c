package htmlfmt

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/tdewolff/test"
)

func TestWhitespaceKind(t *testing.T) {
	var tests = []struct {
		c                   byte
		lineBreak, isSpace bool
	}{
		{' ', false, true},
		{'\t', false, true},
		{'\v', false, true},
		{0, false, true},
		{'\n', true, true},
		{'\r', true, true},
		{'\f', false, false},
		{'a', false, false},
	}
	for _, tt := range tests {
		lineBreak, ok := whitespaceKind(tt.c)
		test.T(t, lineBreak, tt.lineBreak, string(tt.c))
		test.T(t, ok, tt.isSpace, string(tt.c))
	}
}

func TestCompressWhitespace(t *testing.T) {
	var tests = []struct {
		text     string
		expected string
	}{
		{"a\n\n  b", "a b"},
		{"a b", "a b"},
		{"a\tb", "a b"},
		{"  a  ", " a "},
		{"a b  c", "a b c"},
		{"\x00\v\r\n", " "},
		{"a\fb", "a\fb"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			test.String(t, compressWhitespace(tt.text), tt.expected)
		})
	}
}

func TestCompressWhitespaceRandom(t *testing.T) {
	wsRegexp := regexp.MustCompile("[ \t\v\x00\r\n]+")
	chars := "abc \t\v\x00\r\n"
	for i := 0; i < 1000; i++ {
		b := make([]byte, 20)
		for j := range b {
			b[j] = chars[rand.Intn(len(chars))]
		}
		test.String(t, compressWhitespace(string(b)), wsRegexp.ReplaceAllString(string(b), " "), "in", string(b))
	}
}

func TestTrimWhitespace(t *testing.T) {
	test.String(t, trimWhitespace(" \t\na\x00 b\r\v"), "a\x00 b")
	test.String(t, trimWhitespace("\n\n"), "")
	test.String(t, trimWhitespace("a"), "a")
}

func TestBlock(t *testing.T) {
	test.T(t, Block("ul"), BlockElement{true, true, true})
	test.T(t, Block("li"), BlockElement{true, false, true})
	test.T(t, Block("pre"), BlockElement{true, true, false})
	test.T(t, Block("span"), BlockElement{false, false, true})
	test.That(t, IsVerbatim("pre"))
	test.That(t, IsVerbatim("title"))
	test.That(t, IsVerbatim("script"))
	test.That(t, !IsVerbatim("div"))
}
