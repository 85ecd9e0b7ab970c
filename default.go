package htmlfmt

import (
	"io"

	"github.com/tdewolff/htmlfmt/dom"
)

// Default reads HTML from r, formats it using the default options and writes it to w. Scripts that failed to minify
// are returned as error after the output has been written.
func Default(w io.Writer, r io.Reader) error {
	root, err := dom.Parse(r)
	if err != nil {
		return err
	}
	f := New(DefaultConfig())
	f.Format(root)
	if err := root.Render(w); err != nil {
		return err
	}
	return f.Err()
}

// String formats an HTML string using the default options. Scripts that failed to minify are returned as error
// together with the formatted result.
func String(s string) (string, error) {
	root, err := dom.ParseString(s)
	if err != nil {
		return s, err
	}
	f := New(DefaultConfig())
	f.Format(root)
	return root.String(), f.Err()
}

// Bytes formats HTML using the default options, see String.
func Bytes(b []byte) ([]byte, error) {
	s, err := String(string(b))
	return []byte(s), err
}
