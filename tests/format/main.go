//go:build gofuzz

package fuzz

import (
	"bytes"

	"github.com/tdewolff/htmlfmt"
	"github.com/tdewolff/htmlfmt/dom"
)

// Fuzz formats arbitrary input with both parsers, formatting must never panic and must keep the tree renderable.
func Fuzz(data []byte) int {
	root, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		return 0
	}
	f := htmlfmt.New(htmlfmt.DefaultConfig())
	f.Format(root)
	_ = root.String()

	root, err = dom.ParseHTML5(bytes.NewReader(data))
	if err != nil {
		return 0
	}
	f.Format(root)
	_ = root.String()
	return 1
}
