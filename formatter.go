// Package htmlfmt formats HTML trees: it strips comments and redundant whitespace, minifies scripts, and puts
// block elements on their own indented lines. Line breaks are derived from a small table of block elements and
// from the whitespace already present in the text, the tree is modified in place.
package htmlfmt // import "github.com/tdewolff/htmlfmt"

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/tdewolff/minify/v2/js"

	"github.com/tdewolff/htmlfmt/dom"
)

// Formatter formats HTML trees. It is not safe for concurrent use.
type Formatter struct {
	Config
	Minifier Minifier    // script minifier, a JSMinifier when nil
	Logger   *log.Logger // optional

	errors []ErrorRecord
}

// New returns a Formatter with the given options.
func New(c Config) *Formatter {
	return &Formatter{
		Config:   c,
		Minifier: NewJSMinifier(js.Minifier{}),
	}
}

// Format minifies the scripts below root and formats the tree. Scripts that fail to minify are kept as is
// and are available from Errors afterwards, they do not fail the formatting.
func (f *Formatter) Format(root *dom.Node) bool {
	f.errors = nil
	if f.MinifyScript {
		m := f.Minifier
		if m == nil {
			m = NewJSMinifier(js.Minifier{})
		}
		for _, err := range MinifyJavaScript(root, m, f.Indent, true, true) {
			if f.Logger != nil {
				f.Logger.Warn("cannot minify script", "location", err.Location, "err", err.Err)
			}
			f.errors = append(f.errors, err)
		}
	}
	ok := f.FormatHTML(root)
	if f.Logger != nil {
		f.Logger.Debug("formatted", "errors", len(f.errors))
	}
	return ok
}

// FormatHTML strips comments and compresses whitespace once, and then formats the whole tree. Scripts are not minified.
func (f *Formatter) FormatHTML(root *dom.Node) bool {
	MinifyHTML(root, f.StripComments, true)
	return f.reflow(root, Unlimited)
}

// FormatDepth formats the children of root down to the given number of levels, 1 formats only the children of root.
// A non-positive number of levels has no limit. Comments and whitespace are left as they are.
func (f *Formatter) FormatDepth(root *dom.Node, levels int) bool {
	if levels <= 0 {
		levels = Unlimited
	}
	return f.reflow(root, levels)
}

// Errors returns the scripts that failed to minify during the last Format.
func (f *Formatter) Errors() []ErrorRecord {
	return f.errors
}

// Messages returns the errors of the last Format as messages.
func (f *Formatter) Messages() []string {
	msgs := make([]string, 0, len(f.errors))
	for i := range f.errors {
		msgs = append(msgs, f.errors[i].Error())
	}
	return msgs
}

// Err returns the errors of the last Format joined, or nil.
func (f *Formatter) Err() error {
	if len(f.errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(f.errors))
	for i := range f.errors {
		errs = append(errs, &f.errors[i])
	}
	return errors.Join(errs...)
}
