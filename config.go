package htmlfmt

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// AttrCase is the case attribute names are converted to.
type AttrCase int

// AttrCase values.
const (
	CaseNone AttrCase = iota
	CaseLower
	CaseUpper
)

var attrCaseNames = []string{"none", "lower", "upper"}

func (c AttrCase) String() string {
	if c < 0 || int(c) >= len(attrCaseNames) {
		return fmt.Sprintf("Invalid(%d)", int(c))
	}
	return attrCaseNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c AttrCase) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(attrCaseNames) {
		return nil, fmt.Errorf("invalid attribute case %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *AttrCase) UnmarshalText(b []byte) error {
	for i, name := range attrCaseNames {
		if strings.EqualFold(string(b), name) {
			*c = AttrCase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown attribute case %q, expected one of %s", b, strings.Join(attrCaseNames, ", "))
}

// SortOrder is the order attributes are sorted in by name.
type SortOrder int

// SortOrder values.
const (
	SortNone SortOrder = iota
	SortAscending
	SortDescending
)

var sortOrderNames = []string{"none", "ascending", "descending"}

func (o SortOrder) String() string {
	if o < 0 || int(o) >= len(sortOrderNames) {
		return fmt.Sprintf("Invalid(%d)", int(o))
	}
	return sortOrderNames[o]
}

// MarshalText implements encoding.TextMarshaler.
func (o SortOrder) MarshalText() ([]byte, error) {
	if o < 0 || int(o) >= len(sortOrderNames) {
		return nil, fmt.Errorf("invalid sort order %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It also accepts "asc", "desc" and "reverse".
func (o *SortOrder) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "asc":
		*o = SortAscending
		return nil
	case "desc", "reverse":
		*o = SortDescending
		return nil
	}
	for i, name := range sortOrderNames {
		if strings.EqualFold(string(b), name) {
			*o = SortOrder(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sort order %q, expected one of %s", b, strings.Join(sortOrderNames, ", "))
}

// Config holds the formatting options. It is not modified while formatting.
type Config struct {
	Indent        string    `toml:"indent"`         // indentation unit
	LineBreak     string    `toml:"linebreak"`      // string that breaks lines
	ImgAlt        *string   `toml:"img_alt"`        // alt text added to images without one, nil disables
	SelfCloseStr  *string   `toml:"self_close_str"` // written before '>' of self-closing tags when set, eg. " /"
	AttrShortTag  *bool     `toml:"attr_shorttag"`  // render attributes like checked="checked" as checked when set to true
	AttrCase      AttrCase  `toml:"attr_case"`
	SortAttrs     SortOrder `toml:"sort_attrs"`
	MinifyScript  bool      `toml:"minify_script"`
	StripComments bool      `toml:"strip_comments"`
}

// DefaultConfig returns the default options: indent with one space, break lines with a newline, give images an empty
// alt text, lowercase attribute names, minify scripts and strip comments.
func DefaultConfig() Config {
	imgAlt := ""
	return Config{
		Indent:        " ",
		LineBreak:     "\n",
		ImgAlt:        &imgAlt,
		AttrCase:      CaseLower,
		SortAttrs:     SortNone,
		MinifyScript:  true,
		StripComments: true,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Unknown keys are an error.
func LoadConfig(filename string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.DecodeFile(filename, &c)
	if err != nil {
		return c, err
	}
	if undecoded := md.Undecoded(); 0 < len(undecoded) {
		return c, fmt.Errorf("%s: unknown option %q", filename, undecoded[0].String())
	}
	return c, nil
}
