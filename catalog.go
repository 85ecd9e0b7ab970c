package htmlfmt

// BlockElement describes how an element takes part in formatting.
type BlockElement struct {
	NewLine      bool // start the element on a new line
	AsBlock      bool // start its first child and its next sibling on a new line
	FormatInside bool // format its content, when false the content is kept verbatim
}

var blockElements = map[string]BlockElement{
	"p":  {true, true, true},
	"h1": {true, true, true},
	"h2": {true, true, true},
	"h3": {true, true, true},
	"h4": {true, true, true},
	"h5": {true, true, true},
	"h6": {true, true, true},

	"form":     {true, true, true},
	"fieldset": {true, true, true},
	"legend":   {true, false, true},
	"dl":       {true, false, true},
	"dt":       {true, false, true},
	"dd":       {true, true, true},
	"ol":       {true, true, true},
	"ul":       {true, true, true},
	"li":       {true, false, true},

	"table": {true, true, true},
	"tr":    {true, true, true},

	"dir":        {true, true, true},
	"menu":       {true, true, true},
	"address":    {true, true, true},
	"blockquote": {true, true, true},
	"center":     {true, true, true},
	"del":        {true, false, true},
	"hr":         {true, true, true},
	"ins":        {true, true, true},
	"noscript":   {true, true, true},
	"pre":        {true, true, false},
	"script":     {true, true, true},
	"style":      {true, true, true},

	"html":  {true, true, true},
	"head":  {true, true, true},
	"body":  {true, true, true},
	"title": {true, false, false},
}

// rawTextTags hold content that is never compressed, besides the elements that are not formatted inside.
var rawTextTags = map[string]bool{
	"script": true,
	"style":  true,
	"xmp":    true,
}

// Block returns the formatting behaviour of the element with the given lowercase tag name.
// Unknown elements are inline and formatted inside.
func Block(tag string) BlockElement {
	if block, ok := blockElements[tag]; ok {
		return block
	}
	return BlockElement{FormatInside: true}
}

// IsVerbatim returns true if the content of the element with the given lowercase tag name is kept as is.
func IsVerbatim(tag string) bool {
	return rawTextTags[tag] || !Block(tag).FormatInside
}
