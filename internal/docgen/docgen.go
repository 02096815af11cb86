// Package docgen assembles declarative document trees for the PDF renderer.
// Generators are pure: they never do I/O and never fail; malformed input
// degrades to placeholder text so a bulk export always yields a document.
package docgen

// Document is a flat list of layout nodes plus a footer repeated on every
// page. The renderer walks the list top to bottom.
type Document struct {
	Nodes  []Node
	Footer string
}

type Node interface {
	isNode()
}

type Style struct {
	Size   float64
	Bold   bool
	Italic bool
	Align  string // "L", "C", "R", "J"
}

// Text is a free paragraph.
type Text struct {
	Content    string
	Style      Style
	SpaceAfter float64
}

// Title is the document headline.
type Title struct {
	Content  string
	Subtitle string
}

// Heading is a numbered section banner (contract sections).
type Heading struct {
	Content string
}

// Row is a 30/70 label/value line.
type Row struct {
	Label     string
	Value     string
	BoldValue bool
}

// TableRow is one line of the two-column amount table.
type TableRow struct {
	Desc   string
	Amount string
	Header bool
	Total  bool
}

// Box is a bordered block with a small-caps title and content lines.
type Box struct {
	Title string
	Lines []string
}

// Image embeds an inline base64 data URI. Width and Height are points.
type Image struct {
	DataURI string
	Width   float64
	Height  float64
	Align   string
}

// Columns lays two node lists side by side (signature blocks).
type Columns struct {
	Left  []Node
	Right []Node
}

type Spacer struct {
	Height float64
}

type Rule struct{}

func (Text) isNode()     {}
func (Title) isNode()    {}
func (Heading) isNode()  {}
func (Row) isNode()      {}
func (TableRow) isNode() {}
func (Box) isNode()      {}
func (Image) isNode()    {}
func (Columns) isNode()  {}
func (Spacer) isNode()   {}
func (Rule) isNode()     {}
