// Package layout is the geometric core of scanform. It maps declarative
// field specifications (digit-column constraints, row counts, spacing) to
// exact coordinates on an A4 page and emits an ordered list of draw
// commands. The package performs no drawing itself: a renderer replays the
// commands against a drawing surface (see pkg/render).
//
// All coordinates are in page points with the origin at the bottom-left
// corner of the page, y increasing upward. This matches the convention the
// downstream bubble-recognition pipeline uses to locate bubbles from fixed
// offsets, so the geometry here must stay reproducible: the same input
// always yields the same commands in the same order.
package layout

// Command is one drawing instruction. The concrete types are Marker,
// Circle, Text, CenteredText and Image; renderers switch on the type.
type Command interface {
	command()
}

// Marker is a filled square used by scanning software to detect page
// rotation and skew. X, Y is the bottom-left corner of the square.
type Marker struct {
	X, Y float64
	Size float64
}

// Circle is a stroked, unfilled circle representing one selectable digit.
// X, Y is the center.
type Circle struct {
	X, Y   float64
	Radius float64
}

// Font selects the typeface for a text command. The family is always
// Helvetica on these sheets; only weight and size vary.
type Font struct {
	Size float64
	Bold bool
}

// Text is left-aligned text with its baseline at X, Y.
type Text struct {
	X, Y  float64
	Value string
	Font  Font
}

// CenteredText is horizontally centered text: X is the center of the
// string, Y the baseline.
type CenteredText struct {
	X, Y  float64
	Value string
	Font  Font
}

// Image places a code image encoded from Payload into the box with
// bottom-left corner X, Y and the given size. Encoding is the renderer's
// concern; the layout only fixes position and bounds.
type Image struct {
	X, Y          float64
	Width, Height float64
	Payload       string
}

func (Marker) command()       {}
func (Circle) command()       {}
func (Text) command()         {}
func (CenteredText) command() {}
func (Image) command()        {}

// Standard font settings used across the sheet.
var (
	fontFieldLabel = Font{Size: 8, Bold: true}  // field labels and digit labels
	fontHeader     = Font{Size: 14, Bold: true} // client header
	fontRowName    = Font{Size: 12}             // product names
)
