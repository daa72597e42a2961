// =============================================================================
// CAPPS Converter - XML Serialization
// =============================================================================
//
// Hand-rolled pretty printer for the CAPPS upload document. The receiving
// system is strict about the document shape, so serialization is kept under
// direct control rather than delegated to struct tags:
//   - four-space indentation, one element per line
//   - reserved markup characters escaped in all text and attribute values
//   - attribute order preserved as given (licenseNumber, xsi:nil markers)
//   - empty elements rendered self-closing (the nil-marker style)
//
// =============================================================================

package capps

import (
	"bytes"
	"fmt"
)

// indentUnit is the indentation step accepted by the CAPPS bulk validator.
const indentUnit = "    "

// xmlDeclaration opens every generated document.
const xmlDeclaration = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// Element is a node of the document tree. An element carries either a text
// Value or Children, not both.
type Element struct {
	Name     string
	Attrs    []Attr
	Value    string
	Children []*Element
}

// Attr is a single XML attribute.
type Attr struct {
	Name  string
	Value string
}

// NewElement creates an empty element.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Text creates a leaf element with a text value.
func Text(name, value string) *Element {
	return &Element{Name: name, Value: value}
}

// WithAttr appends an attribute and returns the element for chaining.
func (e *Element) WithAttr(name, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Add appends child elements and returns the parent for chaining.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Marshal serializes the tree rooted at e into a complete document.
func Marshal(e *Element) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	writeElement(&buf, e, 0)
	return buf.Bytes()
}

func writeElement(buf *bytes.Buffer, e *Element, level int) {
	for i := 0; i < level; i++ {
		buf.WriteString(indentUnit)
	}

	buf.WriteString("<")
	buf.WriteString(e.Name)
	for _, attr := range e.Attrs {
		fmt.Fprintf(buf, ` %s="%s"`, attr.Name, escape(attr.Value))
	}

	// Self-closing form for empty elements; the nil-marker fields
	// (dateOfBirth, noFinger) rely on it.
	if len(e.Children) == 0 && e.Value == "" {
		buf.WriteString("/>\n")
		return
	}

	buf.WriteString(">")

	if len(e.Children) == 0 {
		buf.WriteString(escape(e.Value))
	} else {
		buf.WriteString("\n")
		for _, child := range e.Children {
			writeElement(buf, child, level+1)
		}
		for i := 0; i < level; i++ {
			buf.WriteString(indentUnit)
		}
	}

	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteString(">\n")
}

// escape replaces the five reserved markup characters. Free-text item
// descriptions routinely carry ampersands and quotes.
func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&apos;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
