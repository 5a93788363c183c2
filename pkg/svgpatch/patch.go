// Package svgpatch substitutes text into labeled placeholder elements of an
// SVG template.
//
// Templates mark their dynamic spans with id attributes, e.g.
//
//	<tspan id="star_data">0</tspan>
//
// The patcher only ever replaces element text; it never touches document
// structure, so re-patching a document with the same values is a byte-level
// no-op.
package svgpatch

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// Document is a parsed SVG template bound to the path it was read from.
type Document struct {
	path string
	doc  *etree.Document
}

// Open reads and parses the SVG template at path.
func Open(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	return &Document{path: path, doc: doc}, nil
}

// Parse reads an SVG template from r. Used by tests and callers that manage
// their own I/O; such documents can only be written with WriteTo.
func Parse(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Path returns the file the document was opened from, if any.
func (d *Document) Path() string { return d.path }

// SetText replaces the text content of the element carrying the given id.
// It reports false when no element has that id; a template that lacks a
// placeholder simply doesn't receive that value.
func (d *Document) SetText(id, text string) bool {
	el := d.doc.FindElement(fmt.Sprintf("//*[@id='%s']", id))
	if el == nil {
		return false
	}
	el.SetText(text)
	return true
}

// Apply performs every substitution in subs and returns how many placeholder
// ids were actually present in the document.
func (d *Document) Apply(subs map[string]string) int {
	applied := 0
	for id, text := range subs {
		if d.SetText(id, text) {
			applied++
		}
	}
	return applied
}

// Save writes the document back to the path it was opened from, keeping the
// original XML declaration and element structure intact.
func (d *Document) Save() error {
	if d.path == "" {
		return fmt.Errorf("document has no backing file")
	}
	return d.SaveTo(d.path)
}

// SaveTo writes the document to path.
func (d *Document) SaveTo(path string) error {
	if err := d.doc.WriteToFile(path); err != nil {
		return fmt.Errorf("write template %s: %w", path, err)
	}
	return nil
}

// WriteTo serializes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}
