package ast

import "slices"

// Document is a validated model document: a version string, free-form
// metadata, and the shapes mapping. The mapping type makes shape IDs unique
// by construction; a serialized document carrying two definitions under one
// ID must be rejected before a Document can exist.
type Document struct {
	Smithy   string
	Metadata map[string]Value
	Shapes   map[AbsoluteShapeID]Shape
}

// ShapeIDs returns the shape IDs in UTF-16 code unit order, for
// deterministic iteration.
func (d *Document) ShapeIDs() []AbsoluteShapeID {
	ids := make([]AbsoluteShapeID, 0, len(d.Shapes))
	for id := range d.Shapes {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b AbsoluteShapeID) int {
		return compareKeysUTF16(string(a), string(b))
	})
	return ids
}
