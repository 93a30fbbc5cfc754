package assemble

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/castlebridge/smithyast/internal/ast"
)

// Options configures document assembly.
type Options struct {
	// Workers sets the number of goroutines validating shapes. Values below
	// 2 keep assembly sequential. Per-shape validation has no cross-shape
	// dependency; each worker accumulates into its own slot and results are
	// merged afterward, so no lock guards the hot path.
	Workers int
}

// Document assembles and validates a model document from a generic value
// tree. On success the typed document is returned with no errors; on failure
// the document is nil and every violation found is reported.
func Document(v ast.Value) (*ast.Document, []ValidationError) {
	return DocumentWithOptions(v, Options{})
}

// DocumentWithOptions is Document with explicit assembly options.
func DocumentWithOptions(v ast.Value, opts Options) (*ast.Document, []ValidationError) {
	root, ok := v.(ast.Object)
	if !ok {
		return nil, []ValidationError{errorf(ErrInvalidValue, "", "document is not an object")}
	}

	var errs []ValidationError
	doc := &ast.Document{}

	smithyVal, present := root["smithy"]
	if !present {
		errs = append(errs, errorf(ErrMissingRequiredField, "smithy", "document requires field \"smithy\""))
	} else if s, ok := smithyVal.(ast.String); ok {
		doc.Smithy = string(s)
	} else {
		errs = append(errs, errorf(ErrInvalidValue, "smithy", "version is not a string"))
	}

	if metaVal, present := root["metadata"]; present {
		if meta, ok := metaVal.(ast.Object); ok {
			doc.Metadata = make(map[string]ast.Value, len(meta))
			for k, v := range meta {
				doc.Metadata[k] = v
			}
		} else {
			errs = append(errs, errorf(ErrInvalidValue, "metadata", "metadata is not an object"))
		}
	}

	for _, field := range root.SortedKeys() {
		switch field {
		case "smithy", "metadata", "shapes":
		default:
			errs = append(errs, errorf(ErrUnexpectedField, field, "field %q is not applicable to a document", field))
		}
	}

	doc.Shapes = make(map[ast.AbsoluteShapeID]ast.Shape)
	if shapesVal, present := root["shapes"]; present {
		shapes, ok := shapesVal.(ast.Object)
		if !ok {
			errs = append(errs, errorf(ErrInvalidValue, "shapes", "shapes is not an object"))
		} else {
			shapeErrs := assembleShapes(doc, shapes, opts.Workers)
			errs = append(errs, shapeErrs...)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}

// assembleShapes validates every entry of the shapes mapping, sequentially
// or fanned out across workers. Output order is deterministic either way:
// results are merged in sorted-key order.
func assembleShapes(doc *ast.Document, shapes ast.Object, workers int) []ValidationError {
	keys := shapes.SortedKeys()

	type result struct {
		id    ast.AbsoluteShapeID
		shape ast.Shape
		errs  []ValidationError
	}
	results := make([]result, len(keys))

	assembleOne := func(i int) {
		key := keys[i]
		path := childKey("shapes", key)

		id, err := ast.ParseAbsoluteShapeID(key)
		if err != nil {
			results[i] = result{errs: []ValidationError{errorf(ErrLexical, path, "%v", err)}}
			return
		}
		shape, errs := assembleShape(path, shapes[key])
		results[i] = result{id: id, shape: shape, errs: errs}
	}

	if workers > 1 {
		indexes := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					assembleOne(i)
				}
			}()
		}
		for i := range keys {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
	} else {
		for i := range keys {
			assembleOne(i)
		}
	}

	var errs []ValidationError
	for _, r := range results {
		if len(r.errs) > 0 {
			errs = append(errs, r.errs...)
			continue
		}
		doc.Shapes[r.id] = r.shape
	}
	return errs
}

// DocumentJSON decodes JSON bytes and assembles the document. A duplicate
// key inside the shapes object is a DuplicateShapeID violation, caught here
// because a decoded map cannot present both entries to the assembler. Any
// other decode failure is returned as an error, not a violation.
func DocumentJSON(data []byte) (*ast.Document, []ValidationError, error) {
	v, err := ast.DecodeValue(data)
	if err != nil {
		var dup *ast.DuplicateKeyError
		if errors.As(err, &dup) && dup.Path == "shapes" {
			return nil, []ValidationError{errorf(ErrDuplicateShapeID, childKey("shapes", dup.Key),
				"shape %q is defined more than once", dup.Key)}, nil
		}
		return nil, nil, fmt.Errorf("decoding document: %w", err)
	}
	doc, errs := Document(v)
	return doc, errs, nil
}

// Render formats a violation list for human-readable output, one violation
// per line in path order.
func Render(errs []ValidationError) string {
	var b strings.Builder
	for _, e := range errs {
		b.WriteString(e.Error())
		b.WriteByte('\n')
	}
	return b.String()
}
