package assemble

import "fmt"

// Validation error codes (E100-E108)
const (
	ErrUnknownShapeType      = "E100" // missing or unrecognized "type" tag
	ErrLexical               = "E101" // identifier-shaped field fails its grammar
	ErrDuplicateMember       = "E102" // member names collide case-insensitively
	ErrEmptyMemberSet        = "E103" // union/enum/intEnum member mapping empty
	ErrInvalidEnumMemberName = "E104" // valid identifier, invalid enum member name
	ErrMissingRequiredField  = "E105" // required field absent for the variant
	ErrUnexpectedField       = "E106" // field not applicable to the variant
	ErrDuplicateShapeID      = "E107" // two shape definitions under one ID
	ErrInvalidValue          = "E108" // value has the wrong structural kind
)

// ValidationError represents one structural violation, scoped to a single
// location in the document.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
}

// errorf builds a ValidationError in place.
func errorf(code, path, format string, args ...any) ValidationError {
	return ValidationError{Path: path, Code: code, Message: fmt.Sprintf(format, args...)}
}

// childField appends an unquoted field segment to a path.
func childField(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

// childKey appends a quoted key segment to a path, producing the
// shapes."ns#Shape".members."name" form.
func childKey(path, key string) string {
	return fmt.Sprintf("%s.%q", path, key)
}

// childIndex appends a list index segment to a path.
func childIndex(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
