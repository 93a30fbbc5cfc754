package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/castlebridge/smithyast/internal/assemble"
	"github.com/castlebridge/smithyast/internal/ast"
)

// Load error codes, distinct from the assembler's E1xx validation codes.
const (
	ErrCodeGeneric     = "E001" // generic/unknown error
	ErrCodeUnsupported = "E002" // unsupported file extension
	ErrCodeParseFailed = "E004" // file could not be parsed
	ErrCodeNotFound    = "E005" // path not found
)

// LoadError represents an error that occurred while loading a model file,
// before assembly could start.
type LoadError struct {
	Code    string
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDocument reads a model file and assembles it. The serialization is
// chosen by extension: .json (strict decode, duplicate shape IDs rejected),
// .yaml/.yml, or .cue. Returns either a validated document, a non-empty
// violation list, or a load error.
func LoadDocument(path string) (*ast.Document, []assemble.ValidationError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "file not found"}
		}
		return nil, nil, &LoadError{Code: ErrCodeGeneric, Path: path, Message: err.Error()}
	}

	switch filepath.Ext(path) {
	case ".json":
		doc, errs, err := assemble.DocumentJSON(data)
		if err != nil {
			return nil, nil, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: err.Error()}
		}
		return doc, errs, nil
	case ".yaml", ".yml":
		return loadYAML(path, data)
	case ".cue":
		return loadCUE(path, data)
	default:
		return nil, nil, &LoadError{
			Code: ErrCodeUnsupported, Path: path,
			Message: fmt.Sprintf("unsupported model format %q (want .json, .yaml, or .cue)", filepath.Ext(path)),
		}
	}
}

func loadYAML(path string, data []byte) (*ast.Document, []assemble.ValidationError, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: err.Error()}
	}
	value, err := ast.FromGo(raw)
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: err.Error()}
	}
	doc, errs := assemble.Document(value)
	return doc, errs, nil
}

func loadCUE(path string, data []byte) (*ast.Document, []assemble.ValidationError, error) {
	ctx := cuecontext.New()
	cueVal := ctx.CompileBytes(data)
	if err := cueVal.Err(); err != nil {
		return nil, nil, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: err.Error()}
	}

	var raw any
	if err := cueVal.Decode(&raw); err != nil {
		return nil, nil, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: err.Error()}
	}
	value, err := ast.FromGo(raw)
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: err.Error()}
	}
	doc, errs := assemble.Document(value)
	return doc, errs, nil
}
