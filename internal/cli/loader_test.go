package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlebridge/smithyast/internal/ast"
)

func TestLoadDocumentFormatsAgree(t *testing.T) {
	// the same model in every supported serialization hashes identically
	hashes := make(map[string]string)
	for _, name := range []string{"weather.json", "weather.yaml", "weather.cue"} {
		doc, errs, err := LoadDocument(filepath.Join("testdata", name))
		require.NoError(t, err, name)
		require.Empty(t, errs, name)
		require.NotNil(t, doc, name)

		hash, err := ast.DocumentHash(doc)
		require.NoError(t, err)
		hashes[name] = hash
	}
	assert.Equal(t, hashes["weather.json"], hashes["weather.yaml"])
	assert.Equal(t, hashes["weather.json"], hashes["weather.cue"])
}

func TestLoadDocumentInvalidModel(t *testing.T) {
	doc, errs, err := LoadDocument(filepath.Join("testdata", "invalid.json"))
	require.NoError(t, err)
	assert.Nil(t, doc)
	assert.NotEmpty(t, errs)
}

func TestLoadDocumentNotFound(t *testing.T) {
	_, _, err := LoadDocument(filepath.Join("testdata", "no-such-file.json"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}

func TestLoadDocumentUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.txt")
	writeFile(t, path, "not a model")

	_, _, err := LoadDocument(path)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeUnsupported, loadErr.Code)
}

func TestLoadDocumentMalformed(t *testing.T) {
	cases := map[string]string{
		"bad.json": `{not json`,
		"bad.yaml": "a: [unclosed",
		"bad.cue":  `smithy: "2.0" & 3`,
	}
	dir := t.TempDir()
	for name, content := range cases {
		path := filepath.Join(dir, name)
		writeFile(t, path, content)

		_, _, err := LoadDocument(path)
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr, name)
		assert.Equal(t, ErrCodeParseFailed, loadErr.Code, name)
	}
}
