package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	valid := []string{"a", "A", "_a1", "__a1", "_1", "1a", "foo_bar", "Foo123", "z9_"}
	for _, s := range valid {
		id, err := ParseIdentifier(s)
		require.NoError(t, err, "identifier %q", s)
		assert.Equal(t, Identifier(s), id)
	}

	invalid := []string{"", "a$b", "___a", "___1", "_", "__", "a-b", "a.b", " a", "a "}
	for _, s := range invalid {
		_, err := ParseIdentifier(s)
		assert.Error(t, err, "identifier %q should fail", s)
	}
}

func TestParseIdentifierLexicalError(t *testing.T) {
	_, err := ParseIdentifier("a$b")
	var lex *LexicalError
	require.ErrorAs(t, err, &lex)
	assert.Equal(t, "identifier", lex.Grammar)
	assert.Equal(t, "a$b", lex.Input)
}

func TestParseEnumMemberIdentifier(t *testing.T) {
	valid := []string{"FOO_BAR", "Foo1", "a", "ACTIVE"}
	for _, s := range valid {
		_, err := ParseEnumMemberIdentifier(s)
		assert.NoError(t, err, "enum member %q", s)
	}

	invalid := []string{"_Foo", "1Foo", "", "__a", "_1"}
	for _, s := range invalid {
		_, err := ParseEnumMemberIdentifier(s)
		assert.Error(t, err, "enum member %q should fail", s)
	}
}

func TestParseNamespace(t *testing.T) {
	valid := []string{"com.example", "com", "a.b.c", "_ns.sub1"}
	for _, s := range valid {
		_, err := ParseNamespace(s)
		assert.NoError(t, err, "namespace %q", s)
	}

	invalid := []string{"", "com..example", "com.example.", ".com", "com.___a", "com example"}
	for _, s := range invalid {
		_, err := ParseNamespace(s)
		assert.Error(t, err, "namespace %q should fail", s)
	}
}

func TestParseAbsoluteShapeID(t *testing.T) {
	id, err := ParseAbsoluteShapeID("com.example#Widget")
	require.NoError(t, err)
	assert.Equal(t, Namespace("com.example"), id.Namespace())
	assert.Equal(t, Identifier("Widget"), id.Name())

	invalid := []string{
		"Widget",                    // no '#'
		"com.example#Widget#Extra",  // second '#'
		"com.example#",              // empty name
		"#Widget",                   // empty namespace
		"com..example#Widget",       // bad namespace
		"com.example#Widget$member", // member selector not allowed
		"",
	}
	for _, s := range invalid {
		_, err := ParseAbsoluteShapeID(s)
		assert.Error(t, err, "absolute shape ID %q should fail", s)
	}
}

func TestParseRootShapeID(t *testing.T) {
	valid := []string{"com.example#Widget", "Widget", "_local"}
	for _, s := range valid {
		_, err := ParseRootShapeID(s)
		assert.NoError(t, err, "root shape ID %q", s)
	}

	invalid := []string{"", "ns#", "#Widget", "___Widget"}
	for _, s := range invalid {
		_, err := ParseRootShapeID(s)
		assert.Error(t, err, "root shape ID %q should fail", s)
	}
}

func TestParseShapeID(t *testing.T) {
	valid := []string{
		"com.example#Widget",
		"com.example#Widget$member",
		"Widget",
		"Widget$member",
	}
	for _, s := range valid {
		_, err := ParseShapeID(s)
		assert.NoError(t, err, "shape ID %q", s)
	}

	invalid := []string{
		"com.example#Widget$$bad", // selector must be a plain identifier
		"com.example#Widget$",     // empty selector
		"$member",                 // no root
		"com.example#Widget$a$b",  // second '$' in selector
		"",
	}
	for _, s := range invalid {
		_, err := ParseShapeID(s)
		assert.Error(t, err, "shape ID %q should fail", s)
	}
}

func TestParseShapeIDMember(t *testing.T) {
	valid := []string{"$member", "$1a", "$_a"}
	for _, s := range valid {
		_, err := ParseShapeIDMember(s)
		assert.NoError(t, err, "shape ID member %q", s)
	}

	invalid := []string{"member", "$", "$___a", "$$a", ""}
	for _, s := range invalid {
		_, err := ParseShapeIDMember(s)
		assert.Error(t, err, "shape ID member %q should fail", s)
	}
}
