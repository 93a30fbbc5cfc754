package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalScalars(t *testing.T) {
	cases := map[string]Value{
		"null":     Null{},
		"true":     Bool(true),
		"false":    Bool(false),
		"42":       Int(42),
		"-1":       Int(-1),
		"1.5":      Float(1.5),
		`"hi"`:     String("hi"),
		`"a\"b"`:   String(`a"b`),
		`"<&>"`:    String("<&>"), // no HTML escaping
		`"\n"`:     String("\n"),
		`"\u0001"`: String("\x01"),
	}
	for want, input := range cases {
		got, err := MarshalCanonical(input)
		require.NoError(t, err)
		assert.Equal(t, want, string(got), "input %#v", input)
	}
}

func TestMarshalCanonicalKeyOrder(t *testing.T) {
	got, err := MarshalCanonical(Object{"b": Int(2), "a": Int(1), "A": Int(0)})
	require.NoError(t, err)
	assert.Equal(t, `{"A":0,"a":1,"b":2}`, string(got))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	// U+0065 U+0301 (e + combining acute) normalizes to U+00E9
	decomposed := String("café")
	composed := String("café")

	a, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b, err := MarshalCanonical(composed)
	require.NoError(t, err)
	assert.Equal(t, b, a, "NFC normalization should unify both forms")
}

func TestMarshalCanonicalNested(t *testing.T) {
	got, err := MarshalCanonical(Object{
		"outer": Object{"y": Array{Int(1), Null{}}, "x": String("v")},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"outer":{"x":"v","y":[1,null]}}`, string(got))
}

func TestDocumentHashStable(t *testing.T) {
	doc := &Document{
		Smithy: "2.0",
		Shapes: map[AbsoluteShapeID]Shape{
			"ns#S": &StructureShape{
				Members: map[Identifier]Member{
					"a": {Target: "ns#String"},
				},
			},
			"ns#String": &SimpleShape{Kind: ShapeString},
		},
	}

	first, err := DocumentHash(doc)
	require.NoError(t, err)
	second, err := DocumentHash(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestDocumentHashDistinguishesContent(t *testing.T) {
	a := &Document{Smithy: "2.0", Shapes: map[AbsoluteShapeID]Shape{"ns#A": &SimpleShape{Kind: ShapeString}}}
	b := &Document{Smithy: "2.0", Shapes: map[AbsoluteShapeID]Shape{"ns#A": &SimpleShape{Kind: ShapeBlob}}}

	hashA, err := DocumentHash(a)
	require.NoError(t, err)
	hashB, err := DocumentHash(b)
	require.NoError(t, err)
	assert.NotEqual(t, hashA, hashB)
}
