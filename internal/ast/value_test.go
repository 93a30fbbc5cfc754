package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValueScalars(t *testing.T) {
	cases := map[string]Value{
		`null`:    Null{},
		`true`:    Bool(true),
		`false`:   Bool(false),
		`"hi"`:    String("hi"),
		`42`:      Int(42),
		`-7`:      Int(-7),
		`1.5`:     Float(1.5),
		`2e3`:     Float(2000),
		`"ns#S"`:  String("ns#S"),
	}
	for input, want := range cases {
		got, err := DecodeValue([]byte(input))
		require.NoError(t, err, "input %s", input)
		assert.Equal(t, want, got, "input %s", input)
	}
}

func TestDecodeValueComposite(t *testing.T) {
	got, err := DecodeValue([]byte(`{"a": [1, {"b": null}], "c": "x"}`))
	require.NoError(t, err)

	obj, ok := got.(Object)
	require.True(t, ok)
	assert.Equal(t, Object{
		"a": Array{Int(1), Object{"b": Null{}}},
		"c": String("x"),
	}, obj)
}

func TestDecodeValueEmptyContainers(t *testing.T) {
	got, err := DecodeValue([]byte(`{"shapes": {}, "list": []}`))
	require.NoError(t, err)
	assert.Equal(t, Object{"shapes": Object{}, "list": Array{}}, got)
}

func TestDecodeValueDuplicateKey(t *testing.T) {
	_, err := DecodeValue([]byte(`{"shapes": {"ns#S": 1, "ns#S": 2}}`))
	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "shapes", dup.Path)
	assert.Equal(t, "ns#S", dup.Key)
}

func TestDecodeValueTrailingData(t *testing.T) {
	_, err := DecodeValue([]byte(`{} {}`))
	assert.Error(t, err)
}

func TestDecodeValueMalformed(t *testing.T) {
	for _, input := range []string{``, `{`, `[1,]`, `{"a"}`} {
		_, err := DecodeValue([]byte(input))
		assert.Error(t, err, "input %s should fail", input)
	}
}

func TestFromGo(t *testing.T) {
	got, err := FromGo(map[string]any{
		"s":   "str",
		"i":   7,
		"i64": int64(8),
		"f":   1.25,
		"b":   true,
		"n":   nil,
		"arr": []any{"x", 2},
	})
	require.NoError(t, err)
	assert.Equal(t, Object{
		"s":   String("str"),
		"i":   Int(7),
		"i64": Int(8),
		"f":   Float(1.25),
		"b":   Bool(true),
		"n":   Null{},
		"arr": Array{String("x"), Int(2)},
	}, got)
}

func TestFromGoUnsupported(t *testing.T) {
	_, err := FromGo(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}

func TestObjectSortedKeys(t *testing.T) {
	obj := Object{"b": Int(1), "a": Int(2), "A": Int(3)}
	assert.Equal(t, []string{"A", "a", "b"}, obj.SortedKeys())
}

func TestMarshalValueDeterministic(t *testing.T) {
	obj := Object{"b": Int(1), "a": Array{String("x")}, "n": Null{}}
	first, err := MarshalValue(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":["x"],"b":1,"n":null}`, string(first))

	second, err := MarshalValue(obj)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
