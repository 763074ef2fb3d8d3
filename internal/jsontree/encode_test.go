package jsontree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalKeepsKeyOrder(t *testing.T) {
	src := `{"zeta":1.50,"alpha":{"c":true,"b":null},"mid":[1e3,"x",{}]}`
	v, err := Parse([]byte(src))
	require.NoError(t, err)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestMarshalBuiltObject(t *testing.T) {
	obj := NewObject()
	obj.Set("name", String("Post"))
	obj.Set("count", Number("2"))
	obj.Set("tags", Array{String("a")})
	obj.Set("draft", Bool(false))

	out, err := json.MarshalIndent(obj, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"Post\",\n  \"count\": 2,\n  \"tags\": [\n    \"a\"\n  ],\n  \"draft\": false\n}", string(out))

	obj.Set("bad", Number("0x10"))
	_, err = json.Marshal(obj)
	assert.ErrorContains(t, err, `invalid number literal "0x10"`)
}
