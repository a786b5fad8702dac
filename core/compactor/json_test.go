package compactor

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue_Numbers(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{`42`, Int(42)},
		{`-7`, Int(-7)},
		{`3.14`, Float(3.14)},
		{`1.0`, Float(1)},
		{`1e3`, Float(1000)},
		{`9223372036854775808`, Float(9223372036854775808)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseValue([]byte(tt.in))
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, v), "got %s %v", v.Kind(), v)
		})
	}
}

func TestParseValue_KeepsKeyOrder(t *testing.T) {
	v, err := ParseValue([]byte(`{"z":1,"a":{"y":true,"b":null},"m":[1,"x"]}`))
	require.NoError(t, err)

	rec, ok := v.AsObject()
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, rec.Keys())

	out, err := EncodeValue(v)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":{"y":true,"b":null},"m":[1,"x"]}`, string(out))
}

func TestParseValue_Errors(t *testing.T) {
	for _, in := range []string{``, `{"a":`, `{"a":1} {}`, `[1,]`} {
		_, err := ParseValue([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestEncodeValue_Floats(t *testing.T) {
	out, err := EncodeValue(Array(Float(3), Float(0.5), Float(1e21), Int(3)))
	require.NoError(t, err)
	assert.Equal(t, `[3.0,0.5,1e+21,3]`, string(out))

	_, err = EncodeValue(Float(math.NaN()))
	assert.Error(t, err)
}

func TestEncodeValue_EscapesStrings(t *testing.T) {
	out, err := EncodeValue(String("a\"b<c>\n"))
	require.NoError(t, err)
	assert.Equal(t, `"a\"b<c>\n"`, string(out))
}

func TestRecord_JSON(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"b":2,"a":1}`), &rec))
	assert.Equal(t, []string{"b", "a"}, rec.Keys())

	out, err := json.Marshal(&rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2,"a":1}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`[1]`), &rec))
}

func TestEqual(t *testing.T) {
	a := mustRecord(t, `{"x":1,"y":[1,{"k":"v"}]}`)
	b := mustRecord(t, `{"y":[1,{"k":"v"}],"x":1}`)
	assert.True(t, a.Equal(b), "key order is ignored")

	assert.False(t, Equal(Int(1), Float(1)))
	assert.True(t, Equal(Float(math.NaN()), Float(math.NaN())))
	assert.False(t, Equal(Array(Int(1), Int(2)), Array(Int(2), Int(1))))
}

func TestRecord_SetKeepsPosition(t *testing.T) {
	rec := NewRecord()
	rec.Set("a", Int(1))
	rec.Set("b", Int(2))
	rec.Set("a", Int(3))
	rec.Delete("missing")

	assert.Equal(t, []string{"a", "b"}, rec.Keys())
	v, _ := rec.Get("a")
	assert.Equal(t, Int(3), v)

	rec.Delete("a")
	assert.Equal(t, []string{"b"}, rec.Keys())
	assert.False(t, rec.Has("a"))
}
