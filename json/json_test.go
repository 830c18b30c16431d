package json

import (
	encjson "encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	dict := map[string]interface{}{
		"native":   7,
		"int64":    int64(9),
		"decoded":  float64(20),
		"fraction": 2.5,
		"number":   encjson.Number("12"),
		"text":     " 15 ",
		"bogus":    []int{1},
	}

	for _, tc := range []struct {
		key     string
		want    int
		exists  bool
		wantErr bool
	}{
		{key: "native", want: 7, exists: true},
		{key: "int64", want: 9, exists: true},
		{key: "decoded", want: 20, exists: true},
		{key: "number", want: 12, exists: true},
		{key: "text", want: 15, exists: true},
		{key: "fraction", exists: true, wantErr: true},
		{key: "bogus", exists: true, wantErr: true},
		{key: "absent"},
	} {
		t.Run(tc.key, func(t *testing.T) {
			got, exists, err := Int(tc.key, dict)
			assert.Equal(t, tc.exists, exists)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUint64RejectsNegative(t *testing.T) {
	_, exists, err := Uint64("seed", map[string]interface{}{"seed": -1})
	assert.True(t, exists)
	assert.Error(t, err)

	seed, exists, err := Uint64("seed", map[string]interface{}{"seed": float64(1e12)})
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, uint64(1e12), seed)
}

func TestFloatStringBoolean(t *testing.T) {
	dict := map[string]interface{}{
		"p":         50,
		"cooling":   0.9,
		"criterion": " maximin ",
		"jitter":    false,
		"envJitter": "true",
	}
	p, _, err := Float("p", dict)
	require.NoError(t, err)
	assert.Equal(t, 50.0, p)

	cooling, _, err := Float("cooling", dict)
	require.NoError(t, err)
	assert.Equal(t, 0.9, cooling)

	name, exists, err := String("criterion", dict)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "maximin", name)

	jitter, exists, err := Boolean("jitter", dict)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.False(t, jitter)

	envJitter, _, err := Boolean("envJitter", dict)
	require.NoError(t, err)
	assert.True(t, envJitter)

	_, _, err = String("p", dict)
	assert.Error(t, err)
	assert.True(t, Has("p", dict))
	assert.False(t, Has("q", dict))
}

func TestFloatAcceptsEveryIntegerKind(t *testing.T) {
	for _, value := range []interface{}{
		int(2), int8(2), int16(2), int32(2), int64(2),
		uint(2), uint8(2), uint16(2), uint32(2), uint64(2),
		float32(2), encjson.Number("2"), "2",
	} {
		f64, exists, err := Float("norm", map[string]interface{}{"norm": value})
		require.NoError(t, err, "%T", value)
		assert.True(t, exists)
		assert.Equal(t, 2.0, f64, "%T", value)
	}
	_, _, err := Float("norm", map[string]interface{}{"norm": []int{2}})
	assert.Error(t, err)
}
