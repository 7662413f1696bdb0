package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactedFloat_MarshalVisible(t *testing.T) {
	data, err := json.Marshal(VisibleFloat(2500))
	require.NoError(t, err)
	assert.JSONEq(t, `{"visible":true,"value":2500}`, string(data))
}

func TestRedactedFloat_MarshalHidden(t *testing.T) {
	data, err := json.Marshal(HiddenFloat())
	require.NoError(t, err)
	assert.JSONEq(t, `{"visible":false}`, string(data))
}

func TestRedactedFloat_ZeroIsNotHidden(t *testing.T) {
	data, err := json.Marshal(VisibleFloat(0))
	require.NoError(t, err)
	// Zero and hidden must remain distinguishable on the wire.
	assert.JSONEq(t, `{"visible":true,"value":0}`, string(data))
}

func TestRedactedFloat_RoundTrip(t *testing.T) {
	for _, orig := range []RedactedFloat{VisibleFloat(-12.5), VisibleFloat(0), HiddenFloat()} {
		data, err := json.Marshal(orig)
		require.NoError(t, err)

		var decoded RedactedFloat
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, orig, decoded)
	}
}

func TestRedactedInt_Marshal(t *testing.T) {
	data, err := json.Marshal(VisibleInt(3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"visible":true,"value":3}`, string(data))

	data, err = json.Marshal(HiddenInt())
	require.NoError(t, err)
	assert.JSONEq(t, `{"visible":false}`, string(data))
}

func TestRedactFloat(t *testing.T) {
	v, ok := RedactFloat(42, true).Value()
	assert.True(t, ok)
	assert.Equal(t, 42.0, v)

	_, ok = RedactFloat(42, false).Value()
	assert.False(t, ok)
}
