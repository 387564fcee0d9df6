package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntUnmarshal(t *testing.T) {
	type payload struct {
		Quantity FlexInt `json:"quantity"`
	}

	t.Run("numeric string", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"quantity":"2"}`), &p))
		assert.Equal(t, 2, p.Quantity.Int())
	})

	t.Run("plain number", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"quantity":2}`), &p))
		assert.Equal(t, 2, p.Quantity.Int())
	})

	t.Run("null is zero", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"quantity":null}`), &p))
		assert.Equal(t, 0, p.Quantity.Int())
	})

	t.Run("non-numeric string fails", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"quantity":"two"}`), &p))
	})

	t.Run("marshals as a number", func(t *testing.T) {
		out, err := json.Marshal(payload{Quantity: 3})
		require.NoError(t, err)
		assert.JSONEq(t, `{"quantity":3}`, string(out))
	})
}

func TestFlexFloatUnmarshal(t *testing.T) {
	type payload struct {
		Total FlexFloat `json:"total"`
	}

	t.Run("numeric string", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"total":"200.50"}`), &p))
		assert.InDelta(t, 200.50, p.Total.Float(), 0.0001)
	})

	t.Run("plain number", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"total":200}`), &p))
		assert.InDelta(t, 200.0, p.Total.Float(), 0.0001)
	})

	t.Run("non-numeric string fails", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"total":"lots"}`), &p))
	})
}
