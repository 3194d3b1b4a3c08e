package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrokeUpdateWireFormat(t *testing.T) {
	u := StrokeUpdate{X: 0.1, Y: 0.5, Type: Drag, Color: "#ff0000", ID: "s1", Visible: true}
	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":0.1,"y":0.5,"type":"drag","color":"#ff0000","id":"s1","visible":true}`, string(b))

	var got StrokeUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"x":0.2,"y":0.3,"type":"stop","color":"red","id":"s2","visible":false}`), &got))
	assert.Equal(t, StrokeUpdate{X: 0.2, Y: 0.3, Type: Stop, Color: "red", ID: "s2"}, got)
}

func TestUpdateTypeRejectsUnknownName(t *testing.T) {
	var u StrokeUpdate
	err := json.Unmarshal([]byte(`{"type":"erase"}`), &u)
	assert.ErrorContains(t, err, "erase")

	_, err = UpdateType(7).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "UpdateType(7)", UpdateType(7).String())
}

func TestNewStrokeIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewStrokeID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSequence(t *testing.T) {
	var s Sequence
	assert.Equal(t, uint64(1), s.Next())
	s.Observe(10)
	assert.Equal(t, uint64(10), s.Current())
	s.Observe(3)
	assert.Equal(t, uint64(11), s.Next())
}
