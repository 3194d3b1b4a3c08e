package net

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CanvasBoard/internal/board"
	"CanvasBoard/internal/render/rendertest"
	"CanvasBoard/internal/state"
)

func TestMessageWireFormat(t *testing.T) {
	m := BatchMessage("peer-1", state.Batch{Seq: 7, Updates: []state.StrokeUpdate{
		{X: 0.5, Y: 0.25, Type: state.Stop, Color: "rgb(216, 184, 0)", ID: "s1", Visible: true},
	}})
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"batch","seq":7,"origin":"peer-1","updates":[
		{"x":0.5,"y":0.25,"type":"stop","color":"rgb(216, 184, 0)","id":"s1","visible":true}]}`, string(data))
}

func TestApply(t *testing.T) {
	cfg := board.DefaultConfig()
	cfg.Width, cfg.Height = 100, 100
	cleared := 0
	b := board.New(cfg,
		board.WithSurface(rendertest.NewRecorder(100, 100)),
		board.WithListener(board.Listener{OnClear: func() { cleared++ }}),
	)
	defer b.Close()

	Apply(b, Message{Type: TypeBatch, Updates: []state.StrokeUpdate{
		{X: 0.1, Y: 0.1, Type: state.Start, ID: "r", Visible: true},
		{X: 0.2, Y: 0.1, Type: state.Drag, ID: "r", Visible: true},
	}})
	assert.Len(t, b.History(), 2)

	Apply(b, ClearMessage("other"))
	assert.Empty(t, b.History())
	assert.Zero(t, cleared, "remote clears are not re-announced")

	Apply(b, Message{Type: "bogus"})
}
