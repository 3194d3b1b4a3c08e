package underlay

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CanvasBoard/internal/render/rendertest"
)

func TestManagerGenerations(t *testing.T) {
	m := NewManager(0.5, 0.5)
	g1, restarted := m.Begin("a.png")
	assert.False(t, restarted)
	assert.True(t, m.loading)

	g2, restarted := m.Begin("b.png")
	assert.True(t, restarted)
	assert.Equal(t, "b.png", m.URL())

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	assert.False(t, m.Complete(g1, img), "stale completion must be ignored")
	assert.Nil(t, m.img)

	assert.True(t, m.Complete(g2, img))
	assert.NotNil(t, m.img)
	assert.False(t, m.loading)
	assert.False(t, m.Complete(g2, img), "a generation completes once")
}

func TestManagerFailAndRemove(t *testing.T) {
	m := NewManager(0.5, 0.5)
	g, _ := m.Begin("a.png")
	assert.True(t, m.Fail(g))
	assert.False(t, m.loading)
	assert.Nil(t, m.img)

	g, _ = m.Begin("b.png")
	m.Remove()
	assert.False(t, m.Complete(g, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	assert.Empty(t, m.URL())
}

func TestManagerDrawCover(t *testing.T) {
	m := NewManager(0.5, 0.5)
	rec := rendertest.NewRecorder(100, 100)
	m.Draw(rec)
	assert.Empty(t, rec.Images, "nothing drawn before load")

	g, _ := m.Begin("wide.png")
	require.True(t, m.Complete(g, image.NewRGBA(image.Rect(0, 0, 200, 100))))
	m.Draw(rec)
	require.Len(t, rec.Images, 1)
	assert.InDelta(t, 50, rec.Images[0].Src.X, 1e-9)
	assert.InDelta(t, 100, rec.Images[0].Dst.W, 1e-9)
}
