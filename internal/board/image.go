package board

import (
	"context"
	"image"
)

// LoadImage replaces the underlay. Drawing is disabled until the image has
// loaded; remote batches received meanwhile are held back and drawn after
// the replay. Starting a new load while another is in flight drops the
// batches held for the old one, and the old result is ignored.
//
// An empty url removes the underlay, re-enables drawing and repaints.
func (b *Board) LoadImage(url string) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	if b.loadCancel != nil {
		b.loadCancel()
		b.loadCancel = nil
	}
	b.router.Reset()

	if url == "" {
		b.underlay.Remove()
		b.ready = true
		b.replayLocked()
		b.drainPendingLocked()
		b.mu.Unlock()
		b.log.Debug("underlay removed")
		b.changed()
		return
	}

	gen, restarted := b.underlay.Begin(url)
	if restarted && b.renderer.PendingLen() > 0 {
		n := b.renderer.DiscardPending()
		b.log.Warn("image load restarted, dropping held updates", "updates", n)
	}
	b.ready = false
	ctx, cancel := context.WithCancel(b.ctx)
	b.loadCancel = cancel
	b.loads.Add(1)
	held := b.renderer.PendingLen()
	b.mu.Unlock()

	b.log.Debug("loading underlay", "url", url, "gen", gen, "held", held)
	go func() {
		defer b.loads.Done()
		img, err := b.loader.Load(ctx, url)
		b.finishLoad(gen, url, img, err)
	}()
}

func (b *Board) finishLoad(gen uint64, url string, img image.Image, err error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	if err != nil || img == nil {
		stale := !b.underlay.Fail(gen)
		b.mu.Unlock()
		if stale {
			return
		}
		b.log.Error("underlay load failed", "url", url, "err", err)
		if f := b.listener.OnImageLoaded; f != nil {
			f(false)
		}
		return
	}
	if !b.underlay.Complete(gen, img) {
		b.mu.Unlock()
		b.log.Debug("ignoring stale underlay", "url", url, "gen", gen)
		return
	}
	b.replayLocked()
	held := b.drainPendingLocked()
	b.ready = true
	b.loadCancel = nil
	b.mu.Unlock()

	bounds := img.Bounds()
	b.log.Info("underlay loaded", "url", url, "width", bounds.Dx(), "height", bounds.Dy(), "held", held)
	if f := b.listener.OnImageLoaded; f != nil {
		f(true)
	}
	b.changed()
}

// ImageURL returns the current underlay url.
func (b *Board) ImageURL() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.underlay.URL()
}

// WaitLoads blocks until every image load started so far has finished.
func (b *Board) WaitLoads() {
	b.loads.Wait()
}
