// Package board assembles the whiteboard engine: input routing, rendering,
// history with undo/redo, batching and the image underlay.
package board

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"CanvasBoard/internal/input"
	"CanvasBoard/internal/logx"
	"CanvasBoard/internal/render"
	"CanvasBoard/internal/state"
	"CanvasBoard/internal/underlay"
)

// Board is an embeddable drawing surface. All entry points are serialized by
// one mutex, so events, timers and load completions observe a consistent
// state in the order they arrive.
type Board struct {
	mu       sync.Mutex
	cfg      Config
	listener Listener
	log      *slog.Logger

	surface  render.Surface
	renderer *render.Renderer
	history  *state.History
	router   *input.Router
	batcher  *state.Batcher
	underlay *underlay.Manager
	loader   underlay.Loader

	color    string
	drawMode bool
	ready    bool

	ctx         context.Context
	cancel      context.CancelFunc
	loadCancel  context.CancelFunc
	loads       sync.WaitGroup
	unsubscribe func()
	closed      bool
}

var _ input.Handler = (*Board)(nil)

// Option configures the collaborators of a Board.
type Option func(*options)

type options struct {
	surface   render.Surface
	loader    underlay.Loader
	newID     state.IDGenerator
	source    input.EventSource
	afterFunc state.AfterFunc
	listener  Listener
}

// WithSurface draws on s instead of a new fogleman/gg surface.
func WithSurface(s render.Surface) Option { return func(o *options) { o.surface = s } }

// WithLoader fetches underlay images with l.
func WithLoader(l underlay.Loader) Option { return func(o *options) { o.loader = l } }

// WithIDGenerator replaces the stroke id generator.
func WithIDGenerator(g state.IDGenerator) Option { return func(o *options) { o.newID = g } }

// WithEventSource subscribes the board to src until Close.
func WithEventSource(src input.EventSource) Option { return func(o *options) { o.source = src } }

// WithAfterFunc replaces the batch flush timer factory.
func WithAfterFunc(f state.AfterFunc) Option { return func(o *options) { o.afterFunc = f } }

// WithListener registers event callbacks.
func WithListener(l Listener) Option { return func(o *options) { o.listener = l } }

// New builds a board. When cfg.ImageURL is set the underlay starts loading
// right away and drawing stays disabled until it has loaded.
func New(cfg Config, opts ...Option) *Board {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.StrokeColor == "" {
		cfg.StrokeColor = render.DefaultStrokeColor
	}

	w, h := cfg.surfaceSize(cfg.Width, cfg.Height)
	if o.surface == nil {
		o.surface = render.NewGGSurface(w, h)
	} else if o.surface.Width() != w || o.surface.Height() != h {
		o.surface.Resize(w, h)
	}
	if o.loader == nil {
		o.loader = underlay.NewDefaultLoader()
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Board{
		cfg:      cfg,
		listener: o.listener,
		log:      logx.For("board"),
		surface:  o.surface,
		renderer: render.NewRenderer(o.surface, cfg.StrokeColor, cfg.LineWidth),
		history:  state.NewHistory(),
		router:   input.NewRouter(o.newID),
		underlay: underlay.NewManager(cfg.FocusX, cfg.FocusY),
		loader:   o.loader,
		color:    cfg.StrokeColor,
		ready:    true,
		ctx:      ctx,
		cancel:   cancel,
	}
	var batchOpts []state.BatcherOption
	if o.afterFunc != nil {
		batchOpts = append(batchOpts, state.WithAfterFunc(o.afterFunc))
	}
	b.batcher = state.NewBatcher(cfg.BatchFlushDelay, b.emitBatch, batchOpts...)

	if cfg.ImageURL != "" {
		b.LoadImage(cfg.ImageURL)
	}
	if o.source != nil {
		b.unsubscribe = o.source.Subscribe(b)
	}
	return b
}

// Close releases the event subscription, cancels in-flight image loads and
// the pending batch flush. Buffered updates are dropped.
func (b *Board) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	b.cancel()
	b.batcher.Close()
	b.log.Debug("board closed")
}

func (b *Board) emitBatch(batch state.Batch) {
	if f := b.listener.OnBatch; f != nil {
		f(batch)
	}
}

func (b *Board) changed() {
	if f := b.listener.OnChange; f != nil {
		f()
	}
}

// recordAndRenderLocked appends u, which holds fraction coordinates, to the
// history and draws it.
func (b *Board) recordAndRenderLocked(u state.StrokeUpdate) {
	b.history.Record(u)
	b.renderer.Draw(u, true)
}

func (b *Board) redrawBackgroundLocked() {
	b.renderer.ClearSurface()
	b.underlay.Draw(b.surface)
}

// replayLocked repaints from a clean surface: background, then every history
// entry in order with its current visibility. History and the undo stack are
// rebuilt along the way.
func (b *Board) replayLocked() {
	entries := b.history.Rewind()
	b.redrawBackgroundLocked()
	for _, u := range entries {
		b.recordAndRenderLocked(u)
	}
	b.log.Debug("replayed", "entries", b.history.Len())
}

func (b *Board) drainPendingLocked() int {
	pending := b.renderer.TakePending()
	for _, u := range pending {
		b.recordAndRenderLocked(u)
	}
	return len(pending)
}

// ToggleDrawMode switches freehand input on or off. It does nothing when
// drawing is disabled in the config. Switching off abandons the stroke in
// progress.
func (b *Board) ToggleDrawMode() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.cfg.DrawEnabled {
		return
	}
	b.drawMode = !b.drawMode
	if !b.drawMode {
		b.router.Reset()
	}
}

// DrawMode reports whether freehand input is on.
func (b *Board) DrawMode() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drawMode
}

// Ready reports whether the surface accepts drawing, i.e. no underlay is
// loading.
func (b *Board) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready
}

// ChangeColor sets the color of subsequent local strokes, e.g. "#ffffff" or
// "rgb(r,g,b)".
func (b *Board) ChangeColor(c string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.color = c
}

// Color returns the current stroke color.
func (b *Board) Color() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.color
}

// Clear discards the history, both stacks and unsent updates and repaints
// the background. emit fires OnClear.
func (b *Board) Clear(emit bool) {
	b.mu.Lock()
	if b.closed || !b.cfg.ClearEnabled {
		b.mu.Unlock()
		return
	}
	b.history.Reset()
	b.batcher.Discard()
	b.router.Reset()
	b.redrawBackgroundLocked()
	b.mu.Unlock()

	b.log.Debug("cleared")
	if emit && b.listener.OnClear != nil {
		b.listener.OnClear()
	}
	b.changed()
}

// Undo hides the most recently completed stroke and repaints. It is a no-op
// when undo is disabled or there is nothing to undo. emit fires OnUndo.
func (b *Board) Undo(emit bool) {
	b.mu.Lock()
	if b.closed || !b.cfg.UndoEnabled {
		b.mu.Unlock()
		return
	}
	id, ok := b.history.Undo()
	if !ok {
		b.mu.Unlock()
		return
	}
	b.replayLocked()
	b.mu.Unlock()

	b.log.Debug("undo", "stroke", id)
	if emit && b.listener.OnUndo != nil {
		b.listener.OnUndo(id)
	}
	b.changed()
}

// Redo shows the most recently undone stroke again and repaints. emit fires
// OnRedo.
func (b *Board) Redo(emit bool) {
	b.mu.Lock()
	if b.closed || !b.cfg.RedoEnabled {
		b.mu.Unlock()
		return
	}
	id, ok := b.history.Redo()
	if !ok {
		b.mu.Unlock()
		return
	}
	b.replayLocked()
	b.mu.Unlock()

	b.log.Debug("redo", "stroke", id)
	if emit && b.listener.OnRedo != nil {
		b.listener.OnRedo(id)
	}
	b.changed()
}

// DrawUpdates ingests a batch received from elsewhere; coordinates are
// fractions. While an underlay is loading the batch is queued and drawn,
// after earlier queued batches, once the load completes.
func (b *Board) DrawUpdates(updates []state.StrokeUpdate) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	if !b.ready {
		b.renderer.Defer(updates)
		b.mu.Unlock()
		return
	}
	b.drainPendingLocked()
	for _, u := range updates {
		b.recordAndRenderLocked(u)
	}
	b.mu.Unlock()
	b.changed()
}

// Resize changes the surface size and replays the history so strokes keep
// their relative positions. With an aspect ratio configured the height is
// derived from the width.
func (b *Board) Resize(width, height int) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	width, height = b.cfg.surfaceSize(width, height)
	if width == b.surface.Width() && height == b.surface.Height() {
		b.mu.Unlock()
		return
	}
	b.surface.Resize(width, height)
	b.replayLocked()
	b.mu.Unlock()

	b.log.Debug("resized", "width", width, "height", height)
	b.changed()
}

// Size returns the surface size in pixels.
func (b *Board) Size() (width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Width(), b.surface.Height()
}

// Snapshot returns a copy of the current pixels.
func (b *Board) Snapshot() image.Image {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Image()
}

// History returns the recorded updates in drawing order.
func (b *Board) History() []state.StrokeUpdate {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Entries()
}

// UndoStack returns the undoable stroke ids, oldest first.
func (b *Board) UndoStack() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.UndoStack()
}

// RedoStack returns the redoable stroke ids, oldest first.
func (b *Board) RedoStack() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.RedoStack()
}

// CanUndo reports whether Undo would do anything.
func (b *Board) CanUndo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg.UndoEnabled && b.history.CanUndo()
}

// CanRedo reports whether Redo would do anything.
func (b *Board) CanRedo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg.RedoEnabled && b.history.CanRedo()
}

// FlushNow sends buffered updates immediately instead of waiting for the
// batch timer.
func (b *Board) FlushNow() {
	b.batcher.Flush()
}

// Config returns the settings the board was created with.
func (b *Board) Config() Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg
}
