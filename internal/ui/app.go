package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"AreaBoard/internal/area"
	"AreaBoard/internal/export"
	"AreaBoard/internal/state"
)

// App is one board window: a BoardWidget with its layers, the toolbar and a
// status line.
type App struct {
	fyneApp fyne.App
	win     fyne.Window
	cfg     Config
	opts    []state.Option

	areas  *area.Widget
	board  *BoardWidget
	status *widget.Label
	layers *widget.Select

	publish func(state.Snapshot)

	cursorX, cursorY float64
	cursorIn         bool
}

// NewApp builds the window and its first layer. The window is not shown.
func NewApp(fa fyne.App, cfg Config) (*App, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	a := &App{
		fyneApp: fa,
		cfg:     cfg,
		opts:    opts,
		areas:   area.New(state.NewRegistry()),
		board:   NewBoardWidget(cfg.Width, cfg.Height),
		status:  widget.NewLabel(""),
	}
	a.layers = widget.NewSelect(nil, a.selectLayer)
	a.board.OnHover = a.hover
	if _, err := a.AddLayer(); err != nil {
		return nil, err
	}

	a.win = fa.NewWindow("AreaBoard")
	content := container.NewBorder(NewToolbar(a), a.status, nil, nil, container.NewCenter(a.board))
	a.win.SetContent(content)
	a.win.Canvas().SetOnTypedKey(a.typedKey)
	a.win.Resize(fyne.NewSize(float32(cfg.Width)+40, float32(cfg.Height)+120))
	return a, nil
}

// Run shows the window and runs the event loop.
func (a *App) Run() {
	a.win.ShowAndRun()
}

func (a *App) Window() fyne.Window  { return a.win }
func (a *App) Board() *BoardWidget  { return a.board }
func (a *App) Widget() *area.Widget { return a.areas }

// Active returns the active layer.
func (a *App) Active() *state.Area {
	l, err := a.areas.Active(a.board)
	if err != nil {
		return nil
	}
	return l
}

// AddLayer stacks a new layer with the configured style and makes it active.
func (a *App) AddLayer() (*state.Area, error) {
	opts := append(append([]state.Option{}, a.opts...), state.WithHandler(appHandler{app: a}))
	l, err := a.areas.Create(a.board, opts...)
	if err != nil {
		return nil, fmt.Errorf("add layer: %w", err)
	}
	a.syncLayers()
	l.Refresh()
	return l, nil
}

func (a *App) selectLayer(name string) {
	for i, opt := range a.layers.Options {
		if opt != name {
			continue
		}
		if _, err := a.areas.Layer(a.board, i); err != nil {
			a.fail(err)
			return
		}
		a.updateStatus()
		return
	}
}

// syncLayers rebuilds the layer picker from the registry.
func (a *App) syncLayers() {
	n := len(a.areas.Layers(a.board))
	opts := make([]string, n)
	for i := range opts {
		opts[i] = layerName(i)
	}
	a.layers.Options = opts
	if cur := a.areas.Registry().Current(a.board.ID()); cur >= 0 {
		a.layers.SetSelectedIndex(cur)
	}
	a.layers.Refresh()
}

func layerName(i int) string { return fmt.Sprintf("Layer %d", i+1) }

func (a *App) typedKey(e *fyne.KeyEvent) {
	if n := a.areas.Key(area.Key(e.Name)); n > 0 {
		a.updateStatus()
	}
}

func (a *App) hover(x, y float64, ok bool) {
	a.cursorX, a.cursorY, a.cursorIn = x, y, ok
	a.updateStatus()
}

func (a *App) updateStatus() {
	l := a.Active()
	if l == nil {
		a.status.SetText("")
		return
	}
	text := fmt.Sprintf("%s of %d · %d points · %d selected",
		layerName(l.Depth()), len(a.areas.Layers(a.board)), l.Len(), len(l.SelectedPoints()))
	if r, ok := l.Bounds(); ok && !r.Empty() {
		text += fmt.Sprintf(" · bounds %.0f,%.0f %.0fx%.0f · area %.0f px²",
			r.X, r.Y, r.Width, r.Height, abs(l.SignedArea()))
	}
	if a.cursorIn {
		where := "outside"
		if l.Contains(a.cursorX, a.cursorY) {
			where = "inside"
		}
		text += fmt.Sprintf(" · cursor %.0f,%.0f %s", a.cursorX, a.cursorY, where)
	}
	a.status.SetText(text)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (a *App) fail(err error) {
	state.Logger().Warn("[UI] action failed", "err", err)
	a.status.SetText(err.Error())
	if a.win != nil {
		dialog.ShowError(err, a.win)
	}
}

// SetPublisher installs f to receive a snapshot after every redraw of any
// layer. Current layers are published immediately.
func (a *App) SetPublisher(f func(state.Snapshot)) {
	a.publish = f
	if f == nil {
		return
	}
	for _, s := range a.Snapshots() {
		f(s)
	}
}

// SetReadOnly turns the board into a mirror: taps and gestures are ignored
// and point handles are hidden.
func (a *App) SetReadOnly() {
	a.board.SetReadOnly(true)
	for _, l := range a.areas.Layers(a.board) {
		l.HidePoints()
	}
}

// Snapshots returns every layer, bottom to top.
func (a *App) Snapshots() []state.Snapshot {
	layers := a.areas.Layers(a.board)
	out := make([]state.Snapshot, 0, len(layers))
	for _, l := range layers {
		out = append(out, l.Snapshot())
	}
	return out
}

// ApplySnapshot restores one layer, creating layers up to it as needed.
func (a *App) ApplySnapshot(s state.Snapshot) error {
	if s.Layer < 0 {
		return fmt.Errorf("apply snapshot: %w", state.ErrLayerOutOfRange)
	}
	for len(a.areas.Layers(a.board)) <= s.Layer {
		l, err := a.AddLayer()
		if err != nil {
			return err
		}
		if a.board.readOnly {
			l.HidePoints()
		}
	}
	l, err := a.areas.Get(a.board, s.Layer)
	if err != nil {
		return err
	}
	if err := l.Restore(s); err != nil {
		return err
	}
	a.updateStatus()
	return nil
}

// Document captures every layer for saving.
func (a *App) Document() state.Document {
	return state.Document{
		Width:  a.cfg.Width,
		Height: a.cfg.Height,
		Active: a.areas.Registry().Current(a.board.ID()),
		Layers: a.Snapshots(),
	}
}

// LoadDocument replaces the board content with doc. Layers beyond the
// document's are cleared.
func (a *App) LoadDocument(doc *state.Document) error {
	if doc.Width != a.cfg.Width || doc.Height != a.cfg.Height {
		state.Logger().Warn("[UI] document size differs from board",
			"doc", fmt.Sprintf("%dx%d", doc.Width, doc.Height),
			"board", fmt.Sprintf("%dx%d", a.cfg.Width, a.cfg.Height))
	}
	for i, s := range doc.Layers {
		s.Layer = i
		if err := a.ApplySnapshot(s); err != nil {
			return fmt.Errorf("load layer %d: %w", i, err)
		}
	}
	for _, l := range a.areas.Layers(a.board)[len(doc.Layers):] {
		l.RemoveAllPoints()
	}
	if doc.Active >= 0 && doc.Active < len(doc.Layers) {
		a.layers.SetSelectedIndex(doc.Active)
	}
	a.updateStatus()
	return nil
}

// Save writes the board as a JSON document.
func (a *App) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a.Document()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Open reads a JSON document written by Save.
func (a *App) Open(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	doc, err := state.ParseDocument(data)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	return a.LoadDocument(doc)
}

// ExportPDF writes every layer as vector polygons.
func (a *App) ExportPDF(w io.Writer) error {
	return export.WritePDF(w, a.cfg.Width, a.cfg.Height, a.Snapshots())
}

// appHandler keeps the status line and any publisher in step with the
// layers.
type appHandler struct {
	state.NopHandler
	app *App
}

func (h appHandler) PointSelected(*state.Area, *state.Point)   { h.app.updateStatus() }
func (h appHandler) PointUnselected(*state.Area, *state.Point) { h.app.updateStatus() }

func (h appHandler) Redrawn(l *state.Area) {
	h.app.updateStatus()
	if h.app.publish != nil {
		h.app.publish(l.Snapshot())
	}
}
