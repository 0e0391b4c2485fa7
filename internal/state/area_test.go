package state_test

import (
	"bytes"
	"errors"
	"image/color"
	"log/slog"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"

	"AreaBoard/internal/state"
	"AreaBoard/internal/surface"
)

type fakeHandle struct {
	x, y     float64
	color    color.Color
	selected bool
	visible  bool
	removed  bool
}

func (h *fakeHandle) Move(x, y float64)      { h.x, h.y = x, y }
func (h *fakeHandle) SetColor(c color.Color) { h.color = c }
func (h *fakeHandle) SetSelected(on bool)    { h.selected = on }
func (h *fakeHandle) Show()                  { h.visible = true }
func (h *fakeHandle) Hide()                  { h.visible = false }
func (h *fakeHandle) Remove()                { h.removed = true }

type fixture struct {
	reg     *state.Registry
	area    *state.Area
	rec     *surface.Recorder
	handles map[state.PointID]*fakeHandle
}

func newFixture(t *testing.T, opts ...state.Option) *fixture {
	t.Helper()
	f := &fixture{
		reg:     state.NewRegistry(),
		rec:     surface.NewRecorder(100, 80),
		handles: make(map[state.PointID]*fakeHandle),
	}
	factory := state.HandleFactoryFunc(func(p *state.Point) state.Handle {
		h := &fakeHandle{}
		f.handles[p.ID()] = h
		return h
	})
	f.area = state.NewArea(f.reg, "s1", f.reg.NextDepth("s1"), f.rec, factory, opts...)
	require.NoError(t, f.reg.Attach(f.area))
	return f
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	state.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { state.SetLogger(nil) })
	return &buf
}

func TestSerializeKeepsInsertionOrder(t *testing.T) {
	f := newFixture(t)
	f.area.AddPoint(10, 10)
	f.area.AddPoint(50, 10)
	f.area.AddPoint(50, 50)

	assert.Equal(t, []state.Coord{{10, 10}, {50, 10}, {50, 50}}, f.area.Serialize())

	js, err := f.area.SerializeJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"x":10,"y":10},{"x":50,"y":10},{"x":50,"y":50}]`, js)
}

func TestSerializeEmpty(t *testing.T) {
	f := newFixture(t)
	js, err := f.area.SerializeJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", js)
	assert.Empty(t, f.area.Serialize())
}

func TestLoadRoundTrip(t *testing.T) {
	src := newFixture(t)
	for _, c := range []state.Coord{{1, 2}, {30.5, 4}, {-5, 99}, {1, 2}} {
		src.area.AddPoint(c.X, c.Y)
	}

	t.Run("structured", func(t *testing.T) {
		dst := newFixture(t)
		dst.area.Load(src.area.Serialize())
		assert.Equal(t, src.area.Serialize(), dst.area.Serialize())
	})

	t.Run("json", func(t *testing.T) {
		js, err := src.area.SerializeJSON()
		require.NoError(t, err)
		dst := newFixture(t)
		require.NoError(t, dst.area.LoadJSON(js))
		assert.Equal(t, src.area.Serialize(), dst.area.Serialize())
	})
}

func TestLoadRedrawsOnce(t *testing.T) {
	f := newFixture(t)
	var added int
	f.area = state.NewArea(f.reg, "s2", 0, f.rec, nil, state.WithHandler(state.HandlerFuncs{
		OnAddPoint: func(*state.Area, *state.Point) { added++ },
	}))
	require.NoError(t, f.reg.Attach(f.area))

	f.area.Load([]state.Coord{{1, 1}, {2, 2}, {3, 3}})
	assert.Equal(t, 3, added)
	assert.Equal(t, 1, f.rec.Frames())
}

func TestLoadJSONMalformed(t *testing.T) {
	f := newFixture(t)
	f.area.AddPoint(1, 1)

	for _, in := range []string{"", "not json", `{"x":1}`, `[{"x":"a"}]`} {
		err := f.area.LoadJSON(in)
		assert.ErrorIs(t, err, state.ErrMalformedLoad, "input %q", in)
	}
	assert.Equal(t, 1, f.area.Len())
}

func TestRemovePoint(t *testing.T) {
	f := newFixture(t)
	a := f.area.AddPoint(1, 1)
	b := f.area.AddPoint(2, 2)
	c := f.area.AddPoint(3, 3)

	require.NoError(t, f.area.RemovePoint(b.ID()))
	assert.Equal(t, []state.Coord{{1, 1}, {3, 3}}, f.area.Serialize())
	assert.True(t, f.handles[b.ID()].removed)
	assert.False(t, f.handles[a.ID()].removed)

	_, ok := f.area.PointByID(b.ID())
	assert.False(t, ok)
	got, ok := f.area.PointByID(c.ID())
	require.True(t, ok)
	assert.Same(t, c, got)
}

func TestRemoveUnknownPoint(t *testing.T) {
	logs := captureLog(t)
	f := newFixture(t)
	f.area.AddPoint(1, 1)
	before := f.area.Serialize()

	err := f.area.RemovePoint(123456)
	assert.ErrorIs(t, err, state.ErrPointNotFound)
	assert.Equal(t, before, f.area.Serialize())
	assert.Contains(t, logs.String(), "point does not exist")
	assert.Contains(t, logs.String(), "point=123456")
}

func TestRemovePointOfOtherArea(t *testing.T) {
	f := newFixture(t)
	g := newFixture(t)
	p := g.area.AddPoint(1, 1)
	f.area.AddPoint(1, 1)

	assert.ErrorIs(t, f.area.RemovePointRef(p), state.ErrPointNotFound)
	assert.Equal(t, 1, f.area.Len())
	assert.Equal(t, 1, g.area.Len())
}

func TestRemoveLastPoint(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.area.RemoveLastPoint(), state.ErrPointNotFound)

	f.area.AddPoint(1, 1)
	f.area.AddPoint(2, 2)
	require.NoError(t, f.area.RemoveLastPoint())
	assert.Equal(t, []state.Coord{{1, 1}}, f.area.Serialize())
}

func TestRemoveAllPoints(t *testing.T) {
	f := newFixture(t)
	var removed []state.Coord
	f.area = state.NewArea(f.reg, "s2", 0, f.rec, nil, state.WithHandler(state.HandlerFuncs{
		OnRemovePoint: func(_ *state.Area, p *state.Point) { removed = append(removed, p.Coord()) },
	}))
	require.NoError(t, f.reg.Attach(f.area))
	for i := 1; i <= 4; i++ {
		f.area.AddPoint(float64(i), float64(i))
	}

	f.area.RemoveAllPoints()
	assert.Empty(t, f.area.Serialize())
	assert.Equal(t, []state.Coord{{1, 1}, {2, 2}, {3, 3}, {4, 4}}, removed)
}

func TestHideShowPoints(t *testing.T) {
	f := newFixture(t)
	p := f.area.AddPoint(1, 1)
	f.area.AddPoint(5, 1)
	f.area.AddPoint(5, 5)
	ops := f.rec.Ops()

	f.area.HidePoints()
	assert.Equal(t, ops, f.rec.Ops(), "hiding points does not touch the polygon")
	assert.False(t, f.handles[p.ID()].visible)
	q := f.area.AddPoint(1, 5)
	assert.False(t, f.handles[q.ID()].visible, "points added while hidden stay hidden")

	f.area.ShowPoints()
	assert.True(t, f.handles[p.ID()].visible)
	assert.True(t, f.handles[q.ID()].visible)
}

func TestSelection(t *testing.T) {
	f := newFixture(t)
	var events []string
	f.area = state.NewArea(f.reg, "s2", 0, f.rec, state.HandleFactoryFunc(func(p *state.Point) state.Handle {
		h := &fakeHandle{}
		f.handles[p.ID()] = h
		return h
	}), state.WithHandler(state.HandlerFuncs{
		OnSelectPoint:   func(_ *state.Area, p *state.Point) { events = append(events, "select "+p.ID().String()) },
		OnUnselectPoint: func(_ *state.Area, p *state.Point) { events = append(events, "unselect "+p.ID().String()) },
	}))
	require.NoError(t, f.reg.Attach(f.area))

	a := f.area.AddPoint(1, 1)
	b := f.area.AddPoint(2, 2)
	c := f.area.AddPoint(3, 3)

	require.NoError(t, f.area.ToggleSelected(c))
	require.NoError(t, f.area.ToggleSelected(a))
	assert.Equal(t, []*state.Point{a, c}, f.area.SelectedPoints())
	assert.True(t, f.handles[a.ID()].selected)

	require.NoError(t, f.area.ToggleSelected(c))
	assert.Equal(t, []*state.Point{a}, f.area.SelectedPoints())
	assert.False(t, f.handles[c.ID()].selected)

	assert.Equal(t, []string{
		"select " + c.ID().String(),
		"select " + a.ID().String(),
		"unselect " + c.ID().String(),
	}, events)

	assert.Equal(t, 1, f.area.RemoveSelectedPoints())
	assert.Equal(t, []*state.Point{b, c}, f.area.Points())
}

func TestDragPoint(t *testing.T) {
	f := newFixture(t)
	var events []string
	f.area = state.NewArea(f.reg, "s2", 0, f.rec, nil, state.WithHandler(state.HandlerFuncs{
		OnDragStartPoint: func(*state.Area, *state.Point) { events = append(events, "start") },
		OnDragPoint:      func(*state.Area, *state.Point) { events = append(events, "drag") },
		OnDragStopPoint:  func(*state.Area, *state.Point) { events = append(events, "stop") },
	}))
	require.NoError(t, f.reg.Attach(f.area))
	p := f.area.AddPoint(1, 1)
	frames := f.rec.Frames()

	require.NoError(t, f.area.BeginDrag(p))
	require.NoError(t, f.area.DragPoint(p, 7, 8))
	require.NoError(t, f.area.EndDrag(p))

	assert.Equal(t, []state.Coord{{7, 8}}, f.area.Serialize())
	assert.Equal(t, frames+1, f.rec.Frames())
	assert.Equal(t, []string{"start", "drag", "stop"}, events)
}

func TestPointIDsUnique(t *testing.T) {
	f := newFixture(t)
	seen := make(map[state.PointID]bool)
	for i := 0; i < 100; i++ {
		p := f.area.AddPoint(0, 0)
		require.False(t, seen[p.ID()], "duplicate id %s", p.ID())
		seen[p.ID()] = true
	}
}

func TestRefresh(t *testing.T) {
	tri := []state.Coord{{10, 10}, {50, 10}, {50, 50}}
	path := []surface.Op{
		"beginPath", "moveTo 10 10", "lineTo 50 10", "lineTo 50 50", "closePath",
		"strokeColor #ff0000", "lineWidth 1",
	}
	cat := func(parts ...[]surface.Op) []surface.Op {
		var out []surface.Op
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}
	head := []surface.Op{"clear", "composite source-over", "alpha 0.5"}
	reverse := []surface.Op{"fillColor #ff0000", "fillRect 0 0 100 80", "composite destination-out", "alpha 1"}

	tests := []struct {
		name   string
		opts   []state.Option
		points []state.Coord
		want   []surface.Op
	}{
		{
			name:   "fill and line",
			points: tri,
			want:   cat(head, path, []surface.Op{"stroke", "fillColor #ff0000", "fill"}),
		},
		{
			name:   "fill without line",
			opts:   []state.Option{state.WithShowLine(false)},
			points: tri,
			want:   cat(head, path, []surface.Op{"fillColor #ff0000", "fill"}),
		},
		{
			name:   "line without fill",
			opts:   []state.Option{state.WithFill(false)},
			points: tri,
			want:   cat(head, path, []surface.Op{"stroke"}),
		},
		{
			name:   "reverse",
			opts:   []state.Option{state.WithReverse(true)},
			points: tri,
			want:   cat(head, reverse, path, []surface.Op{"stroke", "fillColor #ff0000", "fill"}),
		},
		{
			name:   "single point",
			points: []state.Coord{{3, 4}},
			want: cat(head, []surface.Op{
				"beginPath", "moveTo 3 4", "closePath", "strokeColor #ff0000", "lineWidth 1",
				"stroke", "fillColor #ff0000", "fill",
			}),
		},
		{
			name: "no points",
			want: head,
		},
		{
			name: "no points reversed",
			opts: []state.Option{state.WithReverse(true)},
			want: cat(head, reverse),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.opts...)
			f.area.Load(tt.points)
			if diff := cmp.Diff(tt.want, f.rec.Ops()); diff != "" {
				t.Errorf("ops mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.area.Load([]state.Coord{{1, 1}, {9, 1}, {9, 9}})
	first := f.rec.Ops()
	f.area.Refresh()
	assert.Equal(t, first, f.rec.Ops())
}

func TestReverseTwice(t *testing.T) {
	f := newFixture(t)
	f.area.Load([]state.Coord{{1, 1}, {9, 1}, {9, 9}})
	before := f.rec.Ops()

	f.area.Reverse()
	assert.True(t, f.area.Options().Reverse)
	assert.Contains(t, f.rec.Ops(), surface.Op("composite destination-out"))

	f.area.Reverse()
	if diff := cmp.Diff(before, f.rec.Ops()); diff != "" {
		t.Errorf("double reverse changed output (-before +after):\n%s", diff)
	}
}

func TestSetOpacity(t *testing.T) {
	f := newFixture(t)
	f.area.Load([]state.Coord{{10, 10}, {50, 10}, {50, 50}})
	before := f.area.Serialize()

	f.area.SetOpacity(0.2)
	assert.Equal(t, before, f.area.Serialize())
	assert.Contains(t, f.rec.Ops(), surface.Op("alpha 0.2"))

	f.area.SetOpacity(3)
	assert.Equal(t, 1.0, f.area.Options().Opacity)
	f.area.SetOpacity(-1)
	assert.Equal(t, 0.0, f.area.Options().Opacity)
}

func TestSetOpacityNaN(t *testing.T) {
	f := newFixture(t)
	f.area.SetOpacity(math.NaN())
	assert.Equal(t, 0.0, f.area.Options().Opacity)

	o := state.NewOptions(state.WithOpacity(math.NaN()))
	assert.Equal(t, 0.0, o.Opacity)
}

func TestSetColorCascades(t *testing.T) {
	f := newFixture(t, state.WithPointColor(colornames.Blue))
	p := f.area.AddPoint(1, 1)
	assert.Equal(t, color.Color(colornames.Blue), f.handles[p.ID()].color)

	f.area.SetColor(colornames.Green)
	assert.Equal(t, color.Color(colornames.Green), f.handles[p.ID()].color)
	assert.Contains(t, f.rec.Ops(), surface.Op("fillColor #008000"))
}

func TestShowLine(t *testing.T) {
	f := newFixture(t)
	f.area.Load([]state.Coord{{1, 1}, {9, 9}})
	f.area.ShowLine(false)
	assert.NotContains(t, f.rec.Ops(), surface.Op("stroke"))
	f.area.ShowLine(true)
	assert.Contains(t, f.rec.Ops(), surface.Op("stroke"))
}

func TestSetFill(t *testing.T) {
	f := newFixture(t)
	f.area.Load([]state.Coord{{1, 1}, {9, 1}, {9, 9}})
	f.area.SetFill(false)
	assert.NotContains(t, f.rec.Ops(), surface.Op("fill"))
	assert.Contains(t, f.rec.Ops(), surface.Op("stroke"))
	f.area.SetFill(true)
	assert.Contains(t, f.rec.Ops(), surface.Op("fill"))
}

func TestSetPointColor(t *testing.T) {
	f := newFixture(t)
	p := f.area.AddPoint(1, 1)
	frames := f.rec.Frames()

	f.area.SetPointColor(colornames.Orange)
	assert.Equal(t, color.Color(colornames.Orange), f.handles[p.ID()].color)
	assert.Equal(t, frames, f.rec.Frames(), "handle colour does not redraw")

	q := f.area.AddPoint(2, 2)
	assert.Equal(t, color.Color(colornames.Orange), f.handles[q.ID()].color)
}

func TestRedrawnHookAndRevision(t *testing.T) {
	f := newFixture(t)
	var redraws int
	f.area = state.NewArea(f.reg, "s2", 0, f.rec, nil, state.WithHandler(state.MultiHandler(
		state.NopHandler{},
		state.HandlerFuncs{OnRedraw: func(*state.Area) { redraws++ }},
	)))
	require.NoError(t, f.reg.Attach(f.area))

	f.area.AddPoint(1, 1)
	f.area.SetOpacity(0.3)
	assert.Equal(t, 2, redraws)
	assert.Equal(t, uint64(2), f.area.Revision())
}

func TestNilHandlerOptionFallsBackToNop(t *testing.T) {
	f := newFixture(t, state.WithHandler(nil))
	assert.NotPanics(t, func() {
		p := f.area.AddPoint(1, 1)
		require.NoError(t, f.area.ToggleSelected(p))
		require.NoError(t, f.area.RemovePoint(p.ID()))
	})
}

func TestErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(state.ErrPointNotFound, state.ErrMalformedLoad))
}
