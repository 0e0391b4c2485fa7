package surface

import (
	"fmt"
	"image/color"

	"AreaBoard/internal/state"
)

// Op is one recorded drawing call, e.g. "fillRect 0 0 100 80" or
// "composite destination-out".
type Op string

// Recorder is a Surface that records every call instead of painting. The
// log is reset by Clear, so after a redraw it holds exactly that frame.
type Recorder struct {
	width, height int
	ops           []Op
	frames        int
}

var (
	_ state.Surface = (*Recorder)(nil)
	_ state.Flusher = (*Recorder)(nil)
)

// NewRecorder returns a recorder reporting the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

// Ops returns the calls recorded since the last Clear.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Frames returns how many times Flush was called.
func (r *Recorder) Frames() int { return r.frames }

func (r *Recorder) record(format string, args ...any) {
	r.ops = append(r.ops, Op(fmt.Sprintf(format, args...)))
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

func (r *Recorder) Clear() {
	r.ops = r.ops[:0]
	r.record("clear")
}

func (r *Recorder) SetComposite(m state.CompositeMode) { r.record("composite %s", m) }
func (r *Recorder) SetAlpha(a float64)                 { r.record("alpha %g", a) }
func (r *Recorder) SetStrokeColor(c color.Color)       { r.record("strokeColor %s", state.FormatColor(c)) }
func (r *Recorder) SetFillColor(c color.Color)         { r.record("fillColor %s", state.FormatColor(c)) }
func (r *Recorder) SetLineWidth(w float64)             { r.record("lineWidth %g", w) }
func (r *Recorder) FillRect(x, y, w, h float64)        { r.record("fillRect %g %g %g %g", x, y, w, h) }
func (r *Recorder) BeginPath()                         { r.record("beginPath") }
func (r *Recorder) MoveTo(x, y float64)                { r.record("moveTo %g %g", x, y) }
func (r *Recorder) LineTo(x, y float64)                { r.record("lineTo %g %g", x, y) }
func (r *Recorder) ClosePath()                         { r.record("closePath") }
func (r *Recorder) Stroke()                            { r.record("stroke") }
func (r *Recorder) Fill()                              { r.record("fill") }
func (r *Recorder) Flush()                             { r.frames++ }
