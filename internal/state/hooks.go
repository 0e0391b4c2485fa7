package state

// Handler receives notifications at the area's extension points. Embed
// NopHandler to implement only the methods you need.
type Handler interface {
	PointAdded(a *Area, p *Point)
	PointRemoved(a *Area, p *Point)
	PointSelected(a *Area, p *Point)
	PointUnselected(a *Area, p *Point)
	DragStarted(a *Area, p *Point)
	Dragged(a *Area, p *Point)
	DragStopped(a *Area, p *Point)
	// Redrawn is called after every completed redraw.
	Redrawn(a *Area)
}

// NopHandler implements Handler with no-ops.
type NopHandler struct{}

func (NopHandler) PointAdded(*Area, *Point)      {}
func (NopHandler) PointRemoved(*Area, *Point)    {}
func (NopHandler) PointSelected(*Area, *Point)   {}
func (NopHandler) PointUnselected(*Area, *Point) {}
func (NopHandler) DragStarted(*Area, *Point)     {}
func (NopHandler) Dragged(*Area, *Point)         {}
func (NopHandler) DragStopped(*Area, *Point)     {}
func (NopHandler) Redrawn(*Area)                 {}

// HandlerFuncs adapts individual callbacks to a Handler. Nil fields are
// skipped.
type HandlerFuncs struct {
	OnAddPoint       func(a *Area, p *Point)
	OnRemovePoint    func(a *Area, p *Point)
	OnSelectPoint    func(a *Area, p *Point)
	OnUnselectPoint  func(a *Area, p *Point)
	OnDragStartPoint func(a *Area, p *Point)
	OnDragPoint      func(a *Area, p *Point)
	OnDragStopPoint  func(a *Area, p *Point)
	OnRedraw         func(a *Area)
}

var _ Handler = HandlerFuncs{}

func (h HandlerFuncs) PointAdded(a *Area, p *Point) {
	if h.OnAddPoint != nil {
		h.OnAddPoint(a, p)
	}
}

func (h HandlerFuncs) PointRemoved(a *Area, p *Point) {
	if h.OnRemovePoint != nil {
		h.OnRemovePoint(a, p)
	}
}

func (h HandlerFuncs) PointSelected(a *Area, p *Point) {
	if h.OnSelectPoint != nil {
		h.OnSelectPoint(a, p)
	}
}

func (h HandlerFuncs) PointUnselected(a *Area, p *Point) {
	if h.OnUnselectPoint != nil {
		h.OnUnselectPoint(a, p)
	}
}

func (h HandlerFuncs) DragStarted(a *Area, p *Point) {
	if h.OnDragStartPoint != nil {
		h.OnDragStartPoint(a, p)
	}
}

func (h HandlerFuncs) Dragged(a *Area, p *Point) {
	if h.OnDragPoint != nil {
		h.OnDragPoint(a, p)
	}
}

func (h HandlerFuncs) DragStopped(a *Area, p *Point) {
	if h.OnDragStopPoint != nil {
		h.OnDragStopPoint(a, p)
	}
}

func (h HandlerFuncs) Redrawn(a *Area) {
	if h.OnRedraw != nil {
		h.OnRedraw(a)
	}
}

// MultiHandler fans every notification out to hs in order.
func MultiHandler(hs ...Handler) Handler {
	return multiHandler(hs)
}

type multiHandler []Handler

func (m multiHandler) PointAdded(a *Area, p *Point) {
	for _, h := range m {
		h.PointAdded(a, p)
	}
}

func (m multiHandler) PointRemoved(a *Area, p *Point) {
	for _, h := range m {
		h.PointRemoved(a, p)
	}
}

func (m multiHandler) PointSelected(a *Area, p *Point) {
	for _, h := range m {
		h.PointSelected(a, p)
	}
}

func (m multiHandler) PointUnselected(a *Area, p *Point) {
	for _, h := range m {
		h.PointUnselected(a, p)
	}
}

func (m multiHandler) DragStarted(a *Area, p *Point) {
	for _, h := range m {
		h.DragStarted(a, p)
	}
}

func (m multiHandler) Dragged(a *Area, p *Point) {
	for _, h := range m {
		h.Dragged(a, p)
	}
}

func (m multiHandler) DragStopped(a *Area, p *Point) {
	for _, h := range m {
		h.DragStopped(a, p)
	}
}

func (m multiHandler) Redrawn(a *Area) {
	for _, h := range m {
		h.Redrawn(a)
	}
}
