package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/colornames"

	"AreaBoard/internal/state"
)

var palette = []color.Color{
	colornames.Red,
	colornames.Green,
	colornames.Blue,
	colornames.Orange,
	colornames.Purple,
	colornames.Black,
}

// --- Colour swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// withActive runs f on the active layer, if any.
func (a *App) withActive(f func(l *state.Area)) {
	if l := a.Active(); l != nil {
		f(l)
	}
}

// NewToolbar builds the controls acting on the active layer, plus the file
// actions.
func NewToolbar(a *App) fyne.CanvasObject {
	d := state.NewOptions(a.opts...)

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {
			if _, err := a.AddLayer(); err != nil {
				a.fail(err)
			}
		}),
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			a.withActive(func(l *state.Area) { _ = l.RemoveLastPoint() })
		}),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			a.withActive(func(l *state.Area) { l.RemoveSelectedPoints() })
		}),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() {
			a.withActive(func(l *state.Area) { l.RemoveAllPoints() })
		}),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			a.withActive(func(l *state.Area) { l.Reverse() })
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.showOpen),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), a.showSave),
		widget.NewToolbarAction(theme.DownloadIcon(), a.showExport),
	)

	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, func(c color.Color) {
			a.withActive(func(l *state.Area) { l.SetColor(c) })
		}))
	}

	opacity := widget.NewSlider(0, 1)
	opacity.Step = 0.05
	opacity.SetValue(d.Opacity)
	opacity.OnChanged = func(v float64) {
		a.withActive(func(l *state.Area) { l.SetOpacity(v) })
	}
	opacityBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), opacity)

	line := widget.NewCheck("Line", func(on bool) {
		a.withActive(func(l *state.Area) { l.ShowLine(on) })
	})
	line.SetChecked(d.ShowLine)
	fill := widget.NewCheck("Fill", func(on bool) {
		a.withActive(func(l *state.Area) { l.SetFill(on) })
	})
	fill.SetChecked(d.Fill)
	points := widget.NewCheck("Points", func(on bool) {
		a.withActive(func(l *state.Area) {
			if on {
				l.ShowPoints()
			} else {
				l.HidePoints()
			}
		})
	})
	points.SetChecked(true)
	keyDelete := widget.NewCheck("Delete key", func(on bool) {
		a.withActive(func(l *state.Area) { l.SetKeyDelete(on) })
	})
	keyDelete.SetChecked(d.KeyDelete)

	return container.NewHBox(
		widget.NewLabel("Layer:"),
		a.layers,
		tb,
		widget.NewSeparator(),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Opacity:"),
		opacityBox,
		line,
		fill,
		points,
		keyDelete,
		layout.NewSpacer(),
	)
}

func (a *App) showSave() {
	dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			a.fail(err)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if err := a.Save(w); err != nil {
			a.fail(err)
			return
		}
		state.Logger().Info("[UI] board saved", "uri", w.URI().String())
	}, a.win)
}

func (a *App) showOpen() {
	dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			a.fail(err)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()
		if err := a.Open(r); err != nil {
			a.fail(err)
			return
		}
		state.Logger().Info("[UI] board loaded", "uri", r.URI().String())
	}, a.win)
}

func (a *App) showExport() {
	dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			a.fail(err)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if err := a.ExportPDF(w); err != nil {
			a.fail(err)
			return
		}
		state.Logger().Info("[UI] pdf exported", "uri", w.URI().String())
	}, a.win)
}
