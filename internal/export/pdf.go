// Package export writes board layers to vector formats.
package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"AreaBoard/internal/state"
)

// WritePDF draws every layer on a single page the size of the board, one
// point per pixel. Reversed layers are filled around the polygon with the
// even-odd rule.
func WritePDF(w io.Writer, width, height int, layers []state.Snapshot) error {
	p := newPDF(width, height)
	for _, l := range layers {
		if err := drawLayer(p, width, height, l); err != nil {
			return err
		}
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// ExportPDF writes the layers to path.
func ExportPDF(path string, width, height int, layers []state.Snapshot) error {
	p := newPDF(width, height)
	for _, l := range layers {
		if err := drawLayer(p, width, height, l); err != nil {
			return err
		}
	}
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export pdf %s: %w", path, err)
	}
	state.Logger().Info("[Export] pdf written", "path", path, "layers", len(layers))
	return nil
}

func newPDF(width, height int) *gofpdf.Fpdf {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	return p
}

func rgb(c color.Color) (int, int, int) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B)
}

func drawLayer(p *gofpdf.Fpdf, width, height int, l state.Snapshot) error {
	c, err := state.ParseColor(l.Style.Color)
	if err != nil {
		return fmt.Errorf("layer %d: %w", l.Layer, err)
	}
	r, g, b := rgb(c)
	p.SetDrawColor(r, g, b)
	p.SetFillColor(r, g, b)
	if l.Style.LineWidth > 0 {
		p.SetLineWidth(l.Style.LineWidth)
	}
	p.SetAlpha(l.Style.Opacity, "Normal")
	defer p.SetAlpha(1, "Normal")

	if l.Style.Reverse {
		// The outline is erased along with the interior on screen, so only
		// the surround is painted.
		p.MoveTo(0, 0)
		p.LineTo(float64(width), 0)
		p.LineTo(float64(width), float64(height))
		p.LineTo(0, float64(height))
		p.ClosePath()
		if len(l.Points) > 0 {
			trace(p, l.Points)
		}
		p.DrawPath("F*")
		return p.Error()
	}

	style := ""
	switch {
	case l.Style.Fill && l.Style.ShowLine:
		style = "FD"
	case l.Style.Fill:
		style = "F"
	case l.Style.ShowLine:
		style = "D"
	}
	if style == "" || len(l.Points) == 0 {
		return nil
	}
	trace(p, l.Points)
	p.DrawPath(style)
	return p.Error()
}

func trace(p *gofpdf.Fpdf, pts []state.Coord) {
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, c := range pts[1:] {
		p.LineTo(c.X, c.Y)
	}
	p.ClosePath()
}
