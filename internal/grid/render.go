package grid

import (
	"image/color"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PlaceholderText is drawn in cells whose image is unavailable.
const PlaceholderText = "× Image not found"

// Style controls the size and look of a rendered grid.
type Style struct {
	CellSize         vg.Length // Width and height of one cell.
	DPI              int
	Padding          vg.Length // Gap between cells.
	Background       color.Color
	HeaderColor      color.Color
	HeaderSize       vg.Length
	PlaceholderColor color.Color
	PlaceholderSize  vg.Length
}

// DefaultStyle returns 5 inch cells at 150 DPI on a white background.
func DefaultStyle() Style {
	return Style{
		CellSize:         5 * vg.Inch,
		DPI:              150,
		Padding:          vg.Points(6),
		Background:       color.White,
		HeaderColor:      color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff},
		HeaderSize:       vg.Points(16),
		PlaceholderColor: color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff},
		PlaceholderSize:  vg.Points(12),
	}
}

// Render draws sheet onto a new canvas, one tile per cell. Column labels are
// drawn above the first row.
func Render(sheet *Sheet, style Style) (*vgimg.Canvas, error) {
	rows, cols := sheet.Rows(), sheet.Cols()

	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
		for c := range plots[r] {
			p, err := cellPlot(sheet.Cells[r][c], style)
			if err != nil {
				return nil, err
			}
			if r == 0 {
				p.Title.Text = sheet.Columns[c].Label
				p.Title.TextStyle.Color = style.HeaderColor
				p.Title.TextStyle.Font = boldFont(style.HeaderSize)
			}
			plots[r][c] = p
		}
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(cols)*style.CellSize, vg.Length(rows)*style.CellSize),
		vgimg.UseDPI(style.DPI),
		vgimg.UseBackgroundColor(style.Background),
	)
	dc := draw.New(canvas)

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      style.Padding,
		PadY:      style.Padding,
		PadTop:    style.Padding,
		PadBottom: style.Padding,
		PadLeft:   style.Padding,
		PadRight:  style.Padding,
	}

	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	return canvas, nil
}

// Builds the plot for a single cell: the image when there is one, the
// placeholder label otherwise. Axes are hidden either way.
func cellPlot(cell Cell, style Style) (*plot.Plot, error) {
	p := plot.New()
	p.HideAxes()
	p.BackgroundColor = color.Transparent

	if cell.Missing() {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1

		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: 0.5, Y: 0.5}},
			Labels: []string{PlaceholderText},
		})
		if err != nil {
			return nil, err
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].Color = style.PlaceholderColor
			labels.TextStyle[i].Font = boldFont(style.PlaceholderSize)
			labels.TextStyle[i].XAlign = text.XCenter
			labels.TextStyle[i].YAlign = text.YCenter
		}
		p.Add(labels)
		return p, nil
	}

	b := cell.Image.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	p.Add(plotter.NewImage(cell.Image, 0, 0, w, h))

	// Square data range keeps the aspect ratio inside a square tile.
	side := w
	if h > side {
		side = h
	}
	p.X.Min, p.X.Max = (w-side)/2, (w+side)/2
	p.Y.Min, p.Y.Max = (h-side)/2, (h+side)/2

	return p, nil
}

func boldFont(size vg.Length) font.Font {
	return font.Font{
		Typeface: "Liberation",
		Variant:  "Sans",
		Weight:   xfont.WeightBold,
		Size:     size,
	}
}
