// Package grid lays out dataset images as labeled comparison grids, one row
// per sample and one column per folder, and hands each grid to an Output.
package grid

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/briancolinger/haze-grid/internal/dataset"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrMissingBaseFolders is returned when the dataset lacks the reference or
// the degraded folder. Nothing is rendered in that case.
var ErrMissingBaseFolders = errors.New("could not find GT or hazy folders")

type (
	// Decoder loads an image file.
	Decoder interface {
		Decode(path string) (image.Image, error)
	}

	// Output receives every rendered grid, in order, with its 1-based index.
	// It returns the location the grid was written to, if any.
	Output interface {
		Emit(n int, canvas *vgimg.Canvas) (string, error)
	}

	// Cell is one grid cell. A nil Image renders as the placeholder.
	Cell struct {
		Path  string // Resolved file path, empty when no file matched.
		Image image.Image
	}

	// Sheet is one batch of samples laid out as rows × columns cells.
	Sheet struct {
		Index       int // 1-based batch number.
		Identifiers []string
		Columns     []dataset.Column
		Cells       [][]Cell // Indexed [row][column].
	}

	// Report summarises a Compose run.
	Report struct {
		Batches      int
		Cells        int
		Placeholders int
		Outputs      []string
	}

	// Composer builds and emits grids for a dataset.
	Composer struct {
		Decoder   Decoder
		Output    Output
		Style     Style
		BatchSize int
	}
)

// Missing reports whether the cell renders as the placeholder.
func (c Cell) Missing() bool {
	return c.Image == nil
}

// Rows returns the number of samples in the sheet.
func (s *Sheet) Rows() int {
	return len(s.Identifiers)
}

// Cols returns the number of folders compared in the sheet.
func (s *Sheet) Cols() int {
	return len(s.Columns)
}

// NewComposer returns a Composer with the default style and batch size.
func NewComposer(decoder Decoder, output Output) *Composer {
	return &Composer{
		Decoder:   decoder,
		Output:    output,
		Style:     DefaultStyle(),
		BatchSize: DefaultBatchSize,
	}
}

// Compose renders ids from the dataset at root in batches and sends each grid
// to the Output. When methods is nil the method folders are discovered.
// Missing or unreadable images become placeholders and never stop the run.
func (c *Composer) Compose(root string, ids []string, methods []string) (Report, error) {
	var report Report

	base, err := dataset.DiscoverBaseFolders(root)
	if err != nil {
		return report, err
	}
	if !base.Complete() {
		log.WithFields(log.Fields{"root": root, "gt": base.Reference, "hazy": base.Degraded}).
			Error("Could not find GT or hazy folders")
		return report, fmt.Errorf("%w in %s", ErrMissingBaseFolders, root)
	}

	if methods == nil {
		methods, err = dataset.DiscoverMethodFolders(root)
		if err != nil {
			return report, err
		}
	}

	columns := dataset.Columns(base, methods)

	for i, batch := range Batches(ids, c.BatchSize) {
		sheet := c.buildSheet(root, i+1, batch, columns)

		for _, row := range sheet.Cells {
			for _, cell := range row {
				report.Cells++
				if cell.Missing() {
					report.Placeholders++
				}
			}
		}

		canvas, err := Render(sheet, c.Style)
		if err != nil {
			return report, fmt.Errorf("rendering batch %d: %w", sheet.Index, err)
		}

		out, err := c.Output.Emit(sheet.Index, canvas)
		if err != nil {
			return report, err
		}

		report.Batches++
		if out != "" {
			report.Outputs = append(report.Outputs, out)
		}
	}

	log.WithFields(log.Fields{
		"batches":      report.Batches,
		"cells":        report.Cells,
		"placeholders": report.Placeholders,
	}).Info("Composed grids")

	return report, nil
}

// Resolves and decodes every cell of one batch in row-major order.
func (c *Composer) buildSheet(root string, index int, ids []string, columns []dataset.Column) *Sheet {
	sheet := &Sheet{
		Index:       index,
		Identifiers: ids,
		Columns:     columns,
		Cells:       make([][]Cell, len(ids)),
	}

	for r, id := range ids {
		sheet.Cells[r] = make([]Cell, len(columns))
		for col, column := range columns {
			sheet.Cells[r][col] = c.loadCell(filepath.Join(root, column.Folder), id, column.Role)
		}
	}

	return sheet
}

func (c *Composer) loadCell(folder, id string, role dataset.Role) Cell {
	path, ok := dataset.ResolveImagePath(folder, id, role)
	if !ok {
		log.WithFields(log.Fields{"folder": folder, "id": id}).Warn("Image not found, using placeholder")
		return Cell{}
	}

	img, err := c.Decoder.Decode(path)
	if err != nil {
		log.WithFields(log.Fields{"path": path, "error": err}).Warn("Image unreadable, using placeholder")
		return Cell{Path: path}
	}

	return Cell{Path: path, Image: img}
}
