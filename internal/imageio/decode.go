// Package imageio reads dataset images with OpenCV and previews rendered grids.
package imageio

import (
	"errors"
	"fmt"
	"image"

	log "github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

var (
	// ErrDecode is returned when a file cannot be read as an image.
	ErrDecode = errors.New("failed to decode image")

	errUnexpectedMat = errors.New("unexpected mat layout")
)

// Decoder loads images from disk through OpenCV.
type Decoder struct{}

// NewDecoder returns a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode loads the image at path and returns it with its channels in RGB
// order. Missing, corrupt and unsupported files all yield ErrDecode.
func (d *Decoder) Decode(path string) (image.Image, error) {
	// OpenCV loads color images in BGR order.
	bgr := gocv.IMRead(path, gocv.IMReadColor)
	defer closeMat(&bgr, path)

	if bgr.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrDecode, path)
	}

	rgba := gocv.NewMat()
	defer closeMat(&rgba, path)

	gocv.CvtColor(bgr, &rgba, gocv.ColorBGRToRGBA)

	img, err := matToRGBA(rgba)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	log.WithFields(log.Fields{"path": path, "width": rgba.Cols(), "height": rgba.Rows()}).Debug("Decoded image")

	return img, nil
}

// Copies a CV8UC4 Mat whose channels are already in RGBA order into an
// image.RGBA. gocv's own ToImage assumes BGR input, so it is not used here.
func matToRGBA(m gocv.Mat) (*image.RGBA, error) {
	if m.Type() != gocv.MatTypeCV8UC4 {
		return nil, fmt.Errorf("%w: type %v", errUnexpectedMat, m.Type())
	}

	cols, rows := m.Cols(), m.Rows()
	pix := m.ToBytes()
	if len(pix) != cols*rows*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", errUnexpectedMat, len(pix), cols, rows)
	}

	return &image.RGBA{
		Pix:    pix,
		Stride: cols * 4,
		Rect:   image.Rect(0, 0, cols, rows),
	}, nil
}

func closeMat(m *gocv.Mat, path string) {
	if err := m.Close(); err != nil {
		log.WithFields(log.Fields{"path": path, "error": err}).Error("Error closing mat")
	}
}
