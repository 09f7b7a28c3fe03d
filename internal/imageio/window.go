package imageio

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
	"gonum.org/v1/plot/vg/vgimg"
)

// Window shows rendered grids in an OpenCV window instead of saving them.
// Each grid stays on screen until a key is pressed.
type Window struct {
	Title string
}

// NewWindow returns a Window whose titles start with title.
func NewWindow(title string) *Window {
	return &Window{Title: title}
}

// Emit displays the n-th grid and blocks until a key is pressed.
// It returns an empty path since nothing is written to disk.
func (w *Window) Emit(n int, canvas *vgimg.Canvas) (string, error) {
	mat, err := gocv.ImageToMatRGB(canvas.Image())
	if err != nil {
		return "", fmt.Errorf("converting grid %d for display: %w", n, err)
	}
	defer closeMat(&mat, "")

	title := fmt.Sprintf("%s %d", w.Title, n)
	window := gocv.NewWindow(title)
	defer func() {
		if err := window.Close(); err != nil {
			log.WithFields(log.Fields{"window": title, "error": err}).Error("Error closing window")
		}
	}()

	log.WithField("window", title).Info("Showing grid, press any key to continue")
	window.IMShow(mat)
	window.WaitKey(0)

	return "", nil
}
