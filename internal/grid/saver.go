package grid

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg/vgimg"
)

// dirPerm is used when creating the output directory.
const dirPerm = 0o755

// Saver writes every grid as grid_batch_<n>.png into Dir.
type Saver struct {
	Dir string
}

// NewSaver returns a Saver writing into dir.
func NewSaver(dir string) *Saver {
	return &Saver{Dir: dir}
}

// BatchFilename returns the file name of the n-th grid.
func BatchFilename(n int) string {
	return fmt.Sprintf("grid_batch_%d.png", n)
}

// Emit writes the n-th grid and returns its path. The directory is created
// on demand.
func (s *Saver) Emit(n int, canvas *vgimg.Canvas) (string, error) {
	if err := os.MkdirAll(s.Dir, dirPerm); err != nil {
		return "", err
	}

	path := filepath.Join(s.Dir, BatchFilename(n))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	log.WithField("path", path).Info("Saved")

	return path, nil
}
