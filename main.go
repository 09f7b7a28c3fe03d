// Command haze-grid renders side-by-side comparison grids for dehazing datasets.
// For every batch of sample identifiers it lays out the hazy input, the output
// of each method and the ground truth in one labeled image, and writes the
// result as grid_batch_<n>.png.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briancolinger/haze-grid/internal/dataset"
	"github.com/briancolinger/haze-grid/internal/grid"
	"github.com/briancolinger/haze-grid/internal/imageio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type (
	// Contains parameters for the grid run.
	gridParams struct {
		DatasetDir string   // The dataset root holding GT, hazy and method folders.
		OutputDir  string   // Where grids are saved. Empty shows them in a window instead.
		IDs        []string // The sample identifiers to render, in order.
		Methods    []string // Method folders to compare. Empty means discover them.
		BatchSize  int      // The number of samples per grid.
		Debug      bool     // Enables debug logging.
	}
)

var (
	errMissingDatasetDir = errors.New("please specify dataset directory")
	errInvalidBatchSize  = errors.New("batch size must be positive")
)

// The samples rendered when no ids are given.
var defaultIDs = []string{
	"01", "02", "04", "06", "07", "10", "11", "12", "13", "20", "22", "26", "28", "30",
	"32", "34", "35", "36", "37", "38", "39", "40", "41", "42", "45", "47", "49",
}

// Entry point of the program.
func main() {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	if err := newRootCmd().Execute(); err != nil {
		log.WithFields(log.Fields{"error": err}).Fatal("Error rendering grids")
	}
}

// Builds the root command with its flags bound to a gridParams.
func newRootCmd() *cobra.Command {
	var params gridParams

	cmd := &cobra.Command{
		Use:           "haze-grid",
		Short:         "Render comparison grids of hazy inputs, method outputs and ground truth",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := params.validate(); err != nil {
				return err
			}
			return run(params)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&params.DatasetDir, "dataset", "d", "Dense_Haze_NTIRE19", "the dataset directory containing GT, hazy and method folders")
	flags.StringVarP(&params.OutputDir, "output", "o", "output_grids", "the directory for saved grids, empty to display them instead")
	flags.StringSliceVar(&params.IDs, "ids", defaultIDs, "the sample identifiers to render")
	flags.StringSliceVar(&params.Methods, "methods", nil, "method folders to compare, discovered when unset")
	flags.IntVar(&params.BatchSize, "batch-size", grid.DefaultBatchSize, "the number of samples per grid")
	flags.BoolVar(&params.Debug, "debug", false, "if true, enables debug mode")

	return cmd
}

// Checks that the parameters describe a runnable job.
func (p gridParams) validate() error {
	if strings.TrimSpace(p.DatasetDir) == "" {
		return fmt.Errorf("%w", errMissingDatasetDir)
	}
	if p.BatchSize < 1 {
		return fmt.Errorf("%w: %d", errInvalidBatchSize, p.BatchSize)
	}
	return nil
}

// Reports the dataset layout and renders the grids. A missing dataset or a
// missing GT/hazy folder is logged and ends the run without an error.
func run(params gridParams) error {
	start := time.Now()

	if params.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if info, err := os.Stat(params.DatasetDir); err != nil || !info.IsDir() {
		log.WithFields(log.Fields{"path": params.DatasetDir}).Error("Dataset directory not found")
		return nil
	}
	log.WithFields(log.Fields{"path": params.DatasetDir}).Info("Dataset directory")

	base, err := dataset.DiscoverBaseFolders(params.DatasetDir)
	if err != nil {
		return err
	}
	found, err := dataset.DiscoverMethodFolders(params.DatasetDir)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"gt_folder":      base.Reference,
		"hazy_folder":    base.Degraded,
		"custom_folders": found,
	}).Info("Dataset layout")

	if len(params.IDs) == 0 {
		log.Warn("No sample identifiers given")
		return nil
	}

	composer := grid.NewComposer(imageio.NewDecoder(), newOutput(params.OutputDir))
	composer.BatchSize = params.BatchSize

	// A nil slice lets the composer discover the method folders itself.
	var methods []string
	if len(params.Methods) > 0 {
		methods = params.Methods
	}

	report, err := composer.Compose(params.DatasetDir, params.IDs, methods)
	if errors.Is(err, grid.ErrMissingBaseFolders) {
		return nil
	}
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"batches":      report.Batches,
		"placeholders": report.Placeholders,
		"time_taken":   time.Since(start),
	}).Info("Done.")

	return nil
}

// Picks where grids go: a directory when one is configured, a window otherwise.
func newOutput(dir string) grid.Output {
	if dir == "" {
		return imageio.NewWindow("grid batch")
	}
	return grid.NewSaver(dir)
}
