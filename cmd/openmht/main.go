// Command openmht runs multiple hypothesis tracking over a detection CSV.
//
// Usage:
//
//	openmht run <input.csv> <output.csv> <params.txt>
//	openmht eval <tracks.csv> <groundtruth.csv> [--threshold 5]
//	openmht plot <tracks.csv> <output.png>
//
// Exit codes: 0 on success, 2 on any input validation failure.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	openmht "github.com/openmht/openmht-go"
	"github.com/openmht/openmht-go/trackvis"
)

func main() {
	root := &cobra.Command{
		Use:           "openmht",
		Short:         "Multiple hypothesis tracking for point detections",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd(), evalCmd(), plotCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fail reports an input validation failure and exits with code 2.
func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}

// checkInputFile validates that the path exists and carries the extension.
func checkInputFile(path, ext string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	return checkExt(path, ext)
}

func checkExt(path, ext string) error {
	if filepath.Ext(path) != ext {
		return fmt.Errorf("file is not %s: %s", ext, path)
	}
	return nil
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <input.csv> <output.csv> <params.txt>",
		Short: "Track detections from a CSV and write the solution tracks",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile, outputFile, paramFile := args[0], args[1], args[2]

			if err := checkInputFile(inputFile, ".csv"); err != nil {
				fail(err)
			}
			if err := checkExt(outputFile, ".csv"); err != nil {
				fail(err)
			}
			if err := checkInputFile(paramFile, ".txt"); err != nil {
				fail(err)
			}

			params, err := openmht.LoadParams(paramFile)
			if err != nil {
				fail(err)
			}

			log.Printf("Input file is: %s", inputFile)
			log.Printf("Output file is: %s", outputFile)
			log.Printf("Parameter file is: %s", paramFile)
			log.Printf("MHT parameters: %+v", params)

			frames, err := openmht.ReadDetectionsCSV(inputFile)
			if err != nil {
				fail(err)
			}
			log.Printf("Read %d frames.", len(frames))

			mht, err := openmht.New(frames, params)
			if err != nil {
				return err
			}

			bar := newProgressBar(len(frames))
			if bar != nil {
				mht.OnFrame = func(openmht.FrameStats) { _ = bar.Add(1) }
			}

			start := time.Now()
			tracks, err := mht.Run()
			if err != nil {
				return err
			}
			if err := openmht.WriteTracksCSV(outputFile, tracks); err != nil {
				return err
			}

			log.Printf("Generated %d solution tracks.", len(tracks))
			log.Printf("Elapsed time (seconds): %.3f", time.Since(start).Seconds())
			return nil
		},
	}
}

func evalCmd() *cobra.Command {
	var threshold float64
	cmd := &cobra.Command{
		Use:   "eval <tracks.csv> <groundtruth.csv>",
		Short: "Score solution tracks against a ground-truth CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			trackFile, gtFile := args[0], args[1]
			if err := checkInputFile(trackFile, ".csv"); err != nil {
				fail(err)
			}
			if err := checkInputFile(gtFile, ".csv"); err != nil {
				fail(err)
			}

			tracks, err := openmht.ReadTracksCSV(trackFile)
			if err != nil {
				fail(err)
			}
			groundTruth, err := openmht.ReadTracksCSV(gtFile)
			if err != nil {
				fail(err)
			}

			result, err := openmht.EvaluateTracks(groundTruth, tracks, threshold)
			if err != nil {
				return err
			}

			fmt.Printf("MOTA: %.4f\n", result.MOTA)
			fmt.Printf("MOTP: %.4f\n", result.MOTP)
			fmt.Printf("Matches: %d  Misses: %d  FP: %d  Switches: %d  Frag: %d\n",
				result.Matches, result.Misses, result.FalsePositives, result.Switches, result.Fragmentations)
			fmt.Printf("MT: %d  PT: %d  ML: %d  (of %d ground-truth appearances)\n",
				result.MostlyTracked, result.PartiallyTracked, result.MostlyLost, result.Objects)
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 5.0, "maximum match distance")
	return cmd
}

func plotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot <tracks.csv> <output.png>",
		Short: "Render solution tracks to an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			trackFile, outFile := args[0], args[1]
			if err := checkInputFile(trackFile, ".csv"); err != nil {
				fail(err)
			}

			tracks, err := openmht.ReadTracksCSV(trackFile)
			if err != nil {
				fail(err)
			}

			if err := trackvis.PlotTracks(tracks, outFile); err != nil {
				return err
			}
			log.Printf("Plot saved to %s", outFile)
			return nil
		},
	}
}

// newProgressBar builds a frame progress bar, or nil when stderr is not a
// terminal.
func newProgressBar(frameCount int) *progressbar.ProgressBar {
	if !openmht.IsInteractive() {
		return nil
	}
	width, _ := openmht.GetTerminalSize(80, 24)
	barWidth := width - 50
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth < 10 {
		barWidth = 10
	}
	return progressbar.NewOptions(frameCount,
		progressbar.OptionSetDescription("Tracking"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(barWidth),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("fps"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
