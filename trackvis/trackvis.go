// Package trackvis renders recovered tracks to an image file.
package trackvis

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	openmht "github.com/openmht/openmht-go"
)

// PlotTracks renders 2D tracks as one line-and-marker series per track and
// saves the figure to outPath. The image format follows the file extension
// (.png, .svg, .pdf). Miss slots are skipped, so a track with a gap draws a
// straight segment across it. 3D tracks are rejected.
func PlotTracks(tracks []openmht.Track, outPath string) error {
	p := plot.New()
	p.Title.Text = "Tracks"
	p.X.Label.Text = "u"
	p.Y.Label.Text = "v"

	for i, track := range tracks {
		var xys plotter.XYs
		for _, c := range track {
			if c == nil {
				continue
			}
			if len(c) != 2 {
				return fmt.Errorf("trackvis: only 2D tracks can be plotted, got %d dimensions", len(c))
			}
			xys = append(xys, plotter.XY{X: c[0], Y: c[1]})
		}
		if len(xys) == 0 {
			continue
		}
		if err := plotutil.AddLinePoints(p, fmt.Sprintf("track %d", i), xys); err != nil {
			return fmt.Errorf("trackvis: %w", err)
		}
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, outPath); err != nil {
		return fmt.Errorf("trackvis: %w", err)
	}
	return nil
}
