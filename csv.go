package openmht

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// ErrCSVFormat indicates a malformed detection or track CSV.
var ErrCSVFormat = errors.New("openmht: malformed CSV")

// missCell is the literal written for a coordinate column on a miss slot.
const missCell = "None"

// ReadDetectionsCSV reads per-frame detections from a CSV with header
// frame,u,v[,w] and rows grouped by ascending frame number. Each distinct
// frame value starts a new frame group.
func ReadDetectionsCSV(path string) (Frames, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCSVFormat, err)
	}
	defer f.Close()
	return readDetections(f)
}

func readDetections(r io.Reader) (Frames, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header: %v", ErrCSVFormat, err)
	}
	if len(header) != 3 && len(header) != 4 {
		return nil, fmt.Errorf("%w: expected header frame,u,v[,w], got %d columns", ErrCSVFormat, len(header))
	}
	dims := len(header) - 1

	var frames Frames
	currentFrame := -1
	haveFrame := false
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCSVFormat, line, err)
		}
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: frame number: %v", ErrCSVFormat, line, err)
		}
		z := make(Coordinate, dims)
		for i := 0; i < dims; i++ {
			z[i], err = strconv.ParseFloat(record[1+i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: coordinate: %v", ErrCSVFormat, line, err)
			}
		}
		if !haveFrame || frame != currentFrame {
			frames = append(frames, nil)
			currentFrame = frame
			haveFrame = true
		}
		frames[len(frames)-1] = append(frames[len(frames)-1], z)
	}
	return frames, nil
}

// WriteTracksCSV writes solution tracks to a CSV with header
// frame,track,u,v[,w]. Miss slots emit the literal None in every coordinate
// column; rows are sorted by frame ascending, track ascending within a frame.
func WriteTracksCSV(path string, tracks []Track) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("openmht: write tracks: %w", err)
	}
	if err := writeTracks(f, tracks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeTracks(w io.Writer, tracks []Track) error {
	dims := trackDims(tracks)

	header := []string{"frame", "track", "u", "v"}
	if dims == 3 {
		header = append(header, "w")
	}

	type row struct {
		frame  int
		fields []string
	}
	var rows []row
	for t, track := range tracks {
		for frame, c := range track {
			fields := make([]string, 0, dims+2)
			fields = append(fields, strconv.Itoa(frame), strconv.Itoa(t))
			if c == nil {
				for i := 0; i < dims; i++ {
					fields = append(fields, missCell)
				}
			} else {
				for _, v := range c {
					fields = append(fields, strconv.FormatFloat(v, 'g', -1, 64))
				}
			}
			rows = append(rows, row{frame: frame, fields: fields})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].frame < rows[j].frame })

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("openmht: write tracks: %w", err)
	}
	for _, r := range rows {
		if err := writer.Write(r.fields); err != nil {
			return fmt.Errorf("openmht: write tracks: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("openmht: write tracks: %w", err)
	}
	return nil
}

// trackDims returns the coordinate dimensionality of the tracks, defaulting
// to 2 when every slot is a miss.
func trackDims(tracks []Track) int {
	for _, track := range tracks {
		for _, c := range track {
			if c != nil {
				return len(c)
			}
		}
	}
	return 2
}

// ReadTracksCSV reads a track CSV produced by WriteTracksCSV. Every track is
// padded to the same length, one slot per frame.
func ReadTracksCSV(path string) ([]Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCSVFormat, err)
	}
	defer f.Close()
	return readTracks(f)
}

func readTracks(r io.Reader) ([]Track, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header: %v", ErrCSVFormat, err)
	}
	if len(header) != 4 && len(header) != 5 {
		return nil, fmt.Errorf("%w: expected header frame,track,u,v[,w], got %d columns", ErrCSVFormat, len(header))
	}
	dims := len(header) - 2

	var tracks []Track
	maxFrame := -1
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCSVFormat, line, err)
		}
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: frame number: %v", ErrCSVFormat, line, err)
		}
		trackID, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: track number: %v", ErrCSVFormat, line, err)
		}
		if frame < 0 || trackID < 0 {
			return nil, fmt.Errorf("%w: line %d: negative frame or track number", ErrCSVFormat, line)
		}

		var z Coordinate
		if record[2] != missCell {
			z = make(Coordinate, dims)
			for i := 0; i < dims; i++ {
				z[i], err = strconv.ParseFloat(record[2+i], 64)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: coordinate: %v", ErrCSVFormat, line, err)
				}
			}
		}

		for trackID >= len(tracks) {
			tracks = append(tracks, nil)
		}
		for frame >= len(tracks[trackID]) {
			tracks[trackID] = append(tracks[trackID], nil)
		}
		tracks[trackID][frame] = z
		if frame > maxFrame {
			maxFrame = frame
		}
	}

	// Pad every track to the full frame range.
	for i := range tracks {
		for len(tracks[i]) <= maxFrame {
			tracks[i] = append(tracks[i], nil)
		}
	}
	return tracks, nil
}
