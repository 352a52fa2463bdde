package osmalt

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Landmark table file layout (values are separated by single space):
//
//	line 1:          landmark identifiers
//	next N lines:    From values of node across landmarks
//	next N lines:    To values of node across landmarks
//
// Infinite distance is written as -1.
const infinityInFile = "-1"

// WriteLandmarkTable writes table in text format
func WriteLandmarkTable(w io.Writer, table *LandmarkTable) error {
	buf := bufio.NewWriterSize(w, 1<<20)
	writer := csv.NewWriter(buf)
	writer.Comma = ' '

	landmarksNum := table.LandmarksNum()
	record := make([]string, landmarksNum)
	for l, id := range table.Landmarks {
		record[l] = strconv.FormatInt(int64(id), 10)
	}
	err := writer.Write(record)
	if err != nil {
		return errors.Wrap(err, "Can't write landmarks")
	}
	for _, rows := range [][][]Weight{table.From, table.To} {
		for v := 0; v < table.NodesNum(); v++ {
			for l := 0; l < landmarksNum; l++ {
				record[l] = formatDistance(rows[l][v])
			}
			err = writer.Write(record)
			if err != nil {
				return errors.Wrapf(err, "Can't write distances of node %d", v)
			}
		}
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		return errors.Wrap(err, "Can't flush landmark table")
	}
	return buf.Flush()
}

// ReadLandmarkTable reads table in text format. Number of nodes must be known in advance.
func ReadLandmarkTable(r io.Reader, nodesNum int) (*LandmarkTable, error) {
	reader := csv.NewReader(bufio.NewReaderSize(r, 1<<20))
	reader.Comma = ' '
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	record, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "Can't read landmarks")
	}
	landmarksNum := len(record)
	table := &LandmarkTable{
		Landmarks: make([]NodeID, landmarksNum),
		From:      make([][]Weight, landmarksNum),
		To:        make([][]Weight, landmarksNum),
	}
	for l, field := range record {
		id, err := strconv.ParseInt(field, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "landmark '%s'", field)
		}
		if id < 0 || int(id) >= nodesNum {
			return nil, errors.Wrapf(ErrNodeOutOfRange, "landmark %d (nodes: %d)", id, nodesNum)
		}
		table.Landmarks[l] = NodeID(id)
		table.From[l] = make([]Weight, nodesNum)
		table.To[l] = make([]Weight, nodesNum)
	}

	for _, rows := range [][][]Weight{table.From, table.To} {
		for v := 0; v < nodesNum; v++ {
			record, err = reader.Read()
			if err != nil {
				if err == io.EOF {
					return nil, errors.Wrapf(ErrTableMismatch, "expected %d nodes, but file is shorter", nodesNum)
				}
				return nil, errors.Wrapf(err, "Can't read distances of node %d", v)
			}
			if len(record) != landmarksNum {
				return nil, errors.Wrapf(ErrTableMismatch, "node %d has %d values, expected %d", v, len(record), landmarksNum)
			}
			for l, field := range record {
				d, err := parseDistance(field)
				if err != nil {
					return nil, errors.Wrapf(err, "node %d", v)
				}
				rows[l][v] = d
			}
		}
	}
	if _, err = reader.Read(); err != io.EOF {
		return nil, errors.Wrapf(ErrTableMismatch, "extra data after %d nodes", nodesNum)
	}
	return table, nil
}

func formatDistance(d Weight) string {
	if d == Infinity {
		return infinityInFile
	}
	return strconv.FormatInt(int64(d), 10)
}

func parseDistance(s string) (Weight, error) {
	d, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedInput, "distance '%s'", s)
	}
	if d < 0 {
		return Infinity, nil
	}
	return Weight(d), nil
}

// SaveLandmarkTable writes table to file
func SaveLandmarkTable(fname string, table *LandmarkTable) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	err = WriteLandmarkTable(file, table)
	if err != nil {
		return err
	}
	return file.Sync()
}

// LoadLandmarkTable reads table from file
func LoadLandmarkTable(fname string, nodesNum int) (*LandmarkTable, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open file")
	}
	defer file.Close()
	return ReadLandmarkTable(file, nodesNum)
}

// LoadOrPreprocess treats landmark table file as a cache. When the file exists, is readable and
// contains the requested landmarks, it is loaded as is. Otherwise preprocessing runs and the
// file is (re)written. Empty landmarks accept any landmark set from the file.
//
// The second return value tells whether the table has been loaded from the file.
func LoadOrPreprocess(ctx context.Context, g *Graph, fname string, landmarks []NodeID, options ...PreprocessOption) (*LandmarkTable, bool, error) {
	cfg := preprocessConfig{}
	for _, option := range options {
		option(&cfg)
	}
	table, err := LoadLandmarkTable(fname, g.NodesNum())
	if err == nil {
		if len(landmarks) == 0 || sameLandmarks(table.Landmarks, landmarks) {
			return table, true, nil
		}
		err = errors.Wrapf(ErrTableMismatch, "file has landmarks %v, requested %v", table.Landmarks, landmarks)
	}
	if cfg.verbose {
		fmt.Printf("Landmark table '%s' can't be used (%s). Preprocessing...\n", fname, err.Error())
	}
	table, err = Preprocess(ctx, g, landmarks, options...)
	if err != nil {
		return nil, false, err
	}
	err = SaveLandmarkTable(fname, table)
	if err != nil {
		fmt.Printf("Warning. Can not save landmark table to '%s': %s\n", fname, err.Error())
	}
	return table, false, nil
}

func sameLandmarks(a, b []NodeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
