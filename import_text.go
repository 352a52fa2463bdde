package osmalt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Plain text road network format:
//
//	nodes file:  first line is number of nodes, then "id latitude longitude" per line
//	edges file:  first line is number of edges, then "from to time length speed_limit" per line
//	             (time in hundredths of a second, length in meters, speed limit in km/h)
//	POI file:    first line is number of points, then `node category "name"` per line
//
// Node identifiers must be dense and go in order: 0, 1, ..., N-1.

// ImportFromTextFiles builds graph from nodes, edges and (optional) POI files
func ImportFromTextFiles(nodesFile, edgesFile, poiFile string, verbose bool) (*Graph, error) {
	g := NewGraph()
	steps := []struct {
		fname string
		title string
		read  func(io.Reader, *Graph) error
	}{
		{nodesFile, "nodes", ReadNodes},
		{edgesFile, "edges", ReadEdges},
		{poiFile, "points of interest", ReadPOI},
	}
	for _, step := range steps {
		if step.fname == "" {
			continue
		}
		if verbose {
			fmt.Printf("Reading %s from '%s'...", step.title, step.fname)
		}
		st := time.Now()
		err := readFile(step.fname, g, step.read)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't read %s", step.title)
		}
		if verbose {
			fmt.Printf("Done in %v\n", time.Since(st))
		}
	}
	if verbose {
		fmt.Println(g)
	}
	return g, nil
}

func readFile(fname string, g *Graph, read func(io.Reader, *Graph) error) error {
	file, err := os.Open(fname)
	if err != nil {
		return errors.Wrap(err, "Can't open file")
	}
	defer file.Close()
	return read(file, g)
}

// lineScanner reads non-empty lines and splits them into fields
type lineScanner struct {
	scanner *bufio.Scanner
	line    int
}

func newLineScanner(r io.Reader) *lineScanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineScanner{scanner: scanner}
}

func (ls *lineScanner) next() (string, bool) {
	for ls.scanner.Scan() {
		ls.line++
		text := strings.TrimSpace(ls.scanner.Text())
		if text != "" {
			return text, true
		}
	}
	return "", false
}

func (ls *lineScanner) malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedInput, "line %d: %s", ls.line, fmt.Sprintf(format, args...))
}

// readHeader reads the first line which holds number of records
func (ls *lineScanner) readHeader() (int, error) {
	text, ok := ls.next()
	if !ok {
		if err := ls.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, ls.malformed("missing header")
	}
	fields := strings.Fields(text)
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, ls.malformed("bad number of records '%s'", fields[0])
	}
	return n, nil
}

// readRecords calls fn for every of n records
func (ls *lineScanner) readRecords(n int, fn func(text string) error) error {
	for i := 0; i < n; i++ {
		text, ok := ls.next()
		if !ok {
			if err := ls.scanner.Err(); err != nil {
				return err
			}
			return ls.malformed("expected %d records, got %d", n, i)
		}
		if err := fn(text); err != nil {
			return err
		}
	}
	return nil
}

// ReadNodes reads nodes in plain text format and adds them to the graph
func ReadNodes(r io.Reader, g *Graph) error {
	ls := newLineScanner(r)
	n, err := ls.readHeader()
	if err != nil {
		return err
	}
	if g.NodesNum() == 0 {
		WithNodesCapacity(n)(g)
	}
	return ls.readRecords(n, func(text string) error {
		fields := strings.Fields(text)
		if len(fields) < 3 {
			return ls.malformed("node needs 3 fields, got %d", len(fields))
		}
		id, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return ls.malformed("bad node id '%s'", fields[0])
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return ls.malformed("bad latitude '%s'", fields[1])
		}
		lon, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return ls.malformed("bad longitude '%s'", fields[2])
		}
		if NodeID(id) != NodeID(g.NodesNum()) {
			return errors.Wrapf(ErrNonDenseID, "line %d: got %d, expected %d", ls.line, id, g.NodesNum())
		}
		g.AddNode(GeoPoint{Lat: lat, Lon: lon})
		return nil
	})
}

// ReadEdges reads edges in plain text format and adds them to the graph. Nodes must be read already.
func ReadEdges(r io.Reader, g *Graph) error {
	ls := newLineScanner(r)
	n, err := ls.readHeader()
	if err != nil {
		return err
	}
	return ls.readRecords(n, func(text string) error {
		fields := strings.Fields(text)
		if len(fields) < 3 {
			return ls.malformed("edge needs at least 3 fields, got %d", len(fields))
		}
		from, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return ls.malformed("bad source '%s'", fields[0])
		}
		to, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return ls.malformed("bad target '%s'", fields[1])
		}
		weight, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return ls.malformed("bad weight '%s'", fields[2])
		}
		options := []EdgeOption{}
		if len(fields) > 3 {
			length, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return ls.malformed("bad length '%s'", fields[3])
			}
			options = append(options, WithLength(length))
		}
		if len(fields) > 4 {
			speed, err := strconv.Atoi(fields[4])
			if err != nil {
				return ls.malformed("bad speed limit '%s'", fields[4])
			}
			options = append(options, WithSpeedLimit(speed))
		}
		err = g.AddEdge(NodeID(from), NodeID(to), Weight(weight), options...)
		if err != nil {
			return errors.Wrapf(err, "line %d", ls.line)
		}
		return nil
	})
}

// ReadPOI reads points of interest in plain text format and merges them into nodes of the graph.
// Name may contain spaces and is stripped of double quotes.
func ReadPOI(r io.Reader, g *Graph) error {
	ls := newLineScanner(r)
	n, err := ls.readHeader()
	if err != nil {
		return err
	}
	return ls.readRecords(n, func(text string) error {
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return ls.malformed("point of interest needs at least 2 fields, got %d", len(fields))
		}
		id, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return ls.malformed("bad node id '%s'", fields[0])
		}
		category, err := strconv.ParseUint(fields[1], 10, 16)
		if err != nil {
			return ls.malformed("bad category '%s'", fields[1])
		}
		name := strings.ReplaceAll(strings.Join(fields[2:], " "), `"`, "")
		err = g.AddPOI(NodeID(id), Category(category), name)
		if err != nil {
			return errors.Wrapf(err, "line %d", ls.line)
		}
		return nil
	})
}
