package osmalt

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
)

// Queries for MySQL storage of road network. Node identifiers must be dense: 0..N-1.
const (
	sqlSelectNodes = `SELECT id, lat, lon FROM nodes ORDER BY id`
	sqlSelectEdges = `SELECT src, dst, weight, length_m, speed_kmh FROM edges`
	sqlSelectPOI   = `SELECT node_id, category, name FROM pois`
)

type sqlStep struct {
	title string
	read  func(context.Context, *sql.DB, *Graph) error
}

// ImportFromSQL loads graph from tables `nodes`, `edges` and (optional) `pois`.
// Caller is responsible for opening database with proper driver (e.g. "github.com/go-sql-driver/mysql").
func ImportFromSQL(ctx context.Context, db *sql.DB, withPOI bool, verbose bool) (*Graph, error) {
	g := NewGraph()
	steps := []sqlStep{
		{"nodes", readSQLNodes},
		{"edges", readSQLEdges},
	}
	if withPOI {
		steps = append(steps, sqlStep{"points of interest", readSQLPOI})
	}
	for _, step := range steps {
		if verbose {
			fmt.Printf("Reading %s from database...", step.title)
		}
		st := time.Now()
		if err := step.read(ctx, db, g); err != nil {
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

// sqlNodeID converts database identifier into NodeID without silent truncation
func sqlNodeID(id int64) (NodeID, error) {
	if id < 0 || id > math.MaxInt32 {
		return NoNode, errors.Wrapf(ErrNodeOutOfRange, "node %d", id)
	}
	return NodeID(id), nil
}

func readSQLNodes(ctx context.Context, db *sql.DB, g *Graph) error {
	rows, err := db.QueryContext(ctx, sqlSelectNodes)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var lat, lon float64
		if err := rows.Scan(&id, &lat, &lon); err != nil {
			return err
		}
		if _, err := sqlNodeID(id); err != nil {
			return err
		}
		if id != int64(g.NodesNum()) {
			return errors.Wrapf(ErrNonDenseID, "got %d, expected %d", id, g.NodesNum())
		}
		g.AddNode(GeoPoint{Lat: lat, Lon: lon})
	}
	return rows.Err()
}

func readSQLEdges(ctx context.Context, db *sql.DB, g *Graph) error {
	rows, err := db.QueryContext(ctx, sqlSelectEdges)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var src, dst, weight int64
		var length sql.NullFloat64
		var speed sql.NullInt64
		if err := rows.Scan(&src, &dst, &weight, &length, &speed); err != nil {
			return err
		}
		from, err := sqlNodeID(src)
		if err != nil {
			return err
		}
		to, err := sqlNodeID(dst)
		if err != nil {
			return err
		}
		options := []EdgeOption{}
		if length.Valid {
			options = append(options, WithLength(length.Float64))
		}
		if speed.Valid {
			options = append(options, WithSpeedLimit(int(speed.Int64)))
		}
		if err := g.AddEdge(from, to, Weight(weight), options...); err != nil {
			return err
		}
	}
	return rows.Err()
}

func readSQLPOI(ctx context.Context, db *sql.DB, g *Graph) error {
	rows, err := db.QueryContext(ctx, sqlSelectPOI)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var category int64
		var name sql.NullString
		if err := rows.Scan(&id, &category, &name); err != nil {
			return err
		}
		node, err := sqlNodeID(id)
		if err != nil {
			return err
		}
		if category < 0 || category > int64(^Category(0)) {
			return errors.Wrapf(ErrMalformedInput, "category %d of node %d", category, id)
		}
		if err := g.AddPOI(node, Category(category), name.String); err != nil {
			return err
		}
	}
	return rows.Err()
}
