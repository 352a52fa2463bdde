package osmalt

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

// ImportSource is kind of road network storage
type ImportSource uint16

const (
	SOURCE_UNDEFINED = ImportSource(iota)
	SOURCE_TEXT
	SOURCE_OSM
	SOURCE_MYSQL
)

func (iotaIdx ImportSource) String() string {
	return [...]string{"undefined", "text", "osm", "mysql"}[iotaIdx]
}

// ImportConfiguration describes where road network should be taken from.
// Exactly one source should be set: text files, OSM file or MySQL DSN.
type ImportConfiguration struct {
	NodesFile string
	EdgesFile string
	POIFile   string

	OSMFile string
	OSM     *OsmConfiguration

	MySQLDSN string
	// Read `pois` table as well
	MySQLPOI bool

	Verbose bool
}

// Source returns kind of storage set in configuration
func (cfg *ImportConfiguration) Source() (ImportSource, error) {
	sources := []ImportSource{}
	if cfg.NodesFile != "" || cfg.EdgesFile != "" {
		if cfg.NodesFile == "" || cfg.EdgesFile == "" {
			return SOURCE_UNDEFINED, errors.New("both nodes and edges files should be provided")
		}
		sources = append(sources, SOURCE_TEXT)
	}
	if cfg.OSMFile != "" {
		sources = append(sources, SOURCE_OSM)
	}
	if cfg.MySQLDSN != "" {
		sources = append(sources, SOURCE_MYSQL)
	}
	switch len(sources) {
	case 0:
		return SOURCE_UNDEFINED, errors.New("no road network source provided")
	case 1:
		return sources[0], nil
	default:
		return SOURCE_UNDEFINED, errors.Errorf("several road network sources provided: %v", sources)
	}
}

// ImportGraph loads road network from the source set in configuration
func ImportGraph(ctx context.Context, cfg *ImportConfiguration) (*Graph, error) {
	source, err := cfg.Source()
	if err != nil {
		return nil, err
	}
	switch source {
	case SOURCE_TEXT:
		return ImportFromTextFiles(cfg.NodesFile, cfg.EdgesFile, cfg.POIFile, cfg.Verbose)
	case SOURCE_OSM:
		return ImportFromOSMFile(ctx, cfg.OSMFile, cfg.OSM, cfg.Verbose)
	case SOURCE_MYSQL:
		db, err := OpenMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return ImportFromSQL(ctx, db, cfg.MySQLPOI, cfg.Verbose)
	default:
		return nil, errors.Errorf("unsupported source '%s'", source)
	}
}

// OpenMySQL opens MySQL database by DSN (e.g. "user:password@tcp(127.0.0.1:3306)/roads")
func OpenMySQL(dsn string) (*sql.DB, error) {
	mysqlCfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "Bad MySQL DSN")
	}
	if mysqlCfg.Timeout == 0 {
		mysqlCfg.Timeout = 10 * time.Second
	}
	connector, err := mysql.NewConnector(mysqlCfg)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare MySQL connector")
	}
	return sql.OpenDB(connector), nil
}
