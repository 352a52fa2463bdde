package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/LdDl/osmalt"
	"github.com/pkg/errors"
)

var (
	nodesFile   = flag.String("nodes", "", "Filename of nodes file in plain text format ('id latitude longitude' per line)")
	edgesFile   = flag.String("edges", "", "Filename of edges file in plain text format ('from to time length speed_limit' per line)")
	poiFile     = flag.String("poi", "", "Filename of points of interest file in plain text format ('node category \"name\"' per line)")
	osmFileName = flag.String("file", "", "Filename of *.osm.pbf or *.osm file. Used instead of plain text files")
	tagStr      = flag.String("tags", "", "Set of needed highway tags (separated by commas). Empty value means all supported road classes")
	costStr     = flag.String("cost", "time", "Cost type for OSM data. Expected values: distance / time / time->maxspeed / time->static->50")
	dsn         = flag.String("dsn", os.Getenv("OSMALT_DSN"), "MySQL DSN. Used instead of files when provided")

	landmarksStr      = flag.String("landmarks", "", "Names of points of interest to be used as landmarks (separated by commas)")
	landmarksStrategy = flag.String("landmarks-strategy", "name", "How to choose landmarks. Expected values: name / farthest / peripheral")
	landmarksNum      = flag.Int("landmarks-num", 5, "Number of landmarks for 'farthest' and 'peripheral' strategies")
	preprocessed      = flag.String("preprocessed", "preprocessed.txt", "Filename of landmark table. It is (re)created if absent or unusable")
	workers           = flag.Int("workers", 0, "Number of concurrent sweeps during preprocessing. Zero means number of CPUs")

	source     = flag.Int("from", 0, "Source node of point-to-point query")
	target     = flag.Int("to", 1, "Target node of point-to-point query")
	categories = flag.String("category", "", "Categories of points of interest to search near source node (names or bitmask), e.g. 'charging' or 'food,drink'")
	nearestK   = flag.Int("k", 5, "Number of points of interest to search")

	dijkstraOut = flag.String("dijkstra-out", "", "Filename to write coordinates of path found by Dijkstra")
	altOut      = flag.String("alt-out", "", "Filename to write coordinates of path found by ALT")
	geojsonOut  = flag.String("geojson", "", "Filename to write GeoJSON with ALT path and visited nodes")
	verify      = flag.Bool("verify", false, "Check distances with contraction hierarchies")
	verbose     = flag.Bool("verbose", true, "Print progress")
)

const maxPathPoints = 500

func main() {
	flag.Parse()
	ctx := context.Background()

	err := run(ctx)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	importCfg, err := prepareImportConfiguration()
	if err != nil {
		return err
	}
	st := time.Now()
	g, err := osmalt.ImportGraph(ctx, importCfg)
	if err != nil {
		return errors.Wrap(err, "Can't import graph")
	}
	fmt.Printf("Time spent reading map: %v\n\n", time.Since(st))

	strategy, err := osmalt.ParseLandmarkStrategy(*landmarksStrategy)
	if err != nil {
		return err
	}
	landmarks, err := osmalt.SelectLandmarks(g, strategy, splitList(*landmarksStr), *landmarksNum)
	if err != nil {
		return errors.Wrap(err, "Can't select landmarks")
	}
	st = time.Now()
	table, loaded, err := osmalt.LoadOrPreprocess(ctx, g, *preprocessed, landmarks, osmalt.WithWorkers(*workers), osmalt.WithVerbose(*verbose))
	if err != nil {
		return errors.Wrap(err, "Can't prepare landmark table")
	}
	if loaded {
		fmt.Printf("Time spent reading preprocessed map: %v\n\n", time.Since(st))
	} else {
		fmt.Printf("Time spent preprocessing map: %v\n\n", time.Since(st))
	}

	alt, err := osmalt.NewALT(g, table)
	if err != nil {
		return err
	}
	from, to := osmalt.NodeID(*source), osmalt.NodeID(*target)

	st = time.Now()
	dijkstraResult, err := osmalt.NewDijkstra(g).ShortestPath(from, to)
	if err != nil {
		return errors.Wrap(err, "Dijkstra")
	}
	fmt.Printf("Time spent on dijkstra: %v\n", time.Since(st))
	printResult(g, dijkstraResult)

	st = time.Now()
	altResult, err := alt.ShortestPath(from, to)
	if err != nil {
		return errors.Wrap(err, "ALT")
	}
	fmt.Printf("Time spent on alt algorithm: %v\n", time.Since(st))
	printResult(g, altResult)
	fmt.Printf("Alt visited nodes vs dijkstra visited nodes: %d/%d\n\n", len(altResult.Visited), len(dijkstraResult.Visited))

	if *dijkstraOut != "" {
		if err := osmalt.SavePathCSV(*dijkstraOut, g, dijkstraResult.Path, maxPathPoints); err != nil {
			return errors.Wrap(err, "Can't save Dijkstra path")
		}
	}
	if *altOut != "" {
		if err := osmalt.SavePathCSV(*altOut, g, altResult.Path, maxPathPoints); err != nil {
			return errors.Wrap(err, "Can't save ALT path")
		}
	}
	if *geojsonOut != "" {
		b, err := osmalt.PathToGeoJSON(g, altResult)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*geojsonOut, b, 0644); err != nil {
			return errors.Wrap(err, "Can't save GeoJSON")
		}
	}

	if *categories != "" {
		mask, ok := osmalt.ParseCategory(*categories)
		if !ok {
			return errors.Errorf("Bad category '%s'", *categories)
		}
		facilities, err := g.NearestFacilities(from, mask, *nearestK)
		if err != nil {
			return errors.Wrap(err, "Can't find points of interest")
		}
		fmt.Printf("Points of interest (%s) the closest to node %d:\n", mask, from)
		for _, facility := range facilities {
			fmt.Printf("\t%d: %s with type: %s, time: %s\n", facility.ID, facility.Name, facility.Category, osmalt.FormatDuration(facility.Distance))
		}
		fmt.Println()
	}

	if *verify {
		return verifyWithContraction(g, from, to, altResult)
	}
	return nil
}

func prepareImportConfiguration() (*osmalt.ImportConfiguration, error) {
	cfg := &osmalt.ImportConfiguration{
		NodesFile: *nodesFile,
		EdgesFile: *edgesFile,
		POIFile:   *poiFile,
		OSMFile:   *osmFileName,
		MySQLDSN:  *dsn,
		MySQLPOI:  true,
		Verbose:   *verbose,
	}
	if cfg.OSMFile != "" {
		cfg.OSM = osmalt.DefaultOsmConfiguration()
		if err := cfg.OSM.ParseTags(*tagStr); err != nil {
			return nil, err
		}
		if err := cfg.OSM.ParseCostType(*costStr); err != nil {
			return nil, err
		}
	}
	// Files given explicitly take precedence over DSN taken from environment
	if (cfg.NodesFile != "" || cfg.OSMFile != "") && *dsn == os.Getenv("OSMALT_DSN") {
		cfg.MySQLDSN = ""
	}
	return cfg, nil
}

func printResult(g *osmalt.Graph, result *osmalt.PathResult) {
	if !result.Found() {
		fmt.Printf("No path found\n\n")
		return
	}
	fmt.Printf("Time used from start->end: %s\n", osmalt.FormatDuration(result.Distance))
	fmt.Printf("Distance: %.2f km, nodes in path: %d\n\n", g.PathLengthMeters(result.Path)/1000.0, len(result.Path))
}

func verifyWithContraction(g *osmalt.Graph, from, to osmalt.NodeID, altResult *osmalt.PathResult) error {
	contracted, err := osmalt.ToContractionHierarchies(g, *verbose)
	if err != nil {
		return errors.Wrap(err, "Can't prepare contraction hierarchies")
	}
	st := time.Now()
	chResult, err := contracted.ShortestPath(from, to)
	if err != nil {
		return errors.Wrap(err, "Contraction hierarchies")
	}
	fmt.Printf("Time spent on contraction hierarchies: %v\n", time.Since(st))
	if chResult.Distance != altResult.Distance {
		return errors.Errorf("Distances differ: ALT = %d, contraction hierarchies = %d", altResult.Distance, chResult.Distance)
	}
	fmt.Println("Distances are equal")
	return nil
}

func splitList(s string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
