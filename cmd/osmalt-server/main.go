package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/LdDl/osmalt"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	var (
		addr              = flag.String("addr", envOr("OSMALT_ADDR", ":8080"), "HTTP bind address")
		dsn               = flag.String("dsn", os.Getenv("OSMALT_DSN"), "MySQL DSN")
		nodesFile         = flag.String("nodes", "", "Filename of nodes file in plain text format")
		edgesFile         = flag.String("edges", "", "Filename of edges file in plain text format")
		poiFile           = flag.String("poi", "", "Filename of points of interest file in plain text format")
		osmFileName       = flag.String("file", "", "Filename of *.osm.pbf or *.osm file")
		landmarksStr      = flag.String("landmarks", "", "Names of points of interest to be used as landmarks (separated by commas)")
		landmarksStrategy = flag.String("landmarks-strategy", "peripheral", "How to choose landmarks. Expected values: name / farthest / peripheral")
		landmarksNum      = flag.Int("landmarks-num", 8, "Number of landmarks for 'farthest' and 'peripheral' strategies")
		preprocessed      = flag.String("preprocessed", "preprocessed.txt", "Filename of landmark table")
		workers           = flag.Int("workers", 0, "Number of concurrent sweeps during preprocessing. Zero means number of CPUs")
	)
	flag.Parse()
	ctx := context.Background()

	importCfg := &osmalt.ImportConfiguration{
		NodesFile: *nodesFile,
		EdgesFile: *edgesFile,
		POIFile:   *poiFile,
		OSMFile:   *osmFileName,
		MySQLPOI:  true,
		Verbose:   true,
	}
	if importCfg.NodesFile == "" && importCfg.OSMFile == "" {
		importCfg.MySQLDSN = *dsn
	}
	g, err := osmalt.ImportGraph(ctx, importCfg)
	if err != nil {
		log.Fatal(err)
	}

	strategy, err := osmalt.ParseLandmarkStrategy(*landmarksStrategy)
	if err != nil {
		log.Fatal(err)
	}
	names := []string{}
	for _, name := range strings.Split(*landmarksStr, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	landmarks, err := osmalt.SelectLandmarks(g, strategy, names, *landmarksNum)
	if err != nil {
		log.Fatal(err)
	}
	st := time.Now()
	table, loaded, err := osmalt.LoadOrPreprocess(ctx, g, *preprocessed, landmarks, osmalt.WithWorkers(*workers), osmalt.WithVerbose(true))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Landmark table is ready in %v (loaded from file: %t)", time.Since(st), loaded)

	srv, err := newServer(g, table)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("OSMALT listening on", *addr)
	log.Fatal(http.ListenAndServe(*addr, srv.routes()))
}
