package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/LdDl/osmalt"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxFacilities = 100

type server struct {
	graph   *osmalt.Graph
	routers map[string]osmalt.Router
	index   *osmalt.NodeIndex
}

func newServer(g *osmalt.Graph, table *osmalt.LandmarkTable) (*server, error) {
	alt, err := osmalt.NewALT(g, table)
	if err != nil {
		return nil, err
	}
	index, err := osmalt.NewNodeIndex(g)
	if err != nil {
		return nil, err
	}
	return &server{
		graph: g,
		routers: map[string]osmalt.Router{
			"alt":      alt,
			"dijkstra": osmalt.NewDijkstra(g),
		},
		index: index,
	}, nil
}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/route", s.route).Methods("GET")
	r.HandleFunc("/api/route/geojson", s.routeGeoJSON).Methods("GET")
	r.HandleFunc("/api/facilities", s.facilities).Methods("GET")
	r.HandleFunc("/api/nearest", s.nearest).Methods("GET")
	r.HandleFunc("/healthz", s.health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return r
}

type routeResponse struct {
	From         osmalt.NodeID   `json:"from"`
	To           osmalt.NodeID   `json:"to"`
	Algorithm    string          `json:"algorithm"`
	Found        bool            `json:"found"`
	Distance     *int64          `json:"distance,omitempty"`
	Duration     string          `json:"duration"`
	LengthMeters float64         `json:"length_meters"`
	Path         []osmalt.NodeID `json:"path"`
	Visited      int             `json:"visited"`
}

type facilityResponse struct {
	ID       osmalt.NodeID `json:"id"`
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Lat      float64       `json:"lat"`
	Lon      float64       `json:"lon"`
	Distance int64         `json:"distance"`
	Duration string        `json:"duration"`
}

type nearestResponse struct {
	ID  osmalt.NodeID `json:"id"`
	Lat float64       `json:"lat"`
	Lon float64       `json:"lon"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type routeQuery struct {
	from      osmalt.NodeID
	to        osmalt.NodeID
	algorithm string
	result    *osmalt.PathResult
}

// findRoute parses common query parameters of route endpoints and runs the query
func (s *server) findRoute(w http.ResponseWriter, r *http.Request) (*routeQuery, bool) {
	query := r.URL.Query()
	algorithm := query.Get("algorithm")
	if algorithm == "" {
		algorithm = "alt"
	}
	router, ok := s.routers[algorithm]
	if !ok {
		s.fail(w, "route", http.StatusBadRequest, errors.Errorf("unknown algorithm '%s'", algorithm))
		return nil, false
	}
	from, err := parseNodeID(query.Get("from"))
	if err != nil {
		s.fail(w, "route", http.StatusBadRequest, errors.Wrap(err, "from"))
		return nil, false
	}
	to, err := parseNodeID(query.Get("to"))
	if err != nil {
		s.fail(w, "route", http.StatusBadRequest, errors.Wrap(err, "to"))
		return nil, false
	}
	st := time.Now()
	result, err := router.ShortestPath(from, to)
	if err != nil {
		s.fail(w, "route", statusOf(err), err)
		return nil, false
	}
	routeDuration.WithLabelValues(algorithm).Observe(time.Since(st).Seconds())
	routeVisited.WithLabelValues(algorithm).Observe(float64(len(result.Visited)))
	if result.Found() {
		queriesTotal.WithLabelValues("route", "success").Inc()
	} else {
		queriesTotal.WithLabelValues("route", "unreachable").Inc()
	}
	return &routeQuery{from: from, to: to, algorithm: algorithm, result: result}, true
}

func (s *server) route(w http.ResponseWriter, r *http.Request) {
	q, ok := s.findRoute(w, r)
	if !ok {
		return
	}
	result := q.result
	resp := routeResponse{
		From:         q.from,
		To:           q.to,
		Algorithm:    q.algorithm,
		Found:        result.Found(),
		Duration:     osmalt.FormatDuration(result.Distance),
		LengthMeters: s.graph.PathLengthMeters(result.Path),
		Path:         result.Path,
		Visited:      len(result.Visited),
	}
	if result.Found() {
		distance := int64(result.Distance)
		resp.Distance = &distance
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) routeGeoJSON(w http.ResponseWriter, r *http.Request) {
	q, ok := s.findRoute(w, r)
	if !ok {
		return
	}
	b, err := osmalt.PathToGeoJSON(s.graph, q.result)
	if err != nil {
		s.fail(w, "route", http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (s *server) facilities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, err := parseNodeID(query.Get("from"))
	if err != nil {
		s.fail(w, "facilities", http.StatusBadRequest, errors.Wrap(err, "from"))
		return
	}
	mask, ok := osmalt.ParseCategory(query.Get("category"))
	if !ok {
		s.fail(w, "facilities", http.StatusBadRequest, errors.Errorf("bad category '%s'", query.Get("category")))
		return
	}
	k := 5
	if kStr := query.Get("k"); kStr != "" {
		k, err = strconv.Atoi(kStr)
		if err != nil || k < 0 || k > maxFacilities {
			s.fail(w, "facilities", http.StatusBadRequest, errors.Errorf("k should be an integer in [0, %d]", maxFacilities))
			return
		}
	}
	st := time.Now()
	found, err := s.graph.NearestFacilities(from, mask, k)
	if err != nil {
		s.fail(w, "facilities", statusOf(err), err)
		return
	}
	facilitiesDuration.Observe(time.Since(st).Seconds())
	queriesTotal.WithLabelValues("facilities", "success").Inc()
	resp := make([]facilityResponse, 0, len(found))
	for _, facility := range found {
		resp = append(resp, facilityResponse{
			ID:       facility.ID,
			Name:     facility.Name,
			Category: facility.Category.String(),
			Lat:      facility.Point.Lat,
			Lon:      facility.Point.Lon,
			Distance: int64(facility.Distance),
			Duration: osmalt.FormatDuration(facility.Distance),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) nearest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		s.fail(w, "nearest", http.StatusBadRequest, errors.New("lat should be a number in [-90, 90]"))
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		s.fail(w, "nearest", http.StatusBadRequest, errors.New("lon should be a number in [-180, 180]"))
		return
	}
	id, ok := s.index.Nearest(osmalt.GeoPoint{Lat: lat, Lon: lon})
	if !ok {
		s.fail(w, "nearest", http.StatusNotFound, errors.New("graph is empty"))
		return
	}
	queriesTotal.WithLabelValues("nearest", "success").Inc()
	node := s.graph.Node(id)
	writeJSON(w, http.StatusOK, nearestResponse{ID: id, Lat: node.Point.Lat, Lon: node.Point.Lon})
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"nodes":  s.graph.NodesNum(),
		"edges":  s.graph.EdgesNum(),
	})
}

func (s *server) fail(w http.ResponseWriter, kind string, status int, err error) {
	result := "error"
	switch status {
	case http.StatusBadRequest:
		result = "bad_request"
	case http.StatusNotFound:
		result = "not_found"
	}
	queriesTotal.WithLabelValues(kind, result).Inc()
	if status == http.StatusInternalServerError {
		log.Printf("%s query failed: %v", kind, err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	if errors.Is(err, osmalt.ErrNodeOutOfRange) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func parseNodeID(s string) (osmalt.NodeID, error) {
	if s == "" {
		return osmalt.NoNode, errors.New("node identifier is required")
	}
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return osmalt.NoNode, errors.Errorf("bad node identifier '%s'", s)
	}
	return osmalt.NodeID(id), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Can't encode response: %v", err)
	}
}
