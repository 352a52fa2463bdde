package osmalt

// Facility is a point of interest found by proximity query
type Facility struct {
	ID       NodeID
	Name     string
	Category Category
	Point    GeoPoint
	Distance Weight
}

type facilityConfig struct {
	includeSource bool
}

// FacilityOption tunes proximity query
type FacilityOption func(*facilityConfig)

// WithSource allows the source node itself to be a part of the result
func WithSource() FacilityOption {
	return func(cfg *facilityConfig) {
		cfg.includeSource = true
	}
}

// NearestFacilities returns up to k nodes nearest to source (by network distance) whose
// category has anything in common with mask. Nodes are ordered by increasing distance.
// If the whole reachable part of graph contains less than k such nodes, all of them are returned.
func (g *Graph) NearestFacilities(source NodeID, mask Category, k int, options ...FacilityOption) ([]Facility, error) {
	if err := g.checkNode(source); err != nil {
		return nil, err
	}
	cfg := facilityConfig{}
	for _, option := range options {
		option(&cfg)
	}
	found := []Facility{}
	if k <= 0 || mask == CATEGORY_NONE {
		return found, nil
	}
	g.search(source, nil, func(id NodeID, state *searchState) bool {
		if id == source && !cfg.includeSource {
			return false
		}
		node := g.nodes[id]
		if !node.Category.Matches(mask) {
			return false
		}
		found = append(found, Facility{
			ID:       id,
			Name:     node.Name,
			Category: node.Category,
			Point:    node.Point,
			Distance: state.dist[id],
		})
		return len(found) >= k
	})
	return found, nil
}
