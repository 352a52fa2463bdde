package osmalt

import (
	"strconv"
	"strings"
)

// NodeID is dense identifier of node in graph: 0..N-1
type NodeID int32

// NoNode marks absence of node (e.g. predecessor of the source)
const NoNode = NodeID(-1)

// Node is a vertex of road network
type Node struct {
	ID       NodeID
	Point    GeoPoint
	Category Category
	Name     string
}

// Category is a classification bitmask of node. Multiple categories could be summed up.
type Category uint16

const (
	CATEGORY_NONE     = Category(0)
	CATEGORY_PLACE    = Category(1)
	CATEGORY_GAS      = Category(2)
	CATEGORY_CHARGING = Category(4)
	CATEGORY_FOOD     = Category(8)
	CATEGORY_DRINK    = Category(16)
	CATEGORY_LODGING  = Category(32)
)

var categoriesOrdered = []Category{
	CATEGORY_PLACE,
	CATEGORY_GAS,
	CATEGORY_CHARGING,
	CATEGORY_FOOD,
	CATEGORY_DRINK,
	CATEGORY_LODGING,
}

var categoryNames = map[Category]string{
	CATEGORY_PLACE:    "place",
	CATEGORY_GAS:      "gas",
	CATEGORY_CHARGING: "charging",
	CATEGORY_FOOD:     "food",
	CATEGORY_DRINK:    "drink",
	CATEGORY_LODGING:  "lodging",
}

// Matches reports whether category has any bit in common with mask
func (category Category) Matches(mask Category) bool {
	return category&mask != 0
}

func (category Category) String() string {
	if category == CATEGORY_NONE {
		return "none"
	}
	names := []string{}
	for _, c := range categoriesOrdered {
		if category&c != 0 {
			names = append(names, categoryNames[c])
		}
	}
	return strings.Join(names, ",")
}

// ParseCategory parses either comma separated category names ("food,drink") or a numeric mask
func ParseCategory(s string) (Category, bool) {
	var mask Category
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		found := false
		for c, name := range categoryNames {
			if name == part {
				mask |= c
				found = true
				break
			}
		}
		if found {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 16)
		if err != nil {
			return CATEGORY_NONE, false
		}
		mask |= Category(n)
	}
	return mask, mask != CATEGORY_NONE
}
