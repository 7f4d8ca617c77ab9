package nav

import (
	"math"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/kass/go-vehicle-dash/pkg/alerts"
	"github.com/kass/go-vehicle-dash/pkg/geo"
)

const (
	// R-Tree parameters. Routes hold tens of waypoints, so small nodes
	// keep the tree shallow.
	tolerance   = 0.01
	minChildren = 2
	maxChildren = 8
	dimensions  = 2

	earthRadius = 6371.0 // km
)

// Waypoint is a named stop on the route.
type Waypoint struct {
	Coordinate geo.Coordinate `json:"coordinate"`
	Name       string         `json:"name"`
	Address    string         `json:"address,omitempty"`
}

// waypointEntry wraps a Waypoint for R-Tree indexing.
type waypointEntry struct {
	waypoint Waypoint
	rect     *rtreego.Rect
}

func (e *waypointEntry) Bounds() *rtreego.Rect {
	return e.rect
}

// Route is an ordered list of waypoints with a spatial index over
// their coordinates for nearest-stop and proximity queries.
type Route struct {
	mu        sync.RWMutex
	waypoints []Waypoint
	tree      *rtreego.Rtree
	notifier  alerts.Notifier
}

// NewRoute returns an empty route.
func NewRoute(notifier alerts.Notifier) *Route {
	if notifier == nil {
		notifier = alerts.Nop{}
	}
	return &Route{
		tree:     rtreego.NewTree(dimensions, minChildren, maxChildren),
		notifier: notifier,
	}
}

// Add appends a waypoint to the route. A waypoint with an invalid
// coordinate is rejected and reported, leaving the route unchanged.
func (r *Route) Add(w Waypoint) bool {
	if !w.Coordinate.Valid() {
		r.notifier.Notify("Invalid waypoint coordinates", alerts.LevelWarning)
		return false
	}

	r.mu.Lock()
	r.waypoints = append(r.waypoints, w)
	p := rtreego.Point{w.Coordinate.Lat, w.Coordinate.Lon}
	r.tree.Insert(&waypointEntry{waypoint: w, rect: p.ToRect(tolerance)})
	r.mu.Unlock()

	r.notifier.Notify("Waypoint added: "+w.Name, alerts.LevelInfo)
	return true
}

// Clear removes every waypoint.
func (r *Route) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.waypoints = nil
	r.tree = rtreego.NewTree(dimensions, minChildren, maxChildren)
}

// Waypoints returns the waypoints in insertion order.
func (r *Route) Waypoints() []Waypoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Waypoint, len(r.waypoints))
	copy(out, r.waypoints)
	return out
}

// Len returns the number of waypoints on the route.
func (r *Route) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.waypoints)
}

// Nearest returns the waypoint closest to from. The second return is
// false when the route is empty or from is invalid.
func (r *Route) Nearest(from geo.Coordinate) (Waypoint, bool) {
	if !from.Valid() {
		return Waypoint{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.waypoints) == 0 {
		return Waypoint{}, false
	}

	results := r.tree.NearestNeighbors(1, rtreego.Point{from.Lat, from.Lon})
	if len(results) == 0 {
		return Waypoint{}, false
	}
	entry, ok := results[0].(*waypointEntry)
	if !ok {
		return Waypoint{}, false
	}
	return entry.waypoint, true
}

// Within returns the waypoints inside radiusKm of from, filtered by
// actual great-circle distance after the index narrows candidates.
func (r *Route) Within(from geo.Coordinate, radiusKm float64) []Waypoint {
	if !from.Valid() || radiusKm <= 0 {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Convert radius to degrees (approximation) for the query box.
	deg := (radiusKm / earthRadius) * (180 / math.Pi)
	bounds, err := rtreego.NewRect(
		rtreego.Point{from.Lat - deg, from.Lon - deg},
		[]float64{2 * deg, 2 * deg},
	)
	if err != nil {
		return nil
	}

	results := r.tree.SearchIntersect(bounds)
	waypoints := make([]Waypoint, 0, len(results))
	for _, result := range results {
		entry, ok := result.(*waypointEntry)
		if !ok {
			continue
		}
		if dist := geo.Distance(from, entry.waypoint.Coordinate); dist >= 0 && dist <= radiusKm {
			waypoints = append(waypoints, entry.waypoint)
		}
	}
	return waypoints
}
