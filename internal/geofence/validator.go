// Package geofence decides whether a coordinate lies inside a set of
// authorized station boundaries. All functions are pure; persistence and
// logging of results belong to the caller.
package geofence

import "math"

// earthRadiusMeter is the spherical Earth radius used by the haversine formula.
const earthRadiusMeter = 6371000

// Point is a WGS-84 coordinate pair.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Circle is a center plus radius boundary. Membership is boundary-inclusive.
type Circle struct {
	Center       Point
	RadiusMeters float64
}

// Polygon is an ordered vertex ring. The ring does not need to repeat its
// first vertex; fewer than 3 vertices never match.
type Polygon struct {
	Vertices []Point
}

// Zone is one authorized boundary. A zone may carry a circle, a polygon, or
// both; a point inside either shape is inside the zone.
type Zone struct {
	ID      uint
	Name    string
	Circle  *Circle
	Polygon *Polygon
}

// Result is the outcome of a containment check.
type Result struct {
	Inside bool
	// Matched is the first zone that contained the point, nil when outside.
	Matched *Zone
	// DistanceToNearest is the distance in meters to the nearest zone center,
	// set only when the point is outside all zones and at least one exists.
	DistanceToNearest *float64
}

// Validate checks the point against the zones in the order given. The first
// zone that contains the point wins; overlapping zones are resolved by that
// order. Zone order never changes the inside/outside answer itself.
func Validate(p Point, zones []Zone) Result {
	for i := range zones {
		z := &zones[i]
		if z.Circle != nil && z.Circle.contains(p) {
			return Result{Inside: true, Matched: z}
		}
		if z.Polygon != nil && z.Polygon.contains(p) {
			return Result{Inside: true, Matched: z}
		}
	}
	return Result{DistanceToNearest: NearestOf(p, zones)}
}

// NearestOf returns the minimum distance from the point to any zone center,
// nil when no zones exist. A circle's center is used directly; a polygon-only
// zone uses its vertex centroid.
func NearestOf(p Point, zones []Zone) *float64 {
	var nearest *float64
	for i := range zones {
		c, ok := zones[i].center()
		if !ok {
			continue
		}
		d := Distance(p, c)
		if nearest == nil || d < *nearest {
			nearest = &d
		}
	}
	return nearest
}

func (z *Zone) center() (Point, bool) {
	if z.Circle != nil {
		return z.Circle.Center, true
	}
	if z.Polygon != nil && len(z.Polygon.Vertices) > 0 {
		var lat, lng float64
		for _, v := range z.Polygon.Vertices {
			lat += v.Latitude
			lng += v.Longitude
		}
		n := float64(len(z.Polygon.Vertices))
		return Point{Latitude: lat / n, Longitude: lng / n}, true
	}
	return Point{}, false
}

func (c *Circle) contains(p Point) bool {
	return Distance(p, c.Center) <= c.RadiusMeters
}

// contains applies the even-odd ray casting test. A point exactly on an edge
// is not guaranteed inclusive, but the answer is deterministic.
func (pg *Polygon) contains(p Point) bool {
	n := len(pg.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := pg.Vertices[i], pg.Vertices[j]
		if (vi.Longitude > p.Longitude) != (vj.Longitude > p.Longitude) &&
			p.Latitude < (vj.Latitude-vi.Latitude)*(p.Longitude-vi.Longitude)/(vj.Longitude-vi.Longitude)+vi.Latitude {
			inside = !inside
		}
	}
	return inside
}

// Distance returns the great-circle distance between two points in meters,
// using the haversine formula on a spherical Earth.
func Distance(a, b Point) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLng := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	latA := a.Latitude * (math.Pi / 180.0)
	latB := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(latA)*math.Cos(latB)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeter * c
}
