package geofence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bangalore = Point{Latitude: 12.9716, Longitude: 77.5946}

// pointNorthOf moves the given distance due north along the meridian.
func pointNorthOf(p Point, meters float64) Point {
	return Point{
		Latitude:  p.Latitude + (meters/earthRadiusMeter)*(180.0/math.Pi),
		Longitude: p.Longitude,
	}
}

func circleZone(id uint, center Point, radius float64) Zone {
	return Zone{ID: id, Name: "circle", Circle: &Circle{Center: center, RadiusMeters: radius}}
}

func TestDistance(t *testing.T) {
	assert.Zero(t, Distance(bangalore, bangalore))

	p := pointNorthOf(bangalore, 500)
	assert.InDelta(t, 500, Distance(bangalore, p), 0.01)

	// Symmetric.
	assert.Equal(t, Distance(bangalore, p), Distance(p, bangalore))
}

func TestValidateCircle(t *testing.T) {
	t.Run("center is inside", func(t *testing.T) {
		res := Validate(bangalore, []Zone{circleZone(1, bangalore, 500)})
		require.True(t, res.Inside)
		require.NotNil(t, res.Matched)
		assert.Equal(t, uint(1), res.Matched.ID)
		assert.Nil(t, res.DistanceToNearest)
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		p := pointNorthOf(bangalore, 500)
		// Use the measured distance as the radius so the point sits exactly
		// on the boundary.
		radius := Distance(bangalore, p)
		res := Validate(p, []Zone{circleZone(1, bangalore, radius)})
		assert.True(t, res.Inside)
	})

	t.Run("one meter past the radius is outside", func(t *testing.T) {
		p := pointNorthOf(bangalore, 501)
		res := Validate(p, []Zone{circleZone(1, bangalore, 500)})
		require.False(t, res.Inside)
		assert.Nil(t, res.Matched)
		require.NotNil(t, res.DistanceToNearest)
		assert.InDelta(t, 501, *res.DistanceToNearest, 0.5)
	})
}

func TestValidatePolygon(t *testing.T) {
	square := Zone{ID: 2, Name: "square", Polygon: &Polygon{Vertices: []Point{
		{Latitude: 12.96, Longitude: 77.58},
		{Latitude: 12.96, Longitude: 77.60},
		{Latitude: 12.98, Longitude: 77.60},
		{Latitude: 12.98, Longitude: 77.58},
	}}}

	t.Run("centroid is inside", func(t *testing.T) {
		res := Validate(Point{Latitude: 12.97, Longitude: 77.59}, []Zone{square})
		require.True(t, res.Inside)
		assert.Equal(t, uint(2), res.Matched.ID)
	})

	t.Run("far outside the bounding box", func(t *testing.T) {
		res := Validate(Point{Latitude: 20, Longitude: 80}, []Zone{square})
		assert.False(t, res.Inside)
	})

	t.Run("degenerate ring never matches", func(t *testing.T) {
		line := Zone{Polygon: &Polygon{Vertices: []Point{
			{Latitude: 12.96, Longitude: 77.58},
			{Latitude: 12.98, Longitude: 77.60},
		}}}
		res := Validate(Point{Latitude: 12.97, Longitude: 77.59}, []Zone{line})
		assert.False(t, res.Inside)
	})
}

func TestValidateEitherShapeQualifies(t *testing.T) {
	// Circle misses, polygon contains: the zone still matches.
	zone := Zone{
		ID:     3,
		Circle: &Circle{Center: Point{Latitude: 0, Longitude: 0}, RadiusMeters: 10},
		Polygon: &Polygon{Vertices: []Point{
			{Latitude: 12.96, Longitude: 77.58},
			{Latitude: 12.96, Longitude: 77.60},
			{Latitude: 12.98, Longitude: 77.60},
			{Latitude: 12.98, Longitude: 77.58},
		}},
	}
	res := Validate(Point{Latitude: 12.97, Longitude: 77.59}, []Zone{zone})
	require.True(t, res.Inside)
	assert.Equal(t, uint(3), res.Matched.ID)
}

func TestValidateZoneOrder(t *testing.T) {
	a := circleZone(1, bangalore, 1000)
	b := circleZone(2, bangalore, 1000)

	first := Validate(bangalore, []Zone{a, b})
	second := Validate(bangalore, []Zone{b, a})

	// Order decides which overlapping zone is reported, never the verdict.
	assert.True(t, first.Inside)
	assert.True(t, second.Inside)
	assert.Equal(t, uint(1), first.Matched.ID)
	assert.Equal(t, uint(2), second.Matched.ID)
}

func TestValidateEmptyZoneSet(t *testing.T) {
	res := Validate(bangalore, nil)
	assert.False(t, res.Inside)
	assert.Nil(t, res.Matched)
	assert.Nil(t, res.DistanceToNearest)
}

func TestNearestOf(t *testing.T) {
	far := circleZone(1, pointNorthOf(bangalore, 5000), 100)
	near := circleZone(2, pointNorthOf(bangalore, 1200), 100)

	d := NearestOf(bangalore, []Zone{far, near})
	require.NotNil(t, d)
	assert.InDelta(t, 1200, *d, 1)
}

func TestNearestOfPolygonCentroid(t *testing.T) {
	square := Zone{Polygon: &Polygon{Vertices: []Point{
		{Latitude: 12.96, Longitude: 77.58},
		{Latitude: 12.96, Longitude: 77.60},
		{Latitude: 12.98, Longitude: 77.60},
		{Latitude: 12.98, Longitude: 77.58},
	}}}

	d := NearestOf(Point{Latitude: 12.97, Longitude: 77.59}, []Zone{square})
	require.NotNil(t, d)
	// The probe sits on the centroid itself.
	assert.InDelta(t, 0, *d, 0.01)
}
