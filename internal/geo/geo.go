// Package geo maps geographic coordinates onto the internal campus grid and
// scores guesses by grid distance. Everything here is pure math — the grid
// covers the Monash Clayton campus boundary at 125,000,000 units per degree,
// which makes one grid unit roughly one millimeter shy of a meter at this
// latitude; the rest of the system treats grid units as meters directly.
package geo

import "math"

// Campus boundary. Both the bounds test and the transform use this one set
// of constants; grid coordinates inside the playable area are always >= 0.
const (
	BottomBoundary = -37.916
	TopBoundary    = -37.905
	LeftBoundary   = 145.127
	RightBoundary  = 145.143
)

// UnitsPerDegree converts degrees of latitude/longitude into grid units.
// The 0.016-degree-wide boundary spans 2,000,000 units.
const UnitsPerDegree = 125_000_000

// GridMax is the largest coordinate on either axis of the internal grid.
const GridMax = 2_000_000

// ToGrid translates a geographic point to internal grid coordinates.
func ToGrid(lat, lng float64) (x, y int64) {
	x = int64(math.Ceil((lng - LeftBoundary) * UnitsPerDegree))
	y = int64(math.Ceil((lat - BottomBoundary) * UnitsPerDegree))
	return x, y
}

// ToGeo is the inverse of ToGrid, up to ceil rounding.
func ToGeo(x, y int64) (lat, lng float64) {
	lng = float64(x)/UnitsPerDegree + LeftBoundary
	lat = float64(y)/UnitsPerDegree + BottomBoundary
	return lat, lng
}

// InBounds reports whether a geographic point lies strictly inside the
// campus boundary.
func InBounds(lat, lng float64) bool {
	return LeftBoundary < lng && lng < RightBoundary &&
		BottomBoundary < lat && lat < TopBoundary
}

// Distance is the straight-line Euclidean distance between two grid points,
// in grid units (treated as meters).
func Distance(x1, y1, x2, y2 int64) float64 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return math.Sqrt(dx*dx + dy*dy)
}

// MaxScore is the award for a guess within the flat-score radius.
const MaxScore = 5000

// Score converts a guess distance in meters to a point award in [0, MaxScore].
// Within 10 km the award is flat; beyond that it decays exponentially,
// monotonically toward zero.
func Score(dist float64) int64 {
	if dist < 10_000 {
		return MaxScore
	}
	s := int64(math.Floor(MaxScore * math.Exp(-10*(dist-10_000)/5_000_000)))
	if s < 0 {
		return 0
	}
	return s
}
