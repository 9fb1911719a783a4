// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	domainerrors "shoplist/internal/domain/errors"
)

// Coordinate is an immutable geographic point together with the extent of the
// map viewport around it. The deltas describe a bounding box centered on the
// point, e.g. the visible area a client was looking at when it picked the spot.
// Values are taken as-is; range checks are a caller concern.
type Coordinate struct {
	Longitude      float64 // Decimal degrees east of the prime meridian.
	Latitude       float64 // Decimal degrees north of the equator.
	LongitudeDelta float64 // Width of the extent box, in degrees.
	LatitudeDelta  float64 // Height of the extent box, in degrees.
}

// NewCoordinate constructs a Coordinate. No validation is performed.
func NewCoordinate(longitude, latitude, longitudeDelta, latitudeDelta float64) Coordinate {
	return Coordinate{
		Longitude:      longitude,
		Latitude:       latitude,
		LongitudeDelta: longitudeDelta,
		LatitudeDelta:  latitudeDelta,
	}
}

// Point returns the coordinate as an orb point (lon/lat order).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// PositionString renders the point as WKT, the representation the persistence
// layer stores for spatial predicates.
func (c Coordinate) PositionString() string {
	return wkt.MarshalString(c.Point())
}

// BoundingPolygon returns the four corners of the extent box around the point,
// in ring order. With zero deltas the corners collapse onto the point and the
// result is not usable as a polygon.
func (c Coordinate) BoundingPolygon() []Coordinate {
	halfLon := c.LongitudeDelta / 2
	halfLat := c.LatitudeDelta / 2

	return []Coordinate{
		NewCoordinate(c.Longitude-halfLon, c.Latitude-halfLat, 0, 0),
		NewCoordinate(c.Longitude+halfLon, c.Latitude-halfLat, 0, 0),
		NewCoordinate(c.Longitude+halfLon, c.Latitude+halfLat, 0, 0),
		NewCoordinate(c.Longitude-halfLon, c.Latitude+halfLat, 0, 0),
	}
}

// ToPolygonString builds a WKT polygon from the supplied vertices, suitable as
// a spatial-query predicate. The input order is the vertex order; the ring is
// closed by repeating the first vertex. Fewer than three distinct points fail
// with ErrInvalidGeometry. Ring validity (self-intersection, winding) is not
// checked; the caller's ordering is trusted verbatim.
func ToPolygonString(points []Coordinate) (string, error) {
	distinct := make(map[orb.Point]struct{}, len(points))
	for _, p := range points {
		distinct[p.Point()] = struct{}{}
	}
	if len(distinct) < 3 {
		return "", domainerrors.ErrInvalidGeometry.WrapMessage("a polygon needs at least 3 distinct points")
	}

	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, p.Point())
	}
	ring = append(ring, points[0].Point())

	return wkt.MarshalString(orb.Polygon{ring}), nil
}
