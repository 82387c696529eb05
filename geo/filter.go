package geo

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

//*******************************************
// region filter
//*******************************************

// IFilter decides whether a location lies inside the region of interest.
type IFilter interface {
	Contains(lon, lat float64) bool
}

// FilterFunc adapts a plain function to IFilter.
type FilterFunc func(lon, lat float64) bool

func (self FilterFunc) Contains(lon, lat float64) bool {
	return self(lon, lat)
}

// NoFilter accepts every location.
type NoFilter struct{}

func (self NoFilter) Contains(lon, lat float64) bool {
	return true
}

type PolygonFilter struct {
	region orb.MultiPolygon
	bound  orb.Bound
}

func NewPolygonFilter(region orb.MultiPolygon) *PolygonFilter {
	return &PolygonFilter{
		region: region,
		bound:  region.Bound(),
	}
}

func (self *PolygonFilter) Contains(lon, lat float64) bool {
	point := orb.Point{lon, lat}
	if !self.bound.Contains(point) {
		return false
	}
	return planar.MultiPolygonContains(self.region, point)
}

// Loads the filter region from the first feature of a geojson
// feature-collection. The feature has to be a Polygon or MultiPolygon.
func LoadPolygonFilter(file string) (*PolygonFilter, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read filter polygon: %w", err)
	}
	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse filter polygon %s: %w", file, err)
	}
	if len(collection.Features) == 0 {
		return nil, errors.New("filter polygon contains no features: " + file)
	}
	switch geom := collection.Features[0].Geometry.(type) {
	case orb.Polygon:
		return NewPolygonFilter(orb.MultiPolygon{geom}), nil
	case orb.MultiPolygon:
		return NewPolygonFilter(geom), nil
	default:
		return nil, fmt.Errorf("unsupported filter geometry %T in %s", geom, file)
	}
}

// Loads the filter region or returns a NoFilter if no file is given.
func LoadFilter(file string) (IFilter, error) {
	if file == "" {
		return NoFilter{}, nil
	}
	return LoadPolygonFilter(file)
}
