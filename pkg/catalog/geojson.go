package catalog

import "cairocms/models"

// GeoJSON projection of places for map pins. Coordinate order is
// [longitude, latitude] per the GeoJSON spec.

type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type FeatureProperties struct {
	Name  string `json:"name"`
	Brief string `json:"brief"`
}

type Feature struct {
	Type       string            `json:"type"`
	ID         uint              `json:"id"`
	Geometry   Geometry          `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// PlaceFeatures projects every place into a point feature. No filtering, no
// pagination; the full set every time.
func (s *Store) PlaceFeatures() (*FeatureCollection, error) {
	var places []models.Place
	if err := s.db.Order("place_name").Find(&places).Error; err != nil {
		return nil, err
	}
	fc := &FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(places))}
	for _, p := range places {
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			ID:         p.ID,
			Geometry:   Geometry{Type: "Point", Coordinates: [2]float64{p.Longitude, p.Latitude}},
			Properties: FeatureProperties{Name: p.PlaceName, Brief: p.Brief},
		})
	}
	return fc, nil
}
