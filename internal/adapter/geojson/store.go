package geojson

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/paulmach/orb"
	orbgeojson "github.com/paulmach/orb/geojson"
)

// Store holds the municipality boundaries. It is read-only after Load and
// safe to share between goroutines.
type Store struct {
	raw        []byte
	collection *orbgeojson.FeatureCollection
	key        string
	names      []string
	unnamed    int
	bound      orb.Bound
}

// Load reads a GeoJSON FeatureCollection from path. key is the feature
// property holding the region name.
func Load(path, key string, logger *slog.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boundaries %s: %w", path, err)
	}
	s, err := Parse(data, key)
	if err != nil {
		return nil, fmt.Errorf("boundaries %s: %w", path, err)
	}

	logger.Info("boundaries loaded",
		"path", path,
		"features", s.Len(),
		"regions", len(s.names),
		"unnamed_features", s.unnamed,
		"bound_min", s.bound.Min,
		"bound_max", s.bound.Max,
	)
	if s.unnamed > 0 {
		logger.Warn("boundary features without join property", "key", key, "count", s.unnamed)
	}
	return s, nil
}

// Parse builds a Store from GeoJSON bytes. The bytes are kept as-is and served
// to the browser unchanged.
func Parse(data []byte, key string) (*Store, error) {
	fc, err := orbgeojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse feature collection: %w", err)
	}

	s := &Store{
		raw:        data,
		collection: fc,
		key:        key,
		names:      make([]string, 0, len(fc.Features)),
	}

	seen := make(map[string]struct{}, len(fc.Features))
	first := true
	for _, f := range fc.Features {
		if f.Geometry != nil {
			if first {
				s.bound = f.Geometry.Bound()
				first = false
			} else {
				s.bound = s.bound.Union(f.Geometry.Bound())
			}
		}

		name := f.Properties.MustString(key, "")
		if name == "" {
			s.unnamed++
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		s.names = append(s.names, name)
	}
	return s, nil
}

// Raw returns the original file contents.
func (s *Store) Raw() []byte {
	return s.raw
}

// Key returns the property that names each feature.
func (s *Store) Key() string {
	return s.key
}

// FeatureIDKey returns the Plotly path to the join property.
func (s *Store) FeatureIDKey() string {
	return "properties." + s.key
}

// Names returns the distinct region names in file order.
func (s *Store) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of features, named or not.
func (s *Store) Len() int {
	return len(s.collection.Features)
}

// Unnamed returns the number of features lacking the join property.
func (s *Store) Unnamed() int {
	return s.unnamed
}

// Bound returns the bounding box of all feature geometries.
func (s *Store) Bound() orb.Bound {
	return s.bound
}
