package service

import (
	"encoding/binary"
	"encoding/json"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// WKBFromGeoJSON parses a GeoJSON geometry string and returns WKB bytes
// for storage. Empty input maps to nil.
func WKBFromGeoJSON(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// GeoJSONFromWKB converts stored WKB bytes into a raw GeoJSON document.
// Nil input maps to nil, which serializes as JSON null.
func GeoJSONFromWKB(wkbBytes []byte) (json.RawMessage, error) {
	if len(wkbBytes) == 0 {
		return nil, nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return nil, err
	}
	return gjson.Marshal(g)
}

// WKBLineString builds WKB for a LineString through the given [lng, lat]
// coordinate pairs.
func WKBLineString(coords [][]float64) ([]byte, error) {
	flat := make([]float64, 0, len(coords)*2)
	for _, c := range coords {
		flat = append(flat, c[0], c[1])
	}
	line := geom.NewLineStringFlat(geom.XY, flat)
	return wkb.Marshal(line, binary.LittleEndian)
}
