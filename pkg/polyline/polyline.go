// Package polyline implements the Google encoded polyline algorithm
// (delta-encoded, base64-like, fixed 1e5 precision) used by routing
// services to ship route geometry as a compact string.
package polyline

import (
	"fmt"
	"math"

	"github.com/fuelmate/go-nav/pkg/geo"
)

// precision is the standard 1e5 coordinate scale factor.
const precision = 1e5

// DecodeError indicates a malformed polyline string. The most common
// cause is a truncated payload ending mid-coordinate.
type DecodeError struct {
	// Offset is the byte position where decoding failed.
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("polyline: decode failed at byte %d: %s", e.Offset, e.Reason)
}

// Decode converts an encoded polyline string into coordinates.
// Decoding is a pure function: the same input always yields the same
// output and a failed decode leaves no partial state behind.
func Decode(encoded string) ([]geo.Coordinate, error) {
	var points []geo.Coordinate
	index := 0
	lat, lon := 0, 0

	for index < len(encoded) {
		dLat, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next

		if index >= len(encoded) {
			return nil, &DecodeError{Offset: index, Reason: "missing longitude component"}
		}
		dLon, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next

		lat += dLat
		lon += dLon
		points = append(points, geo.Coordinate{
			Lat: float64(lat) / precision,
			Lon: float64(lon) / precision,
		})
	}

	return points, nil
}

// decodeValue reads one zigzag-encoded signed delta starting at index.
// Each byte carries 5 payload bits; the 0x20 bit marks continuation.
func decodeValue(encoded string, index int) (value, next int, err error) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) {
			return 0, index, &DecodeError{Offset: index, Reason: "unexpected end of input"}
		}
		b := int(encoded[index]) - 63
		if b < 0 {
			return 0, index, &DecodeError{Offset: index, Reason: fmt.Sprintf("invalid byte %q", encoded[index])}
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		return -(result >> 1) - 1, index, nil
	}
	return result >> 1, index, nil
}

// Encode converts coordinates into an encoded polyline string.
// Round-trips with Decode to within 1e-5 degrees per point.
func Encode(points []geo.Coordinate) string {
	var out []byte
	lat, lon := 0, 0

	for _, p := range points {
		iLat := int(math.Round(p.Lat * precision))
		iLon := int(math.Round(p.Lon * precision))
		out = encodeValue(out, iLat-lat)
		out = encodeValue(out, iLon-lon)
		lat, lon = iLat, iLon
	}

	return string(out)
}

func encodeValue(out []byte, value int) []byte {
	v := value << 1
	if value < 0 {
		v = ^v
	}
	for v >= 0x20 {
		out = append(out, byte((0x20|(v&0x1f))+63))
		v >>= 5
	}
	return append(out, byte(v+63))
}
