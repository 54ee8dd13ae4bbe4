package worldgen

import (
	"errors"
	"fmt"
	"math"
)

// BytesPerSegment is the texel size of a packed segment.
const BytesPerSegment = 4

// ErrShortBuffer is returned when the destination cannot hold the window.
var ErrShortBuffer = errors.New("worldgen: destination buffer too small")

// ErrNotEncodable is returned for segments whose fields do not fit the packing.
var ErrNotEncodable = errors.New("worldgen: segment not encodable")

// EncodeTrack packs segments into dst, 4 bytes each:
//
//	0: turn mapped from [-1,1] to [0,255]
//	1: descent mapped from [0,1] to [0,255]
//	2: biome A type << 4 | biome B type
//	3: floor(mix*15) << 4 | floor(trackSeed*15)
func EncodeTrack(segments []TrackSegment, dst []byte) error {
	if len(dst) < len(segments)*BytesPerSegment {
		return fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, len(segments)*BytesPerSegment, len(dst))
	}
	for _, s := range segments {
		if err := ValidateEncodable(s); err != nil {
			return err
		}
	}
	for i, s := range segments {
		o := i * BytesPerSegment
		dst[o] = byte(255 * (s.Turn + 1) / 2)
		dst[o+1] = byte(255 * s.Descent)
		dst[o+2] = byte(s.BiomeA.Type)<<4 | byte(s.BiomeB.Type)
		dst[o+3] = byte(math.Floor(s.BiomeMix*15))<<4 | byte(math.Floor(s.TrackSeed*15))
	}
	return nil
}

// ValidateEncodable checks that a segment survives packing without wrapping.
// Errors wrap ErrNotEncodable.
func ValidateEncodable(s TrackSegment) error {
	switch {
	case math.IsNaN(s.Turn) || s.Turn < -0.5 || s.Turn > 0.5:
		return fmt.Errorf("%w: track %d: turn %v out of range", ErrNotEncodable, s.TrackIndex, s.Turn)
	case math.IsNaN(s.Descent) || s.Descent < 0 || s.Descent > 1:
		return fmt.Errorf("%w: track %d: descent %v out of range", ErrNotEncodable, s.TrackIndex, s.Descent)
	case s.BiomeA.Type > MaxBiomeType || s.BiomeB.Type > MaxBiomeType:
		return fmt.Errorf("%w: track %d: biome type does not fit a nibble", ErrNotEncodable, s.TrackIndex)
	case s.BiomeMix < 0 || s.BiomeMix > 1:
		return fmt.Errorf("%w: track %d: biome mix %v out of range", ErrNotEncodable, s.TrackIndex, s.BiomeMix)
	case s.TrackSeed < 0 || s.TrackSeed >= 1:
		return fmt.Errorf("%w: track %d: track seed %v out of range", ErrNotEncodable, s.TrackIndex, s.TrackSeed)
	}
	return nil
}
