package tlsh256

import (
	"math"
	"slices"
)

// Natural logs of 1.5, 1.3, and 1.1 as the exact single-precision literals
// from the reference implementation.
const (
	log1_5 float32 = 0.4054651
	log1_3 float32 = 0.26236426
	log1_1 float32 = 0.095310180
)

// bucketQuartiles returns the 64th, 128th, and 192nd order statistics of the
// counter array. Only the values are read, so tie order does not matter.
func bucketQuartiles(buckets *[numBuckets]uint32) (q1, q2, q3 uint32) {
	sorted := *buckets
	slices.Sort(sorted[:])
	return sorted[63], sorted[127], sorted[191]
}

// lCapturing encodes the input length on a piecewise logarithmic scale and
// returns the lowest byte of the result.
//
// The divisions must happen in single precision: promoting any intermediate
// to float64 shifts the floor for some lengths (190336 is the known case,
// reported as trendmicro/tlsh#89). math.Log is float64, so its result is
// rounded back to float32 before the single-precision arithmetic.
func lCapturing(n int) byte {
	if n == 0 {
		return 0
	}

	logLen := float32(math.Log(float64(float32(n))))

	var i int32
	switch {
	case n <= 656:
		i = int32(math.Floor(float64(logLen / log1_5)))
	case n <= 3199:
		i = int32(math.Floor(float64(logLen/log1_3 - 8.72777)))
	default:
		i = int32(math.Floor(float64(logLen/log1_1 - 62.5472)))
	}

	return byte(i)
}

// q1Ratio and q2Ratio compute the quartile ratio digits of the header. The
// reference casts everything to float for this, so the division and the
// mod-16 happen in single precision before truncating to a byte. A zero q3
// (tiny or degenerate input) yields 0 so every input still produces a
// structurally valid digest.
func q1Ratio(q1, q3 uint32) byte {
	return quartileRatio(q1, q3)
}

func q2Ratio(q2, q3 uint32) byte {
	return quartileRatio(q2, q3)
}

func quartileRatio(q, q3 uint32) byte {
	if q3 == 0 {
		return 0
	}
	r := float32(q*100) / float32(q3)
	return byte(math.Mod(float64(r), 16))
}

// swapHex exchanges the high and low nibbles of a byte. The wire format
// stores the checksum and log-length bytes nibble-swapped, so the value 1
// encodes as "10" rather than "01".
func swapHex(b byte) byte {
	return b<<4 ^ b>>4
}

// packQ1Q2 packs the two 4-bit ratio digits into the third header byte, q1
// in the high nibble.
func packQ1Q2(r1, r2 byte) byte {
	return r1<<4 ^ r2&0x0F
}

func unpackQ1Q2(b byte) (r1, r2 byte) {
	return b >> 4, b & 0x0F
}
