package tlsh256

// numBuckets is the number of counters fed by the bucket mapping. This
// package uses the 256-bucket variant: all buckets feed both the quartiles
// and the digest body. The original paper's 128-bucket variant is a
// different, non-interoperable wire format.
const numBuckets = 256

// salts holds the per-triplet salts, in window-triplet enumeration order.
// Only the first 6 entries are used with a 5-byte window; the full table
// covers larger window sizes.
var salts = [21]byte{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73}

// bucketCounts tallies the salted triplet mapping of every window position
// into 256 counters. Inputs shorter than the window leave all counters at
// zero. Counters are 32-bit and unguarded against overflow, matching the
// reference.
func bucketCounts(data []byte) [numBuckets]uint32 {
	var buckets [numBuckets]uint32

	if len(data) < windowSize {
		return buckets
	}

	for start := 0; start <= len(data)-windowSize; start++ {
		window := data[start : start+windowSize]
		for i, t := range slidingTriplets(window) {
			buckets[bucketMapping(salts[i], t.a, t.b, t.c)]++
		}
	}

	return buckets
}

// rollingChecksum folds each byte together with its predecessor into a
// single byte via the bucket mapping, starting at the last byte of the first
// full window. Inputs shorter than the window produce 0.
func rollingChecksum(data []byte) byte {
	var c byte
	for n := windowSize - 1; n < len(data); n++ {
		c = bucketMapping(0, data[n], data[n-1], c)
	}
	return c
}
