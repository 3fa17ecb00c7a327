package tlsh256

// bodySize is the packed body length: 256 bucket codes at 2 bits each.
const bodySize = 64

// bucketCode maps one bucket count to its 2-bit code against the quartiles.
func bucketCode(b, q1, q2, q3 uint32) byte {
	switch {
	case b <= q1:
		return 0b00
	case b <= q2:
		return 0b01
	case b <= q3:
		return 0b10
	default:
		return 0b11
	}
}

// encodeBody packs the 256 bucket codes into 64 bytes, four codes per byte.
// Codes are packed in reverse within each byte: codes c0..c3 become the byte
// [c3 c2 c1 c0], so c0 lands in the low bits.
func encodeBody(buckets *[numBuckets]uint32, q1, q2, q3 uint32) [bodySize]byte {
	var body [bodySize]byte
	for i := 0; i < numBuckets; i += 4 {
		body[i/4] = packBitPairs([4]byte{
			bucketCode(buckets[i], q1, q2, q3),
			bucketCode(buckets[i+1], q1, q2, q3),
			bucketCode(buckets[i+2], q1, q2, q3),
			bucketCode(buckets[i+3], q1, q2, q3),
		})
	}
	return body
}

// packBitPairs packs four 2-bit values into a byte, first pair in the low
// bits. Values must already fit in 2 bits.
func packBitPairs(pairs [4]byte) byte {
	return pairs[0] ^ pairs[1]<<2 ^ pairs[2]<<4 ^ pairs[3]<<6
}

// unpackBitPairs is the inverse of packBitPairs, low pair first.
func unpackBitPairs(b byte) [4]byte {
	return [4]byte{
		b & 0b00000011,
		b & 0b00001100 >> 2,
		b & 0b00110000 >> 4,
		b >> 6,
	}
}
