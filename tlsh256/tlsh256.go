// Package tlsh256 implements the 256-bucket variant of the TLSH locality
// sensitive hash and its distance function. Digests are interchangeable with
// those produced by the reference TLSH v4.x implementation.
//
// Hashing slides a 5-byte window over the input, tallies salted Pearson
// mappings of the window's byte triplets into 256 counters, and encodes each
// counter against the counter quartiles as 2 bits of digest body. A small
// header carries a rolling checksum, a logarithmic length code, and two
// quartile-ratio digits. The distance between two digests scores the header
// fields and the per-bucket code differences.
package tlsh256

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// DigestVersion is the version prefix on every digest this package produces.
// Decode accepts and preserves any 2-character prefix.
const DigestVersion = "T1"

// EncodedSize is the length of a digest string: a 2-character version prefix
// followed by 3 header bytes and 64 body bytes in hex.
const EncodedSize = 2 + (3+bodySize)*2

// A Digest is the structured form of a TLSH hash. Digests are immutable
// value types: they are created by New or Decode and compared with Distance.
type Digest struct {
	version  string
	checksum byte
	logLen   byte
	q1Ratio  byte
	q2Ratio  byte
	body     [bodySize]byte
}

// New computes the digest of data. Any byte slice hashes successfully;
// inputs shorter than the 5-byte window produce a digest with an empty body
// distribution and only the length code populated.
func New(data []byte) Digest {
	buckets := bucketCounts(data)
	q1, q2, q3 := bucketQuartiles(&buckets)

	return Digest{
		version:  DigestVersion,
		checksum: rollingChecksum(data),
		logLen:   lCapturing(len(data)),
		q1Ratio:  q1Ratio(q1, q3),
		q2Ratio:  q2Ratio(q2, q3),
		body:     encodeBody(&buckets, q1, q2, q3),
	}
}

// Hash returns the canonical digest string of data.
func Hash(data []byte) string {
	return New(data).String()
}

// Diff decodes two digest strings and returns the distance between them.
// It returns an error if either string is not a valid digest.
func Diff(a, b string) (int, error) {
	da, err := Decode(a)
	if err != nil {
		return 0, err
	}
	db, err := Decode(b)
	if err != nil {
		return 0, err
	}
	return da.Distance(db), nil
}

const hexDigits = "0123456789ABCDEF"

// String encodes the digest in its canonical 136-character uppercase hex
// form: version prefix, nibble-swapped checksum and length code, the packed
// quartile ratios, then the body bytes in reverse order.
func (d Digest) String() string {
	buf := make([]byte, 0, EncodedSize)
	buf = append(buf, d.version...)
	buf = appendHexByte(buf, swapHex(d.checksum))
	buf = appendHexByte(buf, swapHex(d.logLen))
	buf = appendHexByte(buf, packQ1Q2(d.q1Ratio, d.q2Ratio))
	for i := bodySize - 1; i >= 0; i-- {
		buf = appendHexByte(buf, d.body[i])
	}
	return string(buf)
}

func appendHexByte(dst []byte, b byte) []byte {
	return append(dst, hexDigits[b>>4], hexDigits[b&0x0F])
}

// Decode parses a digest string back into its structured form. It is the
// exact inverse of String. Lowercase hex is accepted; the 2-character
// version prefix is preserved verbatim.
func Decode(s string) (Digest, error) {
	if len(s) != EncodedSize {
		return Digest{}, errors.Errorf("tlsh256: digest must be %d characters, got %d", EncodedSize, len(s))
	}

	raw, err := hex.DecodeString(s[2:])
	if err != nil {
		return Digest{}, errors.Wrap(err, "tlsh256: malformed digest")
	}

	r1, r2 := unpackQ1Q2(raw[2])
	d := Digest{
		version:  s[:2],
		checksum: swapHex(raw[0]),
		logLen:   swapHex(raw[1]),
		q1Ratio:  r1,
		q2Ratio:  r2,
	}
	for i := 0; i < bodySize; i++ {
		d.body[i] = raw[3+bodySize-1-i]
	}
	return d, nil
}

// Distance returns a non-negative dissimilarity score between two digests: 0
// for identical digests, growing with the difference. It is symmetric.
func (d Digest) Distance(other Digest) int {
	return headerDistance(&d, &other) + bodyDistance(&d, &other)
}
