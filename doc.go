// Package tlsh implements the TLSH locality sensitive hash. Unlike a
// cryptographic hash, small changes to the input produce digests at a small
// numeric distance from each other, which makes TLSH useful for
// near-duplicate detection of files, binaries, and documents.
//
// The tlsh256 subpackage implements the 256-bucket digest variant and its
// distance function.
package tlsh
