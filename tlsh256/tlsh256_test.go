package tlsh256

import (
	"os"
	"strings"
	"testing"
)

// Reference digests computed with TLSH version 4.11.2.
const (
	aliceDigest = "T145D1A40CE601EFD21E62648F2A9554F0E199E9B01B84213B6BE0DB5E2DA71FA898DFEB07A78123B35A030227671FA2C2F725402973629B25545EB43C3312679477F3FC"
	testDigest  = "T18190022601550B51D51586E656492090540884001958151D15E25D890844BA2540232D0944C621A1804A111A1702704C475AD5AC213504F2805C3887322F14C11B4DC1"
)

func TestReferenceFileDigests(t *testing.T) {
	files := []struct {
		path     string
		expected string
	}{
		{"../testdata/0Alice.txt", aliceDigest},
		{"../testdata/test.txt", testDigest},
	}

	for _, f := range files {
		data, err := os.ReadFile(f.path)
		if err != nil {
			t.Skip()
		}
		if got := Hash(data); got != f.expected {
			t.Errorf("%s: digest mismatch:\n got %s\nwant %s", f.path, got, f.expected)
		}
	}
}

func TestReferenceDistance(t *testing.T) {
	d, err := Diff(aliceDigest, testDigest)
	if err != nil {
		t.Fatal(err)
	}
	if d != 664 {
		t.Errorf("Diff(alice, test) = %d, want 664", d)
	}

	// Distance is symmetric.
	d, err = Diff(testDigest, aliceDigest)
	if err != nil {
		t.Fatal(err)
	}
	if d != 664 {
		t.Errorf("Diff(test, alice) = %d, want 664", d)
	}
}

func TestDigestRoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		{0x42},
		{1, 2, 3, 4},
		{1, 2, 3, 4, 5},
		[]byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 40)),
	}

	for _, in := range inputs {
		d := New(in)
		s := d.String()
		if len(s) != EncodedSize {
			t.Errorf("len(%q) = %d, want %d", s, len(s), EncodedSize)
		}
		decoded, err := Decode(s)
		if err != nil {
			t.Fatalf("Decode(%q): %v", s, err)
		}
		if decoded != d {
			t.Errorf("round trip mismatch for input of %d bytes:\n got %+v\nwant %+v", len(in), decoded, d)
		}
	}
}

func TestReferenceDigestsRoundTrip(t *testing.T) {
	for _, s := range []string{aliceDigest, testDigest} {
		d, err := Decode(s)
		if err != nil {
			t.Fatal(err)
		}
		if d.String() != s {
			t.Errorf("re-encode mismatch:\n got %s\nwant %s", d.String(), s)
		}
	}
}

func TestTinyInputs(t *testing.T) {
	// Inputs below the window size still hash to a structurally valid
	// digest with a zeroed body distribution.
	for n := 0; n < windowSize; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i + 1)
		}
		d := New(data)
		if d.checksum != 0 {
			t.Errorf("checksum for %d-byte input = %#x, want 0", n, d.checksum)
		}
		if d.body != [bodySize]byte{} {
			t.Errorf("body for %d-byte input is not zeroed", n)
		}
		if got := d.Distance(d); got != 0 {
			t.Errorf("self distance for %d-byte input = %d, want 0", n, got)
		}
	}
}

func TestDecodeVersionPrefix(t *testing.T) {
	// Any 2-character prefix is accepted and survives a round trip; only
	// "T1" is ever produced.
	s := "XX" + aliceDigest[2:]
	d, err := Decode(s)
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != s {
		t.Errorf("prefix not preserved: got %s", d.String())
	}
}

func TestDecodeLowercase(t *testing.T) {
	d, err := Decode("T1" + strings.ToLower(aliceDigest[2:]))
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != aliceDigest {
		t.Errorf("lowercase decode mismatch: got %s", d.String())
	}
}

func TestDecodeErrors(t *testing.T) {
	bad := []string{
		"",
		"T1",
		aliceDigest[:EncodedSize-2],
		aliceDigest + "00",
		"T1" + strings.Repeat("ZZ", 67),
	}
	for _, s := range bad {
		if _, err := Decode(s); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", s)
		}
	}

	if _, err := Diff(aliceDigest, "not a digest"); err == nil {
		t.Error("Diff with a malformed digest succeeded, want error")
	}
}

var benchBuf = func() []byte {
	buf := make([]byte, 16384)
	for i := range buf {
		buf[i] = byte(i*7 + i>>8)
	}
	return buf
}()

func benchmarkHashSize(b *testing.B, size int) {
	b.SetBytes(int64(size))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		New(benchBuf[:size])
	}
}

func BenchmarkHash256Bytes(b *testing.B) {
	benchmarkHashSize(b, 256)
}

func BenchmarkHash1K(b *testing.B) {
	benchmarkHashSize(b, 1024)
}

func BenchmarkHash8K(b *testing.B) {
	benchmarkHashSize(b, 8192)
}

func BenchmarkDistance(b *testing.B) {
	x := New(benchBuf[:4096])
	y := New(benchBuf[1:4097])
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Distance(y)
	}
}
