package tlsh256

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomInput(rng *rand.Rand, maxLen int) []byte {
	data := make([]byte, rng.Intn(maxLen))
	rng.Read(data)
	return data
}

func TestPropertyRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		d := New(randomInput(rng, 4096))
		decoded, err := Decode(d.String())
		require.NoError(t, err)
		require.Equal(t, d, decoded)
	}
}

func TestPropertySymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		a := Hash(randomInput(rng, 4096))
		b := Hash(randomInput(rng, 4096))

		ab, err := Diff(a, b)
		require.NoError(t, err)
		ba, err := Diff(b, a)
		require.NoError(t, err)
		require.Equal(t, ab, ba)
	}
}

func TestPropertyIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		h := Hash(randomInput(rng, 4096))
		d, err := Diff(h, h)
		require.NoError(t, err)
		require.Zero(t, d)
	}
}

func TestPropertyDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 50; i++ {
		data := randomInput(rng, 4096)
		require.Equal(t, Hash(data), Hash(data))
	}
}

func TestPropertyBodyDistanceBound(t *testing.T) {
	// Each of the 256 code positions contributes at most 6.
	const bound = bodySize * 4 * 6

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		x := New(randomInput(rng, 4096))
		y := New(randomInput(rng, 4096))
		d := bodyDistance(&x, &y)
		require.GreaterOrEqual(t, d, 0)
		require.LessOrEqual(t, d, bound)
	}
}

func TestPropertyLengthCodeMonotonic(t *testing.T) {
	// Within a single branch of the piecewise length code, a longer input
	// never gets a smaller code.
	branches := []struct{ lo, hi int }{
		{1, 656},
		{657, 3199},
		{3200, 200000},
	}
	for _, br := range branches {
		prev := lCapturing(br.lo)
		for n := br.lo + 1; n <= br.hi; n++ {
			cur := lCapturing(n)
			require.GreaterOrEqual(t, cur, prev, "lCapturing(%d) < lCapturing(%d)", n, n-1)
			prev = cur
		}
	}
}
