package tlsh256

// windowSize is the sliding window size from the TLSH paper (the same size
// as the window in the Nilsimsa hash). A 5-byte window yields 6 triplets.
const windowSize = 5

type triplet struct {
	a, b, c byte
}

// slidingTriplets returns the byte triplets for one window position. The
// newest byte (the last in the window) is part of every triplet; triplets
// that start with earlier bytes were produced by previous windows.
//
// The enumeration order is load-bearing: the triplet's index selects the
// salt used in the bucket mapping. The reference implementation enumerates k
// from i-2 down to 0 and, for each k, j from i-1 down to k+1 -- except when
// k == i-4, where j runs [i-2, i-1, i-3]. That exception is a reference
// compatibility artifact and must not be normalized.
func slidingTriplets(window []byte) []triplet {
	i := len(window) - 1
	triplets := make([]triplet, 0, (i*i)/2)

	for k := i - 2; k >= 0; k-- {
		if k == i-4 {
			for _, j := range [3]int{i - 2, i - 1, i - 3} {
				triplets = append(triplets, triplet{window[i], window[j], window[k]})
			}
			continue
		}
		for j := i - 1; j > k; j-- {
			triplets = append(triplets, triplet{window[i], window[j], window[k]})
		}
	}

	return triplets
}
