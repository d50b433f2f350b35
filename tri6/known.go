package tri6

// sKnownCounts[n] is the number of free polyiamonds with n cells (OEIS A000577), holed shapes included.
var sKnownCounts = [...]int64{
	0,
	1, 1, 1, 3, 4, 12, 24, 66, 160, 448, 1186, 3334,
}

// KnownCount returns the published number of distinct polyiamonds of size n, if known.
func KnownCount(n int) (int64, bool) {
	if n < 1 || n >= len(sKnownCounts) {
		return 0, false
	}
	return sKnownCounts[n], true
}

// MaxKnownSize is the largest n for which KnownCount reports a value.
const MaxKnownSize = len(sKnownCounts) - 1
