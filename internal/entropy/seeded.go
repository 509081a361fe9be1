package entropy

// Seeded pure noise for market forecasts. Unlike Source, these functions carry
// no state: the same (seed, bucket, lane) always yields the same value, so a
// forecast regenerated from a saved game reproduces its predecessor exactly.

// Unit returns a uniform float64 in [0, 1) derived only from its arguments.
// bucket is typically a time index (game day), lane a sub-stream index
// (crop position).
func Unit(seed int64, bucket uint64, lane uint32) float64 {
	x := uint64(seed)
	x ^= bucket * 0x9e3779b97f4a7c15
	x ^= uint64(lane) * 0xbf58476d1ce4e5b9
	x = splitmix64(x)
	return float64(x>>11) / float64(1<<53)
}

// splitmix64 is the finalizer from the SplitMix64 generator, a cheap
// well-distributed bijection on uint64.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
