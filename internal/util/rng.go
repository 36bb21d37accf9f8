package util

import "math/rand"

// New returns a deterministic generator. Seed 0 is treated as 1 so an unset
// flag still yields a reproducible run.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// JobSeed derives the seed of the i-th run in a batch. It depends only on the
// job index so a batch reproduces regardless of which worker picks a job up.
func JobSeed(base int64, i int) int64 {
	return base + int64(i)*7919
}
