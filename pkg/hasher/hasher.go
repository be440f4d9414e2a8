// Package hasher assigns Prometheus time series to shards using a 64-bit
// fingerprint and the Lamping-Veach jump consistent hash. It has no
// dependency on the rest of this module and is safe to reuse standalone.
package hasher

import "github.com/cespare/xxhash/v2"

// ShardOf deterministically maps a series, identified by its metric name and
// canonical label key, to a shard in [0, numShards). The fingerprint is
// derived by streaming name, a single NUL separator byte, and labelKey into
// a 64-bit xxHash (XXH64) digest without ever allocating a concatenated key.
func ShardOf(name, labelKey string, numShards uint32) uint32 {
	d := xxhash.New()
	d.WriteString(name)
	d.Write(nul[:])
	d.WriteString(labelKey)
	return JumpConsistentHash(d.Sum64(), numShards)
}

var nul = [1]byte{0}

// JumpConsistentHash implements the Lamping & Veach (2014) jump consistent
// hash: O(ln n) time, O(1) space, near-perfect balance, and ~1/n movement
// when numBuckets grows by one. The constants and wraparound arithmetic
// below must match bit-for-bit across platforms; do not "simplify" the
// float64 division.
func JumpConsistentHash(key uint64, numBuckets uint32) uint32 {
	var b, j int64 = -1, 0
	for j < int64(numBuckets) {
		b = j
		key = key*2862933555777941757 + 1
		j = int64(float64(b+1) * (float64(int64(1)<<31) / (float64(key>>33) + 1)))
	}
	return uint32(b)
}
