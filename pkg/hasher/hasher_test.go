package hasher

import (
	"fmt"
	"testing"
)

func TestShardOfDeterministic(t *testing.T) {
	shard := ShardOf("ceph_osd_op_latency", "", 4)
	for i := 0; i < 100; i++ {
		if got := ShardOf("ceph_osd_op_latency", "", 4); got != shard {
			t.Fatalf("iteration %d: got shard %d, want %d", i, got, shard)
		}
	}
}

func TestShardOfInRange(t *testing.T) {
	for n := uint32(1); n <= 16; n++ {
		for i := 0; i < 1000; i++ {
			name := fmt.Sprintf("metric_%d", i)
			shard := ShardOf(name, "", n)
			if shard >= n {
				t.Fatalf("shard %d out of range for n=%d (%s)", shard, n, name)
			}
		}
	}
}

func TestShardOfBalance(t *testing.T) {
	const n, numMetrics = 4, 10000
	counts := make([]int, n)
	for i := 0; i < numMetrics; i++ {
		name := fmt.Sprintf("metric_%d", i)
		counts[ShardOf(name, "", n)]++
	}
	expected := float64(numMetrics) / float64(n)
	for shard, count := range counts {
		ratio := float64(count) / expected
		if ratio < 0.70 || ratio > 1.30 {
			t.Fatalf("shard %d has %d metrics, expected ~%.0f (ratio %.2f)", shard, count, expected, ratio)
		}
	}
}

func TestShardOfMinimalMovement(t *testing.T) {
	const numMetrics = 10000
	const oldShards, newShards = 4, 5
	moved := 0
	for i := 0; i < numMetrics; i++ {
		name := fmt.Sprintf("metric_%d", i)
		if ShardOf(name, "", oldShards) != ShardOf(name, "", newShards) {
			moved++
		}
	}
	ratio := float64(moved) / float64(numMetrics)
	if ratio > 0.30 {
		t.Fatalf("too many keys moved: %.1f%%", ratio*100)
	}
}

func TestShardOfLabelKeyAffectsAssignment(t *testing.T) {
	a := ShardOf("up", "", 4)
	b := ShardOf("up", `cluster="prod"`, 4)
	if a >= 4 || b >= 4 {
		t.Fatalf("shard out of range: %d, %d", a, b)
	}
	// Any single label key may land on the same shard as the bare name, so
	// check that across many label keys at least one lands elsewhere.
	moved := false
	for i := 0; i < 32 && !moved; i++ {
		if ShardOf("up", fmt.Sprintf(`cluster="c%d"`, i), 4) != a {
			moved = true
		}
	}
	if !moved {
		t.Fatal("label key never changed the shard assignment of \"up\"")
	}
}

func TestJumpConsistentHashRange(t *testing.T) {
	for n := uint32(1); n <= 32; n++ {
		for key := uint64(0); key < 2000; key++ {
			if j := JumpConsistentHash(key, n); j >= n {
				t.Fatalf("JumpConsistentHash(%d, %d) = %d, out of range", key, n, j)
			}
		}
	}
}

func TestJumpConsistentHashSingleBucket(t *testing.T) {
	for key := uint64(0); key < 1000; key++ {
		if j := JumpConsistentHash(key, 1); j != 0 {
			t.Fatalf("JumpConsistentHash(%d, 1) = %d, want 0", key, j)
		}
	}
}
