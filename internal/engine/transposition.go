package engine

import (
	"context"

	"github.com/seekerror/logw"

	"github.com/kdsouza/halcyon/internal/board"
)

// Bound indicates which side of the true score a stored entry bounds.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

// Entry is one transposition table record. Mate scores are stored
// relative to the storing node and re-based to the probing node's ply on
// both store and probe.
type Entry struct {
	Key      uint32
	BestMove board.Move
	Score    int16
	Depth    int8
	Bound    Bound
	Age      uint8
}

func (e Entry) valid() bool { return e.Depth > 0 || e.Bound == ExactBound && e.Key != 0 }

// bucket holds two candidate slots per index: slotAlways is overwritten
// unconditionally (cheap recency), slotDepth is only overwritten by an
// entry at least as deep or from a newer generation, favoring the
// research-heaviest line surviving move-to-move. This is the two-way
// set-associative table spec's transposition-table component asks for,
// generalized from the teacher's one-slot-per-index design.
type bucket struct {
	slotAlways Entry
	slotDepth  Entry
}

// Table is a fixed-capacity, lock-free transposition table. Concurrent
// workers probe and store through it without synchronization; a torn
// write is caught by verifying the stored 32-bit key against the upper
// half of the full 64-bit hash before trusting the payload; a mismatch is
// silently treated as a miss rather than surfaced as an error.
type Table struct {
	buckets []bucket
	mask    uint64
	age     uint8
}

// NewTable allocates a table sized to roughly sizeMB megabytes, rounded
// down to a power-of-two bucket count.
func NewTable(ctx context.Context, sizeMB int) *Table {
	const bucketSize = 24
	want := uint64(sizeMB) * 1024 * 1024 / bucketSize
	n := roundDownPow2(want)
	if n == 0 {
		n = 1
	}
	logw.Infof(ctx, "allocating transposition table: %d MB, %d buckets", sizeMB, n)
	return &Table{buckets: make([]bucket, n), mask: n - 1}
}

func roundDownPow2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe returns the entry for hash, if either slot at its index holds a
// verified key match.
func (t *Table) Probe(hash uint64) (Entry, bool) {
	b := &t.buckets[hash&t.mask]
	key := uint32(hash >> 32)

	if b.slotDepth.Key == key && b.slotDepth.valid() {
		return b.slotDepth, true
	}
	if b.slotAlways.Key == key && b.slotAlways.valid() {
		return b.slotAlways, true
	}
	return Entry{}, false
}

// Store records a search result, choosing a slot by replacement policy:
// the depth-preferred slot only yields to an entry that is at least as
// deep, or that belongs to a newer search generation; the always-replace
// slot takes every store unconditionally so the most recent visit to a
// position is never more than one probe away.
func (t *Table) Store(hash uint64, depth int, score int, bound Bound, best board.Move) {
	b := &t.buckets[hash&t.mask]
	key := uint32(hash >> 32)

	entry := Entry{
		Key:      key,
		BestMove: best,
		Score:    int16(score),
		Depth:    int8(depth),
		Bound:    bound,
		Age:      t.age,
	}

	if b.slotDepth.Age != t.age || depth >= int(b.slotDepth.Depth) {
		b.slotDepth = entry
	}
	b.slotAlways = entry
}

// NewGeneration bumps the age counter used by the replacement policy,
// called once per new search so stale depth-preferred entries from a
// previous game position are replaced eagerly.
func (t *Table) NewGeneration() { t.age++ }

// Clear wipes every entry, used between games.
func (t *Table) Clear() {
	for i := range t.buckets {
		t.buckets[i] = bucket{}
	}
	t.age = 0
}

// HashFull reports the permille of sampled slots in use by the current
// generation, for UCI-style progress reporting.
func (t *Table) HashFull() int {
	sample := 1000
	if uint64(sample) > uint64(len(t.buckets)) {
		sample = len(t.buckets)
	}
	used := 0
	for i := 0; i < sample; i++ {
		if t.buckets[i].slotDepth.Age == t.age && t.buckets[i].slotDepth.valid() {
			used++
		}
	}
	return used * 1000 / sample
}

// AdjustScoreFromTT rebases a mate score stored at some other node's ply
// distance to the probing node's ply.
func AdjustScoreFromTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT is AdjustScoreFromTT's inverse, applied before storing.
func AdjustScoreToTT(score, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
