package engine

import "github.com/cespare/xxhash/v2"

// PawnEntry caches the structural (non-piece-mobility) part of a pawn
// formation's evaluation, keyed by the position's pawn/king hash. Every
// field it does not carry (doubled/isolated/backward/straggler flags,
// passed and candidate-passed squares) is cheap enough to recompute from
// the pawn bitboards that it is never stored alongside the score.
type PawnEntry struct {
	Key     uint64
	MgScore int16
	EgScore int16
}

// PawnTable is a direct-mapped cache of PawnEntry, sized to a power of two
// so probing is a mask instead of a modulo. Collisions simply overwrite;
// a stale entry is indistinguishable from a miss once the key no longer
// matches.
type PawnTable struct {
	entries []PawnEntry
	mask    uint64
}

// NewPawnTable allocates a pawn cache of approximately sizeMB megabytes.
func NewPawnTable(sizeMB int) *PawnTable {
	const entrySize = 12
	want := (sizeMB * 1024 * 1024) / entrySize

	size := 1
	for size*2 <= want {
		size *= 2
	}

	return &PawnTable{
		entries: make([]PawnEntry, size),
		mask:    uint64(size - 1),
	}
}

// index mixes the raw pawn/king hash through xxhash before masking, so
// that keys differing only in high bits (which the raw XOR-built hash
// tends to cluster, since most pawn moves only toggle a handful of
// piece-square keys) spread evenly across the table instead of piling up
// in one region.
func (pt *PawnTable) index(key uint64) uint64 {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(key >> (8 * i))
	}
	return xxhash.Sum64(buf[:]) & pt.mask
}

// Probe returns the cached middlegame/endgame pawn-structure score for
// key, if present.
func (pt *PawnTable) Probe(key uint64) (mg, eg int, found bool) {
	entry := &pt.entries[pt.index(key)]
	if entry.Key == key {
		return int(entry.MgScore), int(entry.EgScore), true
	}
	return 0, 0, false
}

// Store records a pawn-structure score under key, overwriting whatever
// entry currently occupies that slot.
func (pt *PawnTable) Store(key uint64, mg, eg int) {
	entry := &pt.entries[pt.index(key)]
	entry.Key = key
	entry.MgScore = int16(mg)
	entry.EgScore = int16(eg)
}

// Clear empties the table between games.
func (pt *PawnTable) Clear() {
	for i := range pt.entries {
		pt.entries[i] = PawnEntry{}
	}
}
