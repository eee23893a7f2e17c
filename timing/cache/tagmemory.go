package cache

import "math/bits"

// wordSize is the addressable unit size in bytes a block size is
// expressed in: every block holds blockSize 4-byte words.
const wordSize = 4

// blockFlags carries per-entry validity. Invalid entries are always
// preferred eviction targets over valid ones.
type blockFlags uint8

const blockInvalid blockFlags = 1 << 0

// entry is one tag-memory slot: a tag, its flags, and the hit/eviction
// counters the level's histogram reads.
type entry struct {
	tag   uint64
	flags blockFlags

	hits      uint64
	evictions uint64
}

func (e *entry) isValid() bool { return e.flags&blockInvalid == 0 }

// Set is one cache set: nways tag-memory entries sharing an index.
type Set []entry

// findEntry returns the way holding tag, or -1 if no way currently holds
// it.
func (s Set) findEntry(tag uint64) int {
	for i := range s {
		if s[i].isValid() && s[i].tag == tag {
			return i
		}
	}
	return -1
}

// findInvalidEntry returns the first never-used or explicitly invalidated
// way, or -1 if the set is fully occupied.
func (s Set) findInvalidEntry() int {
	for i := range s {
		if !s[i].isValid() {
			return i
		}
	}
	return -1
}

// TagMemory is the nways x nblocks array of tag entries backing one cache
// level, plus the derived bit widths used to split an address into
// tag/index/offset.
type TagMemory struct {
	ways   int
	blocks int

	blockSize int // in words

	offsetBits uint
	indexBits  uint

	sets []Set
}

// NewTagMemory builds a TagMemory with the given geometry. blockSize is in
// words. All three dimensions must be positive.
func NewTagMemory(ways, blocks, blockSize int) (*TagMemory, error) {
	if ways <= 0 || blocks <= 0 || blockSize <= 0 {
		return nil, &OutOfCapacityError{Reason: "ways, blocks, and blockSize must all be positive"}
	}

	tm := &TagMemory{
		ways:       ways,
		blocks:     blocks,
		blockSize:  blockSize,
		offsetBits: ceilLog2(wordSize) + ceilLog2(blockSize),
		indexBits:  ceilLog2(blocks),
		sets:       make([]Set, blocks),
	}
	for i := range tm.sets {
		set := make(Set, ways)
		for w := range set {
			set[w].flags = blockInvalid
		}
		tm.sets[i] = set
	}
	return tm, nil
}

// ceilLog2 returns ceil(log2(n)) for n >= 1.
func ceilLog2(n int) uint {
	if n <= 1 {
		return 0
	}
	return uint(bits.Len(uint(n - 1)))
}

// Ways reports the set associativity.
func (tm *TagMemory) Ways() int { return tm.ways }

// Blocks reports the number of sets.
func (tm *TagMemory) Blocks() int { return tm.blocks }

// Split decomposes addr into its tag and index, given this TagMemory's
// derived offset and index bit widths.
func (tm *TagMemory) Split(addr uint64) (tag uint64, index int) {
	rest := addr >> tm.offsetBits
	mask := uint64(1)<<tm.indexBits - 1
	index = int(rest & mask)
	tag = rest >> tm.indexBits
	return tag, index
}

// SetAt returns the set at the given index.
func (tm *TagMemory) SetAt(index int) Set { return tm.sets[index] }

// Replace installs tag into way of the set at index, marking it valid and
// counting the eviction if a block was actually displaced.
func (tm *TagMemory) Replace(index, way int, tag uint64, wasEviction bool) {
	e := &tm.sets[index][way]
	e.tag = tag
	e.flags &^= blockInvalid
	if wasEviction {
		e.evictions++
	}
}

// RecordHit increments the hit counter for the given set/way.
func (tm *TagMemory) RecordHit(index, way int) {
	tm.sets[index][way].hits++
}

// Stats reports the summed hit and eviction counts for the block at
// index, across every way, plus how many ways currently hold a valid
// entry.
func (tm *TagMemory) Stats(index int) (hits, evictions uint64, waysUsed int) {
	for _, e := range tm.sets[index] {
		hits += e.hits
		evictions += e.evictions
		if e.isValid() {
			waysUsed++
		}
	}
	return hits, evictions, waysUsed
}
