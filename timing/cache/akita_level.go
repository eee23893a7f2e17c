package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// AkitaLRULevel is an alternate Level backend that delegates tag and
// replacement-state management to Akita's mem/cache directory instead of
// this package's TagMemory/LFSR pair. It exists alongside Level, not in
// place of it: the default eviction strategy is the LFSR, so
// AkitaLRULevel is an opt-in substitute for a level configured to use
// LRU replacement instead.
type AkitaLRULevel struct {
	name string

	directory     *akitacache.DirectoryImpl
	blockSize     int
	associativity int
	numSets       int

	hitDelay  Cycles
	missDelay Cycles

	hits      []uint64
	evictions []uint64
}

// NewAkitaLRULevel builds a level backed by an Akita LRU directory with
// the given number of sets, associativity, and block size in words. The
// returned *AkitaLRULevel satisfies LevelBackend.
func NewAkitaLRULevel(name string, numSets, associativity, blockSizeWords int, hitDelay, missDelay Cycles) *AkitaLRULevel {
	blockSizeBytes := blockSizeWords * wordSize
	return &AkitaLRULevel{
		name:          name,
		directory:     akitacache.NewDirectory(numSets, associativity, blockSizeBytes, akitacache.NewLRUVictimFinder()),
		blockSize:     blockSizeBytes,
		associativity: associativity,
		numSets:       numSets,
		hitDelay:      hitDelay,
		missDelay:     missDelay,
		hits:          make([]uint64, numSets),
		evictions:     make([]uint64, numSets),
	}
}

// Name returns the level's configured name.
func (l *AkitaLRULevel) Name() string { return l.name }

// Fetch looks addr up in the Akita directory, installing and marking a
// victim valid on a miss exactly as the directory's FindVictim/Visit
// contract expects. Hit and eviction counts are tracked per set here
// because akita's Block carries no statistics of its own.
func (l *AkitaLRULevel) Fetch(addr uint64) (hit bool, delay Cycles) {
	blockAddr := (addr / uint64(l.blockSize)) * uint64(l.blockSize)

	if block := l.directory.Lookup(0, blockAddr); block != nil && block.IsValid {
		l.directory.Visit(block)
		l.hits[block.SetID]++
		return true, l.hitDelay
	}

	victim := l.directory.FindVictim(blockAddr)
	if victim != nil {
		if victim.IsValid {
			l.evictions[victim.SetID]++
		}
		victim.Tag = blockAddr
		victim.IsValid = true
		victim.IsDirty = false
		l.directory.Visit(victim)
	}
	return false, l.missDelay
}

// Blocks reports the number of sets in this level, for histogram
// iteration.
func (l *AkitaLRULevel) Blocks() int { return l.numSets }

// Stats reports the summed hit/eviction counters and ways-in-use for the
// set at index, reading validity straight from the akita directory.
func (l *AkitaLRULevel) Stats(index int) (hits, evictions uint64, waysUsed int) {
	hits, evictions = l.hits[index], l.evictions[index]
	sets := l.directory.GetSets()
	if index < len(sets) {
		for _, block := range sets[index].Blocks {
			if block.IsValid {
				waysUsed++
			}
		}
	}
	return hits, evictions, waysUsed
}
