package cache

// Cycles is a latency duration in cycles, as returned by a cache fetch.
type Cycles uint64

// LevelBackend is the surface a Model (and the histogram writer) drives a
// configured cache level through. Level is the default backend;
// AkitaLRULevel is the optional alternate backed by akita's cache
// directory. Model.Fetch never distinguishes between the two.
type LevelBackend interface {
	// Name returns the level's configured name, used as the histogram
	// file stem.
	Name() string
	// Fetch looks addr up in this level, returning whether it hit and
	// the delay this level charged.
	Fetch(addr uint64) (hit bool, delay Cycles)
	// Blocks reports the number of sets in this level, for histogram
	// iteration.
	Blocks() int
	// Stats reports the summed hit/eviction counters and ways-in-use
	// for the set at index.
	Stats(index int) (hits, evictions uint64, waysUsed int)
}

// Level is one level of a multi-level set-associative cache: a tag
// memory, a hit and a miss delay, and the strategy used to pick a victim
// way when a set is full.
type Level struct {
	name string

	tags *TagMemory
	evict EvictionStrategy

	hitDelay  Cycles
	missDelay Cycles
}

// LevelConfig carries the parsed, validated configuration for one cache
// level.
type LevelConfig struct {
	Name      string
	Ways      int
	Blocks    int
	BlockSize int // in words, default 1 word if unset by the caller
	HitDelay  Cycles
	MissDelay Cycles
	Evict     EvictionStrategy // nil selects the default LFSR strategy
}

// NewLevel builds a Level from a LevelConfig. The returned *Level
// satisfies LevelBackend.
func NewLevel(cfg LevelConfig) (*Level, error) {
	blockSize := cfg.BlockSize
	if blockSize <= 0 {
		blockSize = 1
	}
	tags, err := NewTagMemory(cfg.Ways, cfg.Blocks, blockSize)
	if err != nil {
		return nil, err
	}

	evict := cfg.Evict
	if evict == nil {
		evict = NewLFSREviction(cfg.Ways)
	}

	return &Level{
		name:      cfg.Name,
		tags:      tags,
		evict:     evict,
		hitDelay:  cfg.HitDelay,
		missDelay: cfg.MissDelay,
	}, nil
}

// Name returns the level's configured name, used as the histogram file
// stem.
func (l *Level) Name() string { return l.name }

// Fetch looks addr up in this level, returning whether it hit and the
// delay this level charged. On a miss it installs addr's block, evicting
// an existing way only if the set holds no invalid entry.
func (l *Level) Fetch(addr uint64) (hit bool, delay Cycles) {
	tag, index := l.tags.Split(addr)
	set := l.tags.SetAt(index)

	if way := set.findEntry(tag); way >= 0 {
		l.tags.RecordHit(index, way)
		return true, l.hitDelay
	}

	way := set.findInvalidEntry()
	wasEviction := false
	if way < 0 {
		way = l.evict.Evict(set)
		wasEviction = true
	}
	l.tags.Replace(index, way, tag, wasEviction)
	return false, l.missDelay
}

// Stats reports the summed hit/eviction counters and ways-in-use for the
// set at index, one histogram row's worth of data.
func (l *Level) Stats(index int) (hits, evictions uint64, waysUsed int) {
	return l.tags.Stats(index)
}

// Blocks reports the number of sets in this level, for histogram
// iteration.
func (l *Level) Blocks() int { return l.tags.Blocks() }
