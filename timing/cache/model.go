package cache

// Model is the full configurable D-cache: an ordered list of levels
// walked in order on every fetch, gated by a cacheable address range. The
// last level's miss delay stands in for main memory; there is no explicit
// further level beyond it.
type Model struct {
	addrSpace       AddrSpace
	notCachableDelay Cycles
	levels          []LevelBackend
}

// NewModel builds a Model over the given address space, not-cacheable
// delay, and ordered levels (nearest first). Levels may mix backends
// (LFSR-backed Level, akita-backed AkitaLRULevel, …); Model.Fetch treats
// them uniformly through LevelBackend.
func NewModel(addrSpace AddrSpace, notCachableDelay Cycles, levels []LevelBackend) *Model {
	return &Model{addrSpace: addrSpace, notCachableDelay: notCachableDelay, levels: levels}
}

// Levels returns the configured levels in fetch order.
func (m *Model) Levels() []LevelBackend { return m.levels }

// Fetch walks the configured levels in order for addr, stopping at the
// first hit, and returns the accumulated delay. An address outside the
// cacheable range never touches any level and is charged the fixed
// not-cacheable delay instead.
func (m *Model) Fetch(addr uint64) Cycles {
	if !m.addrSpace.Cacheable(addr) {
		return m.notCachableDelay
	}

	var total Cycles
	for _, lvl := range m.levels {
		hit, delay := lvl.Fetch(addr)
		total += delay
		if hit {
			break
		}
	}
	return total
}
