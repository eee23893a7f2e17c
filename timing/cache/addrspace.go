package cache

// AddrSpace is the half-open address range [Lower, Upper) the cache
// hierarchy covers. Addresses outside it bypass every level and are
// charged a fixed not-cacheable delay instead.
type AddrSpace struct {
	Lower uint64
	Upper uint64
}

// Cacheable reports whether addr falls inside the cacheable range.
func (a AddrSpace) Cacheable(addr uint64) bool {
	return addr >= a.Lower && addr < a.Upper
}
