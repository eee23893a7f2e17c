package cache

import (
	"strings"

	"github.com/archsim/perfestimate/config"
)

// ApplyConfig builds a Model from the dotted "plugin.perfEst.memory.*"
// keys: memory.layout names the ordered cache levels (space-separated),
// memory.addrspace.lower/upper bound the cacheable range, and
// memory.delay.notCachable is charged to everything outside it. Each
// named level then reads its own memory.<name>.{nblocks,nways,blockSize,
// delay.cacheHit,delay.cacheMiss} keys.
func ApplyConfig(src config.Source) (*Model, error) {
	layout, ok := src.String("plugin.perfEst.memory.layout")
	if !ok || strings.TrimSpace(layout) == "" {
		return nil, &InvalidConfigurationError{Reason: "plugin.perfEst.memory.layout is required"}
	}

	lower, ok := src.Uint64("plugin.perfEst.memory.addrspace.lower")
	if !ok {
		return nil, &InvalidConfigurationError{Reason: "plugin.perfEst.memory.addrspace.lower is required"}
	}
	upper, ok := src.Uint64("plugin.perfEst.memory.addrspace.upper")
	if !ok {
		return nil, &InvalidConfigurationError{Reason: "plugin.perfEst.memory.addrspace.upper is required"}
	}
	if lower > upper {
		return nil, &InvalidConfigurationError{Reason: "memory.addrspace.lower must be <= memory.addrspace.upper"}
	}

	notCachable, _ := src.Uint64("plugin.perfEst.memory.delay.notCachable")

	names := strings.Fields(layout)
	levels := make([]LevelBackend, 0, len(names))
	for _, name := range names {
		lvl, err := registerCache(src, name)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}

	return NewModel(AddrSpace{Lower: lower, Upper: upper}, Cycles(notCachable), levels), nil
}

// registerCache reads one level's "plugin.perfEst.memory.<name>.*" keys.
// The level's backend defaults to the LFSR-evicted TagMemory
// ("lfsr"); a level may opt into the akita-backed LRU alternate instead by
// setting its "backend" key to "akita-lru".
func registerCache(src config.Source, name string) (LevelBackend, error) {
	prefix := "plugin.perfEst.memory." + name + "."

	blockSize, ok := src.Uint64(prefix + "blockSize")
	if !ok {
		blockSize = 1
	}
	nblocks, ok := src.Uint64(prefix + "nblocks")
	if !ok {
		return nil, &InvalidConfigurationError{Reason: "missing " + prefix + "nblocks"}
	}
	nways, ok := src.Uint64(prefix + "nways")
	if !ok {
		return nil, &InvalidConfigurationError{Reason: "missing " + prefix + "nways"}
	}
	missDelay, ok := src.Uint64(prefix + "delay.cacheMiss")
	if !ok {
		return nil, &InvalidConfigurationError{Reason: "missing " + prefix + "delay.cacheMiss"}
	}
	hitDelay, ok := src.Uint64(prefix + "delay.cacheHit")
	if !ok {
		return nil, &InvalidConfigurationError{Reason: "missing " + prefix + "delay.cacheHit"}
	}

	backend, _ := src.String(prefix + "backend")
	if backend == "akita-lru" {
		return NewAkitaLRULevel(name, int(nblocks), int(nways), int(blockSize), Cycles(hitDelay), Cycles(missDelay)), nil
	}

	return NewLevel(LevelConfig{
		Name:      name,
		Ways:      int(nways),
		Blocks:    int(nblocks),
		BlockSize: int(blockSize),
		HitDelay:  Cycles(hitDelay),
		MissDelay: Cycles(missDelay),
	})
}
