package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/perfestimate/config"
	"github.com/archsim/perfestimate/timing/cache"
)

var _ = Describe("ApplyConfig", func() {
	baseSource := func() config.MapSource {
		return config.MapSource{
			"plugin.perfEst.memory.layout":               "l1 l2",
			"plugin.perfEst.memory.addrspace.lower":       "0",
			"plugin.perfEst.memory.addrspace.upper":       "65536",
			"plugin.perfEst.memory.delay.notCachable":     "20",
			"plugin.perfEst.memory.l1.nblocks":            "4",
			"plugin.perfEst.memory.l1.nways":               "2",
			"plugin.perfEst.memory.l1.delay.cacheHit":      "1",
			"plugin.perfEst.memory.l1.delay.cacheMiss":     "5",
			"plugin.perfEst.memory.l2.nblocks":            "8",
			"plugin.perfEst.memory.l2.nways":               "4",
			"plugin.perfEst.memory.l2.blockSize":           "2",
			"plugin.perfEst.memory.l2.delay.cacheHit":      "10",
			"plugin.perfEst.memory.l2.delay.cacheMiss":     "100",
		}
	}

	It("builds a two-level model from valid config", func() {
		model, err := cache.ApplyConfig(baseSource())
		Expect(err).NotTo(HaveOccurred())
		Expect(model.Levels()).To(HaveLen(2))
		Expect(model.Levels()[0].Name()).To(Equal("l1"))
		Expect(model.Levels()[1].Name()).To(Equal("l2"))
	})

	It("fails when lower exceeds upper", func() {
		src := baseSource()
		src["plugin.perfEst.memory.addrspace.lower"] = "100"
		src["plugin.perfEst.memory.addrspace.upper"] = "50"
		_, err := cache.ApplyConfig(src)
		Expect(err).To(HaveOccurred())
		Expect(err).To(BeAssignableToTypeOf(&cache.InvalidConfigurationError{}))
	})

	It("fails when a named level is missing a required key", func() {
		src := baseSource()
		delete(src, "plugin.perfEst.memory.l2.nways")
		_, err := cache.ApplyConfig(src)
		Expect(err).To(HaveOccurred())
	})

	It("fails when layout is absent", func() {
		src := baseSource()
		delete(src, "plugin.perfEst.memory.layout")
		_, err := cache.ApplyConfig(src)
		Expect(err).To(HaveOccurred())
	})

	It("selects the akita-lru backend for a level that asks for it", func() {
		src := baseSource()
		src["plugin.perfEst.memory.l2.backend"] = "akita-lru"
		model, err := cache.ApplyConfig(src)
		Expect(err).NotTo(HaveOccurred())
		Expect(model.Levels()[1]).To(BeAssignableToTypeOf(&cache.AkitaLRULevel{}))
	})
})
