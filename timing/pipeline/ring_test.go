package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/perfestimate/timing/pipeline"
)

var _ = Describe("Ring", func() {
	It("reads zero at every position before anything is pushed", func() {
		r := pipeline.NewRing(4)
		Expect(r.Head()).To(Equal(pipeline.EventTime(0)))
		Expect(r.At(3)).To(Equal(pipeline.EventTime(0)))
	})

	It("reads the head before it advances on push", func() {
		r := pipeline.NewRing(2)
		r.Advance(10)
		Expect(r.Head()).To(Equal(pipeline.EventTime(0)))
		r.Advance(20)
		Expect(r.Head()).To(Equal(pipeline.EventTime(10)))
	})

	It("wraps the oldest slot back to the head after a full cycle", func() {
		r := pipeline.NewRing(3)
		r.Advance(1)
		r.Advance(2)
		r.Advance(3)
		Expect(r.Head()).To(Equal(pipeline.EventTime(1)))
		r.Advance(4)
		Expect(r.Head()).To(Equal(pipeline.EventTime(2)))
	})

	It("reports the most recently pushed value one depth-minus-one ahead of the head", func() {
		r := pipeline.NewRing(8)
		for i := pipeline.EventTime(1); i <= 8; i++ {
			r.Advance(i * 10)
		}
		Expect(r.At(r.Depth() - 1)).To(Equal(pipeline.EventTime(80)))
		Expect(r.Head()).To(Equal(pipeline.EventTime(10)))
	})
})
