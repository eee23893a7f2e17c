package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/perfestimate/timing/pipeline"
)

var _ = Describe("State", func() {
	var s *pipeline.State

	BeforeEach(func() {
		s = pipeline.NewState()
	})

	It("starts with a zero cycle count", func() {
		Expect(s.CycleCount()).To(Equal(pipeline.EventTime(0)))
	})

	It("tracks the running maximum of committed leave times", func() {
		s.Commit(7)
		s.Commit(12)
		s.Commit(9)
		Expect(s.CycleCount()).To(Equal(pipeline.EventTime(12)))
	})

	Describe("Iq", func() {
		It("exposes its ring head as back-pressure before any insert", func() {
			Expect(s.Iq.BackPressure()).To(Equal(pipeline.EventTime(0)))
		})

		It("holds up to IqDepth in-flight leave times before wrapping", func() {
			for i := pipeline.EventTime(1); i <= pipeline.IqDepth; i++ {
				s.Iq.SetLeaveStage(i * 5)
			}
			Expect(s.Iq.BackPressure()).To(Equal(pipeline.EventTime(5)))
		})
	})

	Describe("Ex", func() {
		It("computes arithmetic back-pressure from the ring head and alu/mulO/div registers", func() {
			s.Ex.SetLeaveAlu(3)
			s.Ex.SetLeaveMulO(7)
			s.Ex.SetLeaveDiv(2)
			Expect(s.Ex.BackPressureArith()).To(Equal(pipeline.EventTime(7)))
		})

		It("exposes the transaction guard one slot ahead of back-pressure", func() {
			for i := pipeline.EventTime(1); i <= pipeline.ExDepth; i++ {
				s.Ex.SetLeaveStage(i * 10)
			}
			Expect(s.Ex.TransGuard()).To(Equal(pipeline.EventTime(80)))
		})
	})
})

var _ = Describe("Scoreboard", func() {
	It("treats register 0 as always ready", func() {
		var sb pipeline.Scoreboard
		sb.SetReady(0, 100)
		Expect(sb.Ready(0)).To(Equal(pipeline.EventTime(0)))
	})

	It("remembers the write time for any other register", func() {
		var sb pipeline.Scoreboard
		sb.SetReady(5, 42)
		Expect(sb.Ready(5)).To(Equal(pipeline.EventTime(42)))
	})
})

var _ = Describe("BranchModel", func() {
	It("shares one register between mispredict and correct", func() {
		var b pipeline.BranchModel
		b.SetCorrect(99, true)
		Expect(b.Mispredict()).To(Equal(pipeline.EventTime(99)))
		Expect(b.Mispredicted()).To(BeTrue())
	})
})

var _ = Describe("Divider", func() {
	It("charges more cycles for wider operands", func() {
		d := pipeline.DefaultUnsignedDivider()
		narrow := d.Latency(0xF, 0x3)
		wide := d.Latency(0xFFFFFFFF, 0x3)
		Expect(wide).To(BeNumerically(">", narrow))
	})

	It("charges the signed divider a higher base cost than the unsigned divider", func() {
		signed := pipeline.DefaultSignedDivider()
		unsigned := pipeline.DefaultUnsignedDivider()
		Expect(signed.Latency(1, 1)).To(BeNumerically(">", unsigned.Latency(1, 1)))
	})
})
