package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archsim/perfestimate/timing/core"
	"github.com/archsim/perfestimate/timing/pipeline"
	"github.com/archsim/perfestimate/trace"
)

// mixedRecord is one instruction of the mixed property-test trace.
type mixedRecord struct {
	typeID                                                int32
	pc, rs1, rs2, rd, brTarget, memAddr, rs1Data, rs2Data uint64
}

// mixedTrace is a small program touching every instruction class: ALU
// register and immediate forms, multiply, divide, a load, a store, a taken
// conditional branch, a direct jump, and an indirect jump.
func mixedTrace() []mixedRecord {
	return []mixedRecord{
		{typeID: 10, pc: 0x00, rd: 1, rs1Data: 0, rs2Data: 0},                  // addi x1, x0, 7
		{typeID: 20, pc: 0x04, rd: 2},                                         // lui  x2, 0x1
		{typeID: 0, pc: 0x08, rs1: 1, rs2: 2, rd: 3},                          // add  x3, x1, x2
		{typeID: 21, pc: 0x0c, rs1: 1, rs2: 2, rd: 4, rs1Data: 7, rs2Data: 9}, // mul  x4, x1, x2
		{typeID: 25, pc: 0x10, rs1: 3, rs2: 1, rd: 5, rs1Data: 63, rs2Data: 7},// div  x5, x3, x1
		{typeID: 38, pc: 0x14, rs1: 2, rd: 6, memAddr: 0x100},                 // lw   x6, 0(x2)
		{typeID: 37, pc: 0x18, rs1: 2, rs2: 3, memAddr: 0x104},                // sw   x3, 4(x2)
		{typeID: 43, pc: 0x1c, rs1: 1, rs2: 2, brTarget: 0x40},                // beq  x1, x2, taken
		{typeID: 50, pc: 0x40, rd: 1, brTarget: 0x80},                         // jal  x1, 0x80
		{typeID: 51, pc: 0x80, rs1: 1, rd: 0, brTarget: 0x20},                 // jalr x0, 0(x1)
	}
}

func mixedModel() *core.PerformanceModel {
	m := core.New(core.BuildDefaultInstructionSet())
	Expect(m.ApplyConfig(minimalCacheConfig())).To(Succeed())
	window := trace.NewWindow(trace.WindowSize)
	for i, r := range mixedTrace() {
		window.Set(i, r.typeID, r.pc, r.rs1, r.rs2, r.rd, r.brTarget, r.memAddr, r.rs1Data, r.rs2Data)
	}
	Expect(m.ConnectChannel(window)).To(Succeed())
	Expect(m.Initialize()).To(Succeed())
	return m
}

var _ = Describe("pipeline timing properties", func() {
	It("keeps every sampled event time monotone across a mixed trace", func() {
		m := mixedModel()

		var prevPcGen, prevIf, prevId, prevIs, prevCount pipeline.EventTime
		for range mixedTrace() {
			Expect(m.Execute()).To(Succeed())

			Expect(m.Stage.PcGen.LeaveStage()).To(BeNumerically(">=", prevPcGen))
			Expect(m.Stage.If.LeaveStage()).To(BeNumerically(">=", prevIf))
			Expect(m.Stage.Id.LeaveStage()).To(BeNumerically(">=", prevId))
			Expect(m.Stage.Is.LeaveStage()).To(BeNumerically(">=", prevIs))
			Expect(m.GetCycleCount()).To(BeNumerically(">=", prevCount))

			prevPcGen = m.Stage.PcGen.LeaveStage()
			prevIf = m.Stage.If.LeaveStage()
			prevId = m.Stage.Id.LeaveStage()
			prevIs = m.Stage.Is.LeaveStage()
			prevCount = m.GetCycleCount()
		}
	})

	It("orders each instruction's stage leave times front to back", func() {
		m := mixedModel()

		for range mixedTrace() {
			Expect(m.Execute()).To(Succeed())

			pcgen := m.Stage.PcGen.LeaveStage()
			ifLeave := m.Stage.If.LeaveStage()
			iqInsert := m.Stage.Iq.LeaveInsert()
			id := m.Stage.Id.LeaveStage()
			is := m.Stage.Is.LeaveStage()
			commit := m.GetCycleCount()

			Expect(ifLeave).To(BeNumerically(">", pcgen))
			Expect(iqInsert).To(BeNumerically(">", ifLeave))
			Expect(id).To(BeNumerically(">", iqInsert))
			Expect(is).To(BeNumerically(">=", id))
			Expect(commit).To(BeNumerically(">", is))
		}
	})

	It("bubbles a taken branch's resolution time into the next fetch", func() {
		m := mixedModel()

		// Run up to and including the taken beq, then observe that the
		// jal fetched after it is anchored at or after the branch's
		// resolved-PC time.
		for i := 0; i < 8; i++ {
			Expect(m.Execute()).To(Succeed())
		}
		resolved := m.BrPred.Mispredict()
		Expect(m.BrPred.Mispredicted()).To(BeTrue())

		Expect(m.Execute()).To(Succeed()) // jal
		Expect(m.Stage.PcGen.LeaveStage()).To(BeNumerically(">=", resolved))
	})
})
