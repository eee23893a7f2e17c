package core

import "github.com/archsim/perfestimate/timing/pipeline"

// maxET returns the largest of the given event times. Pipeline's own max
// helper is unexported; time functions live here, not in timing/pipeline,
// so they carry their own.
func maxET(vals ...pipeline.EventTime) pipeline.EventTime {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// pcgenStage advances PcGen: max of the prior leave time plus one, the
// outstanding branch-mispredict correction, the I-cache's last fetch
// completion, and If's back-pressure.
func pcgenStage(m *PerformanceModel) pipeline.EventTime {
	prev := m.Stage.PcGen.LeaveStage()
	leave := maxET(prev+1, m.BrPred.Mispredict(), m.ICache.LastFetch(), m.Stage.If.BackPressure())
	m.Stage.PcGen.SetLeaveStage(leave)
	return leave
}

// ifStage advances If. publish, when non-nil, receives n_if_6 and
// records it into the branch-class-specific predicted-time register; every
// variant (plain, branch, jump, jumpR) reads the same shared pcPredict
// register on entry regardless of which register it publishes to on exit.
func ifStage(m *PerformanceModel, pcgenLeave pipeline.EventTime, publish func(*PerformanceModel, pipeline.EventTime)) pipeline.EventTime {
	n1 := pcgenLeave + 1
	n2 := maxET(pcgenLeave, m.BrPred.Predict())
	n3 := maxET(n1, n2, m.Stage.If.LeaveICache())
	m.Stage.If.SetLeaveICacheIn(n3)

	n4 := n3 + m.ICache.Delay()
	m.ICache.SetLastFetch(n4)
	m.Stage.If.SetLeaveICache(n4)

	n5 := maxET(n4, m.Stage.If.LeaveStage())
	n6 := n5 + 1

	if publish != nil {
		publish(m, n6)
	}

	leave := maxET(n6, m.Stage.Iq.BackPressure())
	m.Stage.If.SetLeaveStage(leave)
	return leave
}

// iqStage advances Iq: a one-cycle insertion delay gated by Id's
// back-pressure, pushed onto the 7-deep ring.
func iqStage(m *PerformanceModel, ifLeave pipeline.EventTime) pipeline.EventTime {
	n1 := ifLeave + 1
	m.Stage.Iq.SetLeaveInsert(n1)
	leave := maxET(n1, m.Stage.Id.BackPressure())
	m.Stage.Iq.SetLeaveStage(leave)
	return leave
}

// idStage advances Id: a single-cycle pass-through gated by Is's
// back-pressure.
func idStage(m *PerformanceModel, iqLeave pipeline.EventTime) pipeline.EventTime {
	n1 := iqLeave + 1
	leave := maxET(n1, m.Stage.Is.BackPressure())
	m.Stage.Id.SetLeaveStage(leave)
	return leave
}

// isStage advances Is with zero entry delay, folding in whatever
// operand-ready/clobber dependencies the instruction's class requires plus
// the class-specific Ex back-pressure view.
func isStage(m *PerformanceModel, idLeave pipeline.EventTime, deps []pipeline.EventTime, backPressure pipeline.EventTime) pipeline.EventTime {
	done := idLeave
	for _, d := range deps {
		if d > done {
			done = d
		}
	}
	leave := maxET(done, backPressure)
	m.Stage.Is.SetLeaveStage(leave)
	return leave
}

// exLeave folds an Ex-stage class's own completion time together with the
// shared transaction guard and Com's back-pressure, then pushes the result
// onto the 8-deep Ex ring.
func exLeave(m *PerformanceModel, done pipeline.EventTime) pipeline.EventTime {
	leave := maxET(done, m.Stage.Ex.TransGuard(), m.Stage.Com.BackPressure())
	m.Stage.Ex.SetLeaveStage(leave)
	return leave
}

// comStage advances Com: a fixed one-cycle latency from Ex's leave time,
// pushed onto the 2-deep ring and folded into the running cycle-count
// maximum. withClobber instructions (those retiring to a register) also
// publish the commit time as the new forwarding signal.
func comStage(m *PerformanceModel, exLeave pipeline.EventTime, withClobber bool) {
	n := exLeave + 1
	m.Stage.Commit(n)
	if withClobber {
		m.Clobber.Set(n)
	}
}

// --- operand accessors -----------------------------------------------

func (m *PerformanceModel) idx() int { return m.Channel().InstrIndex() }

func (m *PerformanceModel) xaReady() pipeline.EventTime {
	return m.RegModel.Ready(int(m.Channel().RS1(m.idx())))
}

func (m *PerformanceModel) xbReady() pipeline.EventTime {
	return m.RegModel.Ready(int(m.Channel().RS2(m.idx())))
}

func (m *PerformanceModel) setXd(t pipeline.EventTime) {
	m.RegModel.SetReady(int(m.Channel().RD(m.idx())), t)
}

// --- IS-stage variants -------------------------------------------------

func isDef(m *PerformanceModel, idLeave pipeline.EventTime) pipeline.EventTime {
	return isStage(m, idLeave, nil, m.Stage.Ex.BackPressureArith())
}

func isArith0(m *PerformanceModel, idLeave pipeline.EventTime) pipeline.EventTime {
	return isStage(m, idLeave, []pipeline.EventTime{m.Clobber.Get()}, m.Stage.Ex.BackPressureArith())
}

func isArithRS1(m *PerformanceModel, idLeave pipeline.EventTime) pipeline.EventTime {
	return isStage(m, idLeave, []pipeline.EventTime{m.xaReady(), m.Clobber.Get()}, m.Stage.Ex.BackPressureArith())
}

func isArithRS2(m *PerformanceModel, idLeave pipeline.EventTime) pipeline.EventTime {
	return isStage(m, idLeave, []pipeline.EventTime{m.xbReady(), m.Clobber.Get()}, m.Stage.Ex.BackPressureArith())
}

func isArithRS1RS2(m *PerformanceModel, idLeave pipeline.EventTime) pipeline.EventTime {
	return isStage(m, idLeave, []pipeline.EventTime{m.xaReady(), m.xbReady(), m.Clobber.Get()}, m.Stage.Ex.BackPressureArith())
}

func isBranch(m *PerformanceModel, idLeave pipeline.EventTime) pipeline.EventTime {
	return isStage(m, idLeave, []pipeline.EventTime{m.xaReady(), m.xbReady()}, m.Stage.Ex.BackPressureArith())
}

func isMul(m *PerformanceModel, idLeave pipeline.EventTime) pipeline.EventTime {
	return isStage(m, idLeave, []pipeline.EventTime{m.xaReady(), m.xbReady(), m.Clobber.Get()}, m.Stage.Ex.BackPressureMul())
}

func isDiv(m *PerformanceModel, idLeave pipeline.EventTime) pipeline.EventTime {
	return isStage(m, idLeave, []pipeline.EventTime{m.xaReady(), m.xbReady(), m.Clobber.Get()}, m.Stage.Ex.BackPressureDiv())
}

func isLoad(m *PerformanceModel, idLeave pipeline.EventTime) pipeline.EventTime {
	return isStage(m, idLeave, []pipeline.EventTime{m.xaReady(), m.Clobber.Get()}, m.Stage.Ex.BackPressureLoad())
}

func isStore(m *PerformanceModel, idLeave pipeline.EventTime) pipeline.EventTime {
	return isStage(m, idLeave, []pipeline.EventTime{m.xaReady(), m.xbReady()}, m.Stage.Ex.BackPressureStore())
}

// --- EX-stage variants --------------------------------------------------

func exArith(m *PerformanceModel, isLeave pipeline.EventTime) pipeline.EventTime {
	done := isLeave + 1
	m.Stage.Ex.SetLeaveAlu(done)
	m.setXd(done)
	return exLeave(m, done)
}

func exDef(m *PerformanceModel, isLeave pipeline.EventTime) pipeline.EventTime {
	done := isLeave + 1
	m.Stage.Ex.SetLeaveAlu(done)
	return exLeave(m, done)
}

// exBranch mispredicts a conditional branch under a static
// predict-not-taken policy: a branch is mispredicted exactly when it is
// retired with a nonzero (taken) branch target.
func exBranch(m *PerformanceModel, isLeave pipeline.EventTime) pipeline.EventTime {
	done := isLeave + 1
	m.Stage.Ex.SetLeaveAlu(done)
	mispredicted := m.Channel().BrTarget(m.idx()) != 0
	m.BrPred.SetCorrect(done, mispredicted)
	return exLeave(m, done)
}

// exJumpR models an indirect jump as always mispredicted: its target
// depends on a register value unknowable ahead of Ex, so no static
// predictor can do better than guess wrong.
func exJumpR(m *PerformanceModel, isLeave pipeline.EventTime) pipeline.EventTime {
	done := isLeave + 1
	m.Stage.Ex.SetLeaveAlu(done)
	m.BrPred.SetCorrect(done, true)
	m.setXd(done)
	return exLeave(m, done)
}

func exMul(m *PerformanceModel, isLeave pipeline.EventTime) pipeline.EventTime {
	n1 := isLeave + 1
	m.Stage.Ex.SetLeaveMulI(n1)
	done := isLeave + 1
	m.Stage.Ex.SetLeaveMulO(done)
	m.setXd(done)
	return exLeave(m, done)
}

func exDiv(m *PerformanceModel, isLeave pipeline.EventTime) pipeline.EventTime {
	done := isLeave + m.DivSigned.Latency(m.Channel().RS1Data(m.idx()), m.Channel().RS2Data(m.idx()))
	m.Stage.Ex.SetLeaveDiv(done)
	m.setXd(done)
	return exLeave(m, done)
}

func exDivU(m *PerformanceModel, isLeave pipeline.EventTime) pipeline.EventTime {
	done := isLeave + m.DivUnsigned.Latency(m.Channel().RS1Data(m.idx()), m.Channel().RS2Data(m.idx()))
	m.Stage.Ex.SetLeaveDiv(done)
	m.setXd(done)
	return exLeave(m, done)
}

func exLoad(m *PerformanceModel, isLeave pipeline.EventTime) pipeline.EventTime {
	n1 := isLeave + 1
	n2 := maxET(n1, m.Stage.Ex.LeaveDCache())
	m.Stage.Ex.SetLeaveLCtrl(n2)

	n3 := n2 + pipeline.EventTime(m.DCache.Fetch(m.Channel().MemAddr(m.idx())))
	n4 := maxET(n3, m.Stage.Ex.LeaveLUnit())
	m.Stage.Ex.SetLeaveDCache(n4)

	done := n4 + 1
	m.Stage.Ex.SetLeaveLUnit(done)
	m.setXd(done)
	return exLeave(m, done)
}

func exStore(m *PerformanceModel, isLeave pipeline.EventTime) pipeline.EventTime {
	n1 := isLeave + 1
	n2 := maxET(n1, m.Stage.Ex.LeaveSUnit())
	m.Stage.Ex.SetLeaveSCtrl(n2)

	done := n2 + 1
	m.Stage.Ex.SetLeaveSUnit(done)
	return exLeave(m, done)
}

// --- assembled time functions -------------------------------------------

// timeFunc composes the seven-stage skeleton from an If-stage predicted-
// time publisher and class-specific Is/Ex stage functions, optionally
// publishing the commit time to the clobber model.
func timeFunc(ifPublish func(*PerformanceModel, pipeline.EventTime), is func(*PerformanceModel, pipeline.EventTime) pipeline.EventTime, ex func(*PerformanceModel, pipeline.EventTime) pipeline.EventTime, withClobber bool) TimeFunc {
	return func(m *PerformanceModel) {
		pcgenLeave := pcgenStage(m)
		ifLeave := ifStage(m, pcgenLeave, ifPublish)
		iqLeave := iqStage(m, ifLeave)
		idLeave := idStage(m, iqLeave)
		isLeave := is(m, idLeave)
		exStageLeave := ex(m, isLeave)
		comStage(m, exStageLeave, withClobber)
	}
}

func arith0() TimeFunc      { return timeFunc(nil, isArith0, exArith, true) }
func arithRS1() TimeFunc    { return timeFunc(nil, isArithRS1, exArith, true) }
func arithRS2() TimeFunc    { return timeFunc(nil, isArithRS2, exArith, true) }
func arithRS1RS2() TimeFunc { return timeFunc(nil, isArithRS1RS2, exArith, true) }

func branchTimeFunc() TimeFunc {
	return timeFunc(func(m *PerformanceModel, t pipeline.EventTime) { m.BrPred.SetPredict(t) }, isBranch, exBranch, false)
}
func jumpTimeFunc() TimeFunc {
	return timeFunc(func(m *PerformanceModel, t pipeline.EventTime) { m.BrPred.SetPredictJ(t) }, isArith0, exArith, true)
}
func jumpRTimeFunc() TimeFunc {
	return timeFunc(func(m *PerformanceModel, t pipeline.EventTime) { m.BrPred.SetPredictJR(t) }, isArithRS1, exJumpR, true)
}
func mulTimeFunc() TimeFunc   { return timeFunc(nil, isMul, exMul, true) }
func divTimeFunc() TimeFunc   { return timeFunc(nil, isDiv, exDiv, true) }
func divUTimeFunc() TimeFunc  { return timeFunc(nil, isDiv, exDivU, true) }
func loadTimeFunc() TimeFunc  { return timeFunc(nil, isLoad, exLoad, true) }
func storeTimeFunc() TimeFunc { return timeFunc(nil, isStore, exStore, false) }
func defTimeFunc() TimeFunc   { return timeFunc(nil, isDef, exDef, false) }
