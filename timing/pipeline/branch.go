package pipeline

// BranchModel holds the branch predictor's event-time registers. Three
// independent anchors record when a predicted next PC became available,
// one per predictor source (conditional branch, unconditional jump, and
// indirect jump-register); a fourth register records when the actual PC
// was resolved. That fourth register is deliberately shared between the
// mispredict and correct paths: resolving a branch always produces exactly
// one "PC known" timestamp, whether the prediction turned out right or
// wrong, so the mispredict penalty and the correct-path continuation read
// the same underlying time.
type BranchModel struct {
	predict    EventTime
	predictJ   EventTime
	predictJR  EventTime
	pcResolved EventTime
	mispredict bool
}

// Predict returns the last predicted-PC-available time for a conditional
// branch.
func (b *BranchModel) Predict() EventTime { return b.predict }

// SetPredict records a conditional branch's predicted-PC-available time.
func (b *BranchModel) SetPredict(t EventTime) { b.predict = t }

// PredictJ returns the last predicted-PC-available time for an
// unconditional jump.
func (b *BranchModel) PredictJ() EventTime { return b.predictJ }

// SetPredictJ records an unconditional jump's predicted-PC-available time.
func (b *BranchModel) SetPredictJ(t EventTime) { b.predictJ = t }

// PredictJR returns the last predicted-PC-available time for an indirect
// jump-register.
func (b *BranchModel) PredictJR() EventTime { return b.predictJR }

// SetPredictJR records an indirect jump-register's predicted-PC-available
// time.
func (b *BranchModel) SetPredictJR(t EventTime) { b.predictJR = t }

// Mispredict returns the time the correct PC became known, for use as the
// mispredict-penalty anchor downstream in PcGen.
func (b *BranchModel) Mispredict() EventTime { return b.pcResolved }

// SetCorrect records the time the correct PC became known and the
// resolved verdict. It is the single write path for the shared resolved-PC
// register: both the mispredict penalty and the correct-path continuation
// read it back through Mispredict.
func (b *BranchModel) SetCorrect(t EventTime, mispredicted bool) {
	b.pcResolved = t
	b.mispredict = mispredicted
}

// Mispredicted reports the verdict of the most recently resolved branch.
func (b *BranchModel) Mispredicted() bool { return b.mispredict }
