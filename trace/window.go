package trace

import "fmt"

// column is a slice-backed ColumnView.
type column []uint64

func (c column) At(index int) uint64 { return c[index] }

// Window is a columnar Channel implementation: one typed slice per column,
// all sized to the same fixed window. It is the stand-in channel used by
// this repository's own tests and by cmd/perfestimate; an upstream ISS is
// free to provide any other Channel implementation instead.
type Window struct {
	size int

	typeID, pc, rs1, rs2, rd, brTarget, memAddr, rs1Data, rs2Data column

	instrIndex int
}

// NewWindow allocates a Window with the given number of slots. size must be
// at least WindowSize; the 100-entry minimum is a property of the channel
// contract, not an invisible default, so it is asserted here rather than
// silently clamped.
func NewWindow(size int) *Window {
	if size < WindowSize {
		panic(fmt.Sprintf("trace: window size %d below minimum %d", size, WindowSize))
	}
	return &Window{
		size:     size,
		typeID:   make(column, size),
		pc:       make(column, size),
		rs1:      make(column, size),
		rs2:      make(column, size),
		rd:       make(column, size),
		brTarget: make(column, size),
		memAddr:  make(column, size),
		rs1Data:  make(column, size),
		rs2Data:  make(column, size),
	}
}

// Size reports the number of slots in the window.
func (w *Window) Size() int { return w.size }

// GetTraceValueHook implements Channel.
func (w *Window) GetTraceValueHook(name Column) (ColumnView, bool) {
	switch name {
	case ColumnTypeID:
		return w.typeID, true
	case ColumnPC:
		return w.pc, true
	case ColumnRS1:
		return w.rs1, true
	case ColumnRS2:
		return w.rs2, true
	case ColumnRD:
		return w.rd, true
	case ColumnBrTarget:
		return w.brTarget, true
	case ColumnMemAddr:
		return w.memAddr, true
	case ColumnRS1Data:
		return w.rs1Data, true
	case ColumnRS2Data:
		return w.rs2Data, true
	default:
		return nil, false
	}
}

// NewTraceBlock implements Channel.
func (w *Window) NewTraceBlock() { w.instrIndex = 0 }

// Update implements Channel.
func (w *Window) Update() { w.instrIndex++ }

// InstrIndex implements Channel.
func (w *Window) InstrIndex() int { return w.instrIndex }

// Set writes one instruction record into the window at index. It is the
// write side a stand-in ISS (or a test) uses to populate the window; the
// timing core never calls it.
func (w *Window) Set(index int, typeID int32, pc, rs1, rs2, rd, brTarget, memAddr, rs1Data, rs2Data uint64) {
	w.typeID[index] = uint64(uint32(typeID))
	w.pc[index] = pc
	w.rs1[index] = rs1
	w.rs2[index] = rs2
	w.rd[index] = rd
	w.brTarget[index] = brTarget
	w.memAddr[index] = memAddr
	w.rs1Data[index] = rs1Data
	w.rs2Data[index] = rs2Data
}
