// Package trace holds the sliding window of retired instructions produced by
// an external instruction-set simulator and exposes it to the timing core as
// typed, pre-resolved column handles.
package trace

import "fmt"

// WindowSize is the minimum number of in-flight instruction slots a channel
// must expose. It is a named constant a concrete Channel can assert
// against instead of baking in silently.
const WindowSize = 100

// Column names a typed column a Channel can expose through
// GetTraceValueHook. Columns not in this list are printer-only and outside
// the timing core's concern.
type Column string

const (
	ColumnTypeID    Column = "typeId"
	ColumnPC        Column = "pc"
	ColumnRS1       Column = "rs1"
	ColumnRS2       Column = "rs2"
	ColumnRD        Column = "rd"
	ColumnBrTarget  Column = "brTarget"
	ColumnMemAddr   Column = "memAddr"
	ColumnRS1Data   Column = "rs1Data"
	ColumnRS2Data   Column = "rs2Data"
)

// requiredColumns is every column the timing core must be able to resolve
// at ConnectChannel time.
var requiredColumns = []Column{
	ColumnTypeID, ColumnPC, ColumnRS1, ColumnRS2, ColumnRD,
	ColumnBrTarget, ColumnMemAddr, ColumnRS1Data, ColumnRS2Data,
}

// ColumnView is a typed accessor over one column's backing storage, resolved
// once at connect time so the per-instruction hot path performs no string
// lookup (design note: column handle, not raw pointer).
type ColumnView interface {
	// At returns the value stored at the given instruction-window index.
	At(index int) uint64
}

// Channel is implemented by ISA-specific trace producers. The timing core
// only ever reads through it; the ISS that fills it is out of scope here.
type Channel interface {
	// GetTraceValueHook resolves a named column to a typed view, or reports
	// the column does not exist on this channel.
	GetTraceValueHook(name Column) (ColumnView, bool)
	// NewTraceBlock resets InstrIndex to 0. Called by the ISS whenever it
	// refills the window.
	NewTraceBlock()
	// Update advances InstrIndex by one. Called by the core after each
	// retired instruction has been timed.
	Update()
	// InstrIndex returns the current read index into the window.
	InstrIndex() int
}

// MismatchError reports that a channel was missing one or more columns the
// timing core requires.
type MismatchError struct {
	Missing []Column
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("trace: channel missing required column(s): %v", e.Missing)
}

// Bound holds the resolved column views for one connected channel. It is
// built once by Connect and then read for the lifetime of the simulation.
type Bound struct {
	ch                                                     Channel
	typeID, pc, rs1, rs2, rd, brTarget, memAddr, rs1d, rs2d ColumnView
}

// Connect resolves every column the timing core requires against ch. It is
// idempotent: calling it again on an already-bound channel simply re-resolves
// the same columns.
func Connect(ch Channel) (*Bound, error) {
	views := make(map[Column]ColumnView, len(requiredColumns))
	var missing []Column
	for _, name := range requiredColumns {
		v, ok := ch.GetTraceValueHook(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		views[name] = v
	}
	if len(missing) > 0 {
		return nil, &MismatchError{Missing: missing}
	}
	return &Bound{
		ch:       ch,
		typeID:   views[ColumnTypeID],
		pc:       views[ColumnPC],
		rs1:      views[ColumnRS1],
		rs2:      views[ColumnRS2],
		rd:       views[ColumnRD],
		brTarget: views[ColumnBrTarget],
		memAddr:  views[ColumnMemAddr],
		rs1d:     views[ColumnRS1Data],
		rs2d:     views[ColumnRS2Data],
	}, nil
}

// InstrIndex delegates to the bound channel.
func (b *Bound) InstrIndex() int { return b.ch.InstrIndex() }

// NewTraceBlock delegates to the bound channel.
func (b *Bound) NewTraceBlock() { b.ch.NewTraceBlock() }

// Update delegates to the bound channel.
func (b *Bound) Update() { b.ch.Update() }

// TypeID returns the typeId of the instruction at index.
func (b *Bound) TypeID(index int) int32 { return int32(b.typeID.At(index)) }

// PC returns the program counter of the instruction at index.
func (b *Bound) PC(index int) uint64 { return b.pc.At(index) }

// RS1 returns the first source register index of the instruction at index.
func (b *Bound) RS1(index int) uint64 { return b.rs1.At(index) }

// RS2 returns the second source register index of the instruction at index.
func (b *Bound) RS2(index int) uint64 { return b.rs2.At(index) }

// RD returns the destination register index of the instruction at index.
func (b *Bound) RD(index int) uint64 { return b.rd.At(index) }

// BrTarget returns the branch target of the instruction at index.
func (b *Bound) BrTarget(index int) uint64 { return b.brTarget.At(index) }

// MemAddr returns the effective memory address of the instruction at index.
func (b *Bound) MemAddr(index int) uint64 { return b.memAddr.At(index) }

// RS1Data returns the value held in rs1 at the time the instruction retired.
func (b *Bound) RS1Data(index int) uint64 { return b.rs1d.At(index) }

// RS2Data returns the value held in rs2 at the time the instruction retired.
func (b *Bound) RS2Data(index int) uint64 { return b.rs2d.At(index) }
