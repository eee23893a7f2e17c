// Package core provides the instruction dispatcher and the orchestrating
// PerformanceModel that binds a trace channel, the pipeline state, and the
// resource models in timing/pipeline and timing/cache into the backend
// lifecycle a host simulator drives: ConnectChannel, Initialize, Execute,
// Finalize, ApplyConfig, GetCycleCount.
package core

// TimeFunc is a per-instruction-class time function. It is pure with
// respect to the channel (it only reads the current instruction's
// columns) and free to mutate every pipeline stage and resource model it
// is handed through m.
type TimeFunc func(m *PerformanceModel)

// ModelEntry names one dispatch-table entry: the typeId it answers for,
// its mnemonic (diagnostic only, never used for dispatch), and the time
// function invoked for it.
type ModelEntry struct {
	TypeID   int32
	Name     string
	TimeFunc TimeFunc
}

// Set is an instruction model set: a flat collection of (typeId, name,
// timeFunc) triples built once at startup. Registration order carries no
// meaning; typeId is the only key a Dispatcher cares about.
type Set struct {
	entries []ModelEntry
}

// NewSet allocates an empty instruction model set.
func NewSet() *Set { return &Set{} }

// Add registers one instruction model. Adding two entries with the same
// typeId is a caller error; the later one simply wins when the set is
// walked into a Dispatcher.
func (s *Set) Add(typeID int32, name string, fn TimeFunc) {
	s.entries = append(s.entries, ModelEntry{TypeID: typeID, Name: name, TimeFunc: fn})
}

// Entries returns every registered model in registration order.
func (s *Set) Entries() []ModelEntry { return s.entries }

// Dispatcher memoizes the typeId -> TimeFunc mapping built by walking a
// Set, so the per-instruction hot path never re-walks the set.
type Dispatcher struct {
	funcs map[int32]TimeFunc
	names map[int32]string
}

// NewDispatcher builds a Dispatcher from every entry in set.
func NewDispatcher(set *Set) *Dispatcher {
	d := &Dispatcher{
		funcs: make(map[int32]TimeFunc, len(set.entries)),
		names: make(map[int32]string, len(set.entries)),
	}
	for _, e := range set.Entries() {
		d.funcs[e.TypeID] = e.TimeFunc
		d.names[e.TypeID] = e.Name
	}
	return d
}

// Name returns the mnemonic registered for typeID, for diagnostics.
func (d *Dispatcher) Name(typeID int32) (string, bool) {
	name, ok := d.names[typeID]
	return name, ok
}

// Call invokes the time function registered for typeID against m. It
// fails with *UnknownInstructionError if typeID has no entry; the caller
// may fall back to a generic time function (conventionally registered
// under its own typeId, e.g. "_def") in that case.
func (d *Dispatcher) Call(m *PerformanceModel, typeID int32) error {
	fn, ok := d.funcs[typeID]
	if !ok {
		return &UnknownInstructionError{TypeID: typeID}
	}
	fn(m)
	return nil
}
