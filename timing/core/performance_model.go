package core

import (
	"fmt"

	"github.com/archsim/perfestimate/config"
	"github.com/archsim/perfestimate/timing/cache"
	"github.com/archsim/perfestimate/timing/pipeline"
	"github.com/archsim/perfestimate/trace"
)

// PerformanceModel is the orchestrating facade the host simulator drives:
// it owns every pipeline stage and resource model exclusively and exposes
// the backend lifecycle (ConnectChannel, Initialize, Execute, Finalize,
// ApplyConfig, GetCycleCount). The time
// functions in timefuncs.go are its only mutators; nothing outside this
// package reaches into Stage/RegModel/etc. directly during a simulation.
type PerformanceModel struct {
	Stage *pipeline.State

	RegModel    *pipeline.Scoreboard
	Clobber     *pipeline.Clobber
	BrPred      *pipeline.BranchModel
	DivSigned   *pipeline.Divider
	DivUnsigned *pipeline.Divider
	ICache      *pipeline.ICacheProxy
	DCache      *cache.Model

	dispatch *Dispatcher
	channel  *trace.Bound
}

// New builds a PerformanceModel wired to the given instruction set, with a
// zero-valued pipeline, the default dividers, and a zero-latency I-cache
// proxy: out of the box, instruction fetch charges only the mandatory
// per-stage +1s unless reconfigured. ApplyConfig must still install a
// D-cache before Execute can time a load or store.
func New(set *Set) *PerformanceModel {
	return &PerformanceModel{
		Stage:       pipeline.NewState(),
		RegModel:    &pipeline.Scoreboard{},
		Clobber:     &pipeline.Clobber{},
		BrPred:      &pipeline.BranchModel{},
		DivSigned:   pipeline.DefaultSignedDivider(),
		DivUnsigned: pipeline.DefaultUnsignedDivider(),
		ICache:      pipeline.NewICacheProxy(0),
		dispatch:    NewDispatcher(set),
	}
}

// ConnectChannel resolves and caches the channel's column views. It is
// idempotent and must be called before the first Execute; it fails with
// *trace.MismatchError if a required column is missing.
func (m *PerformanceModel) ConnectChannel(ch trace.Channel) error {
	bound, err := trace.Connect(ch)
	if err != nil {
		return err
	}
	m.channel = bound
	return nil
}

// Initialize is the one-time post-configuration lifecycle hook. Every
// pipeline and resource register already starts zero-valued at
// construction; Initialize's job is to refuse to proceed if the backend
// was never wired up.
func (m *PerformanceModel) Initialize() error {
	if m.channel == nil {
		return fmt.Errorf("timing/core: Initialize called before ConnectChannel")
	}
	if m.DCache == nil {
		return fmt.Errorf("timing/core: Initialize called before ApplyConfig installed a D-cache")
	}
	return nil
}

// Execute times the instruction currently at the channel's InstrIndex,
// dispatching on its typeId, and then advances InstrIndex. It fails with
// *UnknownInstructionError if the typeId has no registered time function;
// the caller may retry against a fallback typeId (conventionally "_def").
func (m *PerformanceModel) Execute() error {
	idx := m.channel.InstrIndex()
	typeID := m.channel.TypeID(idx)
	if err := m.dispatch.Call(m, typeID); err != nil {
		return err
	}
	m.channel.Update()
	return nil
}

// Finalize returns the total cycle count observed. Per-cache histogram
// CSV output is the caller's responsibility via cache.WriteHistogram over
// m.DCache.Levels(), since that artifact is a file, not a return value.
func (m *PerformanceModel) Finalize() uint64 {
	return uint64(m.GetCycleCount())
}

// GetCycleCount returns the maximum Com.leaveStage observed so far.
func (m *PerformanceModel) GetCycleCount() pipeline.EventTime {
	return m.Stage.CycleCount()
}

// ApplyConfig builds this model's D-cache from the given configuration
// source, forwarding to timing/cache.
func (m *PerformanceModel) ApplyConfig(src config.Source) error {
	dcache, err := cache.ApplyConfig(src)
	if err != nil {
		return err
	}
	m.DCache = dcache
	return nil
}

// Channel exposes the bound channel's per-column accessors to timefuncs.go.
func (m *PerformanceModel) Channel() *trace.Bound { return m.channel }
