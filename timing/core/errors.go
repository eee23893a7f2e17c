package core

import "fmt"

// UnknownInstructionError reports that a retired instruction's typeId has
// no registered time function. ChannelMismatch surfaces as
// *trace.MismatchError and InvalidConfiguration/OutOfCapacity surface as
// *cache.InvalidConfigurationError / *cache.OutOfCapacityError; this
// package does not redeclare those, it lets them propagate from
// ConnectChannel/ApplyConfig unchanged.
type UnknownInstructionError struct {
	TypeID int32
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("timing/core: no time function registered for typeId %d", e.TypeID)
}
