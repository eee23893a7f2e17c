package cache

import "fmt"

// InvalidConfigurationError reports a cache configuration that cannot be
// satisfied: an unparseable layout, a malformed address range, or a
// referenced cache level with no matching configuration keys.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid memory configuration: %s", e.Reason)
}

// OutOfCapacityError reports an attempt to build a cache level whose
// geometry does not fit in the fixed tag-memory representation, for
// example a block size or way count of zero.
type OutOfCapacityError struct {
	Reason string
}

func (e *OutOfCapacityError) Error() string {
	return fmt.Sprintf("cache out of capacity: %s", e.Reason)
}
