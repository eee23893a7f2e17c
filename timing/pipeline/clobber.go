package pipeline

// Clobber tracks the single commit-forwarding event time: the moment the
// most recent committing instruction made its result available for
// forwarding to a dependent still in the pipeline.
type Clobber struct {
	leaveStage EventTime
}

// Get returns the last recorded forwarding time.
func (c *Clobber) Get() EventTime { return c.leaveStage }

// Set records a new forwarding time.
func (c *Clobber) Set(t EventTime) { c.leaveStage = t }
