// Package pipeline holds the per-instruction event-time registers for the
// seven logical pipeline stages (PcGen, If, Iq, Id, Is, Ex, Com) and the
// resource models those stages read from and publish to: the register
// scoreboard, the clobber/forward signal, branch prediction, the signed and
// unsigned dividers, and the instruction-cache latency proxy.
//
// Nothing in this package knows about instruction classes; the per-class
// composition of these primitives into a retirement timestamp lives in
// timing/core, which is the only caller of the setters here.
package pipeline

// EventTime is a cycle timestamp. It is monotonically non-decreasing over
// the lifetime of a simulation for any single register: every write is
// either a max-reduction against the prior value or derives from a strictly
// later upstream anchor.
type EventTime uint64

// max returns the largest of the given event times.
func max(vals ...EventTime) EventTime {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
