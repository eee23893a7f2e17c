package pipeline

// ICacheProxy is a coarse stand-in for instruction-fetch latency: a
// single last-fetch-completion event time plus a fixed per-fetch delay.
// It does not model tags, sets, or ways; it exists only to serialize
// back-to-back fetches through one latency figure, leaving the detailed
// set-associative modeling to the data-cache.
type ICacheProxy struct {
	lastFetch EventTime
	delay     EventTime
}

// NewICacheProxy builds a proxy with the given fixed fetch delay.
func NewICacheProxy(delay EventTime) *ICacheProxy {
	return &ICacheProxy{delay: delay}
}

// LastFetch returns the completion time of the most recent fetch.
func (p *ICacheProxy) LastFetch() EventTime { return p.lastFetch }

// SetLastFetch records the completion time of a fetch.
func (p *ICacheProxy) SetLastFetch(t EventTime) { p.lastFetch = t }

// Delay returns the fixed per-fetch latency.
func (p *ICacheProxy) Delay() EventTime { return p.delay }
