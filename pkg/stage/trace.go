package stage

// TraceEventType identifies the type of a trace event.
type TraceEventType string

const (
	// TraceEvaluate fires each time a node's Evaluate runs (a cache miss
	// or a volatile node).
	TraceEvaluate TraceEventType = "evaluate"
	// TraceCacheHit fires when Result returns a retained cached value.
	TraceCacheHit TraceEventType = "cache_hit"
	// TraceInvalidate fires when a volatile node drops its cached value.
	TraceInvalidate TraceEventType = "invalidate"
	// TraceStage fires when a lambda call site is staged for the first time.
	TraceStage TraceEventType = "stage"
	// TraceStageReuse fires when a lambda evaluation reuses an already
	// registered closure record.
	TraceStageReuse TraceEventType = "stage_reuse"
	// TraceLookup fires on every environment symbol lookup.
	TraceLookup TraceEventType = "lookup"
)

// TraceEvent is a single instrumentation event emitted during evaluation.
type TraceEvent struct {
	Event TraceEventType
	Node  Expression // the node involved, nil for lookup events
	Site  *CallSite  // set for stage events
	Sym   Symbol     // set for lookup events and stage events (the formal)
}

func (c *Context) emit(event TraceEventType, node Expression) {
	if c.trace != nil {
		c.trace(TraceEvent{Event: event, Node: node})
	}
}

func (c *Context) emitStage(event TraceEventType, node Expression, site CallSite, formal Symbol) {
	if c.trace != nil {
		c.trace(TraceEvent{Event: event, Node: node, Site: &site, Sym: formal})
	}
}

func (c *Context) emitLookup(sym Symbol) {
	if c.trace != nil {
		c.trace(TraceEvent{Event: TraceLookup, Sym: sym})
	}
}
