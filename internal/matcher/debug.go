package matcher

// DebugRecord is one structured record of the per-column diagnostic log
// described in §6. The field set is the output interface: once a consumer
// depends on it, fields are added, never renamed or repurposed. Zero
// values are omitted from the JSON encoding by this type's omitempty tags;
// the diagnostics writer (internal/diagnostics) marshals records as-is.
type DebugRecord struct {
	Kind string `json:"kind"`

	// INPUT
	Pitch    int     `json:"pitch,omitempty"`
	PerfTime float64 `json:"perf_time,omitempty"`

	// CEVENT / CELL / TIMING / VRULE / HRULE / DP
	Row         int     `json:"row,omitempty"`
	Value       int     `json:"value,omitempty"`
	Time        float64 `json:"time,omitempty"`
	Used        []int   `json:"used,omitempty"`
	UnusedCount int     `json:"unused_count,omitempty"`
	Expected    int     `json:"expected,omitempty"`

	IOI         float64 `json:"ioi,omitempty"`
	TimingLimit float64 `json:"timing_limit,omitempty"`
	TimingOK    bool    `json:"timing_ok,omitempty"`

	V int `json:"v,omitempty"`
	H int `json:"h,omitempty"`

	// DECISION: one of "V", "C1", "C2", "C3", "C4"
	Decision string `json:"decision,omitempty"`

	// DP
	NewValue int `json:"new_value,omitempty"`

	// MATCH / NO_MATCH
	Score int `json:"score,omitempty"`
}

// DebugKind values for DebugRecord.Kind (§6).
const (
	DebugInput    = "INPUT"
	DebugCEvent   = "CEVENT"
	DebugCell     = "CELL"
	DebugTiming   = "TIMING"
	DebugVRule    = "VRULE"
	DebugHRule    = "HRULE"
	DebugDecision = "DECISION"
	DebugDP       = "DP"
	DebugMatch    = "MATCH"
	DebugNoMatch  = "NO_MATCH"
)

// Decision tags for DebugRecord.Decision under the dynamic strategy (§4.4.2).
const (
	DebugDecisionV  = "V"
	DebugDecisionC1 = "C1"
	DebugDecisionC2 = "C2"
	DebugDecisionC3 = "C3"
	DebugDecisionC4 = "C4"
)

// DebugSink receives DebugRecords as the matcher emits them. Disabling the
// sink (leaving it nil) must not change the sequence of MatchReports
// (§8 P5); the matcher never branches on whether a sink is attached.
type DebugSink interface {
	Emit(DebugRecord)
}

// emit is a no-op-safe helper: matrix.debug may be nil.
func (m *Matrix) emit(rec DebugRecord) {
	if m.debug == nil {
		return
	}
	m.debug.Emit(rec)
}
