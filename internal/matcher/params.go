package matcher

// Strategy selects which recurrence MatchMatrix uses to score a note
// against the window (§4.4). Strategies are an enumerated tag plus two
// pure recurrence functions sharing the Cell/column representation (§9) —
// never polymorphic dispatch, since at most one strategy is selected per
// feed.
type Strategy int

const (
	StrategyStatic Strategy = iota
	StrategyDynamic
)

func (s Strategy) String() string {
	switch s {
	case StrategyStatic:
		return "static"
	case StrategyDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a strategy tag to its Strategy value, per
// ErrStrategyUnknown (§7).
func ParseStrategy(tag string) (Strategy, error) {
	switch tag {
	case "static":
		return StrategyStatic, nil
	case "dynamic":
		return StrategyDynamic, nil
	default:
		return 0, ErrStrategyUnknown
	}
}

// Params is the plain configuration value carrying every tunable constant
// named in §4 (default values as specified there). Tagged for JSON so a
// session's tuning can be loaded from / saved to a config file (paramsio.go).
type Params struct {
	WinHalfLen int `json:"win_half_len"` // default 10

	// Static strategy (§4.4.1)
	Scm int `json:"scm"` // skip-score-event cost, default 1
	Sce int `json:"sce"` // skip-performance-note cost, default 0
	Scw int `json:"scw"` // chord-miss penalty, default 1

	// Dynamic strategy (§4.4.2)
	Dcm int `json:"dcm"` // vertical-rule unused-count multiplier, default 2
	Dmc int `json:"dmc"` // chord/trill match reward, default 2
	Dce int `json:"dce"` // no-match / beyond-grace penalty, default 1
	Dgc int `json:"dgc"` // grace-note reward, default 1

	Epsilon         float64 `json:"epsilon"`          // score-note grouping tolerance (seconds), default 0.075
	GraceMaxIOI     float64 `json:"grace_max_ioi"`    // default 0.1
	TrillMaxIOI     float64 `json:"trill_max_ioi"`    // default 0.2
	ConfidenceSlack int     `json:"confidence_slack"` // default 0

	StartPoint int `json:"start_point"` // lowest row the path may retreat to, default 1
}

// DefaultParams returns the constants given in §4 and §9.
func DefaultParams() Params {
	return Params{
		WinHalfLen:      10,
		Scm:             1,
		Sce:             0,
		Scw:             1,
		Dcm:             2,
		Dmc:             2,
		Dce:             1,
		Dgc:             1,
		Epsilon:         0.075,
		GraceMaxIOI:     0.1,
		TrillMaxIOI:     0.2,
		ConfidenceSlack: 0,
		StartPoint:      1,
	}
}
