// Package broadcast forwards matcher.MatchReports to downstream consumers — the
// "accompanist, tempo follower, label generator" §1 names without
// implementing — over OSC, the wire-out pattern the teacher uses for its
// own playback/parameter messages.
package broadcast

import (
	"log"

	"github.com/hypebeast/go-osc/osc"

	"scorefollow/internal/matcher"
)

// oscMessageConfig mirrors the teacher's OSCMessageConfig/sendOSCMessage
// pair: one address, positional parameters, and an optional log line.
type oscMessageConfig struct {
	Address    string
	Parameters []interface{}
	LogFormat  string
	LogArgs    []interface{}
}

// OSCReporter sends each MatchReport as an OSC message to a fixed
// host:port. Send errors are logged and otherwise ignored. A reporter
// whose client is nil makes every send a silent no-op, matching the
// teacher's "OSC not configured" guard; NewOSCReporter always sets a
// client.
type OSCReporter struct {
	client *osc.Client
	addr   string
}

// NewOSCReporter builds a reporter sending to host:port.
func NewOSCReporter(host string, port int) *OSCReporter {
	return &OSCReporter{
		client: osc.NewClient(host, port),
		addr:   "/match",
	}
}

// Report sends one MatchReport as "/match row pitch perf_time score".
func (r *OSCReporter) Report(m matcher.MatchReport) {
	r.send(oscMessageConfig{
		Address:    r.addr,
		Parameters: []interface{}{int32(m.Row), int32(m.Pitch), m.PerfTime, int32(m.Score)},
		LogFormat:  "OSC match message sent: %s row=%d pitch=%d perf_time=%.3f score=%d",
		LogArgs:    []interface{}{r.addr, m.Row, m.Pitch, m.PerfTime, m.Score},
	})
}

// ReportReset tells downstream consumers the follower's state was reset
// (§4.5: strategy switch or explicit Reset), so they can discard any
// cached alignment of their own.
func (r *OSCReporter) ReportReset() {
	r.send(oscMessageConfig{
		Address:   "/reset",
		LogFormat: "OSC reset message sent: /reset",
	})
}

func (r *OSCReporter) send(config oscMessageConfig) {
	if r.client == nil {
		return
	}
	msg := osc.NewMessage(config.Address)
	for _, p := range config.Parameters {
		msg.Append(p)
	}
	if err := r.client.Send(msg); err != nil {
		log.Printf("[BROADCAST] error sending OSC message to %s: %v", config.Address, err)
		return
	}
	if config.LogFormat != "" {
		log.Printf(config.LogFormat, config.LogArgs...)
	}
}
