package statusreport

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/usnistgov/ndn-autoreg/app/autoreg"
	"github.com/usnistgov/ndn-autoreg/core/runningstat"
	"github.com/usnistgov/ndn-autoreg/ndn/mgmt"
)

// AutoregSection reports route auto-registration engine status.
type AutoregSection struct {
	Engine *autoreg.Engine

	state    autoreg.State
	counters autoreg.Counters
	latency  runningstat.Snapshot
}

var _ Section = (*AutoregSection)(nil)

// Name returns "Autoreg".
func (*AutoregSection) Name() string {
	return "Autoreg"
}

// FetchStatus reads engine state and counters.
func (s *AutoregSection) FetchStatus(context.Context, mgmt.Client) error {
	s.state, s.counters = s.Engine.State(), s.Engine.Counters()
	s.latency = s.Engine.CommandLatency()
	return nil
}

// FormatText writes engine state and counters.
func (s *AutoregSection) FormatText(w io.Writer) error {
	cnt := s.counters
	_, e := fmt.Fprintf(w, "%s:\n  state=%s\n  events=%d ignored=%d snapshot-faces=%d processed=%d duplicates=%d\n  commands=%d success=%d failure=%d dropped=%d\n",
		s.Name(), s.state,
		cnt.NEvents, cnt.NIgnored, cnt.NSnapshotFaces, cnt.NProcessed, cnt.NDuplicates,
		cnt.NCommands, cnt.NSuccess, cnt.NFailure, cnt.NDropped)
	if e != nil || s.latency.Len == 0 {
		return e
	}
	_, e = fmt.Fprintf(w, "  rtt={mean %s stdev %s min %s max %s}\n",
		time.Duration(s.latency.Mean), time.Duration(s.latency.Stdev),
		time.Duration(*s.latency.Min), time.Duration(*s.latency.Max))
	return e
}

// FormatXML writes an <autoreg> element.
func (s *AutoregSection) FormatXML(w io.Writer) error {
	doc := struct {
		XMLName xml.Name `xml:"autoreg"`
		State   string   `xml:"state"`
		autoreg.Counters
		RTTMean string `xml:"rttMean,omitempty"`
	}{
		State:    s.state.String(),
		Counters: s.counters,
	}
	if s.latency.Len > 0 {
		doc.RTTMean = xmlDuration(time.Duration(s.latency.Mean))
	}
	return writeXML(w, doc)
}

// xmlDuration formats d as xs:duration in seconds.
func xmlDuration(d time.Duration) string {
	return fmt.Sprintf("PT%.6fS", d.Seconds())
}
