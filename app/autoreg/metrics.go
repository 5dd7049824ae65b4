package autoreg

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "ndnautoreg"

type collector struct {
	eng      *Engine
	counters []counterMetric
	state    *prometheus.Desc
	rtt      *prometheus.Desc
}

type counterMetric struct {
	desc *prometheus.Desc
	get  func(cnt Counters) uint64
}

func newCounterMetric(name, help string, get func(cnt Counters) uint64) counterMetric {
	return counterMetric{
		desc: prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "", name), help, nil, nil),
		get:  get,
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.counters {
		ch <- m.desc
	}
	ch <- c.state
	ch <- c.rtt
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	cnt := c.eng.Counters()
	for _, m := range c.counters {
		ch <- prometheus.MustNewConstMetric(m.desc, prometheus.CounterValue, float64(m.get(cnt)))
	}

	current := c.eng.State()
	for st := StateIdle; st <= StateStopped; st++ {
		v := 0.0
		if st == current {
			v = 1.0
		}
		ch <- prometheus.MustNewConstMetric(c.state, prometheus.GaugeValue, v, st.String())
	}

	rtt := c.eng.CommandLatency().Scale(1 / float64(time.Second))
	ch <- prometheus.MustNewConstSummary(c.rtt, rtt.Len, rtt.Mean*float64(rtt.Len), nil)
}

// Collector returns a Prometheus collector of engine counters and state.
func (eng *Engine) Collector() prometheus.Collector {
	return &collector{
		eng: eng,
		counters: []counterMetric{
			newCounterMetric("face_events_total", "Received face events",
				func(cnt Counters) uint64 { return cnt.NEvents }),
			newCounterMetric("face_events_ignored_total", "Face events other than non-local face creation",
				func(cnt Counters) uint64 { return cnt.NIgnored }),
			newCounterMetric("snapshot_faces_total", "Faces in the face dataset",
				func(cnt Counters) uint64 { return cnt.NSnapshotFaces }),
			newCounterMetric("faces_processed_total", "Classified faces",
				func(cnt Counters) uint64 { return cnt.NProcessed }),
			newCounterMetric("faces_duplicate_total", "Faces skipped because they were already classified",
				func(cnt Counters) uint64 { return cnt.NDuplicates }),
			newCounterMetric("commands_total", "Dispatched registration commands",
				func(cnt Counters) uint64 { return cnt.NCommands }),
			newCounterMetric("commands_succeeded_total", "Registered routes",
				func(cnt Counters) uint64 { return cnt.NSuccess }),
			newCounterMetric("commands_failed_total", "Failed registration commands",
				func(cnt Counters) uint64 { return cnt.NFailure }),
			newCounterMetric("outcomes_dropped_total", "Command outcomes arriving after shutdown",
				func(cnt Counters) uint64 { return cnt.NDropped }),
		},
		state: prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "", "state"),
			"Engine state, 1 for the current state", []string{"state"}, nil),
		rtt: prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "", "command_rtt_seconds"),
			"Round-trip time of registration commands", nil, nil),
	}
}
