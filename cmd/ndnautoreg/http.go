package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/usnistgov/ndn-autoreg/app/autoreg"
	"github.com/usnistgov/ndn-autoreg/app/statusreport"
	"github.com/usnistgov/ndn-autoreg/iface/channel"
	"github.com/usnistgov/ndn-autoreg/ndn/mgmt"
	"go.uber.org/zap"
)

// ErrNotStream indicates an HTTP endpoint is not a stream socket.
var ErrNotStream = errors.New("HTTP requires a stream endpoint")

// httpMuxes maps each listening channel to the HTTP handlers served on it.
// Status and metrics endpoints with the same key share one server.
type httpMuxes struct {
	channels *channel.Registry
	muxes    map[channel.EndpointKey]*http.ServeMux
	patterns map[string]bool
}

func (hm *httpMuxes) handle(key channel.EndpointKey, pattern string, h http.Handler) error {
	id := string(key) + " " + pattern
	if hm.patterns[id] {
		return nil
	}
	hm.patterns[id] = true

	mux := hm.muxes[key]
	if mux == nil {
		ch, e := hm.channels.CreateOrGet(key)
		if e != nil {
			return e
		}
		listener := ch.Listener()
		if listener == nil {
			return fmt.Errorf("%s: %w", key, ErrNotStream)
		}

		mux = http.NewServeMux()
		hm.muxes[key] = mux
		server := &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			e := server.Serve(listener)
			logger.Debug("HTTP server stopped", zap.Stringer("channel", ch), zap.Error(e))
		}()
		logger.Info("HTTP server started", zap.Stringer("channel", ch))
	}

	mux.Handle(pattern, h)
	return nil
}

// serveHTTP starts status report and metrics servers on channels from the registry.
// Servers stop when the registry is closed.
func serveHTTP(channels *channel.Registry, client mgmt.Client, eng *autoreg.Engine, statusKeys, metricsKeys []string) error {
	hm := &httpMuxes{
		channels: channels,
		muxes:    map[channel.EndpointKey]*http.ServeMux{},
		patterns: map[string]bool{},
	}
	status := statusHandler(client, eng)
	for _, key := range statusKeys {
		if e := hm.handle(channel.EndpointKey(key), "/status", status); e != nil {
			return e
		}
	}

	if len(metricsKeys) == 0 {
		return nil
	}
	reg := prometheus.NewRegistry()
	if e := reg.Register(eng.Collector()); e != nil {
		return e
	}
	metrics := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	for _, key := range metricsKeys {
		if e := hm.handle(channel.EndpointKey(key), "/metrics", metrics); e != nil {
			return e
		}
	}
	return nil
}

func newReport(eng *autoreg.Engine) statusreport.Report {
	sections := []statusreport.Section{}
	if eng != nil {
		sections = append(sections, &statusreport.AutoregSection{Engine: eng})
	}
	sections = append(sections, &statusreport.FaceSection{})
	return statusreport.Report{Sections: sections}
}

// statusHandler serves a status report as text, or as XML when the query has format=xml.
func statusHandler(client mgmt.Client, eng *autoreg.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report := newReport(eng)
		if e := report.Collect(r.Context(), client); e != nil {
			logger.Warn("status report incomplete", zap.Error(e))
		}

		var e error
		if r.URL.Query().Get("format") == "xml" {
			w.Header().Set("Content-Type", "application/xml")
			e = report.FormatXML(w)
		} else {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			e = report.FormatText(w)
		}
		if e != nil {
			logger.Warn("status report write error", zap.Error(e))
		}
	})
}
