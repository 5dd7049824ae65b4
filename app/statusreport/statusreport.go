// Package statusreport formats forwarder and route registration status.
package statusreport

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/usnistgov/ndn-autoreg/ndn/mgmt"
	"go.uber.org/multierr"
)

// XMLNamespace is the namespace of XML status report.
const XMLNamespace = "ndn:/localhost/nfd/status/1"

// Section is a part of status report.
type Section interface {
	// Name returns section name.
	Name() string

	// FetchStatus retrieves status information.
	FetchStatus(ctx context.Context, client mgmt.Client) error

	// FormatText writes status information as text.
	FormatText(w io.Writer) error

	// FormatXML writes status information as an XML element.
	FormatXML(w io.Writer) error
}

// Report is a status report that contains several sections.
type Report struct {
	Sections []Section
}

// Collect invokes FetchStatus on every section.
// A failed section does not prevent other sections from being fetched.
func (r Report) Collect(ctx context.Context, client mgmt.Client) (e error) {
	for _, section := range r.Sections {
		if se := section.FetchStatus(ctx, client); se != nil {
			e = multierr.Append(e, fmt.Errorf("%s: %w", section.Name(), se))
		}
	}
	return e
}

// FormatText writes a text report.
func (r Report) FormatText(w io.Writer) error {
	for _, section := range r.Sections {
		if e := section.FormatText(w); e != nil {
			return e
		}
	}
	return nil
}

// FormatXML writes an XML report.
func (r Report) FormatXML(w io.Writer) error {
	if _, e := fmt.Fprintf(w, "%s<nfdStatus xmlns=\"%s\">", xml.Header, XMLNamespace); e != nil {
		return e
	}
	for _, section := range r.Sections {
		if e := section.FormatXML(w); e != nil {
			return e
		}
	}
	_, e := io.WriteString(w, "</nfdStatus>\n")
	return e
}

func writeXML(w io.Writer, v any) error {
	enc := xml.NewEncoder(w)
	if e := enc.Encode(v); e != nil {
		return e
	}
	return enc.Flush()
}
