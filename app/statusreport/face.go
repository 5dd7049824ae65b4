package statusreport

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"sort"

	"github.com/usnistgov/ndn-autoreg/ndn/mgmt"
)

// FaceSection lists faces.
type FaceSection struct {
	Faces []mgmt.FaceStatus
}

var _ Section = (*FaceSection)(nil)

// Name returns "Faces".
func (*FaceSection) Name() string {
	return "Faces"
}

// FetchStatus retrieves the face dataset.
func (s *FaceSection) FetchStatus(ctx context.Context, client mgmt.Client) (e error) {
	faces, e := client.ListFaces(ctx)
	if e != nil {
		return e
	}
	sort.Slice(faces, func(i, j int) bool { return faces[i].ID < faces[j].ID })
	s.Faces = faces
	return nil
}

// FormatText writes one line per face.
func (s *FaceSection) FormatText(w io.Writer) error {
	if _, e := fmt.Fprintf(w, "%s:\n", s.Name()); e != nil {
		return e
	}
	for _, face := range s.Faces {
		if _, e := fmt.Fprintf(w, "  faceid=%d remote=%s local=%s flags={%s %s %s}\n",
			face.ID, face.RemoteURI, face.LocalURI, face.Scope, face.Persistency, face.LinkType); e != nil {
			return e
		}
	}
	return nil
}

type faceXML struct {
	FaceID      uint64 `xml:"faceId"`
	RemoteURI   string `xml:"remoteUri"`
	LocalURI    string `xml:"localUri"`
	Scope       string `xml:"faceScope"`
	Persistency string `xml:"facePersistency"`
	LinkType    string `xml:"linkType"`
}

// FormatXML writes a <faces> element.
func (s *FaceSection) FormatXML(w io.Writer) error {
	var doc struct {
		XMLName xml.Name  `xml:"faces"`
		Faces   []faceXML `xml:"face"`
	}
	for _, face := range s.Faces {
		doc.Faces = append(doc.Faces, faceXML{
			FaceID:      face.ID,
			RemoteURI:   face.RemoteURI,
			LocalURI:    face.LocalURI,
			Scope:       face.Scope.String(),
			Persistency: face.Persistency.String(),
			LinkType:    face.LinkType.String(),
		})
	}
	return writeXML(w, doc)
}
