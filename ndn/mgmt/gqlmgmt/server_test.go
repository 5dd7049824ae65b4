package gqlmgmt_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/usnistgov/ndn-autoreg/ndn/mgmt"
)

type gqlRequest struct {
	Query     string                     `json:"query"`
	Variables map[string]json.RawMessage `json:"variables"`
}

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type invocation struct {
	Verb       string
	Parameters json.RawMessage
}

// fakeServer implements the management GraphQL schema.
type fakeServer struct {
	*httptest.Server
	Faces    []mgmt.FaceStatus
	Events   chan mgmt.FaceEvent
	Complete chan struct{}

	mutex       sync.Mutex
	respond     func(inv invocation) (cr mgmt.ControlResponse, errMsg string)
	invocations []invocation
}

func (s *fakeServer) SetRespond(f func(inv invocation) (cr mgmt.ControlResponse, errMsg string)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.respond = f
}

func (s *fakeServer) Invocations() []invocation {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]invocation{}, s.invocations...)
}

func (s *fakeServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/subscriptions" {
		s.serveWebSocket(w, r)
		return
	}

	var req gqlRequest
	if e := json.NewDecoder(r.Body).Decode(&req); e != nil {
		http.Error(w, e.Error(), http.StatusBadRequest)
		return
	}

	var data any
	var errMsg string
	switch {
	case strings.Contains(req.Query, "faces {"):
		data = map[string]any{"faces": s.Faces}
	case strings.Contains(req.Query, "invokeCommand("):
		var inv invocation
		json.Unmarshal(req.Variables["verb"], &inv.Verb)
		inv.Parameters = req.Variables["parameters"]
		s.mutex.Lock()
		s.invocations = append(s.invocations, inv)
		respond := s.respond
		s.mutex.Unlock()
		var cr mgmt.ControlResponse
		cr, errMsg = respond(inv)
		data = map[string]any{"invokeCommand": cr}
	default:
		errMsg = "unknown operation"
	}

	w.Header().Set("Content-Type", "application/json")
	if errMsg != "" {
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []any{map[string]any{"message": errMsg}},
		})
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func (s *fakeServer) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{Subprotocols: []string{"graphql-ws"}}
	conn, e := upgrader.Upgrade(w, r, nil)
	if e != nil {
		return
	}
	defer conn.Close()

	var msg wsMessage
	if e := conn.ReadJSON(&msg); e != nil || msg.Type != "connection_init" {
		return
	}
	if e := conn.WriteJSON(wsMessage{Type: "connection_ack"}); e != nil {
		return
	}

	var id string
	for id == "" {
		if e := conn.ReadJSON(&msg); e != nil {
			return
		}
		if msg.Type == "start" {
			id = msg.ID
		}
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for {
			var msg wsMessage
			if e := conn.ReadJSON(&msg); e != nil || msg.Type == "stop" || msg.Type == "connection_terminate" {
				return
			}
		}
	}()

	for {
		select {
		case <-stopped:
			return
		case <-s.Complete:
			conn.WriteJSON(wsMessage{ID: id, Type: "complete"})
			<-stopped
			return
		case evt := <-s.Events:
			payload, _ := json.Marshal(map[string]any{
				"data": map[string]any{"faceEvents": evt},
			})
			if e := conn.WriteJSON(wsMessage{ID: id, Type: "data", Payload: payload}); e != nil {
				return
			}
		}
	}
}

func newFakeServer(t testing.TB, faces ...mgmt.FaceStatus) *fakeServer {
	s := &fakeServer{
		Faces: faces,
		respond: func(invocation) (mgmt.ControlResponse, string) {
			return mgmt.ControlResponse{StatusCode: 200, StatusText: "OK"}, ""
		},
		Events:   make(chan mgmt.FaceEvent, 16),
		Complete: make(chan struct{}),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(s.Close)
	return s
}
