// Package gqlclient provides a GraphQL client.
package gqlclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"reflect"
	"sync"

	gqlws "github.com/korylprince/go-graphql-ws"
	"github.com/machinebox/graphql"
)

// ErrClosed indicates the client has been closed.
var ErrClosed = errors.New("gqlclient closed")

func parseResultData(j json.RawMessage, key string, ptr any) error {
	if ptr == nil {
		return nil
	}
	if key == "" {
		return json.Unmarshal([]byte(j), ptr)
	}

	m := make(map[string]json.RawMessage)
	if e := json.Unmarshal([]byte(j), &m); e != nil {
		return e
	}
	value, ok := m[key]
	if !ok {
		return fmt.Errorf("result.data.%s missing", key)
	}
	return json.Unmarshal([]byte(value), ptr)
}

// Config contains Client configuration.
type Config struct {
	// HTTPUri is HTTP URI for query and mutation operations.
	HTTPUri string

	HTTPClient *http.Client

	// WebSocketUri is WebSocket URI for subscription operations.
	// Default is appending '/subscriptions' to HTTPUri.
	WebSocketUri string

	WebSocketDialer *gqlws.Dialer
}

// ApplyDefaults applies defaults.
func (cfg *Config) ApplyDefaults() error {
	u, e := url.Parse(cfg.HTTPUri)
	if e != nil {
		return fmt.Errorf("HTTPUri: %w", e)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("HTTPUri: unsupported scheme %q", u.Scheme)
	}
	cfg.HTTPUri = u.String()

	if cfg.WebSocketUri == "" {
		switch u.Scheme {
		case "http":
			u.Scheme = "ws"
		case "https":
			u.Scheme = "wss"
		}
		u.Path = path.Join(u.Path, "subscriptions")
		cfg.WebSocketUri = u.String()
	} else {
		u, e = url.Parse(cfg.WebSocketUri)
		if e != nil {
			return fmt.Errorf("WebSocketUri: %w", e)
		}
		cfg.WebSocketUri = u.String()
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	if cfg.WebSocketDialer == nil {
		dialer := *gqlws.DefaultDialer
		dialer.Subprotocols = []string{"graphql-ws"}
		cfg.WebSocketDialer = &dialer
	}

	return nil
}

// Client is a GraphQL client.
type Client struct {
	cfg        Config
	wg         sync.WaitGroup
	httpClient *graphql.Client

	wsConnMutex sync.Mutex
	wsConn      *gqlws.Conn
	wsConnErr   error
	wsClosed    chan struct{}

	closeOnce sync.Once
	closing   chan struct{}
}

// Config returns effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Close cancels subscriptions, then blocks until all pending operations have concluded.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.closing) })

	c.wsConnMutex.Lock()
	if c.wsConn != nil {
		c.wsConn.Close()
	}
	if c.wsConnErr == nil {
		c.wsConnErr = ErrClosed
	}
	c.wsConnMutex.Unlock()

	c.wg.Wait()
	return nil
}

// Do executes a query or mutation on the GraphQL server.
//  ctx: a Context for canceling the operation.
//  query: a GraphQL document.
//  vars: query variables.
//  key: if non-empty, unmarshal result.data[key] instead of result.data.
//  res: pointer to result struct, or nil to discard result.
func (c *Client) Do(ctx context.Context, query string, vars map[string]any, key string, res any) error {
	c.wg.Add(1)
	defer c.wg.Done()

	request := graphql.NewRequest(query)
	for key, value := range vars {
		request.Var(key, value)
	}

	var response json.RawMessage
	if e := c.httpClient.Run(ctx, request, &response); e != nil {
		return e
	}
	return parseResultData(response, key, res)
}

// Connect establishes the WebSocket connection used by subscriptions.
// It is invoked implicitly by Subscribe; calling it early surfaces connection errors synchronously.
func (c *Client) Connect() error {
	_, e := c.wsConnect()
	return e
}

// Subscribe executes a subscription on the GraphQL server.
//  ctx: a Context for canceling the subscription.
//  query: a GraphQL document.
//  vars: query variables.
//  key: if non-empty, unmarshal result.data[key] instead of result.data.
//  res: channel for sending updates; it is closed when Subscribe returns.
// Returns nil if the subscription is canceled via ctx or completed by the server.
func (c *Client) Subscribe(ctx context.Context, query string, vars map[string]any, key string, res any) error {
	c.wg.Add(1)
	defer c.wg.Done()

	resR := reflect.ValueOf(res)
	valueTyp := resR.Type().Elem()

	// callbacks may still run after Unsubscribe; the channel is closed only when no send is in progress
	var sendMutex sync.Mutex
	sendDone, isDone := make(chan struct{}), false
	defer func() {
		close(sendDone)
		sendMutex.Lock()
		isDone = true
		sendMutex.Unlock()
		resR.Close()
	}()

	conn, e := c.wsConnect()
	if e != nil {
		return e
	}

	fail := make(chan error, 1)
	setFail := func(e error) {
		select {
		case fail <- e:
		default:
		}
	}

	id, e := conn.Subscribe(&gqlws.MessagePayloadStart{
		Query:     query,
		Variables: vars,
	}, func(message *gqlws.Message) {
		switch message.Type {
		case gqlws.MessageTypeError:
			setFail(gqlws.ParseError(message.Payload))

		case gqlws.MessageTypeComplete:
			setFail(nil)

		case gqlws.MessageTypeData:
			var payload gqlws.MessagePayloadData
			if e := json.Unmarshal([]byte(message.Payload), &payload); e != nil {
				setFail(e)
				return
			}

			if len(payload.Errors) > 0 {
				setFail(payload.Errors)
				return
			}

			value := reflect.New(valueTyp)
			if e := parseResultData(payload.Data, key, value.Interface()); e != nil {
				setFail(e)
				return
			}

			sendMutex.Lock()
			defer sendMutex.Unlock()
			if isDone {
				return
			}
			reflect.Select([]reflect.SelectCase{
				{Dir: reflect.SelectSend, Chan: resR, Send: value.Elem()},
				{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(sendDone)},
			})
		}
	})
	if e != nil {
		return e
	}
	defer conn.Unsubscribe(id)

	select {
	case <-ctx.Done():
		return nil
	case <-c.closing:
		return ErrClosed
	case <-c.wsClosed:
		return io.ErrUnexpectedEOF
	case e := <-fail:
		return e
	}
}

func (c *Client) wsConnect() (conn *gqlws.Conn, e error) {
	c.wsConnMutex.Lock()
	defer c.wsConnMutex.Unlock()

	if c.wsConn == nil && c.wsConnErr == nil {
		c.wsConn, _, c.wsConnErr = c.cfg.WebSocketDialer.Dial(c.cfg.WebSocketUri, nil, &gqlws.MessagePayloadConnectionInit{})
		if c.wsConnErr == nil {
			c.wsConn.SetCloseHandler(func(int, string) {
				close(c.wsClosed)
			})
		}
	}
	return c.wsConn, c.wsConnErr
}

// New creates a Client.
func New(cfg Config) (*Client, error) {
	if e := cfg.ApplyDefaults(); e != nil {
		return nil, e
	}

	c := &Client{
		cfg:        cfg,
		httpClient: graphql.NewClient(cfg.HTTPUri, graphql.WithHTTPClient(cfg.HTTPClient)),
		wsClosed:   make(chan struct{}),
		closing:    make(chan struct{}),
	}
	return c, nil
}
