// Package wsconn provides a WebSocket client with automatic reconnection.
package wsconn

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// State represents the connection state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
)

// ErrClosed is returned after Close has been called.
var ErrClosed = errors.New("wsconn: client closed")

// Config holds WebSocket client configuration.
type Config struct {
	URL            string
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxReconnects  int // 0 = infinite
	PingInterval   time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(url string) Config {
	return Config{
		URL:            url,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		MaxReconnects:  0, // infinite
		PingInterval:   30 * time.Second,
	}
}

// Client is a reconnecting WebSocket client. Received messages are delivered
// on the Messages channel; the read loop reconnects with exponential backoff
// until Close is called or the context is cancelled.
type Client struct {
	config   Config
	messages chan []byte
	done     chan struct{}

	mu        sync.RWMutex
	state     State
	conn      *websocket.Conn
	closeOnce sync.Once
}

// New creates a new WebSocket client.
func New(config Config) *Client {
	return &Client{
		config:   config,
		state:    StateDisconnected,
		messages: make(chan []byte, 100),
		done:     make(chan struct{}),
	}
}

// Connect establishes the WebSocket connection and starts the read and ping
// loops. It returns once the first connection attempt succeeds or fails.
func (c *Client) Connect(ctx context.Context) error {
	c.setState(StateConnecting)

	conn, err := c.dial(ctx)
	if err != nil {
		c.setState(StateDisconnected)
		return err
	}
	c.setConn(conn)
	c.setState(StateConnected)

	go c.readLoop(ctx)
	go c.pingLoop(ctx)
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.Dial(ctx, c.config.URL, nil)
	if err != nil {
		return nil, err
	}
	// Ticker streams can exceed the 32KiB default.
	conn.SetReadLimit(1 << 20)
	return conn, nil
}

// Send sends a text message through the WebSocket.
func (c *Client) Send(ctx context.Context, msg []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return errors.New("wsconn: not connected")
	}
	return conn.Write(ctx, websocket.MessageText, msg)
}

// Messages returns the channel for receiving messages. It is closed when the
// client stops for good.
func (c *Client) Messages() <-chan []byte {
	return c.messages
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Close gracefully closes the WebSocket connection.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})

	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		return conn.Close(websocket.StatusNormalClosure, "shutdown")
	}
	return nil
}

func (c *Client) readLoop(ctx context.Context) {
	defer close(c.messages)

	reconnects := 0
	for {
		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		if conn != nil {
			if err := c.pump(ctx, conn); err == nil {
				// pump only returns on failure or shutdown
				return
			}
		}

		select {
		case <-c.done:
			return
		case <-ctx.Done():
			return
		default:
		}

		reconnects++
		if c.config.MaxReconnects > 0 && reconnects > c.config.MaxReconnects {
			c.setState(StateDisconnected)
			return
		}
		c.setState(StateReconnecting)

		if !c.sleep(ctx, c.backoff(reconnects)) {
			return
		}

		conn, err := c.dial(ctx)
		if err != nil {
			continue
		}
		c.setConn(conn)
		c.setState(StateConnected)
		reconnects = 0
	}
}

// pump reads messages until the connection fails. A nil return means the
// client is shutting down.
func (c *Client) pump(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			select {
			case <-c.done:
				return nil
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}

		select {
		case c.messages <- data:
		case <-c.done:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func (c *Client) pingLoop(ctx context.Context) {
	if c.config.PingInterval <= 0 {
		return
	}
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.RLock()
			conn := c.conn
			c.mu.RUnlock()
			if conn != nil {
				pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
				_ = conn.Ping(pingCtx)
				cancel()
			}
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.config.InitialBackoff
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= c.config.MaxBackoff {
			return c.config.MaxBackoff
		}
	}
	if d > c.config.MaxBackoff {
		d = c.config.MaxBackoff
	}
	return d
}

func (c *Client) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-c.done:
		return false
	case <-ctx.Done():
		return false
	}
}

func (c *Client) setState(state State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}
