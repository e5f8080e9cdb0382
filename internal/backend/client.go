package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pshkrh/window-controls/internal/types"
)

const (
	DefaultSocketPath = "/tmp/window-controls.sock"
	DefaultTimeout    = 30 * time.Second
)

// Client talks to the native window server over its unix socket and
// implements Backend.
type Client struct {
	conn *Connection
}

var _ Backend = (*Client)(nil)

// NewClient creates a new window server client
func NewClient(socketPath string, timeout time.Duration) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		conn: NewConnection(socketPath, timeout),
	}
}

// Connect establishes connection to the server
func (c *Client) Connect() error {
	return c.conn.Connect()
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// request is a helper to send a request and get the response
func (c *Client) request(ctx context.Context, method string, params map[string]interface{}) (map[string]interface{}, error) {
	if !c.conn.IsConnected() {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	req := NewRequest(uuid.New().String(), method, params)
	resp, err := c.conn.SendRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("server error: %s", resp.GetError())
	}

	return resp.Result, nil
}

// Ping sends a ping request to test connectivity
func (c *Client) Ping(ctx context.Context) (map[string]interface{}, error) {
	return c.request(ctx, "ping", nil)
}

// Screens retrieves all attached displays
func (c *Client) Screens(ctx context.Context) ([]types.Display, error) {
	result, err := c.request(ctx, "getScreens", nil)
	if err != nil {
		return nil, fmt.Errorf("getScreens failed: %w", err)
	}
	return ParseDisplays(result["screens"]), nil
}

// Windows retrieves all windows the server currently reports
func (c *Client) Windows(ctx context.Context) ([]types.Window, error) {
	result, err := c.request(ctx, "getWindows", nil)
	if err != nil {
		return nil, fmt.Errorf("getWindows failed: %w", err)
	}
	return ParseWindows(result["windows"]), nil
}

// SetWindowBounds moves a window onto a screen with the given bounds
func (c *Client) SetWindowBounds(ctx context.Context, win types.Window, screenID string, bounds types.Rect) error {
	_, err := c.request(ctx, "setWindowBounds", map[string]interface{}{
		"windowId": win.ID,
		"title":    win.Title,
		"screenId": screenID,
		"bounds": map[string]interface{}{
			"x":      bounds.X,
			"y":      bounds.Y,
			"width":  bounds.Width,
			"height": bounds.Height,
		},
	})
	if err != nil {
		return fmt.Errorf("setWindowBounds failed: %w", err)
	}
	return nil
}
