package backend

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"
)

// Connection manages the Unix domain socket connection to the window server.
// The wire protocol is newline-delimited with no interleaving, so request/
// response exchanges are serialized: concurrent callers queue on the mutex
// rather than sharing the reader mid-response.
type Connection struct {
	socketPath string
	timeout    time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// NewConnection creates a new connection instance
func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{
		socketPath: socketPath,
		timeout:    timeout,
	}
}

// Connect establishes the Unix domain socket connection. Connecting an
// already-connected instance is a no-op.
func (c *Connection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}
	return c.connectLocked()
}

func (c *Connection) connectLocked() error {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to socket %s: %w", c.socketPath, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close closes the connection
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// SendRequest sends a request and waits for the matching response. One
// exchange runs at a time; the envelope ID is checked against the request so
// a stray line can never be attributed to the wrong caller.
func (c *Connection) SendRequest(ctx context.Context, req *MessageEnvelope) (*Response, error) {
	// Apply timeout if not already set
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		if err := c.connectLocked(); err != nil {
			return nil, err
		}
	}

	// Marshal and send request
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send with newline delimiter
	data = append(data, '\n')
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("failed to set write deadline: %w", err)
	}

	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write request: %w", err)
	}

	// Read response with context cancellation support. The goroutine works
	// on captured locals; when the exchange is abandoned the connection is
	// dropped so the stale read cannot touch the next exchange's state.
	conn := c.conn
	reader := c.reader
	reqID := ""
	if req.Request != nil {
		reqID = req.Request.ID
	}

	respChan := make(chan *Response, 1)
	errChan := make(chan error, 1)

	go func() {
		if err := conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			errChan <- fmt.Errorf("failed to set read deadline: %w", err)
			return
		}

		line, err := reader.ReadBytes('\n')
		if err != nil {
			errChan <- fmt.Errorf("failed to read response: %w", err)
			return
		}

		var envelope MessageEnvelope
		if err := json.Unmarshal(line, &envelope); err != nil {
			errChan <- fmt.Errorf("failed to unmarshal response: %w", err)
			return
		}

		if envelope.Type != "response" {
			errChan <- fmt.Errorf("expected response, got %s", envelope.Type)
			return
		}

		if envelope.Response == nil {
			errChan <- fmt.Errorf("response envelope has nil response")
			return
		}

		if reqID != "" && envelope.Response.ID != "" && envelope.Response.ID != reqID {
			errChan <- fmt.Errorf("response id %s does not match request id %s", envelope.Response.ID, reqID)
			return
		}

		respChan <- envelope.Response
	}()

	select {
	case <-ctx.Done():
		// The pending read would otherwise consume the next exchange's
		// response line; force a redial instead.
		conn.Close()
		c.conn = nil
		c.reader = nil
		return nil, fmt.Errorf("request cancelled or timed out: %w", ctx.Err())
	case err := <-errChan:
		// The stream is suspect after a failed exchange; force a redial.
		conn.Close()
		c.conn = nil
		c.reader = nil
		return nil, err
	case resp := <-respChan:
		return resp, nil
	}
}

// IsConnected returns true if the connection is established
func (c *Connection) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}
