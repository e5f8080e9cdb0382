package backend

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pshkrh/window-controls/internal/types"
)

// startServer runs a window server stand-in on a unix socket, answering each
// request line through handle. Returns the socket path.
func startServer(t *testing.T, handle func(req *Request) *Response) string {
	t.Helper()

	sock := filepath.Join(t.TempDir(), "server.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					var env MessageEnvelope
					if json.Unmarshal(scanner.Bytes(), &env) != nil || env.Request == nil {
						continue
					}
					resp := handle(env.Request)
					out, err := json.Marshal(&MessageEnvelope{Type: "response", Response: resp})
					if err != nil {
						continue
					}
					if _, err := conn.Write(append(out, '\n')); err != nil {
						return
					}
				}
			}(conn)
		}
	}()

	return sock
}

func TestClientConcurrentRequests(t *testing.T) {
	sock := startServer(t, func(req *Request) *Response {
		if title, _ := req.Params["title"].(string); title == "Reject Me" {
			return &Response{ID: req.ID, Error: &ErrorInfo{Code: 1, Message: "refused"}}
		}
		return &Response{ID: req.ID, Result: map[string]interface{}{}}
	})

	c := NewClient(sock, time.Second)
	defer c.Close()

	ctx := context.Background()
	bounds := types.Rect{X: 0, Y: 0, Width: 800, Height: 600}
	accept := types.Window{ID: "a", Title: "Accept Me"}
	reject := types.Window{ID: "b", Title: "Reject Me"}

	// Concurrent callers over one client: each must get its own response,
	// never a sibling's.
	const rounds = 20
	acceptErrs := make([]error, rounds)
	rejectErrs := make([]error, rounds)

	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			acceptErrs[i] = c.SetWindowBounds(ctx, accept, "1", bounds)
		}(i)
		go func(i int) {
			defer wg.Done()
			rejectErrs[i] = c.SetWindowBounds(ctx, reject, "1", bounds)
		}(i)
	}
	wg.Wait()

	for i := 0; i < rounds; i++ {
		if acceptErrs[i] != nil {
			t.Errorf("accept call %d failed: %v", i, acceptErrs[i])
		}
		if rejectErrs[i] == nil {
			t.Errorf("reject call %d succeeded, want refusal", i)
		} else if !strings.Contains(rejectErrs[i].Error(), "refused") {
			t.Errorf("reject call %d got wrong error: %v", i, rejectErrs[i])
		}
	}
}

func TestClientResponseIDMismatch(t *testing.T) {
	sock := startServer(t, func(req *Request) *Response {
		return &Response{ID: "bogus", Result: map[string]interface{}{}}
	})

	c := NewClient(sock, time.Second)
	defer c.Close()

	_, err := c.Ping(context.Background())
	if err == nil {
		t.Fatal("expected error for mismatched response id")
	}
	if !strings.Contains(err.Error(), "does not match request id") {
		t.Errorf("got error %v, want id-mismatch", err)
	}
}

func TestClientScreensRoundTrip(t *testing.T) {
	sock := startServer(t, func(req *Request) *Response {
		if req.Method != "getScreens" {
			return &Response{ID: req.ID, Error: &ErrorInfo{Code: 2, Message: "unexpected method"}}
		}
		return &Response{ID: req.ID, Result: map[string]interface{}{
			"screens": []interface{}{
				map[string]interface{}{
					"id":         "1",
					"isPrimary":  true,
					"deviceName": "Built-in Retina Display",
					"bounds":     map[string]interface{}{"x": 0, "y": 0, "width": 1470, "height": 956},
				},
			},
		}}
	})

	c := NewClient(sock, time.Second)
	defer c.Close()

	displays, err := c.Screens(context.Background())
	if err != nil {
		t.Fatalf("Screens: %v", err)
	}
	if len(displays) != 1 || displays[0].ID != "1" || !displays[0].IsPrimary {
		t.Errorf("displays = %+v, want one built-in display", displays)
	}
}
