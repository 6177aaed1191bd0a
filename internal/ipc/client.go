package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/parentwm/internal/runtimepath"
)

const defaultClientTimeout = 5 * time.Second

// Client talks to a running daemon. Each call uses its own connection.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient returns a client for the default socket path.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Dialing an empty path fails with a connection error later.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt returns a client for an explicit socket path.
func NewClientAt(socketPath string) *Client {
	return &Client{socketPath: socketPath, timeout: defaultClientTimeout}
}

// call sends cmd and decodes the response data into out, if out is non-nil.
// ERROR responses come back as *DaemonError.
func (c *Client) call(cmd CommandType, out any) error {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Encode terminates the request with a newline.
	if err := json.NewEncoder(conn).Encode(Request{Command: cmd}); err != nil {
		return fmt.Errorf("failed to send %s: %w", cmd, err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return fmt.Errorf("failed to read %s response: %w", cmd, err)
	}
	if resp.Status != StatusOK {
		return &DaemonError{Command: cmd, Message: resp.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s data: %w", cmd, err)
	}
	return nil
}

// Reload asks the daemon to re-read its configuration.
func (c *Client) Reload() error {
	return c.call(CommandReload, nil)
}

// GetStatus fetches the daemon status.
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListWindows returns the managed windows in adoption order.
func (c *Client) ListWindows() ([]WindowInfo, error) {
	var data WindowsData
	if err := c.call(CommandListWindows, &data); err != nil {
		return nil, err
	}
	return data.Windows, nil
}

// Ping checks that the daemon answers.
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
