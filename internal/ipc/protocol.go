// Package ipc is the daemon's control socket: one JSON request per line in,
// one JSON response per line out.
package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType names a request.
type CommandType string

const (
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandListWindows CommandType = "LIST_WINDOWS"
)

// Response status values.
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

type Request struct {
	Command CommandType `json:"command"`
}

type Response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData is the GET_STATUS payload.
type StatusData struct {
	DaemonRunning  bool   `json:"daemon_running"`
	Root           uint32 `json:"root"`
	ManagedCount   int    `json:"managed_count"`
	FloatingCount  int    `json:"floating_count"`
	EventsHandled  uint64 `json:"events_handled"`
	WindowsAdopted uint64 `json:"windows_adopted"`
	WindowsIgnored uint64 `json:"windows_ignored"`
	StepErrors     uint64 `json:"step_errors"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
}

// WindowInfo describes one managed window.
type WindowInfo struct {
	ID       uint32 `json:"id"`
	Floating bool   `json:"floating"`
}

// WindowsData is the LIST_WINDOWS payload, in adoption order.
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// okResponse wraps data, which may be nil, in an OK response.
func okResponse(data any) *Response {
	resp := &Response{Status: StatusOK}
	if data == nil {
		return resp
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return errorResponse("failed to encode response: %v", err)
	}
	resp.Data = raw
	return resp
}

func errorResponse(format string, args ...any) *Response {
	return &Response{Status: StatusError, Error: fmt.Sprintf(format, args...)}
}

// DaemonError is an ERROR response returned by the daemon.
type DaemonError struct {
	Command CommandType
	Message string
}

func (e *DaemonError) Error() string {
	return fmt.Sprintf("daemon error (%s): %s", e.Command, e.Message)
}
