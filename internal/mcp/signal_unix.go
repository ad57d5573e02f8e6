//go:build !windows

package mcp

import (
	"os"
	"os/signal"
	"syscall"
)

// notifySignals wires ch to the signals that should end a stdio session.
// Unix hosts deliver SIGTERM on service shutdown in addition to Ctrl+C.
func notifySignals(ch chan<- os.Signal) {
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
}
