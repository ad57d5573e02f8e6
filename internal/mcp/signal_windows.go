//go:build windows

package mcp

import (
	"os"
	"os/signal"
)

// notifySignals wires ch to the signals that should end a stdio session.
// Windows has no SIGTERM, so Ctrl+C is the only trigger.
func notifySignals(ch chan<- os.Signal) {
	signal.Notify(ch, os.Interrupt)
}
