// Package notify delivers due-date reminders to the desktop.
package notify

import "github.com/gen2brain/beeep"

// Notifier sends a single fire-and-forget notification. Success or failure
// of the delivery call is the only observable signal.
type Notifier interface {
	Send(summary, body string) error
}

// Desktop delivers notifications through the host's native notification
// facility (notify-send/D-Bus on Linux, Notification Center on macOS,
// toast notifications on Windows).
type Desktop struct{}

// Send shows a desktop notification with the given summary and body.
func (Desktop) Send(summary, body string) error {
	return beeep.Notify(summary, body, "")
}
