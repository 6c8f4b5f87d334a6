package client

import "github.com/atotto/clipboard"

// Clipboard receives copied field text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Unsupported reports whether no clipboard utility was found on this system.
func (SystemClipboard) Unsupported() bool {
	return clipboard.Unsupported
}

// Notifier receives the transient success and error messages a front end
// shows after each action.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
