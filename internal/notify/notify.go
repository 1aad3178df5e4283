// Package notify is the user-facing notification seam — the CLI equivalent
// of the toast popups in the browser client. Stores report operation
// outcomes here; how (or whether) they are shown is the implementation's
// business.
package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Notifier receives operation outcomes. Implementations must be safe for
// concurrent use: independent store operations may complete at any time.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Writer prints notifications to w, one per line.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "ok: %s\n", message)
}

func (n *Writer) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "error: %s\n", message)
}

// Nop discards all notifications.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}

// FormatErrors renders a list of messages the way the UI joined multiple
// server validation errors into one toast.
func FormatErrors(messages []string) string {
	if len(messages) == 0 {
		return "An unknown error occurred."
	}
	return strings.Join(messages, ", ")
}
