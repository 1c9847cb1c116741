// Package shared provides utilities shared by the playground and its panes.
package shared

import (
	"os"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
)

// Clipboard copies and pastes plain text.
type Clipboard interface {
	Copy(text string) error
	Paste() (string, error)
}

// SystemClipboard uses the platform clipboard. Over SSH or inside a
// multiplexer copies go through an OSC 52 escape sequence instead, and
// pastes come from the last copied text.
type SystemClipboard struct {
	mu   sync.Mutex
	last string
}

// Copy copies text to the clipboard.
func (c *SystemClipboard) Copy(text string) error {
	c.mu.Lock()
	c.last = text
	c.mu.Unlock()
	if shouldUseOSC52() {
		termenv.DefaultOutput().Copy(text)
		return nil
	}
	return clipboard.WriteAll(text)
}

// Paste reads the clipboard.
func (c *SystemClipboard) Paste() (string, error) {
	if shouldUseOSC52() || clipboard.Unsupported {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.last, nil
	}
	return clipboard.ReadAll()
}

// MemoryClipboard keeps the clipboard in memory.
type MemoryClipboard struct {
	Text string
}

// Copy stores text.
func (c *MemoryClipboard) Copy(text string) error {
	c.Text = text
	return nil
}

// Paste returns the stored text.
func (c *MemoryClipboard) Paste() (string, error) {
	return c.Text, nil
}

// shouldUseOSC52 reports a remote or multiplexed terminal, where the local
// clipboard tools cannot reach the user's clipboard.
func shouldUseOSC52() bool {
	for _, env := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION", "TMUX", "STY"} {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}
