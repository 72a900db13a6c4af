// Package clipboard provides the clipboard-write capability used to copy
// generated output.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no system clipboard is available.
var ErrUnsupported = errors.New("clipboard: no system clipboard available")

// Writer writes text to a clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// NewSystem returns the system clipboard writer.
func NewSystem() *System {
	return &System{}
}

// WriteText copies text to the system clipboard.
func (System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// Memory is an in-process clipboard, used in tests and when no system
// clipboard exists.
type Memory struct {
	mu   sync.Mutex
	text string
	n    int
}

// WriteText stores text.
func (m *Memory) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.text = text
	m.n++
	m.mu.Unlock()
	return nil
}

// Text returns the last written text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes returns how many times WriteText succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n
}
