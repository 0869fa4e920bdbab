package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames cycle on stderr while a long layout runs.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a one-line status message on stderr until stopped or its
// context is cancelled. Stderr keeps piped layout JSON on stdout clean.
type spinner struct {
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	stop    chan struct{}
	idle    chan struct{}
	once    sync.Once

	mu        sync.Mutex
	cancelled bool
}

// newSpinner creates a spinner bound to ctx. Cancelling ctx stops the
// animation without waiting for Stop.
func newSpinner(ctx context.Context, message string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &spinner{
		message: message,
		ctx:     sctx,
		cancel:  cancel,
		stop:    make(chan struct{}),
		idle:    make(chan struct{}),
	}
}

// Start begins the animation. Call Stop to clear the status line.
func (s *spinner) Start() {
	go func() {
		defer close(s.idle)
		tick := time.NewTicker(80 * time.Millisecond)
		defer tick.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				s.mu.Lock()
				s.cancelled = true
				s.mu.Unlock()
				s.clearLine()
				return
			case <-s.stop:
				return
			case <-tick.C:
				glyph := spinnerFrames[frame%len(spinnerFrames)]
				s.mu.Lock()
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and clears the status line. Safe to call more
// than once.
func (s *spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.idle
	s.cancel()
	s.clearLine()
}

// Cancelled reports whether the surrounding context, not Stop, ended the
// animation.
func (s *spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

func (s *spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
