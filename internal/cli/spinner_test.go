package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerShowsProgress(t *testing.T) {
	var out lockedBuffer
	s := newSpinner("Exporting GIF...")
	s.out = &out
	s.SetProgress(42)
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	if got := out.String(); !strings.Contains(got, "Exporting GIF...  42%") {
		t.Errorf("spinner output %q should contain the message and percentage", got)
	}
}

func TestSpinnerLine(t *testing.T) {
	s := newSpinner("Encoding")
	if got := s.line(); got != "Encoding" {
		t.Errorf("line() = %q before progress", got)
	}
	tests := []struct {
		in   float64
		want string
	}{
		{7.4, "Encoding   7%"},
		{100, "Encoding 100%"},
		{140, "Encoding 100%"},
		{-3, "Encoding   0%"},
	}
	for _, tt := range tests {
		s.SetProgress(tt.in)
		if got := s.line(); got != tt.want {
			t.Errorf("SetProgress(%v): line() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Waiting...")
	s.out = &lockedBuffer{}
	s.Start()
	<-ctx.Done()
	s.Stop()

	if !s.Cancelled() {
		t.Error("spinner should report cancellation after its context ends")
	}
}

func TestSpinnerStop(t *testing.T) {
	t.Run("repeated", func(t *testing.T) {
		s := newSpinner("Stopping")
		s.out = &lockedBuffer{}
		s.Start()
		s.Stop()
		s.Stop()
	})

	t.Run("never started", func(t *testing.T) {
		s := newSpinner("Idle")
		s.out = &lockedBuffer{}
		done := make(chan struct{})
		go func() {
			s.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Stop before Start should return")
		}
		s.Start()
		s.Stop()
	})
}
