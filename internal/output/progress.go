package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// writerIsTTY reports whether w is backed by a terminal. Plain writers
// such as *bytes.Buffer are never terminals.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

// ProgressBar tracks progress across a fixed number of steps.
// Example: [=========>          ]  45% checking applications
//
// On a TTY the bar redraws in place; on anything else it prints a single
// line at completion so logs stay readable.
type ProgressBar struct {
	mu      sync.Mutex
	total   int
	current int
	label   string
	width   int
	writer  io.Writer
	done    bool
}

// NewProgress creates a progress bar over total steps.
func NewProgress(total int, label string) *ProgressBar {
	return &ProgressBar{
		total:  total,
		label:  label,
		width:  40,
		writer: os.Stdout,
	}
}

// SetWriter redirects output, which tests use to capture it.
func (p *ProgressBar) SetWriter(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = w
}

// Step advances the bar by one and redraws.
func (p *ProgressBar) Step() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current < p.total {
		p.current++
	}
	if writerIsTTY(p.writer) {
		p.draw()
	}
}

// Finish forces the bar to completion and terminates the output line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return
	}
	p.done = true
	p.current = p.total

	if writerIsTTY(p.writer) {
		p.draw()
		fmt.Fprintln(p.writer)
		return
	}
	// Single summary line for non-interactive output.
	fmt.Fprintf(p.writer, "%s: %d/%d\n", p.label, p.current, p.total)
}

// draw renders the bar in place. Caller holds the lock.
func (p *ProgressBar) draw() {
	percent, filled := 100, p.width
	if p.total > 0 {
		percent = p.current * 100 / p.total
		filled = p.current * p.width / p.total
	}

	var bar strings.Builder
	bar.WriteByte('[')
	for i := 0; i < p.width; i++ {
		switch {
		case i < filled-1:
			bar.WriteByte('=')
		case i == filled-1:
			bar.WriteByte('>')
		default:
			bar.WriteByte(' ')
		}
	}
	bar.WriteByte(']')

	fmt.Fprintf(p.writer, "\r%s %3d%% %s", bar.String(), percent, p.label)
}

// Spinner shows an animated indicator for operations without a known
// duration, such as a pip install.
type Spinner struct {
	mu      sync.Mutex
	message string
	writer  io.Writer
	running bool
	stop    chan struct{}
	stopped sync.WaitGroup
}

// NewSpinner creates a spinner with the given message. Call Start to
// begin animating.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		writer:  os.Stdout,
	}
}

// SetWriter redirects output, which tests use to capture it.
func (s *Spinner) SetWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer = w
}

// Start begins the animation. On a non-TTY writer the message prints
// once and no goroutine runs.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	if !writerIsTTY(s.writer) {
		fmt.Fprintf(s.writer, "%s...\n", s.message)
		return
	}

	s.stop = make(chan struct{})
	s.stopped.Add(1)
	go s.spin()
}

func (s *Spinner) spin() {
	defer s.stopped.Done()
	frames := []byte{'|', '/', '-', '\\'}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprintf(s.writer, "\r%c  %s", frames[i%len(frames)], s.message)
			s.mu.Unlock()
		}
	}
}

// UpdateMessage replaces the message while the spinner runs.
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop := s.stop
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		s.stopped.Wait()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if writerIsTTY(s.writer) {
		fmt.Fprintf(s.writer, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	}
}

// StopWithMessage stops the spinner and prints a final line.
func (s *Spinner) StopWithMessage(message string) {
	s.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.writer, message)
}
