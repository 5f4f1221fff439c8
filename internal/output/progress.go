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

// writerIsTTY reports whether w is a file attached to a terminal.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

// ProgressBar tracks a fixed number of steps, such as items in a deletion
// batch. On a terminal it redraws in place; elsewhere it writes one line
// when finished.
//
//	[████████████░░░░░░░░░░░░]  50% Deleting
type ProgressBar struct {
	mu          sync.Mutex
	total       int
	current     int
	description string
	width       int
	writer      io.Writer
	tty         bool
	finished    bool
}

func NewProgress(total int, description string) *ProgressBar {
	return &ProgressBar{
		total:       total,
		description: description,
		width:       24,
		writer:      os.Stdout,
		tty:         writerIsTTY(os.Stdout),
	}
}

// SetWriter redirects output, e.g. to a buffer in tests.
func (p *ProgressBar) SetWriter(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = w
	p.tty = writerIsTTY(w)
}

// Increment advances the bar by one step.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < p.total {
		p.current++
	}
	if p.tty {
		fmt.Fprint(p.writer, "\r"+p.line())
	}
}

// Finish fills the bar and ends the line. Further calls do nothing.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return
	}
	p.finished = true
	p.current = p.total

	if p.tty {
		fmt.Fprint(p.writer, "\r")
	}
	fmt.Fprintln(p.writer, p.line())
}

// line must be called with the lock held.
func (p *ProgressBar) line() string {
	percent := 100
	if p.total > 0 {
		percent = p.current * 100 / p.total
	}
	return fmt.Sprintf("%s %3d%% %s",
		BarChart(int64(p.current), int64(p.total), p.width), percent, p.description)
}

// Spinner shows that a long operation, like a deep scan, is still running.
// On a non-terminal writer it prints its message once instead of animating.
type Spinner struct {
	mu      sync.Mutex
	message string
	frames  []string
	writer  io.Writer
	running bool
	done    chan struct{}
	width   int // widest line drawn, for clearing
}

func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		frames:  []string{"|", "/", "-", "\\"},
		writer:  os.Stdout,
	}
}

// SetWriter redirects output. Call before Start.
func (s *Spinner) SetWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer = w
}

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

	s.done = make(chan struct{})
	go s.animate(s.done)
}

func (s *Spinner) animate(done <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.running {
				s.mu.Unlock()
				return
			}
			line := s.frames[i%len(s.frames)] + "  " + s.message
			if n := len([]rune(line)); n > s.width {
				s.width = n
			}
			fmt.Fprint(s.writer, "\r"+padRight(line, s.width))
			s.mu.Unlock()
		}
	}
}

// UpdateMessage replaces the message shown next to the spinner.
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false

	if s.done != nil {
		close(s.done)
		s.done = nil
		fmt.Fprintf(s.writer, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// StopWithMessage stops the spinner and prints a final line.
func (s *Spinner) StopWithMessage(message string) {
	s.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.writer, message)
}
