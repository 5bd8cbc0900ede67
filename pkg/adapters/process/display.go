// Package process pushes chunks to an external program, for displays driven
// by a script or vendor tool rather than by this process.
package process

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"time"
)

const (
	// DefaultTimeout bounds a single command run.
	DefaultTimeout = 5 * time.Second

	// DefaultRetryDelay is how long a chunk that failed to display waits
	// before the same chunk is run again.
	DefaultRetryDelay = 30 * time.Second
)

// Environment variables handed to the command.
const (
	EnvSlot = "MARQUEE_SLOT"
	EnvText = "MARQUEE_TEXT"
)

// Display implements ports.Display by running a command for every new chunk.
// The chunk is passed in the environment, never as arguments, so text cannot
// inject flags.
//
// Set only queues the text; a single worker runs the command. Each slot keeps
// the latest queued text, so a slow command skips stale chunks instead of
// holding up the poll loop.
type Display struct {
	command string
	args    []string
	dir     string
	timeout time.Duration
	retry   time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu     sync.Mutex
	queued map[string]string    // slot -> latest text not yet run
	order  []string             // slots with queued text, oldest first
	sent   map[string]string    // slot -> last text handed to the worker
	failed map[string]time.Time // slot -> when sent[slot] last failed

	wake      chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures the Display.
type Option func(*Display)

// WithTimeout bounds each run. Non-positive values keep DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Display) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithRetryDelay sets how long a failed chunk waits before it is run again.
// Zero retries on the next write. Negative values keep DefaultRetryDelay.
func WithRetryDelay(d time.Duration) Option {
	return func(p *Display) {
		if d >= 0 {
			p.retry = d
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) Option {
	return func(p *Display) {
		p.dir = dir
	}
}

// WithLogger sets the logger used to report failed runs.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Display) {
		p.logger = logger
	}
}

// New creates a Display running command with args and starts its worker.
// Call Close to stop the worker.
func New(command string, args []string, opts ...Option) *Display {
	p := &Display{
		command: command,
		args:    args,
		timeout: DefaultTimeout,
		retry:   DefaultRetryDelay,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		queued:  make(map[string]string),
		sent:    make(map[string]string),
		failed:  make(map[string]time.Time),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())

	go p.loop()
	return p
}

// Set queues text for slot and returns without waiting for the command.
// Text already sent to the slot is skipped, unless its run failed and the
// retry delay has passed.
func (p *Display) Set(slot, text string) {
	p.mu.Lock()
	if prev, ok := p.sent[slot]; ok && prev == text {
		at, failed := p.failed[slot]
		if !failed || p.now().Sub(at) < p.retry {
			p.mu.Unlock()
			return
		}
	}
	delete(p.failed, slot)
	p.sent[slot] = text
	if _, ok := p.queued[slot]; !ok {
		p.order = append(p.order, slot)
	}
	p.queued[slot] = text
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Close stops the worker, killing a command still running.
// Queued chunks are dropped.
func (p *Display) Close() error {
	p.closeOnce.Do(func() {
		p.cancel()
		<-p.done
	})
	return nil
}

func (p *Display) loop() {
	defer close(p.done)
	for {
		select {
		case <-p.ctx.Done():
			return
		case <-p.wake:
		}
		for {
			slot, text, ok := p.next()
			if !ok || p.ctx.Err() != nil {
				break
			}
			p.deliver(slot, text)
		}
	}
}

func (p *Display) next() (string, string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.order) == 0 {
		return "", "", false
	}
	slot := p.order[0]
	p.order = p.order[1:]
	text := p.queued[slot]
	delete(p.queued, slot)
	return slot, text, true
}

func (p *Display) deliver(slot, text string) {
	ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()

	err := p.run(ctx, slot, text)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.logger.Error("Display command failed", "command", p.command, "slot", slot, "err", err)
		if p.sent[slot] == text {
			p.failed[slot] = p.now()
		}
		return
	}
	if p.sent[slot] == text {
		delete(p.failed, slot)
	}
}

func (p *Display) run(ctx context.Context, slot, text string) error {
	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Dir = p.dir
	cmd.WaitDelay = time.Second
	cmd.Env = append(cmd.Environ(),
		fmt.Sprintf("%s=%s", EnvSlot, slot),
		fmt.Sprintf("%s=%s", EnvText, text),
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("execution failed: %w. Stderr: %s", err, stderr.String())
	}
	return nil
}
