package tree

import (
	"context"
	"sync"
)

// Loop is the single owner of all node state. Every operation that touches
// lazily-loaded children is marshaled onto the loop goroutine, which keeps
// materialization idempotent without per-node locking.
//
// The shape follows the service's other queue-driven components: a buffered
// channel of work, one consuming goroutine, cooperative shutdown.
type Loop struct {
	calls chan call
	quit  chan struct{}

	stop     context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

type call struct {
	fn   func()
	done chan struct{}
}

// NewLoop creates a dispatch loop; Start must be called before Call.
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Loop{
		calls: make(chan call, queueSize),
		quit:  make(chan struct{}),
	}
}

// Start launches the owner goroutine.
func (l *Loop) Start(ctx context.Context) {
	ctx, l.stop = context.WithCancel(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer close(l.quit)
		for {
			select {
			case <-ctx.Done():
				l.drain()
				return
			case c := <-l.calls:
				c.fn()
				close(c.done)
			}
		}
	}()
}

// Stop shuts the loop down and waits for it. Pending calls are released
// without running.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		if l.stop != nil {
			l.stop()
		}
		l.wg.Wait()
	})
}

// Call runs fn on the loop and returns once it finished. Call must not be
// invoked from the loop goroutine itself. After shutdown, Call returns
// without running fn.
func (l *Loop) Call(fn func()) {
	c := call{fn: fn, done: make(chan struct{})}
	select {
	case l.calls <- c:
	case <-l.quit:
		return
	}
	select {
	case <-c.done:
	case <-l.quit:
	}
}

// drain releases callers already queued at shutdown.
func (l *Loop) drain() {
	for {
		select {
		case c := <-l.calls:
			close(c.done)
		default:
			return
		}
	}
}
