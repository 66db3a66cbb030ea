package bridge

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// ErrFlushFromDispatcher is returned by Flush when it is called from a
// dispatched function, which would otherwise wait for itself.
var ErrFlushFromDispatcher = errors.New("bridge: flush called from a listener callback")

// Dispatcher runs submitted functions one at a time, in submission order,
// on its own goroutine. It gives listener callbacks a single execution
// context regardless of which thread the view posts messages from.
type Dispatcher struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}

	goroutine atomic.Uint64
}

// NewDispatcher starts a dispatcher goroutine.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go d.run()
	return d
}

// Submit enqueues fn. It returns false once the dispatcher is closed.
func (d *Dispatcher) Submit(fn func()) bool {
	if fn == nil {
		return true
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	d.queue = append(d.queue, fn)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
	return true
}

// Flush blocks until every function submitted before the call has run.
// It returns ErrFlushFromDispatcher when called from a dispatched function.
func (d *Dispatcher) Flush(ctx context.Context) error {
	if d.onDispatcher() {
		return ErrFlushFromDispatcher
	}
	reached := make(chan struct{})
	if !d.Submit(func() { close(reached) }) {
		return nil
	}
	select {
	case <-reached:
		return nil
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drops pending functions and stops the goroutine after the running
// function returns. It does not wait, so it is safe to call from a
// dispatched function.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.queue = nil
	close(d.stop)
}

// Done is closed once the dispatcher goroutine has exited.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	d.goroutine.Store(goroutineID())
	for {
		select {
		case <-d.wake:
		case <-d.stop:
			return
		}
		for {
			fn, ok := d.next()
			if !ok {
				break
			}
			fn()
		}
	}
}

func (d *Dispatcher) next() (func(), bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || len(d.queue) == 0 {
		return nil, false
	}
	fn := d.queue[0]
	d.queue[0] = nil
	d.queue = d.queue[1:]
	return fn, true
}

func (d *Dispatcher) onDispatcher() bool {
	id := d.goroutine.Load()
	return id != 0 && id == goroutineID()
}

// goroutineID parses the id from the "goroutine N [...]" stack header.
func goroutineID() uint64 {
	var buf [64]byte
	header := buf[:runtime.Stack(buf[:], false)]
	header = bytes.TrimPrefix(header, []byte("goroutine "))
	if i := bytes.IndexByte(header, ' '); i > 0 {
		header = header[:i]
	}
	id, err := strconv.ParseUint(string(header), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
