// Package dispatch executes stored request specifications asynchronously.
//
// Each Dispatch runs in its own goroutine and delivers exactly one Result to
// the dispatcher's inbox, a buffered channel drained by the interactive loop
// via Poll. Posting never blocks a finished worker: when the inbox is full
// the oldest pending Result is dropped. Results arrive in completion order,
// not dispatch order.
package dispatch

import (
	"context"
	"sync"

	"github.com/orienthq/go-orient/pkg/orient"
	"github.com/orienthq/go-orient/pkg/request"
)

const DefaultInboxSize = 16

// Result is the outcome of one dispatch, tagged with the Location that
// triggered it. Exactly one of Snapshot and Err is set: any HTTP status,
// errors included, yields a Snapshot; Err is a transport level failure.
type Result struct {
	LocationID string
	Snapshot   *Snapshot
	Err        error
}

// Pending is a handle to an in-flight dispatch.
type Pending struct {
	LocationID string
	cancel     context.CancelFunc
	done       chan struct{}
}

// Cancel aborts the in-flight request. The dispatch still delivers its
// Result, with Err set to the cancellation error.
func (p *Pending) Cancel() {
	p.cancel()
}

// Done is closed once the Result has been posted.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Dispatcher turns Locations into live HTTP calls.
type Dispatcher struct {
	sender request.Sender
	wake   func()
	inbox  chan Result
	postMu sync.Mutex
}

type Option func(*Dispatcher)

// WithWake registers a callback invoked after each posted Result,
// typically a redraw request of the interactive loop.
func WithWake(fn func()) Option {
	return func(d *Dispatcher) {
		d.wake = fn
	}
}

func WithInboxSize(size int) Option {
	return func(d *Dispatcher) {
		d.inbox = make(chan Result, size)
	}
}

func NewDispatcher(sender request.Sender, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		inbox:  make(chan Result, DefaultInboxSize),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch sends the Location in a new goroutine and returns immediately.
// The Location is cloned first, the caller may keep editing it.
func (d *Dispatcher) Dispatch(ctx context.Context, loc *orient.Location) *Pending {
	loc = loc.Clone()
	ctx, cancel := context.WithCancel(ctx)
	pending := &Pending{LocationID: loc.ID, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(pending.done)
		defer cancel()
		snapshot, err := d.send(ctx, loc)
		if err != nil {
			d.post(Result{LocationID: loc.ID, Err: err})
		} else {
			d.post(Result{LocationID: loc.ID, Snapshot: snapshot})
		}
	}()

	return pending
}

// Poll returns the next Result without blocking.
func (d *Dispatcher) Poll() (Result, bool) {
	select {
	case result := <-d.inbox:
		return result, true
	default:
		return Result{}, false
	}
}

// Results exposes the inbox for consumers that prefer to block.
func (d *Dispatcher) Results() <-chan Result {
	return d.inbox
}

func (d *Dispatcher) send(ctx context.Context, loc *orient.Location) (*Snapshot, error) {
	var body []byte
	response, _, err := buildRequest(d.sender, loc).WithResult(&body).Send(ctx)
	if err != nil {
		return nil, err
	}
	return newSnapshot(loc.URL, response, body), nil
}

// post delivers the Result, dropping the oldest pending one when the inbox
// is full, so a worker is never blocked by a slow consumer.
func (d *Dispatcher) post(result Result) {
	d.postMu.Lock()
	defer d.postMu.Unlock()
	for {
		select {
		case d.inbox <- result:
			if d.wake != nil {
				d.wake()
			}
			return
		default:
			select {
			case <-d.inbox:
			default:
			}
		}
	}
}
