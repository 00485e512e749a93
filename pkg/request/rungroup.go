package request

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// RunGroupConcurrencyLimit is the default cap on in-flight requests of one group.
const RunGroupConcurrencyLimit = 32

// RunGroup collects Sendable requests via Add and sends them concurrently
// once RunAndWait is called. The first error cancels the group: requests
// not yet started are skipped and the error is returned from RunAndWait.
// Outcomes that must not stop the group belong in a request listener that
// consumes them and returns nil.
//
// Requests may also be added while the group is already running, for
// example from a listener of another request in the group.
type RunGroup struct {
	ctx   context.Context
	start chan struct{} // closed by RunAndWait, holds back Add'ed requests
	group *errgroup.Group
	sem   *semaphore.Weighted
}

func NewRunGroup(ctx context.Context) *RunGroup {
	return RunGroupWithLimit(ctx, RunGroupConcurrencyLimit)
}

func RunGroupWithLimit(ctx context.Context, limit int64) *RunGroup {
	group, ctx := errgroup.WithContext(ctx)
	return &RunGroup{
		ctx:   ctx,
		start: make(chan struct{}),
		group: group,
		sem:   semaphore.NewWeighted(limit),
	}
}

// Add schedules the request. Nothing is sent until RunAndWait is called.
func (g *RunGroup) Add(request Sendable) {
	g.group.Go(func() error {
		<-g.start

		if err := g.sem.Acquire(g.ctx, 1); err != nil {
			return err
		}
		defer g.sem.Release(1)

		return request.SendOrErr(g.ctx)
	})
}

// RunAndWait releases the scheduled requests and blocks until all of them
// have finished, or until the first error cancels the rest.
func (g *RunGroup) RunAndWait() error {
	close(g.start)
	return g.group.Wait()
}
