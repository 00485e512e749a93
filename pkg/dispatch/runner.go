package dispatch

import (
	"context"

	"github.com/orienthq/go-orient/pkg/orient"
	"github.com/orienthq/go-orient/pkg/request"
)

// RunnerConcurrencyLimit bounds how many requests of one directory run at once.
const RunnerConcurrencyLimit = 8

// DirectoryRunner dispatches every Location of a directory, results flow
// through the dispatcher's inbox like single dispatches.
type DirectoryRunner struct {
	dispatcher *Dispatcher
	limit      int64
}

func NewDirectoryRunner(d *Dispatcher) *DirectoryRunner {
	return &DirectoryRunner{dispatcher: d, limit: RunnerConcurrencyLimit}
}

// Run sends all Locations of the directory through one request.RunGroup and
// blocks until every Result has been posted. A transport failure is consumed
// by the request's completion listener and delivered as a Result, it never
// stops the group: the returned error covers only an unknown directory or a
// cancelled context. Locations are cloned up front, the workspace is not
// touched once Run is sending.
func (r *DirectoryRunner) Run(ctx context.Context, ws *orient.Workspace, dirID string) error {
	dir, found := ws.Directory(dirID)
	if !found {
		return orient.DirectoryNotFoundError{ID: dirID}
	}

	grp := request.RunGroupWithLimit(ctx, r.limit)
	for _, id := range dir.Locations {
		stored, found := ws.Store.Get(id)
		if !found {
			// dangling reference after a non-cascading directory delete
			continue
		}
		loc := stored.Clone()
		body := new([]byte)
		grp.Add(buildRequest(r.dispatcher.sender, loc).
			WithResult(body).
			WithOnComplete(func(_ context.Context, response request.HTTPResponse, err error) error {
				if err != nil {
					r.dispatcher.post(Result{LocationID: loc.ID, Err: err})
					return nil
				}
				r.dispatcher.post(Result{LocationID: loc.ID, Snapshot: newSnapshot(loc.URL, response, *body)})
				return nil
			}))
	}
	return grp.RunAndWait()
}
