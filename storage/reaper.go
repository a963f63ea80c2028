package storage

import (
	"context"
	"log"
	"sync"
	"time"

	"catalogapi/apperrors"
)

// Sink receives asset-delete failures. The default logs them; tests swap in
// a recorder.
type Sink func(err error)

// Reaper removes assets off the request path. A delete failure goes to the
// sink, never to the caller: a stale or already-missing file must not block
// or roll back a document mutation.
type Reaper struct {
	store Store
	jobs  chan string
	sink  Sink
	wg    sync.WaitGroup
	once  sync.Once
}

func NewReaper(store Store, sink Sink) *Reaper {
	if sink == nil {
		sink = func(err error) { log.Println(err) }
	}
	r := &Reaper{
		store: store,
		jobs:  make(chan string, 256),
		sink:  sink,
	}
	r.wg.Add(1)
	go r.run()
	return r
}

func (r *Reaper) run() {
	defer r.wg.Done()
	for name := range r.jobs {
		r.remove(name)
	}
}

func (r *Reaper) remove(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := r.store.Delete(ctx, name); err != nil {
		r.sink(&apperrors.AssetDeleteError{Name: name, Err: err})
	}
}

// Discard enqueues names for removal without blocking. When the queue is
// full the delete runs on its own goroutine instead.
func (r *Reaper) Discard(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		select {
		case r.jobs <- name:
		default:
			r.wg.Add(1)
			go func(n string) {
				defer r.wg.Done()
				r.remove(n)
			}(name)
		}
	}
}

// Close drains pending deletes and waits for them to finish. Safe to call
// more than once.
func (r *Reaper) Close() {
	r.once.Do(func() {
		close(r.jobs)
		r.wg.Wait()
	})
}
