package explorer

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/vulx/internal/results"
)

// Loader produces a complete set of findings.
type Loader interface {
	Load(ctx context.Context) (*results.Set, error)
}

// Reloader serialises loads into the store. While a load is running, any number of new
// requests collapse into exactly one follow-up load that starts when the current one ends.
type Reloader struct {
	loader Loader
	store  *Store
	logger hclog.Logger

	mu         sync.Mutex
	running    bool
	pending    bool
	pendingCtx context.Context
	done       chan struct{}
	lastErr    error
}

// NewReloader creates a Reloader filling store from loader.
func NewReloader(loader Loader, store *Store, logger hclog.Logger) *Reloader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Reloader{loader: loader, store: store, logger: logger}
}

// Request schedules a load and returns immediately.
func (r *Reloader) Request(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		if r.pending {
			r.logger.Debug("reload already queued, collapsing request")
		}
		r.pending = true
		r.pendingCtx = ctx
		return
	}

	r.running = true
	r.done = make(chan struct{})
	go r.loop(ctx)
}

// Reload requests a load and waits until the reloader is idle again.
// It returns the error of the last load, if any.
func (r *Reloader) Reload(ctx context.Context) error {
	r.Request(ctx)
	r.Wait()
	return r.LastError()
}

// Wait blocks until no load is running or queued.
func (r *Reloader) Wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Dirty reports whether a load is running or queued.
func (r *Reloader) Dirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// LastError returns the error of the most recent load.
func (r *Reloader) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// OnScanComplete reacts to a finished scan: a successful scan triggers a reload,
// a failed one leaves the current snapshot in place.
func (r *Reloader) OnScanComplete(ctx context.Context, scanErr error) {
	if scanErr != nil {
		r.logger.Debug("scan failed, keeping current results", "error", scanErr)
		return
	}
	r.Request(ctx)
}

func (r *Reloader) loop(ctx context.Context) {
	for {
		r.loadOnce(ctx)

		r.mu.Lock()
		if !r.pending {
			r.running = false
			close(r.done)
			r.mu.Unlock()
			return
		}
		ctx = r.pendingCtx
		r.pending = false
		r.pendingCtx = nil
		r.mu.Unlock()
	}
}

func (r *Reloader) loadOnce(ctx context.Context) {
	set, err := r.loader.Load(ctx)

	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("failed to load results", "error", err)
		return
	}

	r.store.Replace(&Snapshot{
		Findings: set.Findings,
		Sources:  set.Sources,
		LoadedAt: time.Now().UTC(),
	})
	r.logger.Debug("results reloaded", "findings", len(set.Findings), "documents", len(set.Sources))
}
