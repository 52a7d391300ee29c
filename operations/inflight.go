package operations

import (
	"context"
	"sync"
)

// inflight is a single-slot request token. Beginning a new intent cancels
// the context of the one before it, and only the newest token may commit
// its result to the store.
type inflight struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// begin starts a new intent and supersedes any intent still running.
// The returned release func must be called when the intent returns.
func (f *inflight) begin(parent context.Context) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(parent)

	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.seq++
	token := f.seq
	f.cancel = cancel
	f.mu.Unlock()

	release := func() {
		f.mu.Lock()
		if f.seq == token {
			f.cancel = nil
		}
		f.mu.Unlock()
		cancel()
	}
	return ctx, token, release
}

// commit runs apply only if token is still the newest intent. apply runs
// under the token lock so no newer intent can begin halfway through.
func (f *inflight) commit(token uint64, apply func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seq != token {
		return false
	}
	apply()
	return true
}
