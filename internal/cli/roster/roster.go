// Package roster acquires the list of agents a buyer can filter property
// search by, under a bounded wait. The backend may be a cold-started
// scale-to-zero service, so a multi-second stall is expected rather than
// exceptional: the fetch races a fixed timer, and whichever loses has its
// continuation neutralized by a completion flag.
package roster

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/investmateai/imctl/internal/cli/types"
)

// DefaultTimeout is the bounded wait before the fallback channel takes over.
const DefaultTimeout = 8 * time.Second

// Phase is the session phase derived from the load outcome.
type Phase int

const (
	// PhaseInitializing means no load has completed yet
	PhaseInitializing Phase = iota
	// PhaseReady means the roster is usable and a default agent is selected
	PhaseReady
	// PhaseTimedOut means the bounded wait elapsed or the fetch failed
	PhaseTimedOut
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "Ready"
	case PhaseTimedOut:
		return "RosterTimedOut"
	default:
		return "InitializingRoster"
	}
}

// Result is the outcome of one bounded-wait load.
type Result struct {
	Phase  Phase
	Agents []types.Agent
	// Selected is the default agent (first roster entry) when Phase is
	// PhaseReady and the roster is non-empty.
	Selected *types.Agent
}

// Gateway is the backend capability the loader needs.
type Gateway interface {
	ListAgents(ctx context.Context) ([]types.Agent, error)
}

// Loader runs the bounded-wait race. Each Load starts from a clean state, so
// an explicit retry re-runs the whole procedure.
type Loader struct {
	gw      Gateway
	timeout time.Duration

	mu   sync.Mutex
	last Result
}

// NewLoader creates a loader with the default 8-second bounded wait
func NewLoader(gw Gateway) *Loader {
	return NewLoaderWithTimeout(gw, DefaultTimeout)
}

// NewLoaderWithTimeout creates a loader with a custom bounded wait
func NewLoaderWithTimeout(gw Gateway, timeout time.Duration) *Loader {
	return &Loader{gw: gw, timeout: timeout}
}

// Last returns the most recently recorded result
func (l *Loader) Last() Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

// Load races the roster fetch against the bounded-wait timer and returns the
// winner's result. Exactly one of the two paths resolves: a completion flag
// guards the loser, so a fetch that finishes after the timer fired can never
// flip recorded state back to Ready. A fetch failure is treated the same as
// a timeout, since the user-facing remedy is identical.
func (l *Loader) Load(ctx context.Context) Result {
	var completed atomic.Bool
	resCh := make(chan Result, 1)

	go func() {
		agents, err := l.gw.ListAgents(ctx)
		if !completed.CompareAndSwap(false, true) {
			// The timer already won; this result is discarded.
			return
		}
		if err != nil {
			resCh <- Result{Phase: PhaseTimedOut}
			return
		}
		res := Result{Phase: PhaseReady, Agents: agents}
		if len(agents) > 0 {
			res.Selected = &agents[0]
		}
		resCh <- res
	}()

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case res := <-resCh:
		return l.record(res)
	case <-timer.C:
		if !completed.CompareAndSwap(false, true) {
			// The fetch won the flag in the same instant; take its result.
			return l.record(<-resCh)
		}
		return l.record(Result{Phase: PhaseTimedOut})
	}
}

func (l *Loader) record(res Result) Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.last = res
	return res
}
