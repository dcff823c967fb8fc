package fiber

import (
	"fmt"
	"sync/atomic"

	"github.com/Iron-Ham/shuttle/internal/errors"
)

// wakeSignal is the message carried on a fiber's wake channel. A zero
// signal resumes the fiber; cancel makes it unwind and terminate instead.
type wakeSignal struct {
	cancel bool
}

// stopSentinel is panicked at a stopped fiber's suspension point to unwind
// its stack. It never escapes the package.
type stopSentinel struct{}

// Fiber is a single cooperative execution context. Fibers are created by
// [Scheduler.New] and must only be manipulated through their scheduler.
type Fiber struct {
	name  string
	sched *Scheduler
	entry func()
	wake  chan wakeSignal
	state atomic.Int32
}

// Name returns the name the fiber was created with.
func (f *Fiber) Name() string { return f.name }

// State returns the fiber's current lifecycle state.
func (f *Fiber) State() State { return State(f.state.Load()) }

func (f *Fiber) setState(s State) { f.state.Store(int32(s)) }

// Scheduler owns a set of fibers and moves the single run token between
// them. All methods must be called from the fiber that currently holds the
// token; the scheduler is not safe for use from arbitrary goroutines.
type Scheduler struct {
	root    *Fiber
	current *Fiber
	stopper *Fiber // set by Stop before waking the fiber being torn down
}

// NewScheduler adopts the calling goroutine as the root fiber and returns
// a scheduler with that fiber running. The root fiber regains control
// whenever a worker fiber's entry function returns.
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	root := &Fiber{name: "root", sched: s, wake: make(chan wakeSignal, 1)}
	root.setState(StateRunning)
	s.root = root
	s.current = root
	return s
}

// Root returns the fiber adopted from the goroutine that created the
// scheduler.
func (s *Scheduler) Root() *Fiber { return s.root }

// Current returns the fiber that holds the run token.
func (s *Scheduler) Current() *Fiber { return s.current }

// New creates a suspended fiber that will run entry when first switched
// to. The backing goroutine is parked immediately and consumes no CPU
// until the first switch.
func (s *Scheduler) New(name string, entry func()) *Fiber {
	f := &Fiber{name: name, sched: s, entry: entry, wake: make(chan wakeSignal, 1)}
	f.setState(StateSuspended)
	go f.run()
	return f
}

// Switch suspends the calling fiber and transfers control to target,
// resuming it at its last suspension point (or starting its entry
// function if it has never run). Switch blocks until some other fiber
// switches back to the caller; from the caller's point of view it is an
// ordinary synchronous call.
//
// Switching to a nil, foreign, terminated, or currently-running fiber
// panics with [errors.ErrSchedulerMisuse].
func (s *Scheduler) Switch(target *Fiber) {
	caller := s.current
	switch {
	case target == nil:
		panic(fmt.Errorf("%w: switch to nil fiber", errors.ErrSchedulerMisuse))
	case target.sched != s:
		panic(fmt.Errorf("%w: fiber %q belongs to a different scheduler", errors.ErrSchedulerMisuse, target.name))
	case target.State() == StateTerminated:
		panic(fmt.Errorf("%w: switch to terminated fiber %q", errors.ErrSchedulerMisuse, target.name))
	case target == caller:
		panic(fmt.Errorf("%w: fiber %q switched to itself", errors.ErrSchedulerMisuse, caller.name))
	}

	caller.setState(StateSuspended)
	target.setState(StateRunning)
	s.current = target
	target.wake <- wakeSignal{}

	sig := <-caller.wake
	if sig.cancel {
		panic(stopSentinel{})
	}
	// Whoever woke us already marked the caller running and made it
	// current; there is nothing left to restore here.
}

// Stop tears down a fiber that is suspended (or was never started). The
// fiber's stack unwinds, deferred calls run, its goroutine exits, and its
// state becomes Terminated. Stopping an already-terminated fiber is a
// no-op. A fiber cannot stop itself.
//
// Stop blocks until the target has fully unwound, so the caller still
// holds the run token when Stop returns.
func (s *Scheduler) Stop(target *Fiber) {
	caller := s.current
	switch {
	case target == nil:
		panic(fmt.Errorf("%w: stop of nil fiber", errors.ErrSchedulerMisuse))
	case target.sched != s:
		panic(fmt.Errorf("%w: fiber %q belongs to a different scheduler", errors.ErrSchedulerMisuse, target.name))
	case target == caller:
		panic(fmt.Errorf("%w: fiber %q stopped itself", errors.ErrSchedulerMisuse, caller.name))
	}
	if target.State() == StateTerminated {
		return
	}

	s.stopper = caller
	caller.setState(StateSuspended)
	target.wake <- wakeSignal{cancel: true}
	<-caller.wake
}

// run is the backing goroutine of a worker fiber. It parks until the
// first switch, runs the entry function, and hands the run token back to
// the root fiber when the entry function returns.
func (f *Fiber) run() {
	sig := <-f.wake
	if sig.cancel {
		// Stopped before ever starting: terminate without running entry.
		f.finish(f.sched.stopper)
		return
	}

	if stopped := f.protect(); stopped {
		f.finish(f.sched.stopper)
		return
	}

	// Entry returned normally: implicit switch back to the root fiber.
	f.finish(f.sched.root)
}

// protect runs the entry function, converting a Stop unwind into a flag.
// Any other panic is a bug in the entry function and propagates, taking
// the process down.
func (f *Fiber) protect() (stopped bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(stopSentinel); ok {
				stopped = true
				return
			}
			panic(r)
		}
	}()
	f.entry()
	return false
}

// finish marks the fiber terminated and hands the run token to next.
func (f *Fiber) finish(next *Fiber) {
	f.setState(StateTerminated)
	f.sched.current = next
	next.setState(StateRunning)
	next.wake <- wakeSignal{}
}
