// Package fiber implements cooperative, non-preemptive execution contexts.
//
// A fiber is an independently-suspendable unit of execution with its own
// entry function and lifecycle state. Exactly one fiber runs at any
// instant; control moves between fibers only through an explicit, blocking
// [Scheduler.Switch] call. There is no preemption, no fairness, and no
// hidden yielding: a fiber keeps running until it switches away or its
// entry function returns.
//
// # Architecture
//
// Each fiber is backed by a goroutine parked on a one-token wake channel.
// A single run token circulates through the whole scheduler: holding it is
// the right to execute, and Switch hands it to the target before blocking
// on the caller's own channel. Because at most one token exists, at most
// one goroutine is ever runnable, and data handed off across a Switch
// needs no locking.
//
// # Main Types
//
//   - [Scheduler]: owns the fiber table and the switch primitive; adopts
//     the goroutine that created it as the root fiber
//   - [Fiber]: a single execution context with a name and a [State]
//   - [State]: Suspended, Running, or Terminated
//
// # Lifecycle
//
// A fiber created by [Scheduler.New] is Suspended and has not yet run; the
// first Switch to it begins its entry function. When the entry function
// returns, control transfers implicitly back to the root fiber. A fiber
// parked inside Switch can be torn down with [Scheduler.Stop], which
// unwinds its stack and releases its goroutine.
//
// # Errors
//
// Switching to a nil, foreign, terminated, or currently-running fiber is a
// programming error and panics with [errors.ErrSchedulerMisuse]. There is
// no recovery path: a scheduler whose invariants are broken cannot
// continue.
package fiber
