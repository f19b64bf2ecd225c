// Package scope implements structured concurrency on top of a shared goroutine pool.
//
// A Scope bounds the lifetime of the tasks that are launched in it: cancelling a Scope cancels all of its tasks and
// child scopes, while a task that fails (returns an error or panics) fails its Scope and every ancestor of it.
package scope

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/atomic"

	"github.com/iotaledger/oneshot/ierrors"
	"github.com/iotaledger/oneshot/log"
	"github.com/iotaledger/oneshot/runtime/event"
	"github.com/iotaledger/oneshot/runtime/options"
	"github.com/iotaledger/oneshot/runtime/syncutils"
)

var (
	// ErrScopeCancelled is returned when a task is launched in a Scope that was already cancelled.
	ErrScopeCancelled = ierrors.New("scope was cancelled")

	// ErrTaskPanicked is the failure that is recorded when a task panics.
	ErrTaskPanicked = ierrors.New("task panicked")
)

// Scope is a lifetime scope for concurrently running tasks.
type Scope struct {
	// Events contains the events of the Scope.
	Events *Events

	name         string
	ctx          context.Context
	cancel       context.CancelFunc
	parent       *Scope
	pool         *ants.Pool
	logger       log.Logger
	failure      atomic.Error
	failed       atomic.Bool
	pendingTasks sync.WaitGroup

	// lifecycleMutex makes sure that no task is registered after the Scope was cancelled.
	lifecycleMutex syncutils.RWMutex

	optsPoolSize int
}

// Events contains the events of a Scope.
type Events struct {
	// Failed is triggered once with the first failure of the Scope.
	Failed *event.Event1[error]
}

// New creates a new root Scope whose lifetime is bound to the given context.
func New(ctx context.Context, opts ...options.Option[Scope]) (*Scope, error) {
	s := options.Apply(&Scope{
		Events: newEvents(),
		name:   "root",
		logger: log.EmptyLogger,
	}, opts)

	pool, err := ants.NewPool(s.optsPoolSize)
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to create worker pool")
	}

	s.pool = pool
	s.ctx, s.cancel = context.WithCancel(ctx)

	return s, nil
}

// NewChild creates a new child Scope. Cancelling the child does not affect its parent, but a failure of the child
// fails the parent as well.
func (s *Scope) NewChild(name string) *Scope {
	child := &Scope{
		Events: newEvents(),
		name:   s.name + "." + name,
		parent: s,
		pool:   s.pool,
		logger: s.logger,
	}
	child.ctx, child.cancel = context.WithCancel(s.ctx)

	return child
}

// Name returns the name of the Scope.
func (s *Scope) Name() string {
	return s.name
}

// Context returns the context that is cancelled when the Scope ends.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Done returns a channel that is closed when the Scope is cancelled or failed.
func (s *Scope) Done() <-chan struct{} {
	return s.ctx.Done()
}

// IsCancelled returns true if the Scope was cancelled or failed.
func (s *Scope) IsCancelled() bool {
	return s.ctx.Err() != nil
}

// Err returns the first failure of the Scope (or nil if it did not fail).
func (s *Scope) Err() error {
	return s.failure.Load()
}

// Go launches the given task on a worker of the pool. The context that is passed to the task is cancelled when the
// Scope ends. If the pool is bounded and all workers are busy, Go blocks until a worker becomes available.
func (s *Scope) Go(task func(ctx context.Context) error) error {
	return s.launch(task, s.pool.Submit)
}

// GoDedicated launches the given task on its own goroutine that does not count against the size of the pool. Tasks
// that run for the whole lifetime of their Scope (like observation loops) use it so they never starve the pool.
func (s *Scope) GoDedicated(task func(ctx context.Context) error) error {
	return s.launch(task, func(runTask func()) error {
		go runTask()

		return nil
	})
}

// launch registers the given task as pending and hands it to the given executor.
func (s *Scope) launch(task func(ctx context.Context) error, execute func(func()) error) error {
	if !s.tryAddPending() {
		return ierrors.Wrapf(ErrScopeCancelled, "failed to launch task in scope %s", s.name)
	}

	if err := execute(func() {
		defer s.donePending()

		s.run(task)
	}); err != nil {
		s.donePending()

		return ierrors.Wrapf(err, "failed to submit task to scope %s", s.name)
	}

	return nil
}

// Fail records the given failure (only the first one is kept), cancels the Scope and fails its parent.
func (s *Scope) Fail(err error) {
	if err == nil || !s.failed.CAS(false, true) {
		return
	}

	s.failure.Store(err)
	s.Cancel()

	s.logger.LogError("scope failed", "scope", s.name, "err", err)
	s.Events.Failed.Trigger(err)

	if s.parent != nil {
		s.parent.Fail(err)
	}
}

// Cancel cancels the Scope and all of its children without failing it.
func (s *Scope) Cancel() {
	s.lifecycleMutex.Lock()
	defer s.lifecycleMutex.Unlock()

	s.cancel()
}

// Wait waits until all tasks that were launched in the Scope (and its children) have returned.
func (s *Scope) Wait() {
	s.pendingTasks.Wait()
}

// Shutdown cancels the Scope, waits for its tasks and releases the worker pool if the Scope is a root Scope.
func (s *Scope) Shutdown() {
	s.Cancel()
	s.Wait()

	if s.parent == nil {
		s.pool.Release()
	}
}

// run executes the given task and turns returned errors and panics into failures of the Scope.
func (s *Scope) run(task func(ctx context.Context) error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			s.Fail(ierrors.Wrapf(ErrTaskPanicked, "%s", fmt.Sprint(recovered)))
		}
	}()

	if err := task(s.ctx); err != nil && !s.isCancellation(err) {
		s.Fail(err)
	}
}

// isCancellation returns true if the error was caused by the Scope being cancelled.
func (s *Scope) isCancellation(err error) bool {
	return s.ctx.Err() != nil && (ierrors.Is(err, context.Canceled) || ierrors.Is(err, ErrScopeCancelled))
}

// tryAddPending registers a pending task if neither the Scope nor any of its ancestors was cancelled.
func (s *Scope) tryAddPending() bool {
	for current := s; current != nil; current = current.parent {
		current.lifecycleMutex.RLock()
		defer current.lifecycleMutex.RUnlock()
	}

	if s.IsCancelled() {
		return false
	}

	s.addPending()

	return true
}

// addPending registers a pending task with the Scope and all of its ancestors.
func (s *Scope) addPending() {
	for current := s; current != nil; current = current.parent {
		current.pendingTasks.Add(1)
	}
}

// donePending marks a pending task as done in the Scope and all of its ancestors.
func (s *Scope) donePending() {
	for current := s; current != nil; current = current.parent {
		current.pendingTasks.Done()
	}
}

// newEvents creates the Events of a Scope.
func newEvents() *Events {
	return &Events{
		Failed: event.New1[error](),
	}
}
