// Package scheduler implements the fixed-size worker pool that drives
// submission evaluation across contestants and problems, grounded on the
// teacher's mq.TokenLimiter (a fixed-capacity channel semaphore) combined
// with golang.org/x/sync/errgroup for fan-out and join, generalized from
// message-fetch throttling to the judge's static round-robin partition.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/fouguai/judgecore/internal/model"
)

// Task is one unit of work: evaluate contestant against problem.
type Task struct {
	Contestant model.Contestant
	Problem    *model.Problem
}

// Evaluate runs a single task and returns its result.
type Evaluate func(ctx context.Context, task Task) *model.SubmissionResult

// Pool is a fixed-size worker pool over a statically partitioned task
// list. Size is min(requested, len(contestants)) — callers are expected
// to have already applied that clamp when choosing workerCount, Partition
// does it again defensively.
type Pool struct {
	cancelled atomic.Bool

	mu       sync.Mutex
	statuses map[int]string
	children sync.Map // solution path -> context.CancelFunc
}

// New returns an idle pool with no workers started yet.
func New() *Pool {
	return &Pool{statuses: make(map[int]string)}
}

// Partition assigns contestants round-robin across workerCount buckets,
// serializing each contestant's work onto one worker — this stabilizes
// per-worker status reporting and avoids same-binary recompile races.
func Partition(contestants []model.Contestant, workerCount int) [][]model.Contestant {
	n := workerCount
	if n > len(contestants) {
		n = len(contestants)
	}
	if n <= 0 {
		return nil
	}
	buckets := make([][]model.Contestant, n)
	for i, c := range contestants {
		b := i % n
		buckets[b] = append(buckets[b], c)
	}
	return buckets
}

// Run starts len(buckets) workers, each iterating its assigned
// contestants (in order) and, within each contestant, every problem (in
// the given order) sequentially. It blocks until every worker has
// returned; once CancelAll has set the stop flag, each worker returns
// before starting its next task.
func (p *Pool) Run(ctx context.Context, buckets [][]model.Contestant, problems []*model.Problem, eval Evaluate) error {
	g, gctx := errgroup.WithContext(ctx)
	for workerID, bucket := range buckets {
		workerID, bucket := workerID, bucket
		p.setStatus(workerID, "Idle")
		g.Go(func() error {
			return p.runWorker(gctx, workerID, bucket, problems, eval)
		})
	}
	err := g.Wait()
	for workerID := range buckets {
		if p.cancelled.Load() {
			p.setStatus(workerID, "Terminated")
		} else {
			p.setStatus(workerID, "Stopped")
		}
	}
	return err
}

func (p *Pool) runWorker(ctx context.Context, workerID int, contestants []model.Contestant, problems []*model.Problem, eval Evaluate) error {
	for _, c := range contestants {
		for _, prob := range problems {
			if p.cancelled.Load() {
				return nil
			}
			if _, ok := c.SolutionFor(prob.ID); !ok {
				continue
			}
			p.setStatus(workerID, fmt.Sprintf("Evaluating %s - %s", c.ID, prob.ID))
			eval(ctx, Task{Contestant: c, Problem: prob})
		}
	}
	p.setStatus(workerID, "Idle")
	return nil
}

// Submit runs a single task outside the static partition, used for
// single-submission rejudge; callback receives the result once done.
func (p *Pool) Submit(ctx context.Context, task Task, eval Evaluate, callback func(*model.SubmissionResult)) {
	go func() {
		res := eval(ctx, task)
		callback(res)
	}()
}

// CancelAll sets the global stop flag. Workers observe it at the next
// test-case or task boundary and the engine's in-flight children are
// killed via RegisterChild/KillAll. CancelAll is idempotent and
// non-blocking.
func (p *Pool) CancelAll() {
	p.cancelled.Store(true)
	p.KillAll()
}

// Cancelled reports whether cancellation has been requested.
func (p *Pool) Cancelled() bool {
	return p.cancelled.Load()
}

// RegisterChild records a live child's cancel func keyed by solution path,
// so CancelAll can force-kill it. Callers must Unregister once the child
// exits.
func (p *Pool) RegisterChild(solutionPath string, cancel context.CancelFunc) {
	p.children.Store(solutionPath, cancel)
}

// UnregisterChild removes a child's registration once it has exited.
func (p *Pool) UnregisterChild(solutionPath string) {
	p.children.Delete(solutionPath)
}

// KillAll force-cancels every currently registered child.
func (p *Pool) KillAll() {
	p.children.Range(func(key, value interface{}) bool {
		if cancel, ok := value.(context.CancelFunc); ok {
			cancel()
		}
		p.children.Delete(key)
		return true
	})
}

func (p *Pool) setStatus(workerID int, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statuses[workerID] = status
}

// WorkerStatus returns a snapshot of every worker's human-readable status
// string, published for observers.
func (p *Pool) WorkerStatus() map[int]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[int]string, len(p.statuses))
	for k, v := range p.statuses {
		out[k] = v
	}
	return out
}
