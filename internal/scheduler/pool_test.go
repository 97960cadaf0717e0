package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fouguai/judgecore/internal/model"
)

func mkContestant(t *testing.T, id string, problemIDs ...string) model.Contestant {
	solutions := make(map[string]string)
	for _, pid := range problemIDs {
		solutions[pid] = "" // empty path skips the os.Stat check in NewContestant
	}
	c, err := model.NewContestant(id, id, "", solutions)
	if err != nil {
		t.Fatalf("NewContestant: %v", err)
	}
	return c
}

func mkProblem(t *testing.T, id string) *model.Problem {
	p, err := model.NewProblem(id, id, "", model.ProblemSettings{})
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	return p
}

func TestPartitionRoundRobin(t *testing.T) {
	contestants := []model.Contestant{mkContestant(t, "a"), mkContestant(t, "b"), mkContestant(t, "c")}
	buckets := Partition(contestants, 2)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	total := 0
	for _, b := range buckets {
		total += len(b)
	}
	if total != 3 {
		t.Fatalf("expected 3 contestants total, got %d", total)
	}
}

func TestPartitionClampsToContestantCount(t *testing.T) {
	contestants := []model.Contestant{mkContestant(t, "a")}
	buckets := Partition(contestants, 5)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
}

func TestRunSkipsContestantsWithoutSolution(t *testing.T) {
	contestants := []model.Contestant{
		mkContestant(t, "c1", "p1"),
		mkContestant(t, "c2", "p1"),
	}
	// mkContestant stores empty solution paths, which SolutionFor treats as absent
	problems := []*model.Problem{mkProblem(t, "p1")}
	pool := New()
	buckets := Partition(contestants, 2)

	var calls int64
	err := pool.Run(context.Background(), buckets, problems, func(ctx context.Context, task Task) *model.SubmissionResult {
		atomic.AddInt64(&calls, 1)
		return model.NewSubmissionResult(task.Contestant.ID, task.Problem.ID)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		// solutions map stores empty string which SolutionFor treats as absent
		t.Fatalf("expected 0 calls since solutions were empty placeholders, got %d", calls)
	}
}

func TestCancelAllSetsFlagAndKillsChildren(t *testing.T) {
	pool := New()
	ctx, cancel := context.WithCancel(context.Background())
	var killed int32
	pool.RegisterChild("sol.cpp", func() {
		atomic.AddInt32(&killed, 1)
		cancel()
	})
	pool.CancelAll()
	if !pool.Cancelled() {
		t.Fatalf("expected Cancelled() true")
	}
	if atomic.LoadInt32(&killed) != 1 {
		t.Fatalf("expected registered child to be cancelled")
	}
	select {
	case <-ctx.Done():
	default:
		t.Fatalf("expected context to be cancelled")
	}
}

func TestWorkerStatusSnapshot(t *testing.T) {
	pool := New()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		pool.setStatus(0, "Evaluating c1 - p1")
	}()
	wg.Wait()
	statuses := pool.WorkerStatus()
	if statuses[0] != "Evaluating c1 - p1" {
		t.Fatalf("unexpected status map: %+v", statuses)
	}
}
